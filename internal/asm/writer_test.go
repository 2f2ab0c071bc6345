package asm

import (
	"bytes"
	"testing"
)

func TestWriter_Forms(t *testing.T) {
	tests := []struct {
		name string
		emit func(w *Writer)
		want string
	}{
		{"add reg", func(w *Writer) { w.AddReg(R1, R1, R2) }, "add r1, r1, r2\n"},
		{"add imm negative", func(w *Writer) { w.AddImm(SF, SF, -5) }, "add r6, r6, #-5\n"},
		{"adcs shifted", func(w *Writer) { w.ALUReg(Adc, R3, R1, R2, ShiftASR, true) }, "adcs r3, r1, r2, asr\n"},
		{"sbc imm", func(w *Writer) { w.ALUImm(Sbc, R4, R4, 1, false) }, "sbc r4, r4, #1\n"},
		{"sub", func(w *Writer) { w.SubImm(R2, R2, 3) }, "sub r2, r2, #3\n"},
		{"and imm", func(w *Writer) { w.AndImm(R1, R2, 7) }, "and r1, r2, #7\n"},
		{"or reg", func(w *Writer) { w.OrReg(R1, R2, R3) }, "or r1, r2, r3\n"},
		{"mov reg", func(w *Writer) { w.MovReg(PC, LR) }, "mov r7, r5\n"},
		{"movs ror", func(w *Writer) { w.MovRegShift(R1, R2, ShiftROR, true) }, "movs r1, r2, ror\n"},
		{"mov imm", func(w *Writer) { w.MovImm(R1, -16) }, "mov r1, #-16\n"},
		{"mov label", func(w *Writer) { w.MovLabel(LR, "program_exit") }, "mov r5, #program_exit\n"},
		{"cmp reg rrc", func(w *Writer) { w.CmpReg(R1, R2, ShiftRRC) }, "cmp r1, r2, rrc\n"},
		{"cmp imm", func(w *Writer) { w.CmpImm(R1, 15) }, "cmp r1, #15\n"},
		{"tst", func(w *Writer) { w.TstImm(R2, 1) }, "tst r2, #1\n"},
		{"neg", func(w *Writer) { w.NegReg(R1, R2, ShiftNone) }, "neg r1, r2\n"},
		{"ld plain", func(w *Writer) { w.Load(R1, At(R2)) }, "ld r1, [r2]\n"},
		{"ld reg offset", func(w *Writer) { w.Load(R1, AtReg(R2, R3)) }, "ld r1, [r2, r3]\n"},
		{"st imm offset", func(w *Writer) { w.Store(R1, AtImm(SF, 4)) }, "st r1, [r6, #4]\n"},
		{"st shifted", func(w *Writer) { w.Store(R1, AtReg(R2, R3).WithShift(ShiftASR)) }, "st r1, [r2, r3, asr]\n"},
		{"ld label", func(w *Writer) { w.LoadLabel(R1, "autogen_1") }, "ld r1, autogen_1\n"},
		{"st label", func(w *Writer) { w.StoreLabel(LR, "autogen_2") }, "st r5, autogen_2\n"},
		{"branch", func(w *Writer) { w.Branch(Always, "FUNC_main") }, "bal FUNC_main\n"},
		{"branch cond", func(w *Writer) { w.Branch(Cond("ne"), "x") }, "bne x\n"},
		{"data", func(w *Writer) { w.Data(-1) }, "DEFW -1\n"},
		{"data label", func(w *Writer) { w.DataLabel("GLOBAL_x") }, "DEFW GLOBAL_x\n"},
		{"nop", func(w *Writer) { w.Nop() }, "nop\n"},
		{"org", func(w *Writer) { w.Org("0") }, "org 0\n"},
		{"comment", func(w *Writer) { w.Comment("hello") }, "; hello\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter()
			tt.emit(w)
			if got := w.String(); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriter_CountsRealInstructionsOnly(t *testing.T) {
	w := NewWriter()
	w.Comment("header")
	w.BlankLine()
	w.Org("0")
	w.Label("start")
	w.Nop()
	w.Data(3)
	w.Branch(Always, "start")
	if got := w.Count(); got != 3 {
		t.Fatalf("Count = %d, want 3", got)
	}
}

func TestWriter_LabelDecoratesNextRealEmission(t *testing.T) {
	w := NewWriter()
	w.Label("FUNC_main")
	w.BlankLine()
	w.Comment("Setting r1 to 1")
	w.MovImm(R1, 1)

	want := "\n; Setting r1 to 1\nFUNC_main mov r1, #1\n"
	if got := w.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriter_ConsecutiveLabelsArePadded(t *testing.T) {
	w := NewWriter()
	w.Label("a")
	w.Label("b")
	w.Nop()

	want := "a nop\nb nop\n"
	if got := w.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if w.Count() != 2 {
		t.Fatalf("Count = %d, want 2", w.Count())
	}
}

func TestWriter_DanglingLabelIsFlushed(t *testing.T) {
	w := NewWriter()
	w.Label("tail")
	if w.Pending() != "tail" {
		t.Fatalf("Pending = %q", w.Pending())
	}
	var out bytes.Buffer
	if _, err := w.WriteTo(&out); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if out.String() != "tail" {
		t.Fatalf("got %q", out.String())
	}
}

func TestStats(t *testing.T) {
	s := Stats{Instructions: 2000, Capacity: DefaultCapacity}
	if s.Utilization() != 25 {
		t.Fatalf("Utilization = %v, want 25", s.Utilization())
	}
	if s.Exceeded() {
		t.Fatalf("did not expect capacity to be exceeded")
	}
	if !(Stats{Instructions: 8001, Capacity: 8000}).Exceeded() {
		t.Fatalf("expected capacity to be exceeded")
	}
	if (Stats{Instructions: 5}).Utilization() != 0 {
		t.Fatalf("zero capacity should report zero utilization")
	}
}
