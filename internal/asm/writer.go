package asm

import (
	"fmt"
	"io"
	"strings"
)

// Op is an ALU mnemonic with register and immediate forms.
type Op string

const (
	Add Op = "add"
	Adc Op = "adc"
	Sub Op = "sub"
	Sbc Op = "sbc"
	And Op = "and"
	Or  Op = "or"
)

// Addr is a bracketed memory operand: base register, optional register or
// immediate offset, optional shift suffix.
type Addr struct {
	Base   Reg
	Index  Reg
	Imm    int64
	Shift  ShiftOp
	offset uint8 // 0 none, 1 register, 2 immediate
}

// At addresses [base].
func At(base Reg) Addr { return Addr{Base: base} }

// AtReg addresses [base, off].
func AtReg(base, off Reg) Addr { return Addr{Base: base, Index: off, offset: 1} }

// AtImm addresses [base, #imm].
func AtImm(base Reg, imm int64) Addr { return Addr{Base: base, Imm: imm, offset: 2} }

// WithShift returns a copy of a with the shift suffix set.
func (a Addr) WithShift(s ShiftOp) Addr {
	a.Shift = s
	return a
}

func (a Addr) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(a.Base.String())
	switch a.offset {
	case 1:
		b.WriteString(", ")
		b.WriteString(a.Index.String())
	case 2:
		fmt.Fprintf(&b, ", #%d", a.Imm)
	}
	b.WriteString(a.Shift.suffix())
	b.WriteByte(']')
	return b.String()
}

// Writer is an append-only builder of target assembly text.
//
// Label writes the bare name without a line terminator: the next instruction
// or data word lands on the same line. Comments and blank lines emitted while
// a label is pending go ahead of the labelled line, so a label never decorates
// anything but a real emission.
type Writer struct {
	buf     strings.Builder
	pending string
	count   int
}

func NewWriter() *Writer {
	return &Writer{}
}

// Count returns the number of real instructions (data words included).
func (w *Writer) Count() int {
	return w.count
}

// Pending returns the label still waiting for an instruction, if any.
func (w *Writer) Pending() string {
	return w.pending
}

func (w *Writer) String() string {
	if w.pending == "" {
		return w.buf.String()
	}
	return w.buf.String() + w.pending
}

// WriteTo flushes the accumulated text into out.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	n, err := io.WriteString(out, w.String())
	return int64(n), err
}

func (w *Writer) BlankLine() {
	w.buf.WriteByte('\n')
}

func (w *Writer) Comment(msg string) {
	w.buf.WriteString("; ")
	w.buf.WriteString(msg)
	w.buf.WriteByte('\n')
}

func (w *Writer) Org(pos string) {
	fmt.Fprintf(&w.buf, "org %s\n", pos)
}

// Label marks name as the label of the next real emission. Two labels cannot
// share a line; a still-pending label is padded with a nop first.
func (w *Writer) Label(name string) {
	if w.pending != "" {
		w.Nop()
	}
	w.pending = name
}

func (w *Writer) instr(format string, args ...any) {
	if w.pending != "" {
		w.buf.WriteString(w.pending)
		w.buf.WriteByte(' ')
		w.pending = ""
	}
	fmt.Fprintf(&w.buf, format, args...)
	w.buf.WriteByte('\n')
	w.count++
}

func (w *Writer) Data(value int64) {
	w.instr("DEFW %d", value)
}

// DataLabel emits a data word holding the address of label.
func (w *Writer) DataLabel(label string) {
	w.instr("DEFW %s", label)
}

func (w *Writer) Nop() {
	w.instr("nop")
}

func status(setFlags bool) string {
	if setFlags {
		return "s"
	}
	return ""
}

// ALUReg emits "<op> dest, a, b[, shift]".
func (w *Writer) ALUReg(op Op, dest, a, b Reg, shift ShiftOp, setFlags bool) {
	w.instr("%s%s %s, %s, %s%s", op, status(setFlags), dest, a, b, shift.suffix())
}

// ALUImm emits "<op> dest, a, #imm".
func (w *Writer) ALUImm(op Op, dest, a Reg, imm int64, setFlags bool) {
	w.instr("%s%s %s, %s, #%d", op, status(setFlags), dest, a, imm)
}

func (w *Writer) AddReg(dest, a, b Reg) { w.ALUReg(Add, dest, a, b, ShiftNone, false) }

func (w *Writer) AddImm(dest, a Reg, imm int64) { w.ALUImm(Add, dest, a, imm, false) }

func (w *Writer) SubReg(dest, a, b Reg) { w.ALUReg(Sub, dest, a, b, ShiftNone, false) }

func (w *Writer) SubImm(dest, a Reg, imm int64) { w.ALUImm(Sub, dest, a, imm, false) }

func (w *Writer) AndReg(dest, a, b Reg) { w.ALUReg(And, dest, a, b, ShiftNone, false) }

func (w *Writer) AndImm(dest, a Reg, imm int64) { w.ALUImm(And, dest, a, imm, false) }

func (w *Writer) OrReg(dest, a, b Reg) { w.ALUReg(Or, dest, a, b, ShiftNone, false) }

func (w *Writer) OrImm(dest, a Reg, imm int64) { w.ALUImm(Or, dest, a, imm, false) }

// MovRegShift emits "mov[s] dest, src[, shift]".
func (w *Writer) MovRegShift(dest, src Reg, shift ShiftOp, setFlags bool) {
	w.instr("mov%s %s, %s%s", status(setFlags), dest, src, shift.suffix())
}

func (w *Writer) MovReg(dest, src Reg) { w.MovRegShift(dest, src, ShiftNone, false) }

func (w *Writer) MovImm(dest Reg, imm int64) {
	w.instr("mov %s, #%d", dest, imm)
}

// MovLabel moves the address of label as an immediate.
func (w *Writer) MovLabel(dest Reg, label string) {
	w.instr("mov %s, #%s", dest, label)
}

func (w *Writer) CmpReg(a, b Reg, shift ShiftOp) {
	w.instr("cmp %s, %s%s", a, b, shift.suffix())
}

func (w *Writer) CmpImm(a Reg, imm int64) {
	w.instr("cmp %s, #%d", a, imm)
}

func (w *Writer) TstReg(a, b Reg, shift ShiftOp) {
	w.instr("tst %s, %s%s", a, b, shift.suffix())
}

func (w *Writer) TstImm(a Reg, imm int64) {
	w.instr("tst %s, #%d", a, imm)
}

func (w *Writer) NegReg(dest, src Reg, shift ShiftOp) {
	w.instr("neg %s, %s%s", dest, src, shift.suffix())
}

func (w *Writer) Load(dest Reg, addr Addr) {
	w.instr("ld %s, %s", dest, addr)
}

func (w *Writer) Store(value Reg, addr Addr) {
	w.instr("st %s, %s", value, addr)
}

// LoadLabel reads the word at a nearby label.
func (w *Writer) LoadLabel(dest Reg, label string) {
	w.instr("ld %s, %s", dest, label)
}

// StoreLabel writes value into the word at a nearby label.
func (w *Writer) StoreLabel(value Reg, label string) {
	w.instr("st %s, %s", value, label)
}

func (w *Writer) Branch(cond Cond, label string) {
	w.instr("b%s %s", cond, label)
}
