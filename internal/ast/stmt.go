package ast

import "fstump/internal/literal"

// Stmt is one statement of a function body.
type Stmt interface {
	Accept(v StmtVisitor) error
}

type StmtVisitor interface {
	VisitAddAssignImm(s *AddAssignImm) error
	VisitAddAssignReg(s *AddAssignReg) error
	VisitAddImm(s *AddImm) error
	VisitAddReg(s *AddReg) error
	VisitAndImm(s *AndImm) error
	VisitAndReg(s *AndReg) error
	VisitCmpImm(s *CmpImm) error
	VisitCmpReg(s *CmpReg) error
	VisitTestImm(s *TestImm) error
	VisitTestReg(s *TestReg) error
	VisitGoto(s *Goto) error
	VisitGotoCond(s *GotoCond) error
	VisitLabel(s *Label) error
	VisitLoad(s *Load) error
	VisitLoadAddr(s *LoadAddr) error
	VisitLoadReg(s *LoadReg) error
	VisitLoadOffset(s *LoadOffset) error
	VisitStore(s *Store) error
	VisitStoreReg(s *StoreReg) error
	VisitStoreOffset(s *StoreOffset) error
	VisitSet(s *Set) error
	VisitLShift(s *LShift) error
	VisitCall(s *Call) error
	VisitNop(s *Nop) error
	VisitLocal(s *Local) error
	VisitReturn(s *Return) error
}

// AddAssignImm: dest += value.
type AddAssignImm struct {
	Dest  Register
	Value literal.Literal
}

// AddAssignReg: dest += src.
type AddAssignReg struct {
	Dest, Src Register
}

// AddImm: dest = left + value. Parsed but has no lowering.
type AddImm struct {
	Dest, Left Register
	Value      literal.Literal
}

// AddReg: dest = left + right. Parsed but has no lowering.
type AddReg struct {
	Dest, Left, Right Register
}

// AndImm: dest = left & value.
type AndImm struct {
	Dest, Left Register
	Value      literal.Literal
}

// AndReg: dest = left & right.
type AndReg struct {
	Dest, Left, Right Register
}

type CmpImm struct {
	Left  Register
	Value literal.Literal
}

type CmpReg struct {
	Left, Right Register
}

// TestImm is a bare test. Parsed but has no lowering.
type TestImm struct {
	Left  Register
	Value literal.Literal
}

// TestReg is a bare test. Parsed but has no lowering.
type TestReg struct {
	Left, Right Register
}

type Goto struct {
	Label string
}

// GotoCond branches when Cond holds; Cond is the target condition mnemonic.
type GotoCond struct {
	Cond  string
	Label string
}

type Label struct {
	Name string
}

// Load reads a global or local variable into Dest.
type Load struct {
	Dest Register
	Name string
}

// LoadAddr puts the address of a global or local variable into Dest.
type LoadAddr struct {
	Dest Register
	Name string
}

// LoadReg: dest = [src].
type LoadReg struct {
	Dest, Src Register
}

// LoadOffset: dest = [base + offset].
type LoadOffset struct {
	Dest, Base, Offset Register
}

// Store writes Src into a global or local variable.
type Store struct {
	Name string
	Src  Register
}

// StoreReg: [addr] = src.
type StoreReg struct {
	Addr, Src Register
}

// StoreOffset: [base + offset] = value.
type StoreOffset struct {
	Base, Offset, Value Register
}

// Set: dest = value.
type Set struct {
	Dest  Register
	Value literal.Literal
}

// LShift: dest = src << amount.
type LShift struct {
	Dest, Src Register
	Amount    literal.Literal
}

// Call invokes Func. Out, when set, is the register that receives the result
// and is not restored after the call.
type Call struct {
	Func string
	Args []CallArg
	Out  Register
}

type Nop struct{}

// Local declares a frame variable. It emits no code.
type Local struct {
	Name string
}

// Return is parsed but has no lowering.
type Return struct{}

func (s *AddAssignImm) Accept(v StmtVisitor) error { return v.VisitAddAssignImm(s) }
func (s *AddAssignReg) Accept(v StmtVisitor) error { return v.VisitAddAssignReg(s) }
func (s *AddImm) Accept(v StmtVisitor) error       { return v.VisitAddImm(s) }
func (s *AddReg) Accept(v StmtVisitor) error       { return v.VisitAddReg(s) }
func (s *AndImm) Accept(v StmtVisitor) error       { return v.VisitAndImm(s) }
func (s *AndReg) Accept(v StmtVisitor) error       { return v.VisitAndReg(s) }
func (s *CmpImm) Accept(v StmtVisitor) error       { return v.VisitCmpImm(s) }
func (s *CmpReg) Accept(v StmtVisitor) error       { return v.VisitCmpReg(s) }
func (s *TestImm) Accept(v StmtVisitor) error      { return v.VisitTestImm(s) }
func (s *TestReg) Accept(v StmtVisitor) error      { return v.VisitTestReg(s) }
func (s *Goto) Accept(v StmtVisitor) error         { return v.VisitGoto(s) }
func (s *GotoCond) Accept(v StmtVisitor) error     { return v.VisitGotoCond(s) }
func (s *Label) Accept(v StmtVisitor) error        { return v.VisitLabel(s) }
func (s *Load) Accept(v StmtVisitor) error         { return v.VisitLoad(s) }
func (s *LoadAddr) Accept(v StmtVisitor) error     { return v.VisitLoadAddr(s) }
func (s *LoadReg) Accept(v StmtVisitor) error      { return v.VisitLoadReg(s) }
func (s *LoadOffset) Accept(v StmtVisitor) error   { return v.VisitLoadOffset(s) }
func (s *Store) Accept(v StmtVisitor) error        { return v.VisitStore(s) }
func (s *StoreReg) Accept(v StmtVisitor) error     { return v.VisitStoreReg(s) }
func (s *StoreOffset) Accept(v StmtVisitor) error  { return v.VisitStoreOffset(s) }
func (s *Set) Accept(v StmtVisitor) error          { return v.VisitSet(s) }
func (s *LShift) Accept(v StmtVisitor) error       { return v.VisitLShift(s) }
func (s *Call) Accept(v StmtVisitor) error         { return v.VisitCall(s) }
func (s *Nop) Accept(v StmtVisitor) error          { return v.VisitNop(s) }
func (s *Local) Accept(v StmtVisitor) error        { return v.VisitLocal(s) }
func (s *Return) Accept(v StmtVisitor) error       { return v.VisitReturn(s) }
