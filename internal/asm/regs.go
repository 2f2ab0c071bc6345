package asm

import "fmt"

// Reg is a machine register of the target.
type Reg uint8

const (
	R0 Reg = iota // always zero
	R1            // general purpose
	R2
	R3
	R4
	R5 // link return
	R6 // stack frame
	R7 // program counter
)

// Role aliases.
const (
	Zero = R0
	G1   = R1
	G2   = R2
	G3   = R3
	G4   = R4
	LR   = R5
	SF   = R6
	PC   = R7
)

// GeneralPurpose lists the user registers in spill-slot order.
var GeneralPurpose = [...]Reg{G1, G2, G3, G4}

func (r Reg) String() string {
	if r > R7 {
		return fmt.Sprintf("r?%d", uint8(r))
	}
	return fmt.Sprintf("r%d", uint8(r))
}

// ShiftOp is the optional operand shift suffix.
type ShiftOp uint8

const (
	ShiftNone ShiftOp = iota
	ShiftASR          // copy first sign bit
	ShiftROR          // bit 0 moves to bit 15
	ShiftRRC          // carry moves to bit 15
)

func (s ShiftOp) suffix() string {
	switch s {
	case ShiftASR:
		return ", asr"
	case ShiftROR:
		return ", ror"
	case ShiftRRC:
		return ", rrc"
	default:
		return ""
	}
}

// Cond is a branch condition suffix; conditional branches from source pass
// their condition text through verbatim.
type Cond string

const (
	Always       Cond = "al"
	Never        Cond = "nv"
	Equal        Cond = "eq"
	NotEqual     Cond = "ne"
	CarrySet     Cond = "cs"
	CarryClear   Cond = "cc"
	Minus        Cond = "mi"
	Plus         Cond = "pl"
	OverflowSet  Cond = "vs"
	OverflowClr  Cond = "vc"
	Higher       Cond = "hi"
	LowerSame    Cond = "ls"
	GreaterEqual Cond = "ge"
	Less         Cond = "lt"
	Greater      Cond = "gt"
	LessEqual    Cond = "le"
)
