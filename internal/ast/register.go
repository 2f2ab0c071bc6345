package ast

import (
	"fmt"
	"strings"
)

// Register is a register as written in source.
type Register uint8

const (
	RegNone Register = iota
	RegZero
	RegR1
	RegR2
	RegR3
	RegR4
	RegLR
	RegSF
	RegPC
)

var registerNames = [...]string{
	RegNone: "",
	RegZero: "zero",
	RegR1:   "r1",
	RegR2:   "r2",
	RegR3:   "r3",
	RegR4:   "r4",
	RegLR:   "lr",
	RegSF:   "sf",
	RegPC:   "pc",
}

func (r Register) String() string {
	if int(r) < len(registerNames) {
		return registerNames[r]
	}
	return fmt.Sprintf("reg(%d)", uint8(r))
}

// Valid reports whether r names a real register.
func (r Register) Valid() bool {
	return r > RegNone && r <= RegPC
}

// ParseRegister maps source register syntax to a Register.
func ParseRegister(name string) (Register, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range registerNames {
		if s != "" && s == n {
			return Register(i), nil
		}
	}
	return RegNone, fmt.Errorf("unknown register %q (expected zero|r1|r2|r3|r4|lr|sf|pc)", name)
}
