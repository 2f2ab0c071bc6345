package codegen

import (
	"strconv"
	"strings"
)

// Label families. Source names land in disjoint namespaces so a global, a
// function and a user label may share a name.
const (
	globalPrefix  = "GLOBAL_"
	funcPrefix    = "FUNC_"
	labelPrefix   = "LABEL_"
	autogenPrefix = "autogen_"
)

// Fixed labels of the bootstrap and epilogue.
const (
	exitLabel       = "program_exit"
	stackPtrLabel   = "stack_start_ptr"
	stackStartLabel = "stack_start"
)

func globalLabel(name string) string { return globalPrefix + name }

func funcLabel(name string) string { return funcPrefix + name }

// userLabel scopes a source label to its function. A function name with an
// underscore is length-prefixed: LABEL_a_b_c and LABEL_3_a_b_c stay apart,
// and an identifier never starts with a digit.
func userLabel(fn, name string) string {
	if !strings.Contains(fn, "_") {
		return labelPrefix + fn + "_" + name
	}
	return labelPrefix + strconv.Itoa(len(fn)) + "_" + fn + "_" + name
}

// Labels hands out compiler-generated labels. The counter is global to one
// compilation, never per function.
type Labels struct {
	next int
}

// Next returns a fresh autogen label.
func (l *Labels) Next() string {
	name := autogenPrefix + strconv.Itoa(l.next)
	l.next++
	return name
}

// Issued returns how many labels were handed out.
func (l *Labels) Issued() int { return l.next }
