// Package testkit holds invariant checks shared by code generator tests and
// fuzz harnesses.
package testkit

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Immediate operand range of the target.
const (
	minImm = -16
	maxImm = 15
)

var mnemonics = map[string]bool{
	"add": true, "adc": true, "sub": true, "sbc": true, "and": true, "or": true,
	"mov": true, "cmp": true, "tst": true, "neg": true,
	"ld": true, "st": true, "nop": true, "DEFW": true,
}

// флаги статуса бывают только у ALU и mov
var flagForms = map[string]bool{
	"add": true, "adc": true, "sub": true, "sbc": true, "and": true, "or": true, "mov": true,
}

var conds = map[string]bool{
	"al": true, "nv": true, "eq": true, "ne": true, "cs": true, "cc": true, "mi": true, "pl": true,
	"vs": true, "vc": true, "hi": true, "ls": true, "ge": true, "lt": true, "gt": true, "le": true,
}

var shifts = map[string]bool{"asr": true, "ror": true, "rrc": true}

// Listing is what CheckListing learned about an assembly listing.
type Listing struct {
	Org          string
	Labels       map[string]int // label -> defining line (1-based)
	Refs         map[string]int // label -> first referencing line
	Instructions int
}

// Undefined returns referenced labels that no line defines, sorted.
func (l *Listing) Undefined() []string {
	var out []string
	for name := range l.Refs {
		if _, ok := l.Labels[name]; !ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func isMnemonic(tok string) bool {
	if mnemonics[tok] {
		return true
	}
	if base, ok := strings.CutSuffix(tok, "s"); ok && flagForms[base] {
		return true
	}
	return len(tok) == 3 && tok[0] == 'b' && conds[tok[1:]]
}

func isRegister(tok string) bool {
	return len(tok) == 2 && tok[0] == 'r' && tok[1] >= '0' && tok[1] <= '7'
}

// CheckListing parses generated assembly and verifies its structural
// invariants:
//  1. a single org line precedes every instruction
//  2. each label is defined once, on a line that carries an instruction
//  3. no line carries two labels
//  4. numeric immediates fit the target's 5-bit signed range
//
// Undefined label references are reported through Listing.Undefined, not as
// errors, since a missing entry function is only a warning.
func CheckListing(text string) (*Listing, error) {
	l := &Listing{Labels: make(map[string]int), Refs: make(map[string]int)}
	var errs []error
	fail := func(line int, format string, args ...any) {
		errs = append(errs, fmt.Errorf("line %d: %s", line, fmt.Sprintf(format, args...)))
	}
	orgSeen := false

	for i, raw := range strings.Split(text, "\n") {
		line := i + 1
		trimmed := strings.TrimSpace(raw)
		switch {
		case trimmed == "", strings.HasPrefix(trimmed, ";"):
			continue
		case strings.HasPrefix(trimmed, "org "):
			if orgSeen {
				fail(line, "second org")
			}
			if l.Instructions > 0 {
				fail(line, "org after %d instructions", l.Instructions)
			}
			orgSeen = true
			l.Org = strings.TrimSpace(strings.TrimPrefix(trimmed, "org "))
			continue
		}

		toks := strings.Fields(strings.ReplaceAll(trimmed, ",", " "))
		if !isMnemonic(toks[0]) {
			name := toks[0]
			if prev, dup := l.Labels[name]; dup {
				fail(line, "label %s already defined on line %d", name, prev)
			} else {
				l.Labels[name] = line
			}
			toks = toks[1:]
			if len(toks) == 0 {
				fail(line, "label %s labels nothing", name)
				continue
			}
			if !isMnemonic(toks[0]) {
				fail(line, "labels %s and %s share a line", name, toks[0])
				continue
			}
		}
		if !orgSeen {
			fail(line, "instruction before org")
			orgSeen = true
		}
		l.Instructions++

		for _, op := range toks[1:] {
			op = strings.Trim(op, "[]")
			imm, isImm := strings.CutPrefix(op, "#")
			if isImm {
				op = imm
			}
			if v, err := strconv.ParseInt(op, 10, 64); err == nil {
				if isImm && (v < minImm || v > maxImm) {
					fail(line, "immediate #%d outside [%d, %d]", v, minImm, maxImm)
				}
				continue
			}
			if isRegister(op) || shifts[op] || op == "" {
				continue
			}
			if _, seen := l.Refs[op]; !seen {
				l.Refs[op] = line
			}
		}
	}
	return l, errors.Join(errs...)
}
