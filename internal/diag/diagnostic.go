package diag

import (
	"fmt"
	"strings"
)

// Location points at a statement of the structured program.
// Stmt is 1-based; zero means the location is the function (or file) itself.
type Location struct {
	File string
	Func string
	Stmt int
}

func (l Location) IsZero() bool {
	return l.File == "" && l.Func == "" && l.Stmt == 0
}

func (l Location) String() string {
	var b strings.Builder
	b.WriteString(l.File)
	if l.Func != "" {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(l.Func)
		if l.Stmt > 0 {
			fmt.Fprintf(&b, "#%d", l.Stmt)
		}
	}
	return b.String()
}

type Note struct {
	Where Location
	Msg   string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  Location
	Notes    []Note
}

func New(sev Severity, code Code, primary Location, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary Location, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(where Location, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Where: where, Msg: msg})
	return d
}
