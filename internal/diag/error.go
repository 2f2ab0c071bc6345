package diag

import (
	"errors"
	"fmt"
)

// Error is a fatal compilation condition. Phases return it as a plain error;
// the driver turns it into a Diagnostic.
type Error struct {
	Code  Code
	Msg   string
	Where Location
}

// Errorf builds an *Error without a location.
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Where.IsZero() {
		return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Where, e.Code.ID(), e.Msg)
}

// At returns a copy of e located at where. Fields already set on e win, so an
// inner phase can pin the statement before the outer one adds the file.
func (e *Error) At(where Location) *Error {
	cp := *e
	if cp.Where.File == "" {
		cp.Where.File = where.File
	}
	if cp.Where.Func == "" {
		cp.Where.Func = where.Func
	}
	if cp.Where.Stmt == 0 {
		cp.Where.Stmt = where.Stmt
	}
	return &cp
}

// Diagnostic converts the error into a SevError diagnostic.
func (e *Error) Diagnostic() Diagnostic {
	return NewError(e.Code, e.Where, e.Msg)
}

// CodeOf returns the code of the first *Error in err's chain, or UnknownCode.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return UnknownCode
}

// Locate attaches where to the *Error inside err, if any; other errors pass
// through unchanged.
func Locate(err error, where Location) error {
	var de *Error
	if err == nil || !errors.As(err, &de) {
		return err
	}
	return de.At(where)
}
