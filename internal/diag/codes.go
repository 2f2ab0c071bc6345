package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Кодогенерация: фатальные ошибки
	DuplicateDefinition  Code = 1001
	UnknownIdentifier    Code = 1002
	ArityMismatch        Code = 1003
	UnsupportedConstant  Code = 1004
	UnimplementedFeature Code = 1005
	MalformedLiteral     Code = 1006

	// Входные данные и I/O
	BadInput Code = 1101
	IOError  Code = 1102

	// Предупреждения кодогенерации
	CapacityExceeded Code = 2001
	EntryNotFound    Code = 2002

	// Observability
	ObsSummary Code = 6000
	ObsTimings Code = 6001
)

var (
	codeTitle = map[Code]string{
		UnknownCode:          "Unknown error",
		DuplicateDefinition:  "Duplicate definition",
		UnknownIdentifier:    "Unknown identifier",
		ArityMismatch:        "Call arity mismatch",
		UnsupportedConstant:  "Unsupported constant",
		UnimplementedFeature: "Feature not implemented",
		MalformedLiteral:     "Malformed literal",
		BadInput:             "Malformed program input",
		IOError:              "I/O error",
		CapacityExceeded:     "Instruction memory capacity exceeded",
		EntryNotFound:        "Entry function not declared",
		ObsSummary:           "Compilation summary",
		ObsTimings:           "Pipeline timings",
	}
)

// ID returns the stable identifier, e.g. "E1003" or "W2001".
func (c Code) ID() string {
	return fmt.Sprintf("%c%04d", c.Severity().Letter(), uint16(c))
}

func (c Code) Title() string {
	if title, ok := codeTitle[c]; ok {
		return title
	}
	return codeTitle[UnknownCode]
}

func (c Code) String() string {
	return c.ID()
}
