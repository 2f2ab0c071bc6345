// Package literal decodes number literal tokens of the source language.
package literal

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"

	"fstump/internal/diag"
)

// Kind tags a literal token with the syntax it was written in.
type Kind uint8

const (
	Decimal Kind = iota + 1
	Hex
	Binary
	Char
	Octal
)

func (k Kind) String() string {
	switch k {
	case Decimal:
		return "decimal"
	case Hex:
		return "hex"
	case Binary:
		return "binary"
	case Char:
		return "char"
	case Octal:
		return "octal"
	default:
		return "unknown"
	}
}

// Word bounds: a value fits a target word when it is representable as a
// signed or an unsigned 16-bit integer.
const (
	WordMin = -32768
	WordMax = 65535
)

// Literal is a raw token plus its kind.
type Literal struct {
	Kind Kind
	Text string
}

// Classify infers the kind of a raw literal token.
func Classify(text string) Kind {
	t := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(t, "'"):
		return Char
	case hasPrefixFold(t, "0x"):
		return Hex
	case hasPrefixFold(t, "0b"):
		return Binary
	case hasPrefixFold(t, "0o"):
		return Octal
	case len(t) > 1 && t[0] == '0' && isDigits(t[1:]):
		return Octal
	default:
		return Decimal
	}
}

// FromToken classifies text and wraps it into a Literal.
func FromToken(text string) Literal {
	return Literal{Kind: Classify(text), Text: strings.TrimSpace(text)}
}

// Parse decodes the literal into a full-range signed integer. No width
// truncation is applied here; see Word.
func Parse(lit Literal) (int64, error) {
	switch lit.Kind {
	case Decimal:
		return parseInt(lit.Text, lit.Text, 10)
	case Hex:
		digits, ok := cutPrefixFold(lit.Text, "0x")
		if !ok {
			return 0, diag.Errorf(diag.MalformedLiteral, "hex literal %q lacks 0x prefix", lit.Text)
		}
		return parseInt(lit.Text, digits, 16)
	case Binary:
		if len(lit.Text) < 2 {
			return 0, diag.Errorf(diag.MalformedLiteral, "binary literal %q is too short", lit.Text)
		}
		return parseInt(lit.Text, lit.Text[2:], 2)
	case Char:
		if utf8.RuneCountInString(lit.Text) != 3 {
			return 0, diag.Errorf(diag.MalformedLiteral, "unexpected char value %s", lit.Text)
		}
		first, size := utf8.DecodeRuneInString(lit.Text)
		last, _ := utf8.DecodeLastRuneInString(lit.Text)
		if first != '\'' || last != '\'' {
			return 0, diag.Errorf(diag.MalformedLiteral, "unexpected char value %s", lit.Text)
		}
		r, _ := utf8.DecodeRuneInString(lit.Text[size:])
		return int64(r), nil
	case Octal:
		return 0, diag.Errorf(diag.UnsupportedConstant, "octal literal %s is not supported", lit.Text)
	default:
		return 0, diag.Errorf(diag.MalformedLiteral, "literal %q has no kind", lit.Text)
	}
}

// Word checks that v fits a target data word.
func Word(v int64) (int64, error) {
	if v < 0 {
		if _, err := safecast.Conv[int16](v); err != nil {
			return 0, diag.Errorf(diag.UnsupportedConstant, "value %d does not fit a 16-bit word", v)
		}
		return v, nil
	}
	if _, err := safecast.Conv[uint16](v); err != nil {
		return 0, diag.Errorf(diag.UnsupportedConstant, "value %d does not fit a 16-bit word", v)
	}
	return v, nil
}

func parseInt(token, digits string, base int) (int64, error) {
	if digits == "" {
		return 0, diag.Errorf(diag.MalformedLiteral, "literal %q has no digits", token)
	}
	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, diag.Errorf(diag.UnsupportedConstant, "literal %s overflows", token)
		}
		return 0, diag.Errorf(diag.MalformedLiteral, "literal %q is not a valid %s number", token, baseName(base))
	}
	return v, nil
}

func baseName(base int) string {
	switch base {
	case 2:
		return "binary"
	case 16:
		return "hex"
	default:
		return "decimal"
	}
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if !hasPrefixFold(s, prefix) {
		return s, false
	}
	return s[len(prefix):], true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
