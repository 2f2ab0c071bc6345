// Package progfile reads and writes the interchange form of a structured
// program: TOML for hand-written programs, MessagePack for generated ones.
// Both formats share one schema.
package progfile

import (
	"fmt"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
)

// File is the document root.
type File struct {
	Elements []Element `toml:"element" msgpack:"element"`
}

// Element is a global or a function. Kind selects which fields apply.
type Element struct {
	Kind   string   `toml:"kind" msgpack:"kind"`
	Name   string   `toml:"name" msgpack:"name"`
	Value  Lit      `toml:"value,omitempty" msgpack:"value,omitempty"`
	Values []Lit    `toml:"values,omitempty" msgpack:"values,omitempty"`
	Size   Lit      `toml:"size,omitempty" msgpack:"size,omitempty"`
	Text   string   `toml:"text,omitempty" msgpack:"text,omitempty"`
	Params []string `toml:"params,omitempty" msgpack:"params,omitempty"`
	Body   []Stmt   `toml:"body,omitempty" msgpack:"body,omitempty"`
}

// Stmt is one statement. Op selects which fields apply.
type Stmt struct {
	Op     string `toml:"op" msgpack:"op"`
	Dest   string `toml:"dest,omitempty" msgpack:"dest,omitempty"`
	Src    string `toml:"src,omitempty" msgpack:"src,omitempty"`
	Left   string `toml:"left,omitempty" msgpack:"left,omitempty"`
	Right  string `toml:"right,omitempty" msgpack:"right,omitempty"`
	Base   string `toml:"base,omitempty" msgpack:"base,omitempty"`
	Offset string `toml:"offset,omitempty" msgpack:"offset,omitempty"`
	Addr   string `toml:"addr,omitempty" msgpack:"addr,omitempty"`
	Name   string `toml:"name,omitempty" msgpack:"name,omitempty"`
	Label  string `toml:"label,omitempty" msgpack:"label,omitempty"`
	Cond   string `toml:"cond,omitempty" msgpack:"cond,omitempty"`
	Func   string `toml:"func,omitempty" msgpack:"func,omitempty"`
	Out    string `toml:"out,omitempty" msgpack:"out,omitempty"`
	Value  Lit    `toml:"value,omitempty" msgpack:"value,omitempty"`
	Amount Lit    `toml:"amount,omitempty" msgpack:"amount,omitempty"`
	Args   []Arg  `toml:"args,omitempty" msgpack:"args,omitempty"`
}

// Arg is a call argument; exactly one field is set.
type Arg struct {
	Ident string `toml:"ident,omitempty" msgpack:"ident,omitempty"`
	Lit   Lit    `toml:"lit,omitempty" msgpack:"lit,omitempty"`
	Reg   string `toml:"reg,omitempty" msgpack:"reg,omitempty"`
}

// Lit is a literal token as written in source ("0x1F", "'a'", "-3").
// Decoders also accept a bare integer and keep its decimal text.
type Lit string

// UnmarshalTOML implements toml.Unmarshaler.
func (l *Lit) UnmarshalTOML(v any) error {
	text, err := litText(v)
	if err != nil {
		return err
	}
	*l = Lit(text)
	return nil
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (l *Lit) DecodeMsgpack(dec *msgpack.Decoder) error {
	v, err := dec.DecodeInterfaceLoose()
	if err != nil {
		return err
	}
	text, err := litText(v)
	if err != nil {
		return err
	}
	*l = Lit(text)
	return nil
}

func litText(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("literal must be a string or an integer, got %T", v)
	}
}
