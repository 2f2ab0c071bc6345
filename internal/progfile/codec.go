package progfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"

	"fstump/internal/ast"
	"fstump/internal/diag"
)

// Format is an interchange encoding.
type Format uint8

const (
	FormatTOML Format = iota + 1
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatMsgpack:
		return "msgpack"
	default:
		return "unknown"
	}
}

// FormatFor picks the format from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".mp", ".msgpack":
		return FormatMsgpack, nil
	default:
		return 0, diag.Errorf(diag.BadInput, "cannot tell the format of %s (expected .toml, .mp or .msgpack)", path)
	}
}

// Decode parses data. Unknown keys are rejected in both formats.
func Decode(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, decodeError(err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return nil, diag.Errorf(diag.BadInput, "unknown keys: %s", strings.Join(keys, ", "))
		}
	case FormatMsgpack:
		dec := msgpack.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, decodeError(err)
		}
	default:
		return nil, diag.Errorf(diag.BadInput, "unsupported format %s", format)
	}
	return &f, nil
}

func decodeError(err error) error {
	var perr toml.ParseError
	if errors.As(err, &perr) {
		return diag.Errorf(diag.BadInput, "line %d: %s", perr.Position.Line, perr.Message)
	}
	return diag.Errorf(diag.BadInput, "%v", err)
}

// Encode serialises f.
func Encode(f *File, format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(f); err != nil {
			return nil, err
		}
	case FormatMsgpack:
		enc := msgpack.NewEncoder(&buf)
		enc.SetOmitEmpty(true)
		if err := enc.Encode(f); err != nil {
			return nil, err
		}
	default:
		return nil, diag.Errorf(diag.BadInput, "unsupported format %s", format)
	}
	return buf.Bytes(), nil
}

// ReadFile decodes the document at path in the format its extension names.
func ReadFile(path string) (*File, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, diag.Errorf(diag.IOError, "read %s: %v", path, err)
	}
	f, err := Decode(data, format)
	if err != nil {
		return nil, diag.Locate(err, diag.Location{File: path})
	}
	return f, nil
}

// Load reads path and converts it to a program.
func Load(path string) (*ast.Program, error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	prog, err := f.Program()
	if err != nil {
		return nil, diag.Locate(err, diag.Location{File: path})
	}
	return prog, nil
}
