package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"fstump/internal/diag"
)

type palette struct {
	err, warn, info, loc, code *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:  mk(color.FgRed, color.Bold),
		warn: mk(color.FgYellow, color.Bold),
		info: mk(color.FgCyan),
		loc:  mk(color.Bold),
		code: mk(color.FgHiBlack),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty печатает диагностики в человекочитаемом виде. Ожидается, что
// bag.Sort() уже вызван. Формат строки:
//
//	<file>: <func>#<stmt>: <SEV> <CODE>: <message>
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if err := prettyOne(w, p, d, opts); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, p palette, d diag.Diagnostic, opts PrettyOpts) error {
	loc := d.Primary
	loc.File = DisplayPath(loc.File, opts.PathMode, opts.BaseDir)
	prefix := ""
	if !loc.IsZero() {
		prefix = p.loc.Sprint(loc.String()) + ": "
	}
	sev := p.severity(d.Severity).Sprint(d.Severity.String())
	if _, err := fmt.Fprintf(w, "%s%s %s: %s\n", prefix, sev, p.code.Sprint(d.Code.ID()), d.Message); err != nil {
		return err
	}
	if !opts.ShowNotes {
		return nil
	}
	for _, n := range d.Notes {
		where := ""
		if !n.Where.IsZero() {
			nl := n.Where
			nl.File = DisplayPath(nl.File, opts.PathMode, opts.BaseDir)
			where = nl.String() + ": "
		}
		if _, err := fmt.Fprintf(w, "  note: %s%s\n", where, n.Msg); err != nil {
			return err
		}
	}
	return nil
}
