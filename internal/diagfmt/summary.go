package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"fstump/internal/asm"
)

// Utilisation thresholds for the summary colour, in percent.
const (
	warnUtilization = 75.0
	fullUtilization = 100.0
)

// Summary печатает строку "<file>: N instructions (P% of C)". Зелёный до
// 75%, жёлтый до 100%, красный при переполнении.
func Summary(w io.Writer, file string, stats asm.Stats, useColor bool) error {
	c := color.New(color.FgGreen)
	switch u := stats.Utilization(); {
	case u > fullUtilization:
		c = color.New(color.FgRed, color.Bold)
	case u >= warnUtilization:
		c = color.New(color.FgYellow)
	}
	if useColor {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	line := fmt.Sprintf("%d instructions (%.1f%% of %d)", stats.Instructions, stats.Utilization(), stats.Capacity)
	if file != "" {
		line = file + ": " + line
	}
	_, err := fmt.Fprintln(w, c.Sprint(line))
	return err
}
