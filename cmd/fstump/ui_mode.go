package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// uiMode выбирает между TUI-прогрессом и построчным выводом build.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

// uiModeFlag reads --ui from the build command.
func uiModeFlag(cmd *cobra.Command) (uiMode, error) {
	value, err := cmd.Flags().GetString("ui")
	if err != nil {
		return "", err
	}
	return readUIMode(value)
}

func readUIMode(value string) (uiMode, error) {
	switch mode := uiMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case "":
		return uiModeAuto, nil
	case uiModeAuto, uiModeOn, uiModeOff:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// useTUI decides for one build run. --quiet always wins; in auto mode a
// redirected stdout falls back to plain lines.
func (m uiMode) useTUI(cmd *cobra.Command, quiet bool) bool {
	if quiet {
		return false
	}
	switch m {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(stdoutFile(cmd))
	}
}
