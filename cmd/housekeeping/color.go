package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
)

var ErrColorMode = errors.New("unknown color mode")

var (
	errorColor  = color.New(color.FgRed, color.Bold)
	actionColor = color.New(color.FgCyan, color.Bold)
	headerColor = color.New(color.Bold)
)

// setColorMode applies --color. "auto" keeps fatih/color's terminal
// detection.
func setColorMode(mode string) error {
	switch mode {
	case "auto":
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("%w %q (want auto|on|off)", ErrColorMode, mode)
	}

	return nil
}
