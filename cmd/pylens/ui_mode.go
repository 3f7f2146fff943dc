package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode controls the interactive progress display for directory runs.
type uiMode int

const (
	uiModeAuto uiMode = iota
	uiModeOn
	uiModeOff
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	}
	return uiModeOff, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// shouldUseTUI decides whether to render the progress display. Auto mode
// requires a terminal on stdout and stays off under CI.
func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	}
	if os.Getenv("CI") != "" {
		return false
	}
	return isTerminal(os.Stdout)
}
