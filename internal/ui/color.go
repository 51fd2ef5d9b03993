package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

var DarkTheme bool

func Green(a any) string {
	if DarkTheme {
		return pterm.LightGreen(a)
	}

	return pterm.Green(a)
}

func Cyan(a any) string {
	if DarkTheme {
		return pterm.LightCyan(a)
	}

	return pterm.Cyan(a)
}

func Red(a any) string {
	if DarkTheme {
		return pterm.LightRed(a)
	}

	return pterm.Red(a)
}

func Yellow(a any) string {
	if DarkTheme {
		return pterm.LightYellow(a)
	}

	return pterm.Yellow(a)
}

func Highlight(a any) string {
	if DarkTheme {
		return pterm.LightWhite(a)
	}

	return pterm.Black(a)
}

// PendingColor is used for envelope halves whose track is not cut yet.
func PendingColor() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#0B6E99", Dark: "#12EAEA"}
}

// FinishedColor is used for envelope halves whose track has been cut.
func FinishedColor() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#B0DB43"}
}

// MarkerColor is used for the cut line and the playback marker.
func MarkerColor() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#B00020", Dark: "#F25F5C"}
}
