package ui

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestPrintTable(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	var buf bytes.Buffer

	PrintTable([][]string{
		{"#", "TRACK", "START"},
		{"1", "01. Band - Intro", "10.000000"},
	}, &buf)

	out := buf.String()

	assert.Contains(t, out, "TRACK")
	assert.Contains(t, out, "01. Band - Intro")
	assert.Contains(t, out, "10.000000")
}
