// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package relayscreen renders the channel mask of a relay board to the
// terminal (stdout) using ANSI color codes.
//
// Useful to watch a switching sequence without wiring up the actual
// loads.
package relayscreen

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"
)

// Opts represents the options available for this display.
type Opts struct {
	// Channels is the number of channel indicators. 4 if zero.
	Channels int
	Palette  *ansi256.Palette
	// W overrides the destination. Stdout if nil.
	W io.Writer

	_ struct{}
}

// Dev draws one colored block per relay channel on a single console
// line, refreshed in place.
type Dev struct {
	w        io.Writer
	channels int
	palette  ansi256.Palette

	buf bytes.Buffer
}

var (
	onColor  = color.NRGBA{R: 0x00, G: 0xD0, B: 0x00, A: 0xFF}
	offColor = color.NRGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xFF}
)

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	n := opts.Channels
	if n == 0 {
		n = 4
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Dev{w: w, channels: n, palette: *p}
}

func (d *Dev) String() string {
	return "RelayScreen"
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes and moves off the indicator line.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Show redraws the indicator line for the given channel mask. Bit n-1
// carries channel n, 1 is energized.
func (d *Dev) Show(mask byte) error {
	// This code is designed to minimize the amount of memory allocated
	// per call.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	for i := 0; i < d.channels; i++ {
		c := offColor
		if mask&(1<<uint(i)) != 0 {
			c = onColor
		}
		_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		_, _ = fmt.Fprintf(&d.buf, "\033[0m%d ", i+1)
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ conn.Resource = &Dev{}
var _ fmt.Stringer = &Dev{}
