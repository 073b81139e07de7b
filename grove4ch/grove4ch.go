// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package grove4ch

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

// DefaultAddress is the factory I²C address of the board. The Seeed
// firmware allows changing it, so New still takes an address.
const DefaultAddress uint16 = 0x11

// relayRegister holds the 4-bit channel mask. Bit n-1 carries channel
// n, 1 is energized.
const relayRegister byte = 0x10

// maskAll covers the four channel bits.
const maskAll byte = 0x0F

// State is the on/off state of a single channel.
type State byte

const (
	StateOff State = 0x00
	StateOn  State = 0x01
)

func (s State) String() string {
	if s == StateOff {
		return "off"
	}
	return "on"
}

// Opts holds the configuration options for the device.
type Opts struct {
	// InitialMask is written to the relay register during NewWithOpts.
	// Must fit in the low 4 bits. Default all channels off.
	InitialMask byte
	// Persistent keeps the channel states on Close instead of
	// de-energizing everything.
	Persistent bool
}

// Dev drives a Grove 4-Channel SPDT Relay board.
//
// The 4-bit channel mask is mirrored in memory and only updated after
// the corresponding register write succeeded, so Mask always reflects
// the last value the hardware accepted.
//
// Dev is not safe for concurrent use. Callers sharing one board across
// goroutines must serialize access themselves.
type Dev struct {
	d          i2c.Dev
	mask       byte
	persistent bool
}

// New opens a relay board on the bus with all channels off.
func New(bus i2c.Bus, addr uint16) (*Dev, error) {
	return NewWithOpts(bus, addr, nil)
}

// NewWithOpts opens a relay board on the bus. The Opts can be nil. The
// initial mask is written to the hardware before NewWithOpts returns.
func NewWithOpts(bus i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}
	if opts.InitialMask > maskAll {
		return nil, ErrInvalidMask
	}
	d := &Dev{
		d:          i2c.Dev{Bus: bus, Addr: addr},
		persistent: opts.Persistent,
	}
	if err := d.SetMask(opts.InitialMask); err != nil {
		return nil, err
	}
	return d, nil
}

// SetMask writes the raw 4-bit channel mask to the relay register in
// one bus transaction. On failure the cached mask keeps its previous
// value.
func (d *Dev) SetMask(mask byte) error {
	if mask > maskAll {
		return ErrInvalidMask
	}
	if err := d.d.Tx([]byte{relayRegister, mask}, nil); err != nil {
		return &BusWriteError{Addr: d.d.Addr, Reg: relayRegister, Mask: mask, Err: err}
	}
	d.mask = mask
	return nil
}

// Mask returns the cached channel mask. No bus access is performed.
func (d *Dev) Mask() byte {
	return d.mask
}

// On energizes a channel.
func (d *Dev) On(channel uint8) error {
	if !isValidChannel(channel) {
		return ErrInvalidChannel
	}
	return d.SetMask(d.mask | channelBit(channel))
}

// Off de-energizes a channel.
func (d *Dev) Off(channel uint8) error {
	if !isValidChannel(channel) {
		return ErrInvalidChannel
	}
	return d.SetMask(d.mask &^ channelBit(channel))
}

// Toggle flips a channel.
func (d *Dev) Toggle(channel uint8) error {
	if !isValidChannel(channel) {
		return ErrInvalidChannel
	}
	return d.SetMask(d.mask ^ channelBit(channel))
}

// State returns the cached state of a channel. No bus access is
// performed.
func (d *Dev) State(channel uint8) (State, error) {
	if !isValidChannel(channel) {
		return 0, ErrInvalidChannel
	}
	if d.mask&channelBit(channel) != 0 {
		return StateOn, nil
	}
	return StateOff, nil
}

// AvailableChannels returns the channel ids present on the board.
func (d *Dev) AvailableChannels() []uint8 {
	return []uint8{1, 2, 3, 4}
}

// Halt de-energizes every channel, one register write per channel in
// ascending order. A failing channel does not stop the remaining ones;
// all failures are reported together. Implements conn.Resource.
func (d *Dev) Halt() error {
	var errs []error
	for _, channel := range d.AvailableChannels() {
		if err := d.Off(channel); err != nil {
			errs = append(errs, fmt.Errorf("channel %d: %w", channel, err))
		}
	}
	return errors.Join(errs...)
}

// Close releases the board. Unless the device was opened with
// Opts.Persistent, every channel is de-energized first.
func (d *Dev) Close() error {
	if d.persistent {
		return nil
	}
	return d.Halt()
}

func (d *Dev) String() string {
	return fmt.Sprintf("Grove4CH{%s}", &d.d)
}

func isValidChannel(channel uint8) bool {
	return channel >= 1 && channel <= 4
}

func channelBit(channel uint8) byte {
	return 1 << (channel - 1)
}

var _ conn.Resource = &Dev{}
