// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package grove4ch

import (
	"fmt"
	"time"
)

// Relay is an addressable view over a single channel of a Dev. It
// holds no state of its own; reading it always consults the Dev's
// cached mask. The Dev must outlive every Relay created from it.
type Relay struct {
	dev     *Dev
	channel uint8
}

// Relay returns a handle for a single channel. If initiallyOn, the
// channel is energized before the handle is returned.
func (d *Dev) Relay(channel uint8, initiallyOn bool) (*Relay, error) {
	if !isValidChannel(channel) {
		return nil, ErrInvalidChannel
	}
	r := &Relay{dev: d, channel: channel}
	if initiallyOn {
		if err := r.On(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// On energizes the relay.
func (r *Relay) On() error {
	return r.dev.On(r.channel)
}

// Off de-energizes the relay.
func (r *Relay) Off() error {
	return r.dev.Off(r.channel)
}

// Toggle flips the relay.
func (r *Relay) Toggle() error {
	return r.dev.Toggle(r.channel)
}

// Cycle energizes the relay, waits for the given duration and releases
// it again. The release runs on every exit path, so an interrupted
// wait never leaves the relay energized. A zero duration energizes and
// releases back to back.
func (r *Relay) Cycle(d time.Duration) (err error) {
	if d < 0 {
		return fmt.Errorf("grove4ch: negative cycle duration %s", d)
	}
	if err = r.On(); err != nil {
		return err
	}
	defer func() {
		if offErr := r.Off(); err == nil {
			err = offErr
		}
	}()
	time.Sleep(d)
	return nil
}

// State returns the relay's state from the board's cached mask.
func (r *Relay) State() State {
	if r.dev.mask&channelBit(r.channel) != 0 {
		return StateOn
	}
	return StateOff
}

// Channel returns the channel id this relay drives.
func (r *Relay) Channel() uint8 {
	return r.channel
}

func (r *Relay) String() string {
	return fmt.Sprintf("relay %d is %s", r.channel, r.State())
}
