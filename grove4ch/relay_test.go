// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package grove4ch

import (
	"errors"
	"testing"
	"time"

	"periph.io/x/conn/v3/i2c/i2ctest"
)

func TestRelayRejectsInvalidChannel(t *testing.T) {
	bus := &i2ctest.Record{}
	dev, _ := New(bus, DefaultAddress)

	for _, channel := range []uint8{0, 5} {
		if _, err := dev.Relay(channel, false); !errors.Is(err, ErrInvalidChannel) {
			t.Fatal("Relay should return ErrInvalidChannel, got ", err)
		}
	}
}

func TestRelayInitiallyOn(t *testing.T) {
	bus := &i2ctest.Record{}
	dev, _ := New(bus, DefaultAddress)

	r, err := dev.Relay(2, true)
	if err != nil {
		t.Fatal(err)
	}
	if r.State() != StateOn {
		t.Fatal("relay should start on, got ", r.State())
	}
	checkWrite(t, bus.Ops, 1, []byte{relayRegister, 0b0010})
}

func TestRelayDelegation(t *testing.T) {
	bus := &i2ctest.Record{}
	dev, _ := New(bus, DefaultAddress)

	r, err := dev.Relay(3, false)
	if err != nil {
		t.Fatal(err)
	}
	if r.Channel() != 3 {
		t.Fatal("expected channel 3, got ", r.Channel())
	}

	if err := r.On(); err != nil {
		t.Fatal(err)
	}
	if dev.Mask() != 0b0100 {
		t.Fatalf("expected mask 0100, got %04b", dev.Mask())
	}
	if r.State() != StateOn {
		t.Fatal("expected on, got ", r.State())
	}

	if err := r.Toggle(); err != nil {
		t.Fatal(err)
	}
	if r.State() != StateOff {
		t.Fatal("expected off after toggle, got ", r.State())
	}

	if err := r.Off(); err != nil {
		t.Fatal(err)
	}
	if dev.Mask() != 0 {
		t.Fatalf("expected mask 0000, got %04b", dev.Mask())
	}
}

func TestRelayStateTracksBoard(t *testing.T) {
	bus := &i2ctest.Record{}
	dev, _ := New(bus, DefaultAddress)

	r, err := dev.Relay(4, false)
	if err != nil {
		t.Fatal(err)
	}

	// Mask changes made directly on the board are visible through the
	// handle; it holds no state of its own.
	if err := dev.SetMask(0b1000); err != nil {
		t.Fatal(err)
	}
	if r.State() != StateOn {
		t.Fatal("expected on, got ", r.State())
	}
	if err := dev.SetMask(0b0111); err != nil {
		t.Fatal(err)
	}
	if r.State() != StateOff {
		t.Fatal("expected off, got ", r.State())
	}
}

func TestRelayCycleZeroDuration(t *testing.T) {
	bus := &i2ctest.Record{}
	dev, _ := New(bus, DefaultAddress)

	r, err := dev.Relay(4, false)
	if err != nil {
		t.Fatal(err)
	}
	before := len(bus.Ops)

	if err := r.Cycle(0); err != nil {
		t.Fatal(err)
	}
	if r.State() != StateOff {
		t.Fatal("relay should end released, got ", r.State())
	}
	// Exactly two writes: energize, release.
	if got := len(bus.Ops) - before; got != 2 {
		t.Fatal("expected 2 writes, got ", got)
	}
	checkWrite(t, bus.Ops, before, []byte{relayRegister, 0b1000})
	checkWrite(t, bus.Ops, before+1, []byte{relayRegister, 0b0000})
}

func TestRelayCycleNegativeDuration(t *testing.T) {
	bus := &i2ctest.Record{}
	dev, _ := New(bus, DefaultAddress)

	r, err := dev.Relay(1, false)
	if err != nil {
		t.Fatal(err)
	}
	before := len(bus.Ops)

	if err := r.Cycle(-time.Second); err == nil {
		t.Fatal("negative duration should be rejected")
	}
	if len(bus.Ops) != before {
		t.Fatal("rejected cycle must not reach the bus")
	}
}

func TestRelayCycleShortDuration(t *testing.T) {
	bus := &i2ctest.Record{}
	dev, _ := New(bus, DefaultAddress)

	r, err := dev.Relay(2, false)
	if err != nil {
		t.Fatal(err)
	}

	if err := r.Cycle(time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if r.State() != StateOff {
		t.Fatal("relay should end released, got ", r.State())
	}
}

func TestRelayString(t *testing.T) {
	bus := &i2ctest.Record{}
	dev, _ := New(bus, DefaultAddress)

	r, err := dev.Relay(2, true)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.String(); got != "relay 2 is on" {
		t.Fatal("unexpected string: ", got)
	}
	if err := r.Off(); err != nil {
		t.Fatal(err)
	}
	if got := r.String(); got != "relay 2 is off" {
		t.Fatal("unexpected string: ", got)
	}
}
