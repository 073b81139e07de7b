// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// grove4ch drives a Grove 4-Channel SPDT Relay board from the command
// line.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/embedded-go/relays/grove4ch"
	"github.com/embedded-go/relays/relayscreen"
)

func mainImpl() error {
	busName := flag.String("bus", "", "I²C bus to use, the first available if empty")
	addr := flag.Uint("addr", uint(grove4ch.DefaultAddress), "I²C address of the board")
	toggle := flag.String("toggle", "", "comma separated channel ids (1-4) to toggle")
	kill := flag.Bool("kill", false, "de-energize every channel and exit")
	demo := flag.Int("demo", 0, "run a demo sequence (1-3)")
	sweep := flag.Bool("sweep", false, "step through all masks while reading the device registers back")
	flag.Parse()
	if flag.NArg() != 0 {
		return fmt.Errorf("unexpected argument: %s", flag.Arg(0))
	}

	if _, err := host.Init(); err != nil {
		return err
	}
	bus, err := i2creg.Open(*busName)
	if err != nil {
		return err
	}
	defer bus.Close()

	switch {
	case *toggle != "":
		return toggleChannels(bus, uint16(*addr), *toggle)
	case *kill:
		dev, err := grove4ch.New(bus, uint16(*addr))
		if err != nil {
			return err
		}
		return dev.Close()
	case *demo != 0:
		return runDemo(bus, uint16(*addr), *demo)
	case *sweep:
		return runSweep(bus, uint16(*addr))
	}
	flag.Usage()
	return nil
}

// toggleChannels flips the listed channels and leaves them that way
// after exit.
func toggleChannels(bus i2c.Bus, addr uint16, list string) error {
	dev, err := grove4ch.NewWithOpts(bus, addr, &grove4ch.Opts{Persistent: true})
	if err != nil {
		return err
	}
	for _, field := range strings.Split(list, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(field), 10, 8)
		if err != nil {
			return fmt.Errorf("bad channel %q: %w", field, err)
		}
		if err := dev.Toggle(uint8(id)); err != nil {
			return err
		}
	}
	return nil
}

func runDemo(bus i2c.Bus, addr uint16, n int) error {
	switch n {
	case 1:
		return demoRandom(bus, addr)
	case 2:
		return demoWalk(bus, addr)
	case 3:
		return demoCycle(bus, addr)
	}
	return fmt.Errorf("unknown demo %d", n)
}

// demoRandom toggles random channels for a while and keeps whatever
// state results.
func demoRandom(bus i2c.Bus, addr uint16) error {
	dev, err := grove4ch.NewWithOpts(bus, addr, &grove4ch.Opts{Persistent: true})
	if err != nil {
		return err
	}
	var relays []*grove4ch.Relay
	for _, channel := range dev.AvailableChannels() {
		r, err := dev.Relay(channel, false)
		if err != nil {
			return err
		}
		relays = append(relays, r)
	}
	for i := 0; i < 100; i++ {
		if err := relays[rand.Intn(len(relays))].Toggle(); err != nil {
			return err
		}
		time.Sleep(50 * time.Millisecond)
	}
	return nil
}

// demoWalk toggles each channel on and off in turn, drawing the mask
// on the terminal.
func demoWalk(bus i2c.Bus, addr uint16) error {
	dev, err := grove4ch.New(bus, addr)
	if err != nil {
		return err
	}
	defer dev.Close()

	screen := relayscreen.New(&relayscreen.Opts{})
	defer screen.Halt()

	for _, channel := range dev.AvailableChannels() {
		for i := 0; i < 2; i++ {
			if err := dev.Toggle(channel); err != nil {
				return err
			}
			if err := screen.Show(dev.Mask()); err != nil {
				return err
			}
			time.Sleep(time.Second)
		}
	}
	return nil
}

// demoCycle pulses channel 1 for a second and reports its state
// afterwards.
func demoCycle(bus i2c.Bus, addr uint16) error {
	dev, err := grove4ch.New(bus, addr)
	if err != nil {
		return err
	}
	defer dev.Close()

	r, err := dev.Relay(1, false)
	if err != nil {
		return err
	}
	if err := r.Cycle(time.Second); err != nil {
		return err
	}
	fmt.Println(r)
	return nil
}

// runSweep walks the device's register file while stepping through all
// 16 masks, printing what each register reads back. Helps map the
// undocumented parts of the relay firmware.
func runSweep(bus i2c.Bus, addr uint16) error {
	dev, err := grove4ch.New(bus, addr)
	if err != nil {
		return err
	}
	defer dev.Close()

	raw := &i2c.Dev{Bus: bus, Addr: addr}
	for reg := byte(0); reg < 0x20; reg++ {
		fmt.Printf("register %#02x\n", reg)
		for mask := byte(0); mask <= 0x0F; mask++ {
			if err := dev.SetMask(mask); err != nil {
				return err
			}
			time.Sleep(100 * time.Millisecond)
			read := make([]byte, 1)
			if err := raw.Tx([]byte{reg}, read); err != nil {
				return err
			}
			fmt.Printf("  mask %04b read %#02x\n", mask, read[0])
		}
	}
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "grove4ch: %s.\n", err)
		os.Exit(1)
	}
}
