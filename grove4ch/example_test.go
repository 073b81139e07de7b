// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package grove4ch_test

import (
	"log"
	"time"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/embedded-go/relays/grove4ch"
)

func Example() {
	// Initializes host to manage bus and devices
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Opens default bus
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer bus.Close()

	dev, err := grove4ch.New(bus, grove4ch.DefaultAddress)
	if err != nil {
		log.Fatal(err)
	}
	// Every channel is de-energized when the device is closed.
	defer dev.Close()

	pump, err := dev.Relay(1, false)
	if err != nil {
		log.Fatal(err)
	}

	// Run the pump for two seconds.
	if err := pump.Cycle(2 * time.Second); err != nil {
		log.Fatal(err)
	}
	log.Printf("%s", pump)
}
