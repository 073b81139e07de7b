// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package grove4ch

import (
	"errors"
	"fmt"
)

// ErrInvalidChannel is returned when a channel id is outside 1..4. The
// request is rejected before any bus traffic.
var ErrInvalidChannel = errors.New("grove4ch: invalid channel")

// ErrInvalidMask is returned when a raw mask does not fit in the low 4
// bits. The request is rejected before any bus traffic.
var ErrInvalidMask = errors.New("grove4ch: mask out of range")

// BusWriteError reports a failed write of the relay register. The
// cached mask is left at its previous value, so memory and hardware
// stay in sync with the last successful write.
type BusWriteError struct {
	Addr uint16 // device address the write targeted
	Reg  byte   // register address
	Mask byte   // mask that was being written
	Err  error
}

func (e *BusWriteError) Error() string {
	return fmt.Sprintf("grove4ch: writing mask %#04b to register %#02x at address %#02x: %v", e.Mask, e.Reg, e.Addr, e.Err)
}

func (e *BusWriteError) Unwrap() error { return e.Err }
