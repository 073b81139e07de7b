// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package grove4ch controls the Grove 4-Channel SPDT Relay over I²C.
//
// The board exposes its four channels as one 4-bit mask in a single
// output register; every state change is one register write.
//
// Datasheet
// https://wiki.seeedstudio.com/Grove-4-Channel_SPDT_Relay/
//
// Reference firmware
// https://github.com/Seeed-Studio/Multi_Channel_Relay_Arduino_Library
package grove4ch
