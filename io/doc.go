// Package io provides the peripherals of the CHIP-8 machine: the delay and
// sound timer pair with its 60 Hz cadence driver (Timers), the 64x32
// monochrome framebuffer (Display), the 16 key logical keypad (Keypad),
// and program image loading (Rom).
//
// Every peripheral is safe for concurrent use: the CPU runs on the
// execution loop while the timer cadence driver, the renderer and the
// input source run on their own goroutines.
package io
