// Package frontend connects the emulator to a host: a window with sound,
// or a raw-mode terminal.
//
// The window and beeper need cgo and a display; build with the `headless`
// tag to leave them out, in which case only the terminal is available.
package frontend
