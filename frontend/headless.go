//go:build headless

package frontend

import (
	"context"
	"image/color"

	"github.com/ezrec/chip8/io"
)

const (
	HEADLESS      = true
	DEFAULT_SCALE = 10
)

// Window is unavailable in headless builds.
type Window struct {
	Display    *io.Display
	Keypad     *io.Keypad
	Title      string
	Scale      int
	Foreground color.RGBA
	Background color.RGBA
}

// Run always fails with ErrHeadless.
func (win *Window) Run(ctx context.Context) error {
	return ErrHeadless
}

// Beeper is silent in headless builds.
type Beeper struct {
	Tone
}

// Run waits for the context to be done.
func (bp *Beeper) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}
