//go:build !headless

package frontend

import (
	"context"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/ezrec/chip8/io"
)

const (
	HEADLESS      = false
	DEFAULT_SCALE = 10 // Window pixels per display pixel.
)

// windowKeys maps host keys to their characters in the keypad layout.
var windowKeys = map[ebiten.Key]rune{
	ebiten.KeyDigit1: '1', ebiten.KeyDigit2: '2', ebiten.KeyDigit3: '3', ebiten.KeyDigit4: '4',
	ebiten.KeyQ: 'q', ebiten.KeyW: 'w', ebiten.KeyE: 'e', ebiten.KeyR: 'r',
	ebiten.KeyA: 'a', ebiten.KeyS: 's', ebiten.KeyD: 'd', ebiten.KeyF: 'f',
	ebiten.KeyZ: 'z', ebiten.KeyX: 'x', ebiten.KeyC: 'c', ebiten.KeyV: 'v',
}

// Window shows the display in a desktop window and feeds the keypad
// from the host keyboard. Escape or closing the window quits.
type Window struct {
	Display    *io.Display
	Keypad     *io.Keypad
	Title      string
	Scale      int
	Foreground color.RGBA
	Background color.RGBA

	ctx        context.Context
	quit       bool
	image      *ebiten.Image
	pixels     []byte
	generation uint64
}

// Run opens the window and runs the ebiten game loop until the context is
// done or the user quits with ErrQuit.
// It must be called from the main goroutine.
func (win *Window) Run(ctx context.Context) (err error) {
	scale := win.Scale
	if scale <= 0 {
		scale = DEFAULT_SCALE
	}
	if win.Foreground == (color.RGBA{}) {
		win.Foreground = color.RGBA{0xff, 0xff, 0xff, 0xff}
	}
	if win.Background.A == 0 {
		win.Background = color.RGBA{0x00, 0x00, 0x00, 0xff}
	}

	win.ctx = ctx
	win.pixels = make([]byte, io.DISPLAY_WIDTH*io.DISPLAY_HEIGHT*4)
	win.generation = ^uint64(0)

	ebiten.SetWindowSize(io.DISPLAY_WIDTH*scale, io.DISPLAY_HEIGHT*scale)
	ebiten.SetWindowTitle(win.Title)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetWindowClosingHandled(true)

	err = ebiten.RunGame(win)
	if err == nil && win.quit {
		err = ErrQuit
	}

	return
}

// Update implements ebiten.Game.
func (win *Window) Update() error {
	if win.ctx.Err() != nil {
		return ebiten.Termination
	}

	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		win.quit = true
		return ebiten.Termination
	}

	for host, char := range windowKeys {
		key, _ := KeyOf(char)
		switch {
		case inpututil.IsKeyJustPressed(host):
			win.Keypad.Press(key)
		case inpututil.IsKeyJustReleased(host):
			win.Keypad.Release(key)
		}
	}

	return nil
}

// Draw implements ebiten.Game.
func (win *Window) Draw(screen *ebiten.Image) {
	if win.image == nil {
		win.image = ebiten.NewImage(io.DISPLAY_WIDTH, io.DISPLAY_HEIGHT)
	}

	if gen := win.Display.Generation(); gen != win.generation {
		win.generation = gen
		frame := win.Display.Snapshot()
		for y, row := range frame {
			for x, pixel := range row {
				c := win.Background
				if pixel != 0 {
					c = win.Foreground
				}
				offset := (y*io.DISPLAY_WIDTH + x) * 4
				copy(win.pixels[offset:], []byte{c.R, c.G, c.B, c.A})
			}
		}
		win.image.WritePixels(win.pixels)
	}

	screen.DrawImage(win.image, nil)
}

// Layout implements ebiten.Game.
func (win *Window) Layout(_, _ int) (int, int) {
	return io.DISPLAY_WIDTH, io.DISPLAY_HEIGHT
}
