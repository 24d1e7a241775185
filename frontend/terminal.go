package frontend

import (
	"context"
	"fmt"
	stdio "io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/ezrec/chip8/io"
)

const (
	KEY_HOLD = 150 * time.Millisecond // Default time a key reads as held.

	keyInterrupt = 0x03
	keyEscape    = 0x1b
)

// RenderFrame draws a frame as text, two rows per line, using half blocks.
func RenderFrame(frame *io.Frame) string {
	var sb strings.Builder
	for y := 0; y < len(frame); y += 2 {
		for x := range frame[y] {
			top := frame[y][x] != 0
			bottom := y+1 < len(frame) && frame[y+1][x] != 0
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}
	return sb.String()
}

// Terminal runs the machine on a text terminal.
//
// Terminals only report key presses, so a key reads as held for Hold after
// its last press or auto-repeat. Escape or Ctrl-C quits.
type Terminal struct {
	Display *io.Display
	Keypad  *io.Keypad
	Input   *os.File     // Usually os.Stdin, switched to raw mode if a terminal.
	Output  stdio.Writer // Usually os.Stdout.
	Hold    time.Duration
}

// Run renders the display and feeds the keypad until the context is done,
// or the user quits with ErrQuit.
func (tm *Terminal) Run(ctx context.Context) (err error) {
	fd := int(tm.Input.Fd())
	if term.IsTerminal(fd) {
		var state *term.State
		state, err = term.MakeRaw(fd)
		if err != nil {
			return
		}
		defer term.Restore(fd, state)
	}

	hold := tm.Hold
	if hold <= 0 {
		hold = KEY_HOLD
	}

	input := make(chan byte)
	go func() {
		defer close(input)
		buf := make([]byte, 1)
		for {
			n, err := tm.Input.Read(buf)
			if err != nil {
				return
			}
			if n == 0 {
				continue
			}
			select {
			case input <- buf[0]:
			case <-ctx.Done():
				return
			}
		}
	}()

	fmt.Fprint(tm.Output, "\x1b[2J\x1b[?25l")
	defer fmt.Fprint(tm.Output, "\x1b[?25h\r\n")

	ticker := time.NewTicker(time.Second / io.TIMER_HZ)
	defer ticker.Stop()

	var release [io.KEY_COUNT]time.Time
	generation := ^uint64(0)

	for {
		select {
		case <-ctx.Done():
			return
		case b, ok := <-input:
			if !ok {
				// No more input; keep rendering.
				input = nil
				continue
			}
			if b == keyInterrupt || b == keyEscape {
				err = ErrQuit
				return
			}
			key, ok := KeyOf(rune(b))
			if !ok {
				continue
			}
			tm.Keypad.Press(key)
			release[key] = time.Now().Add(hold)
		case now := <-ticker.C:
			for key, at := range release {
				if !at.IsZero() && now.After(at) {
					tm.Keypad.Release(uint8(key))
					release[key] = time.Time{}
				}
			}
			if gen := tm.Display.Generation(); gen != generation {
				generation = gen
				frame := tm.Display.Snapshot()
				fmt.Fprint(tm.Output, "\x1b[H"+RenderFrame(&frame))
			}
		}
	}
}
