package io

import (
	"fmt"
	"iter"
	"maps"
	"strings"
	"sync"
	"sync/atomic"
)

const (
	DISPLAY_WIDTH  = 64 // Pixels per row.
	DISPLAY_HEIGHT = 32 // Rows.
)

// Frame is a snapshot of the framebuffer, indexed [y][x].
type Frame [DISPLAY_HEIGHT][DISPLAY_WIDTH]uint8

// String renders the frame as text, '#' for set pixels and '.' for clear.
func (frame *Frame) String() string {
	var sb strings.Builder
	for _, row := range frame {
		for _, pixel := range row {
			if pixel != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Display is the monochrome framebuffer.
// Only the CPU modifies pixels; renderers read it through Snapshot.
type Display struct {
	mu         sync.RWMutex
	frame      Frame
	generation atomic.Uint64
}

// Defines returns an iter of defines for the display.
func (dp *Display) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"DISPLAY_WIDTH":  fmt.Sprintf("%d", DISPLAY_WIDTH),
		"DISPLAY_HEIGHT": fmt.Sprintf("%d", DISPLAY_HEIGHT),
	})
}

// Size returns the width and height of the display.
func (dp *Display) Size() (width, height int) {
	return DISPLAY_WIDTH, DISPLAY_HEIGHT
}

// Clear sets every pixel to 0.
func (dp *Display) Clear() {
	dp.mu.Lock()
	defer dp.mu.Unlock()

	dp.frame = Frame{}
	dp.generation.Add(1)
}

// Draw XORs each bit of each sprite row onto the display, MSB leftmost,
// starting at (x, y). Pixels beyond the right or bottom edge are dropped.
// Returns true if any pixel went from 1 to 0.
func (dp *Display) Draw(x, y int, rows []byte) (collision bool) {
	dp.mu.Lock()
	defer dp.mu.Unlock()

	for dy, row := range rows {
		py := y + dy
		if py < 0 || py >= DISPLAY_HEIGHT {
			continue
		}
		for dx := range 8 {
			px := x + dx
			if px < 0 || px >= DISPLAY_WIDTH {
				continue
			}
			bit := (row >> (7 - dx)) & 1
			if bit == 0 {
				continue
			}
			if dp.frame[py][px] != 0 {
				collision = true
			}
			dp.frame[py][px] ^= 1
		}
	}

	dp.generation.Add(1)

	return
}

// Pixel returns the value of a single pixel; out of range pixels are 0.
func (dp *Display) Pixel(x, y int) uint8 {
	if x < 0 || x >= DISPLAY_WIDTH || y < 0 || y >= DISPLAY_HEIGHT {
		return 0
	}

	dp.mu.RLock()
	defer dp.mu.RUnlock()

	return dp.frame[y][x]
}

// Snapshot returns a copy of the framebuffer.
func (dp *Display) Snapshot() (frame Frame) {
	dp.mu.RLock()
	defer dp.mu.RUnlock()

	frame = dp.frame
	return
}

// Generation increases every time the framebuffer is modified.
func (dp *Display) Generation() uint64 {
	return dp.generation.Load()
}
