package io

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var glyphZero = []byte{0xF0, 0x90, 0x90, 0x90, 0xF0}

func TestDisplay_Draw(t *testing.T) {
	assert := assert.New(t)

	dp := &Display{}
	collision := dp.Draw(2, 1, glyphZero)
	assert.False(collision)

	frame := dp.Snapshot()
	assert.Equal(uint8(1), frame[1][2])
	assert.Equal(uint8(1), frame[1][5])
	assert.Equal(uint8(0), frame[1][6])
	assert.Equal(uint8(1), frame[2][2])
	assert.Equal(uint8(0), frame[2][3])
	assert.Equal(uint8(1), frame[5][5])
	assert.Equal(uint8(0), frame[6][2])
}

func TestDisplay_DrawTwice(t *testing.T) {
	assert := assert.New(t)

	dp := &Display{}
	dp.Draw(40, 7, []byte{0x01})
	before := dp.Snapshot()

	collision := dp.Draw(10, 20, glyphZero)
	assert.False(collision)

	collision = dp.Draw(10, 20, glyphZero)
	assert.True(collision)
	assert.Equal(before, dp.Snapshot())
}

func TestDisplay_DrawCollision(t *testing.T) {
	assert := assert.New(t)

	dp := &Display{}
	assert.False(dp.Draw(0, 0, []byte{0x80}))
	// Disjoint pixels never collide.
	assert.False(dp.Draw(0, 0, []byte{0x40}))
	// Turning off any pixel collides.
	assert.True(dp.Draw(0, 0, []byte{0xC0}))
	assert.Equal(uint8(0), dp.Pixel(0, 0))
	assert.Equal(uint8(0), dp.Pixel(1, 0))
}

func TestDisplay_DrawClip(t *testing.T) {
	assert := assert.New(t)

	dp := &Display{}
	collision := dp.Draw(60, 30, []byte{0xff, 0xff, 0xff, 0xff})
	assert.False(collision)

	frame := dp.Snapshot()
	count := 0
	for _, row := range frame {
		for _, pixel := range row {
			count += int(pixel)
		}
	}
	// 4 columns by 2 rows survive; nothing wraps to the other edges.
	assert.Equal(8, count)
	assert.Equal(uint8(1), frame[30][60])
	assert.Equal(uint8(1), frame[31][63])
	assert.Equal(uint8(0), frame[0][0])
	assert.Equal(uint8(0), frame[30][0])
}

func TestDisplay_Clear(t *testing.T) {
	assert := assert.New(t)

	dp := &Display{}
	gen := dp.Generation()
	dp.Draw(0, 0, glyphZero)
	assert.Greater(dp.Generation(), gen)

	gen = dp.Generation()
	dp.Clear()
	assert.Greater(dp.Generation(), gen)
	assert.Equal(Frame{}, dp.Snapshot())
}

func TestDisplay_Size(t *testing.T) {
	assert := assert.New(t)

	dp := &Display{}
	width, height := dp.Size()
	assert.Equal(64, width)
	assert.Equal(32, height)
	assert.Equal(uint8(0), dp.Pixel(-1, 0))
	assert.Equal(uint8(0), dp.Pixel(64, 0))
}

func TestFrame_String(t *testing.T) {
	assert := assert.New(t)

	dp := &Display{}
	dp.Draw(0, 0, []byte{0xA0})
	frame := dp.Snapshot()

	lines := strings.Split(frame.String(), "\n")
	assert.Len(lines, DISPLAY_HEIGHT+1)
	assert.Equal("#.#"+strings.Repeat(".", DISPLAY_WIDTH-3), lines[0])
	assert.Equal(strings.Repeat(".", DISPLAY_WIDTH), lines[1])
}
