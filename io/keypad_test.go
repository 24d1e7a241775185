package io

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeypad_Press(t *testing.T) {
	assert := assert.New(t)

	kp := &Keypad{}
	assert.False(kp.IsPressed(0xA))

	kp.Press(0xA)
	assert.True(kp.IsPressed(0xA))
	assert.False(kp.IsPressed(0xB))

	kp.Release(0xA)
	assert.False(kp.IsPressed(0xA))
}

func TestKeypad_Invalid(t *testing.T) {
	assert := assert.New(t)

	kp := &Keypad{}
	kp.Press(0x10)
	kp.Press(0xff)
	kp.Release(0x10)
	assert.False(kp.IsPressed(0x10))

	_, ok := kp.KeyDown()
	assert.False(ok)
}

func TestKeypad_KeyDown(t *testing.T) {
	assert := assert.New(t)

	kp := &Keypad{}
	kp.Press(0x3)
	// Held keys do not repeat.
	kp.Press(0x3)
	kp.Press(0xF)

	key, ok := kp.KeyDown()
	assert.True(ok)
	assert.Equal(uint8(0x3), key)

	key, ok = kp.KeyDown()
	assert.True(ok)
	assert.Equal(uint8(0xF), key)

	_, ok = kp.KeyDown()
	assert.False(ok)

	kp.Release(0x3)
	kp.Press(0x3)
	key, ok = kp.KeyDown()
	assert.True(ok)
	assert.Equal(uint8(0x3), key)
}

func TestKeypad_Drain(t *testing.T) {
	assert := assert.New(t)

	kp := &Keypad{}
	kp.Press(0x1)
	kp.Press(0x2)
	kp.Drain()

	_, ok := kp.KeyDown()
	assert.False(ok)
	assert.True(kp.IsPressed(0x1))

	kp.Reset()
	assert.False(kp.IsPressed(0x1))
	assert.False(kp.IsPressed(0x2))
}

func TestKeypad_Overflow(t *testing.T) {
	assert := assert.New(t)

	kp := &Keypad{}
	for range 4 * keyEventDepth {
		kp.Press(0x7)
		kp.Release(0x7)
	}

	count := 0
	for {
		_, ok := kp.KeyDown()
		if !ok {
			break
		}
		count++
	}
	assert.Equal(keyEventDepth, count)
}

func TestKeypad_WaitKey(t *testing.T) {
	assert := assert.New(t)

	kp := &Keypad{}
	go func() {
		time.Sleep(10 * time.Millisecond)
		kp.Press(0xC)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key, err := kp.WaitKey(ctx)
	assert.NoError(err)
	assert.Equal(uint8(0xC), key)
}

func TestKeypad_WaitKey_Cancel(t *testing.T) {
	assert := assert.New(t)

	kp := &Keypad{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := kp.WaitKey(ctx)
	assert.ErrorIs(err, context.Canceled)
}
