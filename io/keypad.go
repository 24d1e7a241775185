package io

import (
	"context"
	"sync"
)

const (
	KEY_COUNT = 16 // Logical keys 0x0 to 0xF.

	keyEventDepth = 16 // Pending key-down events kept before dropping.
)

// Keypad is the 16 key logical keypad.
// The input source reports Press and Release; the CPU polls IsPressed and
// consumes key-down events with KeyDown or WaitKey.
type Keypad struct {
	mu      sync.Mutex
	pressed [KEY_COUNT]bool
	down    chan uint8
	once    sync.Once
}

func (kp *Keypad) events() chan uint8 {
	kp.once.Do(func() {
		kp.down = make(chan uint8, keyEventDepth)
	})
	return kp.down
}

// Press reports a key as held down. A key-down event is queued if the key
// was not already held. Keys outside the keypad are ignored.
func (kp *Keypad) Press(key uint8) {
	if key >= KEY_COUNT {
		return
	}

	kp.mu.Lock()
	was := kp.pressed[key]
	kp.pressed[key] = true
	kp.mu.Unlock()

	if was {
		return
	}

	select {
	case kp.events() <- key:
	default:
		// Queue full, drop the event.
	}
}

// Release reports a key as no longer held.
func (kp *Keypad) Release(key uint8) {
	if key >= KEY_COUNT {
		return
	}

	kp.mu.Lock()
	defer kp.mu.Unlock()

	kp.pressed[key] = false
}

// IsPressed returns true if the key is currently held.
func (kp *Keypad) IsPressed(key uint8) bool {
	if key >= KEY_COUNT {
		return false
	}

	kp.mu.Lock()
	defer kp.mu.Unlock()

	return kp.pressed[key]
}

// KeyDown returns the oldest pending key-down event without blocking.
func (kp *Keypad) KeyDown() (key uint8, ok bool) {
	select {
	case key = <-kp.events():
		ok = true
	default:
	}
	return
}

// WaitKey blocks until the next key-down event, or the context is done.
func (kp *Keypad) WaitKey(ctx context.Context) (key uint8, err error) {
	select {
	case key = <-kp.events():
	case <-ctx.Done():
		err = ctx.Err()
	}
	return
}

// Drain discards all pending key-down events.
func (kp *Keypad) Drain() {
	for {
		select {
		case <-kp.events():
		default:
			return
		}
	}
}

// Reset releases all keys and discards pending events.
func (kp *Keypad) Reset() {
	kp.mu.Lock()
	clear(kp.pressed[:])
	kp.mu.Unlock()

	kp.Drain()
}
