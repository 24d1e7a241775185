package io

import (
	"context"
	"iter"
	"maps"
	"sync"
	"time"
)

const (
	TIMER_HZ = 60 // Timer decrement rate.
)

// TimerId selects one of the two timers.
type TimerId int

const (
	TIMER_DELAY = TimerId(0) // dt
	TIMER_SOUND = TimerId(1) // st
)

func (id TimerId) String() string {
	switch id {
	case TIMER_DELAY:
		return "dt"
	case TIMER_SOUND:
		return "st"
	}
	return "??"
}

// Timers is the delay and sound timer pair.
// The counters are shared between the execution loop, which writes them,
// and the cadence driver, which decrements them; every access holds mu.
type Timers struct {
	mu    sync.Mutex
	value [2]uint8
}

// Defines returns an iter of defines for the timers.
func (tm *Timers) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"TIMER_HZ": "60",
	})
}

// Read returns the current value of a timer.
func (tm *Timers) Read(which TimerId) uint8 {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	return tm.value[which]
}

// Write sets a timer to the low 8 bits of value.
func (tm *Timers) Write(which TimerId, value int) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.value[which] = uint8(value & 0xff)
}

// Tick decrements each non-zero timer by one.
func (tm *Timers) Tick() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	for n := range tm.value {
		if tm.value[n] > 0 {
			tm.value[n]--
		}
	}
}

// Reset zeros both timers.
func (tm *Timers) Reset() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	clear(tm.value[:])
}

// Run is the cadence driver: it calls Tick TIMER_HZ times per second
// until the context is done.
func (tm *Timers) Run(ctx context.Context) (err error) {
	ticker := time.NewTicker(time.Second / TIMER_HZ)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tm.Tick()
		}
	}
}
