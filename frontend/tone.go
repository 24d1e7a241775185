package frontend

import (
	"encoding/binary"

	"github.com/ezrec/chip8/io"
)

const (
	SAMPLE_RATE = 44100 // Output samples per second.
	TONE_HZ     = 440   // Pitch of the sound timer tone.

	toneAmplitude = 0x2000
)

// Tone is a square wave source, audible while the sound timer is running.
// Samples are mono signed 16-bit little endian.
type Tone struct {
	Timers *io.Timers

	phase int
}

// Read fills p with whole samples.
func (tn *Tone) Read(p []byte) (n int, err error) {
	on := tn.Timers.Read(io.TIMER_SOUND) > 0
	period := SAMPLE_RATE / TONE_HZ

	for n = 0; n+1 < len(p); n += 2 {
		var sample int16
		if on {
			sample = toneAmplitude
			if tn.phase >= period/2 {
				sample = -toneAmplitude
			}
		}
		tn.phase = (tn.phase + 1) % period
		binary.LittleEndian.PutUint16(p[n:], uint16(sample))
	}

	return
}
