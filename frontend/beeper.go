//go:build !headless

package frontend

import (
	"context"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Beeper plays the Tone on the host audio device.
type Beeper struct {
	Tone
}

// Run plays until the context is done.
func (bp *Beeper) Run(ctx context.Context) (err error) {
	op := &oto.NewContextOptions{
		SampleRate:   SAMPLE_RATE,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   20 * time.Millisecond,
	}

	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return
	}
	<-ready

	player := otoCtx.NewPlayer(&bp.Tone)
	defer player.Close()

	player.Play()

	<-ctx.Done()

	return
}
