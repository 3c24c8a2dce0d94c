package pbx

import (
	"context"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/telium/playbg/internal/domain/audio"
)

// Clock drives a channel's generator with fixed-size frame requests at the
// wall-clock rate implied by the channel format.
type Clock struct {
	ch           *Channel
	frameSamples int
	interval     time.Duration
}

// NewClock creates a clock requesting frameSamples per tick.
func NewClock(ch *Channel, format audio.Format, frameSamples int) *Clock {
	return &Clock{
		ch:           ch,
		frameSamples: frameSamples,
		interval:     format.FrameDuration(frameSamples),
	}
}

// Run ticks the channel until the context is cancelled. Ticks while no
// generator is active are skipped; a generator failure is logged and the
// clock keeps running so a later activation picks up again.
func (c *Clock) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !c.ch.GeneratorActive() {
				continue
			}
			if err := c.ch.Tick(c.frameSamples); err != nil {
				zlog.Debug().Msgf("clock: tick failed on %s: %v", c.ch.Name(), err)
			}
		}
	}
}
