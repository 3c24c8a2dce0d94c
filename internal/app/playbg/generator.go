package playbg

import (
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/telium/playbg/internal/pbx"
)

// The controller is the channel generator: Alloc picks up the attached
// playlist state, Generate produces frames on each clock tick, Release
// leaves the channel clean. Activation hands the controller itself to
// pbx.Channel.ActivateGenerator.
var _ pbx.Generator = (*Controller)(nil)

// Alloc binds the generator to the playlist state already attached to the
// channel and captures the write format to restore on release.
func (c *Controller) Alloc(ch *pbx.Channel) (any, error) {
	st, err := lookupState(ch)
	if err != nil {
		zlog.Warn().Msgf("playbg: alloc without state on %s", ch.Name())
		return nil, err
	}
	st.origWriteFormat = ch.WriteFormat()
	zlog.Debug().Msgf("playbg: using stored playlist state for %s", ch.Name())
	return st, nil
}

// Release closes the channel's stream and restores its original write
// format. The playlist state itself stays attached so playback can resume.
func (c *Controller) Release(ch *pbx.Channel, data any) {
	ch.CloseStream()

	st, ok := data.(*playState)
	if !ok {
		var err error
		if st, err = lookupState(ch); err != nil {
			zlog.Warn().Msgf("playbg: release without state on %s", ch.Name())
			return
		}
	}

	zlog.Debug().Msgf("playbg: release on %s", ch.Name())
	if !st.origWriteFormat.IsZero() && st.origWriteFormat != ch.WriteFormat() {
		if err := ch.SetWriteFormat(st.origWriteFormat); err != nil {
			zlog.Warn().Msgf("playbg: unable to restore %s to format %s: %v", ch.Name(), st.origWriteFormat, err)
		}
	}
}

// Generate satisfies one clock tick's sample request. The backlog carries
// over between ticks: a short read leaves samples owed, an over-long read
// leaves a negative backlog that shrinks the next tick's effective request.
// A miss (unreadable or empty entry) skips to the next entry; more misses
// than playlist entries in a single tick means nothing in the playlist is
// playable, which is fatal, as is any write failure. Fatal returns
// deactivate the generator but leave the attached state intact.
func (c *Controller) Generate(ch *pbx.Channel, data any, samples int) error {
	st, ok := data.(*playState)
	if !ok {
		var err error
		if st, err = lookupState(ch); err != nil {
			zlog.Warn().Msgf("playbg: generate without state on %s", ch.Name())
			return err
		}
	}

	st.sampleQueue += samples

	misses := 0
	for st.sampleQueue > 0 {
		f, err := c.readFrame(ch, st)
		if err != nil {
			if errors.Is(err, ErrMediaUnavailable) {
				misses++
				if misses <= st.list.Len() {
					continue
				}
				return errors.Wrapf(err, "no playable entry in %d-file playlist", st.list.Len())
			}
			return err
		}
		misses = 0

		st.samples += f.SampleCount()
		st.sampleQueue -= f.SampleCount()

		if err := ch.WriteFrame(f); err != nil {
			return errors.Wrapf(err, "failed to write frame to %s", ch.Name())
		}
	}
	return nil
}
