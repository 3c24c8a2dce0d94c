package playbg

import (
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/telium/playbg/internal/pbx"
)

// seekCurrent opens the playlist entry at the current position and installs
// it as the channel's stream, seeking to the saved sample offset. Positions
// past the end of the list wrap to 0, which is how the playlist loops
// forever. Empty and unopenable entries advance the position and return a
// recoverable ErrMediaUnavailable so the caller can retry at the next entry.
//
// Callers must have closed any previously open stream.
func (c *Controller) seekCurrent(ch *pbx.Channel, st *playState) error {
	if st.pos >= st.list.Len() {
		st.pos = 0
	}

	name := st.list.Entry(st.pos)
	zlog.Debug().Msgf("playbg: seek pos=%d/%d on %s", st.pos, st.list.Len(), ch.Name())
	if name == "" {
		zlog.Warn().Msgf("playbg: empty entry at position %d on %s", st.pos, ch.Name())
		st.pos++
		return errors.Wrapf(ErrMediaUnavailable, "empty entry at position %d", st.pos-1)
	}

	s, err := c.opener.OpenStream(name, ch.WriteFormat())
	if err != nil {
		zlog.Warn().Msgf("playbg: unable to open %q on %s: %v", name, ch.Name(), err)
		st.pos++
		return errors.Wrapf(ErrMediaUnavailable, "open %q: %v", name, err)
	}

	if st.samples > 0 {
		if err := s.SeekSample(st.samples); err != nil {
			zlog.Warn().Msgf("playbg: unable to seek %q to %d on %s: %v", name, st.samples, ch.Name(), err)
			_ = s.Close()
			st.pos++
			return errors.Wrapf(ErrMediaUnavailable, "seek %q to %d: %v", name, st.samples, err)
		}
	}

	ch.SetStream(s)
	zlog.Debug().Msgf("playbg: opened %q at offset %d on %s", name, st.samples, ch.Name())
	return nil
}
