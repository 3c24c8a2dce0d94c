package playbg

import (
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/telium/playbg/internal/domain/audio"
	"github.com/telium/playbg/internal/pbx"
)

// readFrame pulls one frame from the current stream, advancing through the
// playlist as entries are exhausted. With no stream open (fresh start, or
// resume after deactivation) it reopens at the saved position and offset.
// On exhaustion it advances to the next entry, resets the offset, reopens
// and retries once, which makes file-to-file and wraparound transitions
// invisible to the generator. Failures are ErrMediaUnavailable and leave no
// stream open; the generator loop handles runs of bad entries by retrying,
// so readFrame itself never iterates the whole list.
func (c *Controller) readFrame(ch *pbx.Channel, st *playState) (*audio.Frame, error) {
	if s := ch.Stream(); s != nil {
		f, err := s.ReadFrame()
		if err == nil {
			return f, nil
		}
		// Exhausted (or unreadable): move on to the next entry.
		zlog.Debug().Msgf("playbg: advancing to next entry on %s", ch.Name())
		ch.CloseStream()
		st.pos++
		st.samples = 0
	}

	if err := c.seekCurrent(ch, st); err != nil {
		return nil, err
	}

	f, err := ch.Stream().ReadFrame()
	if err != nil {
		// Opened but yielded nothing (zero-length entry, or a saved
		// offset at the end of the file). Skip it.
		ch.CloseStream()
		st.pos++
		st.samples = 0
		return nil, errors.Wrapf(ErrMediaUnavailable, "no frames at position %d: %v", st.pos-1, err)
	}
	return f, nil
}
