package playbg

import (
	zlog "github.com/rs/zerolog/log"

	"github.com/telium/playbg/internal/domain/audio"
	"github.com/telium/playbg/internal/domain/playlist"
	"github.com/telium/playbg/internal/pbx"
)

// Opener opens decoded audio streams for the channel's write format.
type Opener interface {
	OpenStream(name string, format audio.Format) (pbx.Stream, error)
}

// Controller exposes the three background playback operations and acts as
// the channel generator while a playlist is active.
type Controller struct {
	opener Opener
}

// NewController creates a controller reading media through opener.
func NewController(opener Opener) *Controller {
	return &Controller{opener: opener}
}

// Start parses a '&'-delimited file list and begins background playback on
// the channel. Any playlist already attached is fully torn down first, so
// starting while playing replaces the playlist rather than erroring.
func (c *Controller) Start(ch *pbx.Channel, arg string) error {
	list, err := playlist.Parse(arg)
	if err != nil {
		return err
	}

	if _, ok := ch.FindSlot(stateTag); ok {
		zlog.Debug().Msgf("playbg: replacing playlist with %q on %s", arg, ch.Name())
		ch.DeactivateGenerator()
		ch.DetachSlot(stateTag)
		ch.CloseStream()
	}

	zlog.Debug().Msgf("playbg: new playlist %q on %s", arg, ch.Name())
	st := &playState{
		list:            list,
		origWriteFormat: ch.WriteFormat(),
	}
	ch.AttachSlot(&pbx.Slot{
		Tag:  stateTag,
		Data: st,
		Destroy: func(any) {
			zlog.Debug().Msgf("playbg: state destroyed on %s", ch.Name())
		},
	})

	if err := ch.ActivateGenerator(c); err != nil {
		// No half-attached state on failure.
		ch.DetachSlot(stateTag)
		return err
	}
	return nil
}

// Stop detaches and destroys the channel's playlist state and deactivates
// the generator. The playback position is discarded; a Stop with nothing
// attached is a reported no-op.
func (c *Controller) Stop(ch *pbx.Channel) {
	if _, err := lookupState(ch); err != nil {
		zlog.Warn().Msgf("playbg: stop without state on %s", ch.Name())
		return
	}

	ch.DeactivateGenerator()
	ch.DetachSlot(stateTag)
	ch.CloseStream()
}

// Resume re-activates the generator against the existing playlist state, so
// playback continues at the exact position and sample offset it was
// interrupted at. It fails if no state is attached.
func (c *Controller) Resume(ch *pbx.Channel) error {
	if _, err := lookupState(ch); err != nil {
		zlog.Warn().Msgf("playbg: resume without state on %s", ch.Name())
		return err
	}
	return ch.ActivateGenerator(c)
}

// ChannelState reports whether the channel currently has an active
// background generator.
func (c *Controller) ChannelState(ch *pbx.Channel) State {
	if ch.GeneratorActive() {
		return StateActive
	}
	return StateIdle
}
