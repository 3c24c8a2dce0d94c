// Package playbg implements background playlist playback for a channel: a
// looping file sequence played underneath the call via a channel generator.
package playbg

import (
	"github.com/cockroachdb/errors"

	"github.com/telium/playbg/internal/domain/audio"
	"github.com/telium/playbg/internal/domain/playlist"
	"github.com/telium/playbg/internal/pbx"
)

// Errors
var (
	ErrNoState          = errors.New("no background playlist state")
	ErrMediaUnavailable = errors.New("media unavailable")
)

// stateTag keys the channel slot holding background playlist state.
const stateTag = "playbg"

// State represents the playback state of a channel's background playlist.
type State int

const (
	StateIdle   State = iota // No generator attached
	StateActive              // Generator attached, producing frames
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// playState is the per-channel playlist state. It lives in a channel slot
// from Start until Stop (or replacement) and survives generator
// deactivation, which is what makes Resume continue at the exact offset.
type playState struct {
	list *playlist.Playlist

	// pos indexes list. Values >= list.Len() mean "wrap around on next
	// access" and are never dereferenced directly.
	pos int

	// samples is the sample offset within the file at pos, used to reopen
	// the stream at the resume point. Reset to 0 whenever pos advances.
	samples int

	// sampleQueue is the signed backlog of samples owed to the output:
	// incremented by each tick's request, decremented by samples produced.
	sampleQueue int

	// origWriteFormat is the channel write format captured at activation,
	// restored on release.
	origWriteFormat audio.Format
}

// lookupState fetches the playlist state attached to the channel.
func lookupState(ch *pbx.Channel) (*playState, error) {
	data, ok := ch.FindSlot(stateTag)
	if !ok {
		return nil, errors.Wrapf(ErrNoState, "channel %s", ch.Name())
	}
	st, ok := data.(*playState)
	if !ok || st == nil {
		return nil, errors.Newf("invalid playlist state on channel %s", ch.Name())
	}
	return st, nil
}
