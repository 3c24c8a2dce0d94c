// Package pbx models the host runtime a background generator runs inside:
// channels with a negotiated write format, a single active decode stream,
// destructor-bearing state slots, and clock-driven generators.
package pbx

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/telium/playbg/internal/domain/audio"
)

// Errors
var (
	ErrNoGenerator   = errors.New("no generator active")
	ErrInvalidFormat = errors.New("invalid write format")
)

// Stream is a channel's single active decode stream. Implementations are
// provided by the media layer; a channel owns at most one at a time.
type Stream interface {
	// ReadFrame returns the next decoded frame, or io.EOF when exhausted.
	ReadFrame() (*audio.Frame, error)
	// SeekSample positions the stream at the given sample offset.
	SeekSample(offset int) error
	// Position returns the current sample offset.
	Position() int
	Close() error
}

// FrameSink receives the frames a generator writes to the channel output.
type FrameSink interface {
	WriteFrame(f *audio.Frame) error
}

// Channel is a single call leg. Field access is mutex-guarded; the host is
// responsible for serializing control operations against generator ticks.
type Channel struct {
	id   string
	name string

	mu          sync.Mutex
	writeFormat audio.Format
	sink        FrameSink
	stream      Stream
	slots       map[string]*Slot
	gen         Generator
	genData     any
}

// NewChannel creates a channel with the given negotiated write format.
func NewChannel(name string, format audio.Format, sink FrameSink) *Channel {
	return &Channel{
		id:          uuid.New().String(),
		name:        name,
		writeFormat: format,
		sink:        sink,
		slots:       make(map[string]*Slot),
	}
}

// ID returns the channel's unique identifier.
func (c *Channel) ID() string {
	return c.id
}

// Name returns the channel name.
func (c *Channel) Name() string {
	return c.name
}

// WriteFormat returns the channel's negotiated write format.
func (c *Channel) WriteFormat() audio.Format {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeFormat
}

// SetWriteFormat sets the channel's write format.
func (c *Channel) SetWriteFormat(f audio.Format) error {
	if f.SampleRate <= 0 || f.Channels < 1 || f.Channels > 2 {
		return errors.Wrapf(ErrInvalidFormat, "%s", f)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeFormat = f
	return nil
}

// WriteFrame pushes a frame to the channel output. Empty frames are dropped.
func (c *Channel) WriteFrame(f *audio.Frame) error {
	if f == nil || f.SampleCount() == 0 {
		return nil
	}
	c.mu.Lock()
	sink := c.sink
	c.mu.Unlock()
	if sink == nil {
		return errors.Newf("channel %s has no output sink", c.name)
	}
	return sink.WriteFrame(f)
}

// Stream returns the active decode stream, or nil.
func (c *Channel) Stream() Stream {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stream
}

// SetStream installs a decode stream, closing any previous one. A channel
// never holds more than one open stream.
func (c *Channel) SetStream(s Stream) {
	c.mu.Lock()
	prev := c.stream
	c.stream = s
	c.mu.Unlock()

	if prev != nil && prev != s {
		if err := prev.Close(); err != nil {
			zlog.Warn().Msgf("channel %s: failed to close previous stream: %v", c.name, err)
		}
	}
}

// CloseStream closes and clears the active decode stream, if any.
func (c *Channel) CloseStream() {
	c.mu.Lock()
	s := c.stream
	c.stream = nil
	c.mu.Unlock()

	if s != nil {
		if err := s.Close(); err != nil {
			zlog.Warn().Msgf("channel %s: failed to close stream: %v", c.name, err)
		}
	}
}
