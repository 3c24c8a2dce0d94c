package pbx

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/telium/playbg/internal/domain/audio"
)

// ErrUnknownChannel is returned when a channel ID is not in the registry.
var ErrUnknownChannel = errors.New("unknown channel")

// Registry tracks live channels with thread-safe access.
type Registry struct {
	mu       sync.RWMutex
	channels map[string]*Channel
}

// NewRegistry creates an empty channel registry.
func NewRegistry() *Registry {
	return &Registry{
		channels: make(map[string]*Channel),
	}
}

// Create builds a new channel and adds it to the registry.
func (r *Registry) Create(name string, format audio.Format, sink FrameSink) *Channel {
	ch := NewChannel(name, format, sink)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels[ch.ID()] = ch
	return ch
}

// Get retrieves a channel by ID.
func (r *Registry) Get(id string) (*Channel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ch, ok := r.channels[id]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownChannel, "%s", id)
	}
	return ch, nil
}

// Remove tears a channel down and drops it from the registry: the generator
// is deactivated, all slots destroyed, and the stream closed.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	ch, ok := r.channels[id]
	delete(r.channels, id)
	r.mu.Unlock()

	if !ok {
		return errors.Wrapf(ErrUnknownChannel, "%s", id)
	}

	ch.DeactivateGenerator()
	ch.mu.Lock()
	slots := ch.slots
	ch.slots = make(map[string]*Slot)
	ch.mu.Unlock()
	for _, s := range slots {
		if s.Destroy != nil {
			s.Destroy(s.Data)
		}
	}
	ch.CloseStream()
	return nil
}

// All returns all registered channels.
func (r *Registry) All() []*Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Channel, 0, len(r.channels))
	for _, ch := range r.channels {
		out = append(out, ch)
	}
	return out
}

// Count returns the number of registered channels.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels)
}
