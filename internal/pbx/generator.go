package pbx

import (
	zlog "github.com/rs/zerolog/log"
)

// Generator produces audio for a channel, driven by its clock. Alloc runs at
// activation and its result is handed back to Generate and Release; Release
// runs at deactivation and must leave the channel clean (stream closed,
// write format restored).
type Generator interface {
	Alloc(ch *Channel) (any, error)
	Release(ch *Channel, data any)
	Generate(ch *Channel, data any, samples int) error
}

// ActivateGenerator attaches a generator to the channel, replacing any
// active one. The previous generator is released first.
func (c *Channel) ActivateGenerator(g Generator) error {
	c.deactivate()

	data, err := g.Alloc(c)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.gen = g
	c.genData = data
	c.mu.Unlock()
	return nil
}

// DeactivateGenerator detaches and releases the active generator, if any.
func (c *Channel) DeactivateGenerator() {
	c.deactivate()
}

func (c *Channel) deactivate() {
	c.mu.Lock()
	g, data := c.gen, c.genData
	c.gen = nil
	c.genData = nil
	c.mu.Unlock()

	if g != nil {
		g.Release(c, data)
	}
}

// GeneratorActive reports whether a generator is attached.
func (c *Channel) GeneratorActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen != nil
}

// Tick drives the active generator for the requested sample count. A
// generate failure deactivates the generator and is returned to the caller.
func (c *Channel) Tick(samples int) error {
	c.mu.Lock()
	g, data := c.gen, c.genData
	c.mu.Unlock()

	if g == nil {
		return ErrNoGenerator
	}

	if err := g.Generate(c, data, samples); err != nil {
		zlog.Warn().Msgf("channel %s: generator failed, deactivating: %v", c.name, err)
		c.deactivate()
		return err
	}
	return nil
}
