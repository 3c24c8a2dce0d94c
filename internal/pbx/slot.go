package pbx

// Slot is typed state attached to a channel under a capability tag. The
// destructor runs when the slot is detached, so owners can release whatever
// the data holds without the channel knowing its shape.
type Slot struct {
	Tag     string
	Data    any
	Destroy func(data any)
}

// AttachSlot attaches state under its tag, replacing (and destroying) any
// slot already attached with the same tag.
func (c *Channel) AttachSlot(s *Slot) {
	c.mu.Lock()
	prev := c.slots[s.Tag]
	c.slots[s.Tag] = s
	c.mu.Unlock()

	if prev != nil && prev.Destroy != nil {
		prev.Destroy(prev.Data)
	}
}

// DetachSlot removes the slot with the given tag and runs its destructor.
// It returns false if no such slot was attached.
func (c *Channel) DetachSlot(tag string) bool {
	c.mu.Lock()
	s, ok := c.slots[tag]
	delete(c.slots, tag)
	c.mu.Unlock()

	if !ok {
		return false
	}
	if s.Destroy != nil {
		s.Destroy(s.Data)
	}
	return true
}

// FindSlot returns the data attached under the given tag.
func (c *Channel) FindSlot(tag string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.slots[tag]
	if !ok {
		return nil, false
	}
	return s.Data, true
}
