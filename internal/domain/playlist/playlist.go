// Package playlist provides the ordered background playlist entity.
package playlist

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Delimiter separates entries in a playlist argument string.
const Delimiter = "&"

// ErrEmptyList is returned when a playlist argument contains no entries.
var ErrEmptyList = errors.New("empty file list")

// Playlist is an ordered, immutable sequence of file names. Entries may be
// empty strings; those are skipped at playback time rather than rejected at
// parse time.
type Playlist struct {
	entries []string
}

// Parse builds a playlist from a delimiter-separated argument string.
// Whitespace-only input is rejected; empty segments between delimiters are
// kept as entries.
func Parse(arg string) (*Playlist, error) {
	if strings.TrimSpace(arg) == "" {
		return nil, errors.Wrap(ErrEmptyList, "no files given")
	}

	parts := strings.Split(arg, Delimiter)
	entries := make([]string, len(parts))
	for i, p := range parts {
		entries[i] = strings.TrimSpace(p)
	}
	return &Playlist{entries: entries}, nil
}

// Len returns the number of entries.
func (p *Playlist) Len() int {
	return len(p.entries)
}

// Entry returns the entry at index i. i must be in [0, Len()).
func (p *Playlist) Entry(i int) string {
	return p.entries[i]
}

// Entries returns a copy of all entries.
func (p *Playlist) Entries() []string {
	out := make([]string, len(p.entries))
	copy(out, p.entries)
	return out
}

// String returns the playlist in argument form.
func (p *Playlist) String() string {
	return strings.Join(p.entries, Delimiter)
}
