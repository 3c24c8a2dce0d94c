package playlist

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		arg      string
		expected []string
		wantErr  bool
	}{
		{
			name:    "empty input",
			arg:     "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			arg:     "   ",
			wantErr: true,
		},
		{
			name:     "single file",
			arg:      "moh/jazz",
			expected: []string{"moh/jazz"},
		},
		{
			name:     "multiple files",
			arg:      "intro&loop&outro",
			expected: []string{"intro", "loop", "outro"},
		},
		{
			name:     "empty segment kept",
			arg:      "intro&&outro",
			expected: []string{"intro", "", "outro"},
		},
		{
			name:     "trailing delimiter kept as empty entry",
			arg:      "intro&",
			expected: []string{"intro", ""},
		},
		{
			name:     "segments trimmed",
			arg:      " intro & outro ",
			expected: []string{"intro", "outro"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.arg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrEmptyList))
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.Entries())
			assert.Equal(t, len(tt.expected), p.Len())
		})
	}
}

func TestPlaylist_Entry(t *testing.T) {
	p, err := Parse("a&b&c")
	require.NoError(t, err)

	assert.Equal(t, "a", p.Entry(0))
	assert.Equal(t, "b", p.Entry(1))
	assert.Equal(t, "c", p.Entry(2))
}

func TestPlaylist_String(t *testing.T) {
	p, err := Parse("a&b&c")
	require.NoError(t, err)
	assert.Equal(t, "a&b&c", p.String())
}
