package media

import (
	"encoding/binary"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telium/playbg/internal/domain/audio"
	"github.com/telium/playbg/internal/infra/config"
)

// writeWAV writes a mono 16-bit PCM WAV file with the given samples.
func writeWAV(t *testing.T, path string, sampleRate int, samples []int16) {
	t.Helper()

	dataLen := len(samples) * 2
	buf := make([]byte, 0, 44+dataLen)

	u32 := func(v uint32) []byte {
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, v)
		return b
	}
	u16 := func(v uint16) []byte {
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, v)
		return b
	}

	buf = append(buf, []byte("RIFF")...)
	buf = append(buf, u32(uint32(36+dataLen))...)
	buf = append(buf, []byte("WAVE")...)
	buf = append(buf, []byte("fmt ")...)
	buf = append(buf, u32(16)...)
	buf = append(buf, u16(1)...) // PCM
	buf = append(buf, u16(1)...) // mono
	buf = append(buf, u32(uint32(sampleRate))...)
	buf = append(buf, u32(uint32(sampleRate*2))...) // byte rate
	buf = append(buf, u16(2)...)                    // block align
	buf = append(buf, u16(16)...)                   // bits per sample
	buf = append(buf, []byte("data")...)
	buf = append(buf, u32(uint32(dataLen))...)
	for _, s := range samples {
		buf = append(buf, u16(uint16(s))...)
	}

	require.NoError(t, os.WriteFile(path, buf, 0644))
}

func sine(n, sampleRate int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(16000 * math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate)))
	}
	return out
}

func TestFileOpener_OpenReadSeek(t *testing.T) {
	dir := t.TempDir()
	writeWAV(t, filepath.Join(dir, "tone.wav"), 8000, sine(320, 8000))

	o := NewFileOpener(dir, 160)
	s, err := o.OpenStream("tone.wav", audio.Telephony)
	require.NoError(t, err)
	defer s.Close()

	f, err := s.ReadFrame()
	require.NoError(t, err)
	assert.Equal(t, 160, f.SampleCount())
	assert.Equal(t, 160, s.Position())

	require.NoError(t, s.SeekSample(300))
	assert.Equal(t, 300, s.Position())

	f, err = s.ReadFrame()
	require.NoError(t, err)
	assert.Equal(t, 20, f.SampleCount())

	_, err = s.ReadFrame()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestFileOpener_ExtensionProbe(t *testing.T) {
	dir := t.TempDir()
	writeWAV(t, filepath.Join(dir, "moh.wav"), 8000, sine(160, 8000))

	o := NewFileOpener(dir, 160)

	// Dialplan-style entry without extension
	s, err := o.OpenStream("moh", audio.Telephony)
	require.NoError(t, err)
	defer s.Close()

	f, err := s.ReadFrame()
	require.NoError(t, err)
	assert.Equal(t, 160, f.SampleCount())
}

func TestFileOpener_Errors(t *testing.T) {
	o := NewFileOpener(t.TempDir(), 160)

	_, err := o.OpenStream("missing.wav", audio.Telephony)
	assert.Error(t, err)

	_, err = o.OpenStream("missing", audio.Telephony)
	assert.Error(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	o = NewFileOpener(dir, 160)
	_, err = o.OpenStream("notes.txt", audio.Telephony)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = o.OpenStream("anything.wav", audio.Format{})
	assert.Error(t, err)
}

func TestNewOpener(t *testing.T) {
	o, err := NewOpener(config.MediaConfig{
		Type:     "file",
		Settings: map[string]any{"root": "/srv/sounds"},
	})
	require.NoError(t, err)
	assert.Equal(t, "/srv/sounds", o.root)
	assert.Equal(t, 160, o.frame) // default

	_, err = NewOpener(config.MediaConfig{Type: "s3"})
	assert.Error(t, err)

	// root is required
	_, err = NewOpener(config.MediaConfig{Type: "file"})
	assert.Error(t, err)

	o, err = NewOpener(config.MediaConfig{
		Type: "file",
		Settings: map[string]any{
			"root":          "/srv/sounds",
			"frame_samples": 320,
			"extensions":    []string{".wav"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 320, o.frame)
	assert.Equal(t, []string{".wav"}, o.extensions)
}
