package media

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/cockroachdb/errors"

	"github.com/telium/playbg/internal/domain/audio"
)

// PCMWriter is a frame sink writing interleaved little-endian 16-bit PCM.
// Mono formats are downmixed from the stereo sample pairs.
type PCMWriter struct {
	w       io.Writer
	samples int
}

// NewPCMWriter creates a PCM sink on w.
func NewPCMWriter(w io.Writer) *PCMWriter {
	return &PCMWriter{w: w}
}

// WriteFrame encodes and writes one frame.
func (p *PCMWriter) WriteFrame(f *audio.Frame) error {
	mono := f.Format.Channels == 1
	width := 2 * f.Format.Channels
	buf := make([]byte, f.SampleCount()*width)

	for i, s := range f.Data {
		if mono {
			binary.LittleEndian.PutUint16(buf[i*width:], uint16(pcm16((s[0]+s[1])/2)))
		} else {
			binary.LittleEndian.PutUint16(buf[i*width:], uint16(pcm16(s[0])))
			binary.LittleEndian.PutUint16(buf[i*width+2:], uint16(pcm16(s[1])))
		}
	}

	if _, err := p.w.Write(buf); err != nil {
		return errors.Wrap(err, "pcm write failed")
	}
	p.samples += f.SampleCount()
	return nil
}

// Samples returns the total number of samples written.
func (p *PCMWriter) Samples() int {
	return p.samples
}

// pcm16 converts a [-1, 1] sample to a signed 16-bit value.
func pcm16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}

// Discard is a frame sink that counts samples and drops the audio.
type Discard struct {
	samples int
}

// WriteFrame counts and drops the frame.
func (d *Discard) WriteFrame(f *audio.Frame) error {
	d.samples += f.SampleCount()
	return nil
}

// Samples returns the total number of samples discarded.
func (d *Discard) Samples() int {
	return d.samples
}
