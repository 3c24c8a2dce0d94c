// Package audio provides the Format and Frame value types shared by the
// channel runtime and the media layer.
package audio

import (
	"fmt"
	"time"
)

// Format describes the negotiated audio format of a channel's write path.
type Format struct {
	SampleRate int // Samples per second (e.g. 8000 for telephony)
	Channels   int // 1 = mono, 2 = stereo
}

// Telephony is the default narrowband channel format.
var Telephony = Format{SampleRate: 8000, Channels: 1}

// IsZero returns true if the format is unset.
func (f Format) IsZero() bool {
	return f.SampleRate == 0 && f.Channels == 0
}

// String returns the string representation of the format.
func (f Format) String() string {
	return fmt.Sprintf("%dHz/%dch", f.SampleRate, f.Channels)
}

// FrameDuration returns the wall-clock duration of n samples in this format.
func (f Format) FrameDuration(n int) time.Duration {
	if f.SampleRate <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second / time.Duration(f.SampleRate)
}

// Frame is one block of decoded audio samples. Samples are stereo pairs in
// [-1, 1]; mono formats carry the same value in both slots.
type Frame struct {
	Format Format
	Data   [][2]float64
}

// SampleCount returns the number of samples in the frame.
func (f *Frame) SampleCount() int {
	return len(f.Data)
}
