// Package media opens decoded audio streams for channel playback, backed by
// beep's decoders with sample-rate conversion to the channel format.
package media

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	"github.com/telium/playbg/internal/domain/audio"
	"github.com/telium/playbg/internal/pbx"
)

// ErrUnsupportedFormat is returned for files no registered decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported media format")

type decodeFunc func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]decodeFunc{
	".wav": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return wav.Decode(f)
	},
	".mp3": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return mp3.Decode(f)
	},
	".flac": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return flac.Decode(f)
	},
	".ogg": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return vorbis.Decode(f)
	},
}

// defaultExtensions is the probe order for playlist entries given without an
// extension.
var defaultExtensions = []string{".wav", ".mp3", ".flac", ".ogg"}

// FileOpener opens playlist entries from the filesystem.
type FileOpener struct {
	root       string
	frame      int
	extensions []string
}

// NewFileOpener creates an opener rooted at root, reading frames of frame
// samples.
func NewFileOpener(root string, frame int) *FileOpener {
	return &FileOpener{
		root:       root,
		frame:      frame,
		extensions: defaultExtensions,
	}
}

// OpenStream opens the named file decoded and resampled to the channel
// format. Entries without an extension are probed against the known
// decoder extensions, so playlists can name files the way dialplans do.
func (o *FileOpener) OpenStream(name string, format audio.Format) (pbx.Stream, error) {
	if format.SampleRate <= 0 {
		return nil, errors.Newf("invalid channel format %s", format)
	}

	path := name
	if o.root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(o.root, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		found := false
		for _, e := range o.extensions {
			if _, err := os.Stat(path + e); err == nil {
				path, ext = path+e, e
				found = true
				break
			}
		}
		if !found {
			return nil, errors.Newf("no media found for %q", name)
		}
	}

	decode, ok := decoders[ext]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%s", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %q", path)
	}

	src, srcFormat, err := decode(f)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "decode %q", path)
	}

	dstRate := beep.SampleRate(format.SampleRate)
	var streamer beep.Streamer = src
	if srcFormat.SampleRate != dstRate {
		streamer = beep.Resample(4, srcFormat.SampleRate, dstRate, src)
	}

	return &fileStream{
		src:      src,
		streamer: streamer,
		srcRate:  srcFormat.SampleRate,
		dstRate:  dstRate,
		frame:    o.frame,
		format:   format,
	}, nil
}

// fileStream adapts a decoded beep stream to the channel stream interface,
// tracking position in channel-format samples.
type fileStream struct {
	src      beep.StreamSeekCloser
	streamer beep.Streamer
	srcRate  beep.SampleRate
	dstRate  beep.SampleRate
	frame    int
	format   audio.Format
	pos      int
}

func (s *fileStream) ReadFrame() (*audio.Frame, error) {
	buf := make([][2]float64, s.frame)
	n, ok := s.streamer.Stream(buf)
	if n == 0 && !ok {
		if err := s.src.Err(); err != nil {
			return nil, errors.Wrap(err, "stream failed")
		}
		return nil, io.EOF
	}
	s.pos += n
	return &audio.Frame{Format: s.format, Data: buf[:n]}, nil
}

func (s *fileStream) SeekSample(offset int) error {
	srcPos := offset
	if s.srcRate != s.dstRate {
		srcPos = int(int64(offset) * int64(s.srcRate) / int64(s.dstRate))
	}
	if l := s.src.Len(); srcPos > l {
		srcPos = l
	}
	if err := s.src.Seek(srcPos); err != nil {
		return errors.Wrapf(err, "seek to sample %d", offset)
	}
	s.pos = offset
	return nil
}

func (s *fileStream) Position() int {
	return s.pos
}

func (s *fileStream) Close() error {
	return s.src.Close()
}
