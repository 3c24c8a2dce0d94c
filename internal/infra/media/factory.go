package media

import (
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/telium/playbg/internal/infra/config"
)

// FileOpenerConfig holds the file opener settings.
type FileOpenerConfig struct {
	Root         string   `mapstructure:"root" validate:"required"`
	FrameSamples int      `mapstructure:"frame_samples" default:"160" validate:"gt=0"`
	Extensions   []string `mapstructure:"extensions"`
}

// NewOpener creates a stream opener from configuration.
func NewOpener(cfg config.MediaConfig) (*FileOpener, error) {
	switch cfg.Type {
	case "file":
		return newFileOpenerFromSettings(cfg.Settings)
	default:
		return nil, errors.Newf("unsupported media type: %s", cfg.Type)
	}
}

func newFileOpenerFromSettings(settings map[string]any) (*FileOpener, error) {
	var cfg FileOpenerConfig
	if err := mapstructure.Decode(settings, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode settings")
	}
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	zlog.Debug().Msgf("media: file opener config: %+v", cfg)
	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "validation failed")
	}

	o := NewFileOpener(cfg.Root, cfg.FrameSamples)
	if len(cfg.Extensions) > 0 {
		o.extensions = cfg.Extensions
	}
	return o, nil
}
