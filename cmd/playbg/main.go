// Package main provides the playbg demo entry point: a single channel with
// a clock, driven through the registered scripting applications.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/telium/playbg/internal/app/playbg"
	"github.com/telium/playbg/internal/domain/audio"
	"github.com/telium/playbg/internal/infra/config"
	"github.com/telium/playbg/internal/infra/logger"
	"github.com/telium/playbg/internal/infra/media"
	"github.com/telium/playbg/internal/pbx"
)

var (
	app        = kingpin.New("playbg", "Background playlist player for PBX channels")
	configPath = app.Flag("config", "Path to config file").Default("config/playbg.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stdout)").String()

	playCmd      = app.Command("play", "Play a background playlist on a demo channel")
	playFiles    = playCmd.Arg("files", "'&'-separated list of sound files").Required().String()
	playDuration = playCmd.Flag("duration", "How long to drive the channel clock").Default("10s").Duration()
	pauseAt      = playCmd.Flag("pause-at", "Interrupt the generator after this long").Duration()
	resumeAt     = playCmd.Flag("resume-at", "Resume playback after this long").Duration()
	outPath      = playCmd.Flag("out", "Raw PCM capture path (default: discard audio)").String()

	listAppsCmd = app.Command("list-apps", "List registered applications and exit")
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	// Handle list-apps command
	if command == listAppsCmd.FullCommand() {
		playbg.NewController(nil).RegisterApplications()
		printApps()
		return
	}

	zlog.Info().Msgf("Loading config from %s", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	loggerConfig := logger.Config{
		Level:  cfg.Logging.Level,
		Output: cfg.Logging.Output,
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		zlog.Error().Msgf("playbg error: %v", err)
		os.Exit(1)
	}
}

// run executes the play command. Using a separate function ensures defer
// statements run even when returning with an error.
func run(cfg *config.Config) error {
	opener, err := media.NewOpener(cfg.Media)
	if err != nil {
		return fmt.Errorf("failed to create media opener: %w", err)
	}

	format := audio.Format{
		SampleRate: cfg.Audio.SampleRate,
		Channels:   cfg.Audio.Channels,
	}

	var sink pbx.FrameSink
	var written func() int
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w := media.NewPCMWriter(f)
		sink, written = w, w.Samples
	} else {
		d := &media.Discard{}
		sink, written = d, d.Samples
	}

	channels := pbx.NewRegistry()
	ch := channels.Create("demo/1", format, sink)
	defer func() {
		if err := channels.Remove(ch.ID()); err != nil {
			zlog.Warn().Msgf("Failed to remove channel: %v", err)
		}
	}()

	ctrl := playbg.NewController(opener)
	ctrl.RegisterApplications()
	defer ctrl.UnregisterApplications()

	// Drive everything through the registered applications, the way a
	// dialplan would.
	startApp, err := pbx.LookupApp(playbg.AppStart)
	if err != nil {
		return err
	}
	zlog.Info().Msgf("Starting background playback of %q on %s (%s)", *playFiles, ch.Name(), format)
	if err := startApp.Exec(ch, *playFiles); err != nil {
		return fmt.Errorf("failed to start playback: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *playDuration)
	defer cancel()

	if *pauseAt > 0 {
		time.AfterFunc(*pauseAt, func() {
			zlog.Info().Msg("Interrupting generator (foreground stream takes over)")
			ch.DeactivateGenerator()
		})
	}
	if *resumeAt > 0 {
		time.AfterFunc(*resumeAt, func() {
			resumeApp, err := pbx.LookupApp(playbg.AppResume)
			if err != nil {
				zlog.Error().Msgf("Resume failed: %v", err)
				return
			}
			zlog.Info().Msg("Resuming background playback")
			if err := resumeApp.Exec(ch, ""); err != nil {
				zlog.Error().Msgf("Resume failed: %v", err)
			}
		})
	}

	clock := pbx.NewClock(ch, format, cfg.Audio.FrameSamples)
	if err := clock.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	stopApp, err := pbx.LookupApp(playbg.AppStop)
	if err != nil {
		return err
	}
	if err := stopApp.Exec(ch, ""); err != nil {
		zlog.Warn().Msgf("Stop failed: %v", err)
	}

	zlog.Info().Msgf("Done: %d samples (%.1fs of audio) written", written(), float64(written())/float64(format.SampleRate))
	return nil
}

// printApps prints registered applications.
func printApps() {
	fmt.Println("Available Applications:")
	for _, a := range pbx.RegisteredApps() {
		fmt.Printf("  %-16s - %s\n", a.Name, a.Synopsis)
	}
}
