// Package cli holds the setup shared by the commands: flags, logging and
// opening a camera.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/dialup-inc/gphoto2"
	"github.com/dialup-inc/gphoto2/internal/config"
	"github.com/dialup-inc/gphoto2/internal/logging"
	"github.com/dialup-inc/gphoto2/vcamera"
)

// Env is what a command gets after Setup.
type Env struct {
	Config config.Config
	Log    zerolog.Logger
	// Ctx is cancelled on SIGINT or SIGTERM.
	Ctx context.Context

	stop      context.CancelFunc
	nativeLog *gphoto2.LogSubscription
	closers   []io.Closer
}

// Setup loads the configuration, parses the command line and configures
// logging. register can add command specific flags.
func Setup(register func(fs *flag.FlagSet, cfg *config.Config)) (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	fs := flag.CommandLine
	cfg.RegisterFlags(fs)
	if register != nil {
		register(fs, &cfg)
	}
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.Setup(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	if cfg.VCameraDir != "" {
		if err := vcamera.SetEnv(cfg.VCameraDir); err != nil {
			return nil, err
		}
	}

	env := &Env{Config: cfg, Log: logger}
	env.Ctx, env.stop = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if cfg.NativeLog {
		level := gphoto2.LogVerbose
		if logger.GetLevel() <= zerolog.DebugLevel {
			level = gphoto2.LogDebug
		}
		env.nativeLog, err = gphoto2.LogToZerolog(level, logger.With().Str("source", "libgphoto2").Logger())
		if err != nil {
			env.Close()
			return nil, fmt.Errorf("native log: %w", err)
		}
	}

	return env, nil
}

// Track makes Close, and so Fatal, release c. Tracked values are closed
// in reverse order.
func (e *Env) Track(c io.Closer) {
	e.closers = append(e.closers, c)
}

// Close releases what Setup, OpenCamera and Track acquired.
func (e *Env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			e.Log.Warn().Err(err).Msg("close")
		}
	}
	e.closers = nil

	if e.nativeLog != nil {
		e.nativeLog.Close()
		if n := e.nativeLog.Dropped(); n > 0 {
			e.Log.Warn().Uint64("lines", n).Msg("dropped native log lines")
		}
	}
	e.stop()
}

// OpenCamera creates a context and opens the configured camera, or the
// first one found.
func (e *Env) OpenCamera() (*gphoto2.Context, *gphoto2.Camera, error) {
	gctx, err := gphoto2.NewContext()
	if err != nil {
		return nil, nil, err
	}
	gctx.SetErrorFunc(func(text string) {
		e.Log.Error().Str("source", "libgphoto2").Msg(text)
	})
	gctx.SetStatusFunc(func(text string) {
		e.Log.Debug().Str("source", "libgphoto2").Msg(text)
	})
	gctx.SetMessageFunc(func(text string) {
		e.Log.Info().Str("source", "libgphoto2").Msg(text)
	})

	var cam *gphoto2.Camera
	if e.Config.Autodetect() {
		cam, err = gctx.AutodetectCamera(e.Ctx)
	} else {
		cam, err = gctx.Camera(e.Ctx, gphoto2.CameraDescriptor{
			Model: e.Config.CameraModel,
			Port:  e.Config.CameraPort,
		})
	}
	if err != nil {
		gctx.Close()
		return nil, nil, fmt.Errorf("open camera: %w", err)
	}

	e.Track(gctx)
	e.Track(cam)
	return gctx, cam, nil
}

// Fatal logs err, closes everything the Env tracks and exits.
func (e *Env) Fatal(err error) {
	e.Log.Error().Err(err).Msg("fatal")
	e.Close()
	os.Exit(1)
}

// Preview grabs one preview frame from cam.
func Preview(ctx context.Context, cam *gphoto2.Camera) ([]byte, error) {
	file, err := cam.CapturePreview(ctx)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return file.Data(ctx)
}
