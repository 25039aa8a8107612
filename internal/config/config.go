// Package config holds the settings shared by the commands. Values come
// from the environment and can be overridden by flags.
package config

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
)

// Environment variables read by Load.
const (
	EnvLogLevel     = "GPHOTO2_LOG_LEVEL"
	EnvCameraModel  = "GPHOTO2_CAMERA_MODEL"
	EnvCameraPort   = "GPHOTO2_CAMERA_PORT"
	EnvLiveviewAddr = "GPHOTO2_LIVEVIEW_ADDR"
	EnvPreviewFPS   = "GPHOTO2_PREVIEW_FPS"
	EnvVCameraDir   = "VCAMERADIR"
)

// Config is the command configuration.
type Config struct {
	// LogLevel is a zerolog level name.
	LogLevel string
	// NativeLog forwards libgphoto2's own log lines when set.
	NativeLog bool

	// CameraModel and CameraPort select a camera. Both empty means
	// autodetect.
	CameraModel string
	CameraPort  string

	LiveviewAddr string
	PreviewFPS   float64

	VCameraDir string
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LogLevel:     "info",
		LiveviewAddr: ":8080",
		PreviewFPS:   10,
	}
}

// Load returns Default overridden by the environment. The result is not
// validated, since flags may still complete it.
func Load() (Config, error) {
	cfg := Default()

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	cfg.CameraModel = os.Getenv(EnvCameraModel)
	cfg.CameraPort = os.Getenv(EnvCameraPort)
	if v := os.Getenv(EnvLiveviewAddr); v != "" {
		cfg.LiveviewAddr = v
	}
	if v := os.Getenv(EnvPreviewFPS); v != "" {
		fps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("config: %s: %w", EnvPreviewFPS, err)
		}
		cfg.PreviewFPS = fps
	}
	cfg.VCameraDir = os.Getenv(EnvVCameraDir)

	return cfg, nil
}

// RegisterFlags binds the common flags to cfg. Call it after Load so the
// environment provides the defaults.
func (cfg *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")
	fs.BoolVar(&cfg.NativeLog, "native-log", cfg.NativeLog, "forward libgphoto2 log lines")
	fs.StringVar(&cfg.CameraModel, "model", cfg.CameraModel, "camera model, as printed by list-cameras")
	fs.StringVar(&cfg.CameraPort, "port", cfg.CameraPort, "camera port, e.g. usb:001,004")
	fs.StringVar(&cfg.VCameraDir, "vcamera-dir", cfg.VCameraDir, "serve a virtual camera from this directory")
}

// RegisterPreviewFlags binds the live preview flags to cfg.
func (cfg *Config) RegisterPreviewFlags(fs *flag.FlagSet) {
	fs.StringVar(&cfg.LiveviewAddr, "addr", cfg.LiveviewAddr, "address to listen on")
	fs.Float64Var(&cfg.PreviewFPS, "fps", cfg.PreviewFPS, "preview frames per second")
}

// Validate checks values that flags and the environment can't constrain.
func (cfg Config) Validate() error {
	if (cfg.CameraModel == "") != (cfg.CameraPort == "") {
		return fmt.Errorf("config: camera model and port must be set together")
	}
	if math.IsNaN(cfg.PreviewFPS) || math.IsInf(cfg.PreviewFPS, 0) || cfg.PreviewFPS <= 0 {
		return fmt.Errorf("config: preview fps must be positive, got %g", cfg.PreviewFPS)
	}
	if cfg.PreviewInterval() <= 0 {
		return fmt.Errorf("config: preview fps %g is too high", cfg.PreviewFPS)
	}
	return nil
}

// PreviewInterval is the time between two preview frames.
func (cfg Config) PreviewInterval() time.Duration {
	return time.Duration(float64(time.Second) / cfg.PreviewFPS)
}

// Autodetect reports whether the first detected camera should be used.
func (cfg Config) Autodetect() bool {
	return cfg.CameraModel == ""
}
