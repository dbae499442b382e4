package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/rook-computer/fbsplash/internal/render"
	"github.com/rook-computer/fbsplash/internal/system"
)

// ErrUsage reports bad command line arguments or configuration values.
var ErrUsage = errors.New("invalid arguments")

const (
	EnvDevice       = "FBSPLASH_DEVICE"
	EnvStyle        = "FBSPLASH_STYLE"
	EnvDebugLog     = "FBSPLASH_DEBUG_LOG"
	EnvStdioLog     = "FBSPLASH_STDIO_LOG"
	EnvGraphicsMode = "FBSPLASH_GRAPHICS_MODE"
)

const positionalUsage = "<image.ppm> <bar_width> <bar_height> <step_count> [<bottom_margin>]"

// Config is everything a splash session needs, resolved from flags,
// environment and the style file.
type Config struct {
	ImagePath string
	Style     render.ProgressBarStyle

	Device       string
	StylePath    string
	Debug        bool
	DebugLog     string
	StdioLog     string
	GraphicsMode bool
	CapturePath  string
	AbortKey     bool
}

// Parse reads args (without the program name). getenv supplies flag
// defaults; pass os.Getenv.
func Parse(name string, args []string, getenv func(string) string) (Config, error) {
	defaults, err := defaultsFromEnv(getenv)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults
	fs := newFlagSet(name, &cfg)
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	pos := fs.Args()
	if len(pos) < 4 || len(pos) > 5 {
		return Config{}, fmt.Errorf("%w: expected %s", ErrUsage, positionalUsage)
	}
	cfg.ImagePath = pos[0]

	style, err := LoadStyle(cfg.StylePath)
	if err != nil {
		return Config{}, err
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"bar_width", &style.Width},
		{"bar_height", &style.Height},
		{"step_count", &style.StepCount},
		{"bottom_margin", &style.BottomMargin},
	}
	for i, raw := range pos[1:] {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s must be an integer (got %q)", ErrUsage, ints[i].name, raw)
		}
		*ints[i].dst = v
	}

	cfg.Style = style
	if err := ValidateStyle(cfg.Style); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ValidateStyle checks the values a session cannot run with.
func ValidateStyle(s render.ProgressBarStyle) error {
	switch {
	case s.Width <= 0:
		return fmt.Errorf("%w: bar_width must be positive (got %d)", ErrUsage, s.Width)
	case s.Height <= 0:
		return fmt.Errorf("%w: bar_height must be positive (got %d)", ErrUsage, s.Height)
	case s.StepCount <= 0:
		return fmt.Errorf("%w: step_count must be positive (got %d)", ErrUsage, s.StepCount)
	case s.BottomMargin < 0:
		return fmt.Errorf("%w: bottom_margin must not be negative (got %d)", ErrUsage, s.BottomMargin)
	case s.BorderWidth < 0 || s.Margin < 0 || s.CornerRadius < 0:
		return fmt.Errorf("%w: border_width, margin and corner_radius must not be negative", ErrUsage)
	}
	return nil
}

// Usage writes the command synopsis and flag defaults to w.
func Usage(w io.Writer, name string, getenv func(string) string) {
	cfg, err := defaultsFromEnv(getenv)
	if err != nil {
		cfg = Config{Device: system.DefaultDevice, GraphicsMode: true}
	}
	fmt.Fprintf(w, "Usage: %s [flags] %s\n", name, positionalUsage)
	fs := newFlagSet(name, &cfg)
	fs.SetOutput(w)
	fs.PrintDefaults()
}

func defaultsFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Device:       getenv(EnvDevice),
		StylePath:    getenv(EnvStyle),
		DebugLog:     getenv(EnvDebugLog),
		StdioLog:     getenv(EnvStdioLog),
		GraphicsMode: true,
	}
	if cfg.Device == "" {
		cfg.Device = system.DefaultDevice
	}
	if raw := getenv(EnvGraphicsMode); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s must be a boolean (got %q): %v", ErrUsage, EnvGraphicsMode, raw, err)
		}
		cfg.GraphicsMode = parsed
	}
	return cfg, nil
}

func newFlagSet(name string, cfg *Config) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.Device, "device", cfg.Device, "framebuffer device; also configurable via "+EnvDevice)
	fs.StringVar(&cfg.StylePath, "style", cfg.StylePath, "YAML file overriding the built-in bar style; also configurable via "+EnvStyle)
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging to stderr (or -debug-log)")
	fs.StringVar(&cfg.DebugLog, "debug-log", cfg.DebugLog, "append debug log to this file; also configurable via "+EnvDebugLog)
	fs.StringVar(&cfg.StdioLog, "stdio-log", cfg.StdioLog, "redirect stdout+stderr (including panics) to this file; also configurable via "+EnvStdioLog)
	fs.BoolVar(&cfg.GraphicsMode, "graphics-mode", cfg.GraphicsMode, "switch the console to graphics mode while the splash runs; also configurable via "+EnvGraphicsMode)
	fs.StringVar(&cfg.CapturePath, "capture", cfg.CapturePath, "save the final frame as PNG before exiting")
	fs.BoolVar(&cfg.AbortKey, "abort-key", cfg.AbortKey, "end the splash early when Esc or F4 is pressed on any input device")
	return fs
}
