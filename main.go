package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rook-computer/fbsplash/internal/app"
	"github.com/rook-computer/fbsplash/internal/config"
	"github.com/rook-computer/fbsplash/internal/ppm"
	"github.com/rook-computer/fbsplash/internal/system"
	"github.com/rook-computer/fbsplash/internal/trigger"
)

func main() {
	os.Exit(run(os.Args, os.Getenv))
}

func run(args []string, getenv func(string) string) int {
	name := filepath.Base(args[0])

	// Register for SIGUSR1 before anything slow: an early trigger must be
	// queued, not take the default action and kill us.
	queue := trigger.NewQueue()
	defer queue.Close()
	stopSignals := trigger.NotifySignals(queue, system.AdvanceSignals()...)
	defer stopSignals()

	cfg, err := config.Parse(name, args[1:], getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		config.Usage(os.Stderr, name, getenv)
		return 1
	}

	// Best-effort: the console is in graphics mode while we run, so crashes
	// are only diagnosable from a file.
	if err := system.RedirectStdIO(cfg.StdioLog); err != nil {
		fmt.Fprintln(os.Stderr, "stdio log redirect error:", err)
	}

	logger, closeLog := newLogger(cfg)
	defer closeLog()

	img, err := ppm.Load(cfg.ImagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		return 1
	}
	logger.Infof("main", "image %s decoded, %dx%d", cfg.ImagePath, img.Width, img.Height)

	fb, err := system.OpenFramebuffer(cfg.Device)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		return 1
	}
	logger.Infof("fb", "%s open: id=%q %dx%d %d bpp stride=%d",
		cfg.Device, fb.Info.ID, fb.Info.Width, fb.Info.Height, fb.Info.BitsPerPixel, fb.Info.Stride)

	console := &system.Console{Logger: logger}
	if cfg.GraphicsMode {
		console.Acquire()
	}

	ctrl, err := app.New(fb.Surface(), img, cfg.Style)
	if err != nil {
		_ = fb.Close()
		console.Release()
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		return 1
	}
	ctrl.Logger = logger
	ctrl.Release = func() error {
		if cfg.CapturePath != "" {
			if err := system.CaptureFramebuffer(cfg.Device, cfg.CapturePath); err != nil {
				logger.Errorf("fb", "capture failed: %v", err)
			} else {
				logger.Infof("fb", "final frame saved to %s", cfg.CapturePath)
			}
		}
		err := fb.Close()
		console.Release()
		return err
	}
	defer ctrl.Teardown()

	if err := ctrl.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.AbortKey {
		system.WatchAbortKey(ctx, logger, cancel, system.KeyEsc, system.KeyF4)
	}
	if err := ctrl.Run(ctx, queue.C()); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		return 1
	}
	return 0
}

func newLogger(cfg config.Config) (app.Logger, func()) {
	if cfg.DebugLog != "" {
		f, err := os.OpenFile(cfg.DebugLog, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "debug log open error:", err)
			return app.NoopLogger{}, func() {}
		}
		logger := app.NewFileLogger(f)
		logger.Infof("main", "debug logging enabled")
		return logger, func() { _ = f.Close() }
	}
	if cfg.Debug {
		return app.NewFileLogger(os.Stderr), func() {}
	}
	return app.NoopLogger{}, func() {}
}
