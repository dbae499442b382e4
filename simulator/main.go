package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rook-computer/fbsplash/internal/app"
	"github.com/rook-computer/fbsplash/internal/config"
	"github.com/rook-computer/fbsplash/internal/ppm"
	"github.com/rook-computer/fbsplash/internal/render"
	"github.com/rook-computer/fbsplash/internal/system"
	"github.com/rook-computer/fbsplash/internal/trigger"
)

func main() {
	width := flag.Int("width", 800, "simulated screen width")
	height := flag.Int("height", 480, "simulated screen height")
	bpp := flag.Int("bpp", 32, "simulated bits per pixel (16 or 32)")
	outDir := flag.String("out", "./frames", "directory for frame-NNN.png files")
	interval := flag.Duration("interval", 0, "advance automatically at this interval (0: only on SIGUSR1)")
	scale := flag.Float64("scale", 1, "scale written frames by this factor")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [simulator flags] [--] [fbsplash flags] <image.ppm> <bar_width> <bar_height> <step_count> [<bottom_margin>]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Parse("simulator", flag.Args(), os.Getenv)
	if err != nil {
		fmt.Println("config error:", err)
		flag.Usage()
		os.Exit(1)
	}

	var logger app.Logger = app.NewFileLogger(os.Stdout)
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Println("output dir error:", err)
		os.Exit(1)
	}

	img, err := ppm.Load(cfg.ImagePath)
	if err != nil {
		fmt.Println("image error:", err)
		os.Exit(1)
	}

	surface := render.NewSurface(*width, *height, *bpp)
	ctrl, err := app.New(surface, img, cfg.Style)
	if err != nil {
		fmt.Println("session error:", err)
		os.Exit(1)
	}
	ctrl.Logger = logger

	frames := &frameWriter{Dir: *outDir, Scale: *scale}
	ctrl.AfterPaint = func(percent int) {
		path, err := frames.Write(surface)
		if err != nil {
			logger.Errorf("sim", "frame at %d%%: %v", percent, err)
			return
		}
		logger.Infof("sim", "frame %s (%d%%)", path, percent)
	}
	ctrl.Release = func() error {
		logger.Infof("sim", "%d frames written to %s", frames.Count(), *outDir)
		return nil
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	queue := trigger.NewQueue()
	defer queue.Close()
	stopSignals := trigger.NotifySignals(queue, system.AdvanceSignals()...)
	defer stopSignals()
	if *interval > 0 {
		go tick(processCtx, queue, *interval)
	}

	if err := ctrl.Start(); err != nil {
		fmt.Println("start error:", err)
		os.Exit(1)
	}
	fmt.Printf("Simulator running as pid %d: %dx%d at %d bpp\n", os.Getpid(), *width, *height, *bpp)
	fmt.Printf("Advance with: kill -USR1 %d\n", os.Getpid())

	if err := ctrl.Run(processCtx, queue.C()); err != nil {
		fmt.Println("run error:", err)
		os.Exit(1)
	}
}

func tick(ctx context.Context, queue *trigger.Queue, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			queue.Push()
		}
	}
}
