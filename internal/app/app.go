package app

import (
	"context"
	"errors"
	"sync"

	"github.com/rook-computer/fbsplash/internal/ppm"
	"github.com/rook-computer/fbsplash/internal/render"
	"github.com/rook-computer/fbsplash/internal/state"
)

// ErrTriggersClosed is returned by Run when the trigger source goes away
// before the bar completes.
var ErrTriggersClosed = errors.New("trigger source closed before completion")

// Controller owns one splash session: the surface, the decoded image, the
// bar style and the progress. All painting happens on the goroutine that
// calls Start, HandleTrigger or Run; none of them may be called
// concurrently.
type Controller struct {
	Surface render.Canvas
	Image   *ppm.Image
	Style   render.ProgressBarStyle
	Logger  Logger

	// Release frees the surface and device. Teardown calls it exactly once.
	Release func() error
	// AfterPaint runs after every successful bar paint.
	AfterPaint func(percent int)

	progress *state.Progress

	teardownOnce sync.Once
	teardownErr  error
	released     bool
}

func New(surface render.Canvas, img *ppm.Image, style render.ProgressBarStyle) (*Controller, error) {
	progress, err := state.NewProgress(style.StepCount)
	if err != nil {
		return nil, err
	}
	return &Controller{
		Surface:  surface,
		Image:    img,
		Style:    style,
		Logger:   NoopLogger{},
		progress: progress,
	}, nil
}

// State returns the current progress.
func (c *Controller) State() state.State { return c.progress.Snapshot() }

// Start paints the image and the empty bar. On failure the session is
// torn down before the error is returned.
func (c *Controller) Start() error {
	width, height := c.Surface.Size()
	c.Logger.Infof("render", "surface %dx%d at %d bpp", width, height, c.Surface.BitsPerPixel())

	if c.Image != nil {
		if err := render.BlitCentered(c.Surface, c.Image); err != nil {
			c.Logger.Errorf("render", "image blit failed: %v", err)
			c.Teardown()
			return err
		}
		c.Logger.Infof("render", "image %dx%d blitted", c.Image.Width, c.Image.Height)
	}
	return c.paint(c.progress.Snapshot().Percent)
}

// HandleTrigger advances the bar by one step and repaints it. done is true
// once the session has been torn down, by completion or otherwise.
// Triggers after teardown do nothing.
func (c *Controller) HandleTrigger() (done bool, err error) {
	if c.released || c.progress.Snapshot().Phase == state.COMPLETE {
		return true, nil
	}
	percent, complete := c.progress.Advance()
	if err := c.paint(percent); err != nil {
		return false, err
	}
	if !complete {
		return false, nil
	}
	c.Logger.Infof("app", "progress complete")
	if err := c.Teardown(); err != nil {
		c.Logger.Errorf("app", "teardown: %v", err)
	}
	return true, nil
}

// Run handles triggers one at a time, in arrival order, until the bar
// completes. Every exit path tears the session down.
func (c *Controller) Run(ctx context.Context, triggers <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			c.Teardown()
			return ctx.Err()
		case _, ok := <-triggers:
			if !ok {
				c.Teardown()
				return ErrTriggersClosed
			}
			done, err := c.HandleTrigger()
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// Teardown releases the session's resources. Only the first call does
// anything; later calls return the first result.
func (c *Controller) Teardown() error {
	c.teardownOnce.Do(func() {
		if c.Release != nil {
			c.teardownErr = c.Release()
		}
		c.Surface = nil
		c.Image = nil
		c.released = true
		c.Logger.Infof("app", "session released")
	})
	return c.teardownErr
}

func (c *Controller) paint(percent int) error {
	if err := render.PaintProgressBar(c.Surface, c.Style, percent); err != nil {
		c.Logger.Errorf("render", "progress paint at %d%% failed: %v", percent, err)
		c.Teardown()
		return err
	}
	c.Logger.Infof("render", "progress %d%%", percent)
	if c.AfterPaint != nil {
		c.AfterPaint(percent)
	}
	return nil
}
