package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rook-computer/fbsplash/internal/config"
	"github.com/rook-computer/fbsplash/internal/ppm"
	"github.com/rook-computer/fbsplash/internal/render"
	"github.com/rook-computer/fbsplash/internal/state"
	"github.com/rook-computer/fbsplash/internal/trigger"
)

type session struct {
	ctrl     *Controller
	surface  *render.Surface
	releases int
	painted  []int
}

func builtinStyle(t *testing.T) render.ProgressBarStyle {
	t.Helper()
	style, err := config.LoadStyle("")
	if err != nil {
		t.Fatalf("built-in style: %v", err)
	}
	return style
}

func newSession(t *testing.T, steps, bpp int) *session {
	t.Helper()
	style := builtinStyle(t)
	style.Width = 120
	style.Height = 12
	style.StepCount = steps

	s := &session{surface: render.NewSurface(200, 100, bpp)}
	img := &ppm.Image{Width: 2, Height: 2, Pix: []byte{255, 0, 0, 255, 0, 0, 255, 0, 0, 255, 0, 0}}
	ctrl, err := New(s.surface, img, style)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctrl.Release = func() error {
		s.releases++
		return nil
	}
	ctrl.AfterPaint = func(percent int) { s.painted = append(s.painted, percent) }
	s.ctrl = ctrl
	return s
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestController_TenTriggersComplete(t *testing.T) {
	s := newSession(t, 10, 32)
	if err := s.ctrl.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := s.surface.RGBAt(100, 50); got != 0xFF0000 {
		t.Fatalf("expected image pixel at the center, got %#06x", got)
	}
	if st := s.ctrl.State(); st.Phase != state.IDLE || st.Percent != 0 {
		t.Fatalf("expected Idle(0) after start, got %+v", st)
	}

	for i := 1; i <= 10; i++ {
		done, err := s.ctrl.HandleTrigger()
		if err != nil {
			t.Fatalf("trigger %d: %v", i, err)
		}
		if done != (i == 10) {
			t.Fatalf("trigger %d: unexpected done=%v", i, done)
		}
		if i < 10 && s.releases != 0 {
			t.Fatalf("trigger %d: released early", i)
		}
	}

	want := []int{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	if !equalInts(s.painted, want) {
		t.Fatalf("expected paints %v, got %v", want, s.painted)
	}
	if s.releases != 1 {
		t.Fatalf("expected exactly one teardown, got %d", s.releases)
	}
	if st := s.ctrl.State(); st.Phase != state.COMPLETE {
		t.Fatalf("expected complete, got %+v", st)
	}

	// Late triggers and explicit teardown change nothing.
	if done, err := s.ctrl.HandleTrigger(); !done || err != nil {
		t.Fatalf("expected late trigger to be a no-op, got %v %v", done, err)
	}
	s.ctrl.Teardown()
	if s.releases != 1 || len(s.painted) != len(want) {
		t.Fatalf("late calls had effects: releases=%d paints=%v", s.releases, s.painted)
	}
}

func TestController_ThreeStepsTruncate(t *testing.T) {
	s := newSession(t, 3, 16)
	if err := s.ctrl.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	for {
		done, err := s.ctrl.HandleTrigger()
		if err != nil {
			t.Fatalf("trigger: %v", err)
		}
		if done {
			break
		}
		if len(s.painted) > 10 {
			t.Fatalf("no completion, paints %v", s.painted)
		}
	}
	want := []int{0, 33, 66, 99, 100}
	if !equalInts(s.painted, want) {
		t.Fatalf("expected paints %v, got %v", want, s.painted)
	}
	if s.releases != 1 {
		t.Fatalf("expected one teardown, got %d", s.releases)
	}
}

func TestController_RunDrainsQueue(t *testing.T) {
	s := newSession(t, 4, 32)
	if err := s.ctrl.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	q := trigger.NewQueue()
	defer q.Close()
	// Extra triggers beyond completion must be ignored.
	for i := 0; i < 6; i++ {
		q.Push()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.ctrl.Run(ctx, q.C()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !equalInts(s.painted, []int{0, 25, 50, 75, 100}) {
		t.Fatalf("unexpected paints %v", s.painted)
	}
	if s.releases != 1 {
		t.Fatalf("expected one teardown, got %d", s.releases)
	}
}

func TestController_RunCancelledTearsDown(t *testing.T) {
	s := newSession(t, 10, 32)
	if err := s.ctrl.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.ctrl.Run(ctx, make(chan struct{})); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if s.releases != 1 {
		t.Fatalf("expected one teardown, got %d", s.releases)
	}
}

func TestController_TriggerAfterEarlyTeardownIsNoop(t *testing.T) {
	s := newSession(t, 10, 32)
	if err := s.ctrl.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.ctrl.Run(ctx, make(chan struct{})); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	done, err := s.ctrl.HandleTrigger()
	if !done || err != nil {
		t.Fatalf("expected released session to report done, got %v %v", done, err)
	}
	if got := s.ctrl.State(); got.Phase != state.IDLE || got.Percent != 0 {
		t.Fatalf("expected progress untouched, got %+v", got)
	}
	if !equalInts(s.painted, []int{0}) {
		t.Fatalf("expected no paint after teardown, got %v", s.painted)
	}
	if s.releases != 1 {
		t.Fatalf("expected one teardown, got %d", s.releases)
	}
}

func TestController_RunClosedTriggers(t *testing.T) {
	s := newSession(t, 10, 32)
	if err := s.ctrl.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	triggers := make(chan struct{}, 2)
	triggers <- struct{}{}
	close(triggers)
	if err := s.ctrl.Run(context.Background(), triggers); !errors.Is(err, ErrTriggersClosed) {
		t.Fatalf("expected ErrTriggersClosed, got %v", err)
	}
	if !equalInts(s.painted, []int{0, 10}) {
		t.Fatalf("unexpected paints %v", s.painted)
	}
	if s.releases != 1 {
		t.Fatalf("expected one teardown, got %d", s.releases)
	}
}

func TestController_UnsupportedFormatTearsDown(t *testing.T) {
	s := newSession(t, 10, 24)
	err := s.ctrl.Start()
	if !errors.Is(err, render.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if s.releases != 1 {
		t.Fatalf("expected one teardown on the error path, got %d", s.releases)
	}
	s.ctrl.Teardown()
	if s.releases != 1 {
		t.Fatalf("expected teardown to stay single, got %d", s.releases)
	}
	if len(s.painted) != 0 {
		t.Fatalf("expected no paints, got %v", s.painted)
	}
}

func TestController_TeardownReturnsReleaseError(t *testing.T) {
	s := newSession(t, 1, 32)
	boom := errors.New("munmap failed")
	s.ctrl.Release = func() error { return boom }
	if err := s.ctrl.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	done, err := s.ctrl.HandleTrigger()
	if !done || err != nil {
		t.Fatalf("expected completion despite release error, got %v %v", done, err)
	}
	if err := s.ctrl.Teardown(); !errors.Is(err, boom) {
		t.Fatalf("expected release error to be kept, got %v", err)
	}
}

func TestNew_RejectsZeroSteps(t *testing.T) {
	style := builtinStyle(t)
	if _, err := New(render.NewSurface(1, 1, 32), nil, style); err == nil {
		t.Fatalf("expected error for zero steps")
	}
}

func TestFileLogger(t *testing.T) {
	var b strings.Builder
	logger := NewFileLogger(&b)
	logger.Infof("render", "progress %d%%", 40)
	logger.Errorf("fb", "boom")
	out := b.String()
	if !strings.Contains(out, " [INFO] render: progress 40%\n") {
		t.Fatalf("unexpected info line: %q", out)
	}
	if !strings.Contains(out, " [ERROR] fb: boom\n") {
		t.Fatalf("unexpected error line: %q", out)
	}
}
