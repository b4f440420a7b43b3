package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/blogicum-next/internal/config"
)

type fakeService struct {
	name     string
	startErr error
	stopErr  error
	block    bool
	stopped  atomic.Bool
	stopLog  *[]string
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(ctx context.Context) error {
	if s.block {
		<-ctx.Done()
		return nil
	}
	return s.startErr
}

func (s *fakeService) Stop(context.Context) error {
	s.stopped.Store(true)
	if s.stopLog != nil {
		*s.stopLog = append(*s.stopLog, s.name)
	}
	return s.stopErr
}

func TestRunnerStopsAllServicesWhenOneFails(t *testing.T) {
	wantErr := errors.New("listen failed")
	failing := &fakeService{name: "http", startErr: wantErr}
	blocking := &fakeService{name: "worker", block: true}

	err := NewRunner(failing, blocking).Run(context.Background(), time.Second, nil)
	if !errors.Is(err, wantErr) {
		t.Fatalf("want %v got %v", wantErr, err)
	}
	if !failing.stopped.Load() || !blocking.stopped.Load() {
		t.Fatalf("all services should be stopped")
	}
}

func TestRunnerCancelledContextIsNotAnError(t *testing.T) {
	svc := &fakeService{name: "http", block: true}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewRunner(svc).Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("cancelled run should return nil, got %v", err)
	}
}

func TestRunnerWithoutServices(t *testing.T) {
	if err := NewRunner().Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("expected error for empty runner")
	}
}

func TestBuildRunnerRejectsUnknownMode(t *testing.T) {
	if _, _, err := BuildRunner(&config.Config{}, "cron"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	if _, _, err := BuildRunner(nil, ModeAll); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestNormalizeOptionsDefaults(t *testing.T) {
	opts := normalizeOptions(Options{})
	if opts.Mode != ModeAll {
		t.Fatalf("default mode want %s got %s", ModeAll, opts.Mode)
	}
	if opts.ShutdownTimeout != 10*time.Second {
		t.Fatalf("default shutdown timeout want 10s got %s", opts.ShutdownTimeout)
	}
	if opts.Logger == nil {
		t.Fatalf("default logger should be set")
	}
}

func TestRunnerStopsInReverseOrderAndJoinsErrors(t *testing.T) {
	var order []string
	stopErr := errors.New("flush failed")
	first := &fakeService{name: "http", block: true, stopLog: &order}
	second := &fakeService{name: "worker", block: true, stopErr: stopErr, stopLog: &order}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewRunner(first, nil, second).Run(ctx, time.Second, nil)
	if !errors.Is(err, stopErr) {
		t.Fatalf("stop error should be reported, got %v", err)
	}
	if len(order) != 2 || order[0] != "worker" || order[1] != "http" {
		t.Fatalf("unexpected stop order %v", order)
	}
}
