package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const (
	resolveTimeout = 5 * time.Second
	ignoreWindow   = 250 * time.Millisecond
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("jpeg"), 0o644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

func waitResolved(t *testing.T, p *Pending) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()
	if err := p.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}

func waitIgnored(t *testing.T, p *Pending) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), ignoreWindow)
	defer cancel()
	err := p.Wait(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected wait to stay blocked, got %v", err)
	}
}

func TestWaitResolvesOnTargetCreation(t *testing.T) {
	dir := t.TempDir()
	w := New(nil)

	p, err := w.Arm(dir, "target.jpg")
	if err != nil {
		t.Fatalf("Arm: %v", err)
	}
	defer p.Disarm()

	touch(t, filepath.Join(dir, "target.jpg"))
	waitResolved(t, p)
}

func TestNonMatchingCreationIgnored(t *testing.T) {
	dir := t.TempDir()
	w := New(nil)

	p, err := w.Arm(dir, "target.jpg")
	if err != nil {
		t.Fatalf("Arm: %v", err)
	}
	defer p.Disarm()

	touch(t, filepath.Join(dir, "other.jpg"))
	waitIgnored(t, p)
}

func TestSubdirectoryCreationIgnored(t *testing.T) {
	dir := t.TempDir()
	w := New(nil)

	p, err := w.Arm(dir, "target.jpg")
	if err != nil {
		t.Fatalf("Arm: %v", err)
	}
	defer p.Disarm()

	if err := os.Mkdir(filepath.Join(dir, "target.jpg"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	waitIgnored(t, p)
}

func TestPreexistingFileNeverMatches(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "target.jpg"))

	w := New(nil)
	p, err := w.Arm(dir, "target.jpg")
	if err != nil {
		t.Fatalf("Arm: %v", err)
	}
	defer p.Disarm()

	waitIgnored(t, p)
}

func TestSingleFlight(t *testing.T) {
	dir := t.TempDir()
	w := New(nil)

	p, err := w.Arm(dir, "target.jpg")
	if err != nil {
		t.Fatalf("Arm: %v", err)
	}
	if _, err := w.Arm(dir, "second.jpg"); !errors.Is(err, ErrAlreadyArmed) {
		t.Fatalf("expected ErrAlreadyArmed, got %v", err)
	}

	p.Disarm()
	p2, err := w.Arm(dir, "second.jpg")
	if err != nil {
		t.Fatalf("Arm after Disarm: %v", err)
	}
	p2.Disarm()
}

func TestResolveThenRearm(t *testing.T) {
	dir := t.TempDir()
	w := New(nil)

	p, err := w.Arm(dir, "first.jpg")
	if err != nil {
		t.Fatalf("Arm: %v", err)
	}
	touch(t, filepath.Join(dir, "first.jpg"))
	waitResolved(t, p)
	// Resolution alone does not release the slot; Disarm does.
	p.Disarm()

	p2, err := w.Arm(dir, "second.jpg")
	if err != nil {
		t.Fatalf("re-Arm: %v", err)
	}
	defer p2.Disarm()
	touch(t, filepath.Join(dir, "second.jpg"))
	waitResolved(t, p2)
}

func TestWaitReturnsOnCancellation(t *testing.T) {
	dir := t.TempDir()
	w := New(nil)

	p, err := w.Arm(dir, "target.jpg")
	if err != nil {
		t.Fatalf("Arm: %v", err)
	}
	defer p.Disarm()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	if err := p.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDisarmIdempotent(t *testing.T) {
	dir := t.TempDir()
	w := New(nil)

	p, err := w.Arm(dir, "target.jpg")
	if err != nil {
		t.Fatalf("Arm: %v", err)
	}
	p.Disarm()
	p.Disarm() // must not panic or double-release

	p2, err := w.Arm(dir, "target.jpg")
	if err != nil {
		t.Fatalf("Arm after double Disarm: %v", err)
	}
	p2.Disarm()
}

func TestSecondWaitAfterResolution(t *testing.T) {
	dir := t.TempDir()
	w := New(nil)

	p, err := w.Arm(dir, "target.jpg")
	if err != nil {
		t.Fatalf("Arm: %v", err)
	}
	defer p.Disarm()

	touch(t, filepath.Join(dir, "target.jpg"))
	waitResolved(t, p)
	// A second Wait on the same latch must not block on a stale signal.
	waitResolved(t, p)
}
