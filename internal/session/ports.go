package session

import (
	"context"

	"snapflow/internal/watcher"
)

// Pending is one armed capture watch.
type Pending interface {
	Wait(ctx context.Context) error
	Disarm()
}

// Watch arms a one-shot watch for filename appearing in dir.
type Watch interface {
	Arm(dir, filename string) (Pending, error)
}

// Prompter reads one operator answer. Implementations must honor ctx so an
// interrupt unblocks a pending prompt.
type Prompter interface {
	Ask(ctx context.Context, label string) (string, error)
}

// SystemWatch adapts the fsnotify-backed watcher to the session's Watch port.
func SystemWatch(w *watcher.Watcher) Watch {
	return fsWatch{w}
}

type fsWatch struct {
	w *watcher.Watcher
}

func (f fsWatch) Arm(dir, filename string) (Pending, error) {
	return f.w.Arm(dir, filename)
}
