package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/text/unicode/norm"

	"snapflow/internal/logging"
)

// ErrAlreadyArmed is returned when Arm is called while a Pending watch is
// still outstanding. The workflow is single-flight: one photo expected per
// step.
var ErrAlreadyArmed = errors.New("capture watch already armed")

// Watcher arms one-shot watches for a specific filename appearing in a
// directory. At most one watch may be armed at a time.
type Watcher struct {
	logger *slog.Logger

	mu    sync.Mutex
	armed bool
}

// New constructs a Watcher. A nil logger disables logging.
func New(logger *slog.Logger) *Watcher {
	return &Watcher{logger: logging.NewComponentLogger(logger, "watcher")}
}

// Pending is an armed watch. It resolves exactly once when the target file is
// created, and must be disarmed on every exit path.
type Pending struct {
	owner    *Watcher
	fsw      *fsnotify.Watcher
	dir      string
	filename string

	created chan struct{}
	done    chan struct{}

	signalOnce sync.Once
	disarmOnce sync.Once
}

// Arm starts observing dir (non-recursive) for the creation of filename.
// Files already present never match; only a new creation event resolves the
// watch.
func (w *Watcher) Arm(dir, filename string) (*Pending, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.armed {
		return nil, ErrAlreadyArmed
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("start filesystem observer: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("observe %s: %w", dir, err)
	}

	p := &Pending{
		owner:    w,
		fsw:      fsw,
		dir:      dir,
		filename: norm.NFC.String(filename),
		created:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	w.armed = true
	go p.loop()

	w.logger.Debug("watch armed",
		logging.Args(
			logging.String(logging.FieldDirectory, dir),
			logging.String(logging.FieldFilename, filename),
		)...)
	return p, nil
}

// Wait blocks until the target file is created or ctx is cancelled. There is
// deliberately no timeout: if the photo never arrives the operator interrupts
// the process. The caller still must Disarm afterwards.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.created:
		return nil
	}
}

// Disarm stops the filesystem observer and releases the armed slot. It is
// idempotent and safe to defer alongside an explicit call.
func (p *Pending) Disarm() {
	p.disarmOnce.Do(func() {
		close(p.done)
		_ = p.fsw.Close()

		p.owner.mu.Lock()
		p.owner.armed = false
		p.owner.mu.Unlock()

		p.owner.logger.Debug("watch disarmed",
			logging.Args(logging.String(logging.FieldFilename, p.filename))...)
	})
}

// loop consumes filesystem events until the first exact match or until the
// watch is disarmed. Matching is by base name only; creation events for other
// files or for subdirectories are ignored.
func (p *Pending) loop() {
	for {
		select {
		case <-p.done:
			return
		case event, ok := <-p.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if norm.NFC.String(filepath.Base(event.Name)) != p.filename {
				continue
			}
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				continue
			}
			p.signalOnce.Do(func() { close(p.created) })
			return
		case err, ok := <-p.fsw.Errors:
			if !ok {
				return
			}
			p.owner.logger.Warn("filesystem observer error", logging.Args(logging.Error(err))...)
		}
	}
}
