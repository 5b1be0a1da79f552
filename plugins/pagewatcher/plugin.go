// Package pagewatcher reloads a page file when it changes on disk.
// Each change produces a fresh builder; the callback decides how the
// rebuilt cursor replaces the running one.
package pagewatcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/pageturn/internal/pagefile"
	"github.com/bft-labs/pageturn/pkg/log"
	"github.com/bft-labs/pageturn/pkg/pagination"
)

// ErrAlreadyStarted is returned when Start is called twice.
var ErrAlreadyStarted = errors.New("pageturn: page watcher already started")

// ReloadFunc receives the builder loaded from the changed file.
type ReloadFunc func(b *pagination.Builder[pagefile.Page]) error

// Config holds configuration options for the page watcher.
type Config struct {
	// Path is the page file to watch.
	Path string

	// DebounceDelay is the delay to wait after a file change before reloading.
	// Default: 100 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig(path string) Config {
	return Config{
		Path:          path,
		DebounceDelay: 100 * time.Millisecond,
	}
}

// Plugin watches one page file.
type Plugin struct {
	mu sync.Mutex

	path          string
	debounceDelay time.Duration
	reload        ReloadFunc
	logger        log.Logger

	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
}

// New creates a page watcher. A nil logger discards output.
func New(cfg Config, reload ReloadFunc, logger log.Logger) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	return &Plugin{
		path:          filepath.Clean(cfg.Path),
		debounceDelay: cfg.DebounceDelay,
		reload:        reload,
		logger:        log.Or(logger),
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "pagewatcher"
}

// Start begins watching. The directory is watched rather than the file so
// that editors replacing the file by rename are still seen.
func (p *Plugin) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return ErrAlreadyStarted
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(p.path), err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("page watcher started", log.String("path", p.path))

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)
	return nil
}

// Shutdown stops the watcher and waits for the loop to exit.
func (p *Plugin) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != p.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.debounceReload(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("page watcher error", log.Err(err))
		}
	}
}

func (p *Plugin) debounceReload(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		if ctx.Err() != nil {
			return
		}
		p.reloadNow()
	})
}

// reloadNow loads the file and hands it to the callback. A file that fails
// to load leaves the running cursor alone.
func (p *Plugin) reloadNow() {
	b, err := pagefile.Load(p.path)
	if err != nil {
		p.logger.Warn("page file not reloaded", log.String("path", p.path), log.Err(err))
		return
	}
	if err := p.reload(b); err != nil {
		p.logger.Error("page reload failed", log.String("path", p.path), log.Err(err))
		return
	}
	p.logger.Debug("page file reloaded", log.String("path", p.path), log.Int("pages", len(b.Pages())))
}
