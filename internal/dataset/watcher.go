package dataset

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watcher evicts cache entries when files in the upload directory change.
type Watcher struct {
	watcher *fsnotify.Watcher
	cache   *Cache
	dir     string

	// notify, when set, is called after each handled event. Tests use it to synchronise.
	notify func(path string)
}

// NewWatcher starts watching dir. Call Run to process events.
func NewWatcher(dir string, cache *Cache) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &Watcher{
		watcher: w,
		cache:   cache,
		dir:     dir,
	}, nil
}

// Run processes events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close upload watcher")
		}
	}()

	log.Info().Str("dir", w.dir).Msg("Watching upload directory")

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			w.cache.Invalidate(event.Name)
			log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("Upload changed")

			if w.notify != nil {
				w.notify(event.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("Upload watcher error")
		}
	}
}
