package app

import (
	"context"

	"github.com/dshills/funcobj/internal/watcher"
)

// ReloadFunc is called after each attempt to reload a changed document.
// doc is nil when err is set.
type ReloadFunc func(doc *Document, err error)

// Watch reloads open documents when their files change on disk, until ctx
// is done. Documents with no file behind them are skipped. A file that is
// removed keeps its last parsed document open.
func (app *Application) Watch(ctx context.Context, onReload ReloadFunc) error {
	if app.isClosed() {
		return ErrClosed
	}

	log := app.log.WithComponent("watch")
	w, err := watcher.New(watcher.WithDebounce(app.config.Settings().Watch.Debounce))
	if err != nil {
		return NewOperationError("watch", "", err)
	}
	defer w.Close()

	for _, doc := range app.documents.All() {
		if err := w.Add(doc.Path); err != nil {
			log.WithField("file", doc.Path).Warn("not watching: %v", err)
		}
	}
	if len(w.Files()) == 0 {
		return NewOperationError("watch", "", ErrNoActiveDocument).WithDetail("no files to watch")
	}
	log.WithField("files", len(w.Files())).Debug("watching")

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if !ev.Op.Changed() {
				log.WithField("file", ev.Path).Debug("file gone: %s", ev.Op)
				continue
			}

			doc, err := app.reload(ctx, ev.Path)
			if err != nil {
				log.WithField("file", ev.Path).Warn("reload failed: %v", err)
			} else {
				log.WithFields(map[string]any{
					"file": doc.Path,
					"op":   ev.Op.String(),
				}).Debug("document reloaded")
			}
			if onReload != nil {
				onReload(doc, err)
			}

		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			log.Warn("watch error: %v", err)
		}
	}
}

// reload holds the application lock so no key sequence runs against a
// half-replaced document.
func (app *Application) reload(ctx context.Context, path string) (*Document, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.closed {
		return nil, ErrClosed
	}
	return app.documents.Reload(ctx, path)
}
