// Package watch monitors the content tree and re-resolves translation tables
// as items change. It is an inspection aid for operators checking a tree
// before and after migration; it never writes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/Koz-TV/k-engine/internal/config"
	"github.com/Koz-TV/k-engine/internal/content"
	"github.com/Koz-TV/k-engine/internal/logfields"
	"github.com/Koz-TV/k-engine/internal/translations"
)

// Watcher watches the kind roots and logs the fresh translation table of any
// item whose directory or documents change.
type Watcher struct {
	cfg      *config.Config
	resolver *translations.Resolver
	fsw      *fsnotify.Watcher
	roots    map[string]content.Kind // kind root path -> kind
}

// New creates a Watcher over the configured kind roots. Roots that do not
// exist yet are skipped with a warning.
func New(cfg *config.Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		resolver: translations.NewResolver(cfg),
		fsw:      fsw,
		roots:    map[string]content.Kind{},
	}

	for _, kind := range cfg.ItemKinds() {
		root, err := filepath.Abs(cfg.KindRoot(kind))
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to resolve kind root: %w", err)
		}
		w.roots[root] = kind
		if err := w.addTree(root); err != nil {
			slog.Warn("Kind root not watchable", logfields.Kind(string(kind)), logfields.Path(root), logfields.Error(err))
		}
	}
	return w, nil
}

// Run blocks handling events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	slog.Info("Watching content tree", logfields.Count(len(w.roots)))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", logfields.Error(err))
		}
	}
}

// addTree watches a kind root and its immediate item directories. fsnotify is
// not recursive, and one level is all the current layout has.
func (w *Watcher) addTree(root string) error {
	if err := w.fsw.Add(root); err != nil {
		return err
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name()[0] == '_' || entry.Name()[0] == '.' {
			continue
		}
		if err := w.fsw.Add(filepath.Join(root, entry.Name())); err != nil {
			slog.Warn("Cannot watch item directory", logfields.Path(entry.Name()), logfields.Error(err))
		}
	}
	return nil
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	kind, slug, ok := w.locate(event.Name)
	if !ok {
		return
	}

	// A new item directory needs its own watch before document events arrive.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.fsw.Add(event.Name); err != nil {
				slog.Warn("Cannot watch new item directory", logfields.Path(event.Name), logfields.Error(err))
			}
		}
	}

	table, err := w.resolver.Resolve(slug, kind)
	if err != nil {
		slog.Error("Failed to resolve translations after change",
			logfields.Kind(string(kind)), logfields.Slug(slug), logfields.Error(err))
		return
	}
	slog.Info("Translations changed",
		logfields.Kind(string(kind)),
		logfields.Slug(slug),
		slog.Any("table", table),
		slog.String("op", event.Op.String()))
}

// locate maps an event path to (kind, folder slug). Events on the kind roots
// themselves or on backup/staging paths are ignored.
func (w *Watcher) locate(path string) (content.Kind, string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", false
	}
	for root, kind := range w.roots {
		rel, err := filepath.Rel(root, abs)
		if err != nil || rel == "." || rel[0] == '.' {
			continue
		}
		slug := firstSegment(rel)
		if slug == "" || slug[0] == '_' || slug[0] == '.' {
			return "", "", false
		}
		return kind, slug, true
	}
	return "", "", false
}

func firstSegment(rel string) string {
	rel = filepath.ToSlash(rel)
	for i := 0; i < len(rel); i++ {
		if rel[i] == '/' {
			return rel[:i]
		}
	}
	return rel
}
