// Package translations resolves which languages a content item exists in and
// what public slug each language exposes.
package translations

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Koz-TV/k-engine/internal/config"
	"github.com/Koz-TV/k-engine/internal/content"
	"github.com/Koz-TV/k-engine/internal/frontmatter"
	"github.com/Koz-TV/k-engine/internal/logfields"
)

// Table maps language codes to public slugs for one content item. It is a
// per-render view: built fresh on every call, never persisted or cached.
type Table map[string]string

// Resolver reads translation tables from the current layout.
type Resolver struct {
	cfg *config.Config
}

// NewResolver creates a Resolver over the configured content tree.
func NewResolver(cfg *config.Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve returns the translation table for a folder slug. Every configured
// language with a {folderSlug}/{lang}.md document contributes an entry; the
// public slug is the front-matter override when present, the folder slug
// otherwise. A missing item directory yields an empty table, not an error.
//
// Resolve re-reads the disk on every call so it always reflects current state.
func (r *Resolver) Resolve(folderSlug string, kind content.Kind) (Table, error) {
	itemDir := filepath.Join(r.cfg.KindRoot(kind), folderSlug)
	if _, err := os.Stat(itemDir); err != nil {
		if os.IsNotExist(err) {
			return Table{}, nil
		}
		return nil, err
	}

	table := Table{}
	for _, lang := range r.cfg.Languages {
		docPath := filepath.Join(itemDir, lang+content.DocumentExt)
		data, err := os.ReadFile(docPath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		table[lang] = publicSlug(folderSlug, lang, docPath, data)
	}
	return table, nil
}

// publicSlug extracts the front-matter slug override. Unparseable front-matter
// degrades to the folder slug for that language only.
func publicSlug(folderSlug, lang, docPath string, data []byte) string {
	meta, _, had, err := frontmatter.Split(data)
	if err != nil {
		slog.Warn("Front-matter malformed, falling back to folder slug",
			logfields.Slug(folderSlug), logfields.Lang(lang), logfields.Path(docPath), logfields.Error(err))
		return folderSlug
	}
	if !had {
		return folderSlug
	}
	m, err := frontmatter.ParseMeta(meta)
	if err != nil {
		slog.Warn("Front-matter unparseable, falling back to folder slug",
			logfields.Slug(folderSlug), logfields.Lang(lang), logfields.Path(docPath), logfields.Error(err))
		return folderSlug
	}
	if m.Slug == "" {
		return folderSlug
	}
	return m.Slug
}
