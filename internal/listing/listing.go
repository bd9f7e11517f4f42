// Package listing enumerates current-layout items for index pages.
package listing

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Koz-TV/k-engine/internal/config"
	"github.com/Koz-TV/k-engine/internal/content"
	"github.com/Koz-TV/k-engine/internal/frontmatter"
	"github.com/Koz-TV/k-engine/internal/logfields"
)

// Summary is one listed item in one language.
type Summary struct {
	FolderSlug string
	PublicSlug string
	Title      string
	Date       time.Time
	Featured   bool
	URL        string
}

// Lister reads listings from the content tree. Like the resolver it holds no
// cache; every call reflects the current on-disk state.
type Lister struct {
	cfg *config.Config
}

// NewLister creates a Lister over the configured content tree.
func NewLister(cfg *config.Config) *Lister {
	return &Lister{cfg: cfg}
}

// List returns the items of a kind that exist in lang, newest first. Items
// without a document in lang are omitted; items whose front-matter does not
// parse are skipped with a warning, draft items are excluded.
func (l *Lister) List(kind content.Kind, lang string) ([]Summary, error) {
	root := l.cfg.KindRoot(kind)
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []Summary
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), "_") || strings.HasPrefix(entry.Name(), ".") {
			// Backup and staging directories live under the kind root.
			continue
		}
		folderSlug := entry.Name()
		docPath := filepath.Join(root, folderSlug, lang+content.DocumentExt)
		data, err := os.ReadFile(docPath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}

		meta, err := parseMeta(data)
		if err != nil {
			slog.Warn("Skipping item with unparseable front-matter",
				logfields.Slug(folderSlug), logfields.Lang(lang), logfields.Path(docPath), logfields.Error(err))
			continue
		}
		if meta.Draft {
			continue
		}

		publicSlug := meta.Slug
		if publicSlug == "" {
			publicSlug = folderSlug
		}
		out = append(out, Summary{
			FolderSlug: folderSlug,
			PublicSlug: publicSlug,
			Title:      meta.Title,
			Date:       meta.Date,
			Featured:   meta.Featured,
			URL:        l.itemURL(kind, lang, publicSlug),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].FolderSlug < out[j].FolderSlug
	})
	return out, nil
}

// Featured returns the featured subset of List, same order.
func (l *Lister) Featured(kind content.Kind, lang string) ([]Summary, error) {
	all, err := l.List(kind, lang)
	if err != nil {
		return nil, err
	}
	var out []Summary
	for _, s := range all {
		if s.Featured {
			out = append(out, s)
		}
	}
	return out, nil
}

func (l *Lister) itemURL(kind content.Kind, lang, publicSlug string) string {
	prefix := ""
	if lang != l.cfg.DefaultLanguage() {
		prefix = "/" + lang
	}
	return prefix + "/" + l.cfg.SectionDir(kind) + "/" + publicSlug + "/"
}

func parseMeta(data []byte) (frontmatter.Meta, error) {
	raw, _, had, err := frontmatter.Split(data)
	if err != nil {
		return frontmatter.Meta{}, err
	}
	if !had {
		return frontmatter.Meta{}, nil
	}
	return frontmatter.ParseMeta(raw)
}
