// Package content defines the content repository data model and implements
// legacy-layout detection and collection.
//
// The legacy layout keys by language first: {root}/{lang}/{slug}/index.md.
// The current layout keys by item first: {root}/{slug}/{lang}.md. Media files
// sit next to the documents in both layouts.
package content

import (
	"fmt"
)

// PrimaryDocument is the fixed document name of the legacy layout.
const PrimaryDocument = "index.md"

// DocumentExt is the extension of per-language documents in the current layout.
const DocumentExt = ".md"

// Kind identifies a content kind. Posts and projects are folder-backed items;
// pages only participate in navigation.
type Kind string

const (
	KindPost    Kind = "post"
	KindProject Kind = "project"
	KindPage    Kind = "page"
)

// Section returns the content-directory name for folder-backed kinds, or ""
// for pages.
func (k Kind) Section() string {
	switch k {
	case KindPost:
		return "posts"
	case KindProject:
		return "projects"
	default:
		return ""
	}
}

// ParseKind parses a user-supplied kind name.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "post", "posts":
		return KindPost, nil
	case "project", "projects":
		return KindProject, nil
	case "page", "pages":
		return KindPage, nil
	}
	return "", fmt.Errorf("unknown content kind %q", s)
}

// Variant is one language edition of an item, read from the legacy layout.
type Variant struct {
	Lang      string
	SourceDir string   // legacy slug directory this variant was read from
	Body      []byte   // full document bytes, front-matter included
	Media     []string // sidecar file names in SourceDir, sorted
}

// Item is a content item identified by its language-independent folder slug.
type Item struct {
	Slug     string
	Variants map[string]*Variant // keyed by language code
}

// Languages returns the item's languages in the order of langs, keeping only
// those with a variant.
func (it *Item) Languages(langs []string) []string {
	out := make([]string, 0, len(it.Variants))
	for _, lang := range langs {
		if _, ok := it.Variants[lang]; ok {
			out = append(out, lang)
		}
	}
	return out
}

// Warning records a non-fatal problem found while collecting the legacy tree.
type Warning struct {
	Slug   string
	Lang   string
	Path   string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s/%s: %s (%s)", w.Lang, w.Slug, w.Reason, w.Path)
}

// Corpus is the in-memory result of collecting one legacy kind root. It is
// discarded once migration completes.
type Corpus struct {
	Root      string // kind root the corpus was collected from
	Languages []string
	Items     map[string]*Item
	Slugs     []string // sorted item slugs, for deterministic iteration
	Warnings  []Warning
}
