// Package nav builds the cross-language switcher for content items and pages.
package nav

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/Koz-TV/k-engine/internal/config"
	"github.com/Koz-TV/k-engine/internal/content"
	"github.com/Koz-TV/k-engine/internal/translations"
)

// Entry is one rendered switcher row. The current language has Current set
// and an empty URL; templates render it as plain text.
type Entry struct {
	Lang        string
	DisplayName string
	URL         string
	Current     bool
}

// Builder renders switcher entries under the configured language order. The
// first configured language is the default language and its URLs carry no
// /{lang} prefix.
type Builder struct {
	languages []string
	names     map[string]string
	sections  map[content.Kind]string
}

// NewBuilder creates a Builder from the site configuration.
func NewBuilder(cfg *config.Config) *Builder {
	sections := map[content.Kind]string{
		content.KindPost:    cfg.SectionDir(content.KindPost),
		content.KindProject: cfg.SectionDir(content.KindProject),
	}
	return &Builder{
		languages: cfg.Languages,
		names:     cfg.LanguageNames,
		sections:  sections,
	}
}

// BuildSwitcher returns the switcher entries for an item given its translation
// table and the language being rendered. Fewer than two translations yield an
// empty result: a switcher for a single-language item is meaningless.
//
// Every non-current entry links through that language's OWN public slug, so
// each link resolves to a page that actually exists in that language.
func (b *Builder) BuildSwitcher(current string, table translations.Table, kind content.Kind) []Entry {
	if len(table) < 2 {
		return nil
	}

	var entries []Entry
	for _, lang := range b.languages {
		slug, ok := table[lang]
		if !ok {
			continue
		}
		entry := Entry{
			Lang:        lang,
			DisplayName: b.displayName(lang),
			Current:     lang == current,
		}
		if !entry.Current {
			entry.URL = b.targetURL(lang, slug, kind)
		}
		entries = append(entries, entry)
	}
	return entries
}

// PageSwitcher returns switcher entries for a bare page, which exists in every
// configured language and has no slug.
func (b *Builder) PageSwitcher(current string) []Entry {
	table := translations.Table{}
	for _, lang := range b.languages {
		table[lang] = ""
	}
	return b.BuildSwitcher(current, table, content.KindPage)
}

// targetURL applies the URL convention: no path prefix for the default
// language, /{lang} for everyone else; items add /{section}/{publicSlug}/.
func (b *Builder) targetURL(lang, slug string, kind content.Kind) string {
	prefix := ""
	if lang != b.languages[0] {
		prefix = "/" + lang
	}
	if section, ok := b.sections[kind]; ok {
		return prefix + "/" + section + "/" + slug + "/"
	}
	return prefix + "/"
}

// displayName resolves a language's self-name ("English", "русский"),
// preferring a configured override and degrading to the raw code when the tag
// does not parse.
func (b *Builder) displayName(code string) string {
	if name, ok := b.names[code]; ok && name != "" {
		return name
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return code
}
