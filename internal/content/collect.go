package content

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/Koz-TV/k-engine/internal/errors"
	"github.com/Koz-TV/k-engine/internal/logfields"
)

// Collect walks the legacy layout under root for the given languages and
// builds the item map. It is strictly read-only: document bodies are loaded
// eagerly so the migrator never has to reopen the legacy tree.
//
// A slug folder without the primary document is recorded as a warning and
// skipped; it never aborts the rest of the corpus.
func Collect(root string, languages []string) (*Corpus, error) {
	corpus := &Corpus{
		Root:      root,
		Languages: languages,
		Items:     map[string]*Item{},
	}

	for _, lang := range languages {
		langDir := filepath.Join(root, lang)
		entries, err := os.ReadDir(langDir)
		if err != nil {
			return nil, errors.CollectFailed(lang, err).WithContext("path", langDir)
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				// Stray files directly under a language folder are ignored.
				continue
			}
			slug := entry.Name()
			slugDir := filepath.Join(langDir, slug)

			variant, warn, err := readVariant(slug, lang, slugDir)
			if err != nil {
				return nil, err
			}
			if warn != nil {
				corpus.Warnings = append(corpus.Warnings, *warn)
				slog.Warn("Skipping slug folder without primary document",
					logfields.Slug(slug), logfields.Lang(lang), logfields.Path(slugDir))
				continue
			}

			item, ok := corpus.Items[slug]
			if !ok {
				item = &Item{Slug: slug, Variants: map[string]*Variant{}}
				corpus.Items[slug] = item
				corpus.Slugs = append(corpus.Slugs, slug)
			}
			item.Variants[lang] = variant
		}
	}

	sort.Strings(corpus.Slugs)
	slog.Info("Collected legacy content",
		logfields.Path(root),
		logfields.Items(len(corpus.Items)),
		logfields.Count(len(corpus.Warnings)))
	return corpus, nil
}

// readVariant loads one legacy slug directory. A missing primary document is
// reported through the warning return, any other I/O failure through err.
func readVariant(slug, lang, slugDir string) (*Variant, *Warning, error) {
	body, err := os.ReadFile(filepath.Join(slugDir, PrimaryDocument))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &Warning{
				Slug:   slug,
				Lang:   lang,
				Path:   slugDir,
				Reason: "missing " + PrimaryDocument,
			}, nil
		}
		return nil, nil, errors.CollectFailed(lang, err).
			WithContext("slug", slug).
			WithContext("path", slugDir)
	}

	entries, err := os.ReadDir(slugDir)
	if err != nil {
		return nil, nil, errors.CollectFailed(lang, err).
			WithContext("slug", slug).
			WithContext("path", slugDir)
	}

	var media []string
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == PrimaryDocument {
			continue
		}
		media = append(media, entry.Name())
	}
	sort.Strings(media)

	return &Variant{
		Lang:      lang,
		SourceDir: slugDir,
		Body:      body,
		Media:     media,
	}, nil, nil
}
