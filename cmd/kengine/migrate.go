package main

import (
	"log/slog"

	"github.com/Koz-TV/k-engine/internal/config"
	"github.com/Koz-TV/k-engine/internal/content"
	"github.com/Koz-TV/k-engine/internal/errors"
	"github.com/Koz-TV/k-engine/internal/logfields"
	"github.com/Koz-TV/k-engine/internal/migrate"
)

// runMigrate drives the migrator over the selected kinds. The same generic
// migrator serves posts and projects; only the root path differs.
func runMigrate(cfg *config.Config) error {
	mode := migrate.ModeLive
	if CLI.Migrate.DryRun {
		mode = migrate.ModeDryRun
	}

	for _, kind := range selectedKinds(cfg) {
		root := cfg.KindRoot(kind)
		slog.Info("Inspecting content root", logfields.Kind(string(kind)), logfields.Path(root), logfields.Mode(string(mode)))

		langs, err := content.DetectLegacyLanguages(root, cfg.Languages)
		if err != nil {
			if errors.IsCategory(err, errors.CategoryLayout) && CLI.Migrate.Kind == "all" {
				// A site may only have posts, or only projects.
				slog.Warn("Content root missing, skipping kind", logfields.Kind(string(kind)), logfields.Path(root))
				continue
			}
			return err
		}
		if len(langs) == 0 {
			slog.Info("Already in current layout, nothing to migrate", logfields.Kind(string(kind)), logfields.Path(root))
			continue
		}

		corpus, err := content.Collect(root, langs)
		if err != nil {
			return err
		}

		report, err := migrate.New(root, cfg.BackupDirName).Run(corpus, mode)
		if err != nil {
			return err
		}
		report.Log()
	}
	return nil
}

func selectedKinds(cfg *config.Config) []content.Kind {
	switch CLI.Migrate.Kind {
	case "posts":
		return []content.Kind{content.KindPost}
	case "projects":
		return []content.Kind{content.KindProject}
	default:
		return cfg.ItemKinds()
	}
}
