package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/Koz-TV/k-engine/internal/config"
	"github.com/Koz-TV/k-engine/internal/content"
	"github.com/Koz-TV/k-engine/internal/listing"
	"github.com/Koz-TV/k-engine/internal/nav"
	"github.com/Koz-TV/k-engine/internal/translations"
	"github.com/Koz-TV/k-engine/internal/version"
	"github.com/Koz-TV/k-engine/internal/watch"
)

var CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"kengine.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Migrate struct {
		Kind   string `short:"k" help:"Content kind to migrate (posts, projects or all)" default:"all" enum:"posts,projects,all"`
		DryRun bool   `help:"Plan the migration and log every action without touching the filesystem"`
	} `cmd:"" help:"Migrate legacy per-language content folders into the per-item layout"`

	Translations struct {
		Slug string `arg:"" help:"Folder slug to resolve"`
		Kind string `short:"k" help:"Content kind (posts or projects)" default:"posts" enum:"posts,projects"`
		Lang string `short:"l" help:"Language the page is being rendered in" default:""`
	} `cmd:"" help:"Resolve an item's translation table and language switcher"`

	List struct {
		Kind     string `short:"k" help:"Content kind (posts or projects)" default:"posts" enum:"posts,projects"`
		Lang     string `short:"l" help:"Language to list" default:""`
		Featured bool   `help:"Only featured items"`
	} `cmd:"" help:"List items of a kind in one language, newest first"`

	Watch struct{} `cmd:"" help:"Watch the content tree and log translation tables as items change"`
}

func main() {
	ctx := kong.Parse(&CLI, kong.Vars{"version": version.Version})

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	switch ctx.Command() {
	case "migrate":
		if err := runMigrate(cfg); err != nil {
			slog.Error("Migration failed", "error", err)
			os.Exit(1)
		}
	case "translations <slug>":
		if err := runTranslations(cfg); err != nil {
			slog.Error("Translation resolution failed", "error", err)
			os.Exit(1)
		}
	case "list":
		if err := runList(cfg); err != nil {
			slog.Error("Listing failed", "error", err)
			os.Exit(1)
		}
	case "watch":
		if err := runWatch(cfg); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Watcher failed", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("Unknown command", "command", ctx.Command())
		os.Exit(1)
	}
}

func runTranslations(cfg *config.Config) error {
	kind, err := content.ParseKind(CLI.Translations.Kind)
	if err != nil {
		return err
	}
	current := CLI.Translations.Lang
	if current == "" {
		current = cfg.DefaultLanguage()
	}

	table, err := translations.NewResolver(cfg).Resolve(CLI.Translations.Slug, kind)
	if err != nil {
		return err
	}
	for _, lang := range cfg.Languages {
		if slug, ok := table[lang]; ok {
			fmt.Printf("%s\t%s\n", lang, slug)
		}
	}

	entries := nav.NewBuilder(cfg).BuildSwitcher(current, table, kind)
	if len(entries) == 0 {
		fmt.Println("(no language switcher: fewer than two translations)")
		return nil
	}
	for _, entry := range entries {
		if entry.Current {
			fmt.Printf("switcher\t%s\t%s\t(current)\n", entry.Lang, entry.DisplayName)
			continue
		}
		fmt.Printf("switcher\t%s\t%s\t%s\n", entry.Lang, entry.DisplayName, entry.URL)
	}
	return nil
}

func runList(cfg *config.Config) error {
	kind, err := content.ParseKind(CLI.List.Kind)
	if err != nil {
		return err
	}
	lang := CLI.List.Lang
	if lang == "" {
		lang = cfg.DefaultLanguage()
	}

	lister := listing.NewLister(cfg)
	var items []listing.Summary
	if CLI.List.Featured {
		items, err = lister.Featured(kind, lang)
	} else {
		items, err = lister.List(kind, lang)
	}
	if err != nil {
		return err
	}
	for _, item := range items {
		fmt.Printf("%s\t%s\t%s\n", item.Date.Format("2006-01-02"), item.Title, item.URL)
	}
	return nil
}

func runWatch(cfg *config.Config) error {
	w, err := watch.New(cfg)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return w.Run(ctx)
}
