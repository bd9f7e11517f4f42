package migrate

import (
	"log/slog"

	"github.com/Koz-TV/k-engine/internal/content"
	"github.com/Koz-TV/k-engine/internal/logfields"
)

// Report is the diagnostic output of a migration run. Dry-run and live runs
// produce the same report for the same tree, which is what makes dry-run an
// exact pre-flight check.
type Report struct {
	RunID string
	Mode  Mode

	Items    []ItemPlan
	Warnings []content.Warning

	DocumentsWritten int
	MediaCopied      int
	MediaDeduped     int
	BackupDir        string // empty for dry runs
}

// ItemPlan describes what migration does for one content item.
type ItemPlan struct {
	Slug       string
	Documents  []DocumentPlan
	Media      []MediaPlan // copies that will be performed
	Duplicates []MediaPlan // same-name files skipped by dedup
}

// DocumentPlan is one language document write.
type DocumentPlan struct {
	Lang   string
	Source string
	Target string // file name within the item directory
	Body   []byte
}

// MediaPlan is one media file copy (or skipped duplicate).
type MediaPlan struct {
	Name   string
	Source string
}

func newReport(mode Mode) *Report {
	return &Report{RunID: newRunID(), Mode: mode}
}

// Log emits the report through slog, one line per planned action. This is the
// output operators diff between dry-run and live.
func (r *Report) Log() {
	for _, item := range r.Items {
		for _, doc := range item.Documents {
			slog.Info("Plan: write document",
				logfields.Slug(item.Slug),
				logfields.Lang(doc.Lang),
				logfields.Source(doc.Source),
				logfields.Target(doc.Target),
				logfields.Mode(string(r.Mode)))
		}
		for _, media := range item.Media {
			slog.Info("Plan: copy media",
				logfields.Slug(item.Slug),
				logfields.File(media.Name),
				logfields.Source(media.Source),
				logfields.Mode(string(r.Mode)))
		}
		for _, dup := range item.Duplicates {
			slog.Info("Plan: skip duplicate media",
				logfields.Slug(item.Slug),
				logfields.File(dup.Name),
				logfields.Source(dup.Source),
				logfields.Mode(string(r.Mode)))
		}
	}
	for _, warn := range r.Warnings {
		slog.Warn("Plan: slug skipped during collection",
			logfields.Slug(warn.Slug),
			logfields.Lang(warn.Lang),
			logfields.Path(warn.Path))
	}
	slog.Info("Migration summary",
		logfields.Items(len(r.Items)),
		slog.Int("documents", r.DocumentsWritten),
		slog.Int("media_copied", r.MediaCopied),
		slog.Int("media_deduped", r.MediaDeduped),
		slog.Int("warnings", len(r.Warnings)),
		logfields.Mode(string(r.Mode)),
		logfields.RunID(r.RunID))
}
