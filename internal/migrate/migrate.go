// Package migrate transforms a legacy per-language content tree into the
// current per-item layout.
//
// The run has two phases. The staging phase writes the complete new layout
// into an ephemeral staging directory; any failure there aborts the run with
// the original tree untouched. Only after every item has been staged does the
// destructive phase run: legacy language folders are relocated (never deleted)
// into a backup directory, staged item directories are promoted into the kind
// root, and the staging area is removed.
package migrate

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Koz-TV/k-engine/internal/content"
	"github.com/Koz-TV/k-engine/internal/errors"
	"github.com/Koz-TV/k-engine/internal/logfields"
)

// Mode selects between planning and executing a migration.
type Mode string

const (
	ModeDryRun Mode = "dry-run"
	ModeLive   Mode = "live"
)

// Destructive-phase checkpoints recorded in the marker file.
const (
	PhaseBackup  = "backup"
	PhasePromote = "promote"
	PhaseCleanup = "cleanup"
)

// MarkerName is the in-progress marker written for the duration of the
// destructive phase. A leftover marker means a previous run died mid-phase
// and the tree needs manual recovery from the backup directory.
const MarkerName = ".migrate-in-progress"

// Migrator migrates one kind root. The same implementation serves posts and
// projects; the kind only selects the root path.
type Migrator struct {
	root       string
	backupName string
}

// New creates a Migrator for a kind root.
func New(root, backupName string) *Migrator {
	return &Migrator{root: root, backupName: backupName}
}

// Run migrates the collected corpus. In dry-run mode it performs the staging
// phase as pure computation and returns the report a live run would produce,
// touching nothing on disk.
func (m *Migrator) Run(corpus *content.Corpus, mode Mode) (*Report, error) {
	report := newReport(mode)

	if len(corpus.Languages) == 0 || len(corpus.Items) == 0 {
		// Already in the current layout; nothing to do.
		report.Warnings = append(report.Warnings, corpus.Warnings...)
		slog.Info("No legacy language folders found, migration is a no-op",
			logfields.Path(m.root), logfields.RunID(report.RunID))
		return report, nil
	}

	markerPath := filepath.Join(m.root, MarkerName)
	if _, err := os.Stat(markerPath); err == nil {
		return nil, errors.MigrationInProgress(markerPath)
	}

	m.plan(corpus, report)

	if mode == ModeDryRun {
		slog.Info("Dry run complete, filesystem untouched",
			logfields.Path(m.root),
			logfields.Items(len(report.Items)),
			logfields.RunID(report.RunID))
		return report, nil
	}

	stagingDir, err := m.stage(corpus, report)
	if err != nil {
		return nil, err
	}

	if err := m.promote(corpus, report, stagingDir, markerPath); err != nil {
		return nil, err
	}

	slog.Info("Migration complete",
		logfields.Path(m.root),
		logfields.Items(len(report.Items)),
		slog.Int("documents", report.DocumentsWritten),
		slog.Int("media", report.MediaCopied),
		logfields.RunID(report.RunID))
	return report, nil
}

// plan computes, per item, the documents to write and the media copies to
// perform. Media files dedup by name; the first source in language-enumeration
// order wins, later duplicates are recorded but not copied.
func (m *Migrator) plan(corpus *content.Corpus, report *Report) {
	report.Warnings = append(report.Warnings, corpus.Warnings...)

	for _, slug := range corpus.Slugs {
		item := corpus.Items[slug]
		ip := ItemPlan{Slug: slug}

		seen := map[string]string{} // media name -> winning source dir
		for _, lang := range corpus.Languages {
			variant, ok := item.Variants[lang]
			if !ok {
				continue
			}
			ip.Documents = append(ip.Documents, DocumentPlan{
				Lang:   lang,
				Source: filepath.Join(variant.SourceDir, content.PrimaryDocument),
				Target: lang + content.DocumentExt,
				Body:   variant.Body,
			})
			for _, name := range variant.Media {
				if winner, dup := seen[name]; dup {
					ip.Duplicates = append(ip.Duplicates, MediaPlan{
						Name:   name,
						Source: filepath.Join(variant.SourceDir, name),
					})
					slog.Debug("Media file already staged from an earlier language",
						logfields.Slug(slug),
						logfields.File(name),
						logfields.Source(winner))
					continue
				}
				seen[name] = variant.SourceDir
				ip.Media = append(ip.Media, MediaPlan{
					Name:   name,
					Source: filepath.Join(variant.SourceDir, name),
				})
			}
		}

		report.Items = append(report.Items, ip)
		report.DocumentsWritten += len(ip.Documents)
		report.MediaCopied += len(ip.Media)
		report.MediaDeduped += len(ip.Duplicates)
	}
}

// stage materializes the planned layout into an ephemeral staging directory
// inside the kind root. On any failure the staging directory is removed and
// the original tree is left untouched.
func (m *Migrator) stage(corpus *content.Corpus, report *Report) (string, error) {
	timestamp := time.Now().Format("20060102-150405")
	stagingDir := filepath.Join(m.root, fmt.Sprintf(".staging-%s", timestamp))
	if err := os.MkdirAll(stagingDir, 0o750); err != nil {
		return "", errors.StagingFailed("", err).WithContext("path", stagingDir)
	}

	for _, ip := range report.Items {
		if err := stageItem(stagingDir, ip); err != nil {
			// Staging is the safe phase: abort wholesale, clean up after ourselves.
			if rmErr := os.RemoveAll(stagingDir); rmErr != nil {
				slog.Error("Failed to remove staging directory after aborted run",
					logfields.Path(stagingDir), logfields.Error(rmErr))
			}
			return "", err
		}
	}

	slog.Info("Staged new layout",
		logfields.Path(stagingDir),
		logfields.Items(len(report.Items)),
		logfields.RunID(report.RunID))
	return stagingDir, nil
}

func stageItem(stagingDir string, ip ItemPlan) error {
	itemDir := filepath.Join(stagingDir, ip.Slug)
	if err := os.MkdirAll(itemDir, 0o750); err != nil {
		return errors.StagingFailed(ip.Slug, err).WithContext("path", itemDir)
	}

	for _, doc := range ip.Documents {
		target := filepath.Join(itemDir, doc.Target)
		if err := os.WriteFile(target, doc.Body, 0o644); err != nil {
			return errors.StagingFailed(ip.Slug, err).
				WithContext("lang", doc.Lang).
				WithContext("path", target)
		}
	}

	for _, media := range ip.Media {
		target := filepath.Join(itemDir, media.Name)
		if err := copyFile(media.Source, target); err != nil {
			return errors.StagingFailed(ip.Slug, err).
				WithContext("source", media.Source).
				WithContext("path", target)
		}
	}
	return nil
}

// promote is the destructive phase: backup-relocate the legacy language
// folders, move staged items into the kind root, drop staging and marker.
// It is the one moment of no return and is kept as short as possible.
func (m *Migrator) promote(corpus *content.Corpus, report *Report, stagingDir, markerPath string) error {
	backupDir := filepath.Join(m.root, m.backupName)
	report.BackupDir = backupDir

	if err := writeMarker(markerPath, report.RunID, PhaseBackup); err != nil {
		// Marker write failures happen before anything destructive; treat them
		// as staging-class failures and clean up.
		_ = os.RemoveAll(stagingDir)
		return errors.StagingFailed("", err).WithContext("path", markerPath)
	}

	if err := os.MkdirAll(backupDir, 0o750); err != nil {
		return errors.DestructivePhaseFailed(PhaseBackup, report.RunID, err).
			WithContext("path", backupDir)
	}
	for _, lang := range corpus.Languages {
		src := filepath.Join(m.root, lang)
		dst := filepath.Join(backupDir, lang)
		if err := os.Rename(src, dst); err != nil {
			return errors.DestructivePhaseFailed(PhaseBackup, report.RunID, err).
				WithContext("lang", lang).
				WithContext("path", src)
		}
		slog.Debug("Relocated legacy language folder",
			logfields.Lang(lang), logfields.Source(src), logfields.Target(dst))
	}

	if err := writeMarker(markerPath, report.RunID, PhasePromote); err != nil {
		return errors.DestructivePhaseFailed(PhasePromote, report.RunID, err).
			WithContext("path", markerPath)
	}
	for _, ip := range report.Items {
		src := filepath.Join(stagingDir, ip.Slug)
		dst := filepath.Join(m.root, ip.Slug)
		if err := os.Rename(src, dst); err != nil {
			return errors.DestructivePhaseFailed(PhasePromote, report.RunID, err).
				WithContext("slug", ip.Slug).
				WithContext("path", dst)
		}
	}

	if err := os.RemoveAll(stagingDir); err != nil {
		return errors.DestructivePhaseFailed(PhaseCleanup, report.RunID, err).
			WithContext("path", stagingDir)
	}
	if err := os.Remove(markerPath); err != nil {
		return errors.DestructivePhaseFailed(PhaseCleanup, report.RunID, err).
			WithContext("path", markerPath)
	}
	return nil
}

func writeMarker(path, runID, phase string) error {
	data := fmt.Sprintf("run_id: %s\nphase: %s\nstarted: %s\n",
		runID, phase, time.Now().Format(time.RFC3339))
	return os.WriteFile(path, []byte(data), 0o644)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func newRunID() string {
	return uuid.NewString()
}
