package content

import (
	"os"
	"path/filepath"

	"github.com/Koz-TV/k-engine/internal/errors"
)

// DetectLegacyLanguages inspects a kind root and returns the configured
// languages that still exist as legacy language folders, preserving the
// configured order.
//
// A language folder qualifies only if at least one of its immediate
// subdirectories contains the primary document. An empty result means the root
// is already in the current layout and migration is a no-op.
func DetectLegacyLanguages(root string, languages []string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.LayoutNotFound(root)
		}
		return nil, errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "cannot stat content root").
			WithContext("path", root)
	}

	var found []string
	for _, lang := range languages {
		ok, err := isLegacyLanguageDir(filepath.Join(root, lang))
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryLayout, errors.SeverityFatal, "cannot inspect language folder").
				WithContext("lang", lang)
		}
		if ok {
			found = append(found, lang)
		}
	}
	return found, nil
}

// isLegacyLanguageDir reports whether dir looks like a legacy language folder:
// a directory with at least one slug subdirectory holding the primary document.
func isLegacyLanguageDir(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		primary := filepath.Join(dir, entry.Name(), PrimaryDocument)
		if info, err := os.Stat(primary); err == nil && info.Mode().IsRegular() {
			return true, nil
		}
	}
	return false, nil
}
