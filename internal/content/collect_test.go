package content

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectBuildsItemMap(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "en", "setup-ssh", "index.md"), "---\ntitle: SSH\n---\nen body\n")
	writeFile(t, filepath.Join(root, "en", "setup-ssh", "diagram.png"), "png-bytes")
	writeFile(t, filepath.Join(root, "ru", "setup-ssh", "index.md"), "---\nslug: nastroyka-ssh\n---\nru body\n")
	writeFile(t, filepath.Join(root, "ru", "setup-ssh", "diagram.png"), "png-bytes-ru")
	writeFile(t, filepath.Join(root, "en", "homelab", "index.md"), "homelab\n")

	corpus, err := Collect(root, []string{"en", "ru"})
	require.NoError(t, err)

	assert.Equal(t, []string{"homelab", "setup-ssh"}, corpus.Slugs)
	require.Len(t, corpus.Items, 2)

	item := corpus.Items["setup-ssh"]
	require.NotNil(t, item)
	assert.Equal(t, []string{"en", "ru"}, item.Languages([]string{"en", "ru"}))

	en := item.Variants["en"]
	require.NotNil(t, en)
	assert.Equal(t, filepath.Join(root, "en", "setup-ssh"), en.SourceDir)
	assert.Contains(t, string(en.Body), "en body")
	assert.Equal(t, []string{"diagram.png"}, en.Media)

	homelab := corpus.Items["homelab"]
	require.NotNil(t, homelab)
	assert.Equal(t, []string{"en"}, homelab.Languages([]string{"en", "ru"}))
	assert.Empty(t, homelab.Variants["en"].Media)
}

func TestCollectSkipsSlugWithoutPrimaryDocument(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "en", "good", "index.md"), "ok\n")
	writeFile(t, filepath.Join(root, "en", "broken", "notes.txt"), "no index here")

	corpus, err := Collect(root, []string{"en"})
	require.NoError(t, err)

	assert.Equal(t, []string{"good"}, corpus.Slugs)
	require.Len(t, corpus.Warnings, 1)
	warn := corpus.Warnings[0]
	assert.Equal(t, "broken", warn.Slug)
	assert.Equal(t, "en", warn.Lang)
	assert.Contains(t, warn.Reason, "index.md")
}

func TestCollectIgnoresStrayFilesUnderLanguageDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "en", "item", "index.md"), "ok\n")
	writeFile(t, filepath.Join(root, "en", "README.md"), "stray")

	corpus, err := Collect(root, []string{"en"})
	require.NoError(t, err)
	assert.Equal(t, []string{"item"}, corpus.Slugs)
	assert.Empty(t, corpus.Warnings)
}

func TestCollectMissingLanguageDirFails(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "en", "item", "index.md"), "ok\n")

	// Collect is called with the detector's output; a vanished language dir in
	// between is a real I/O failure, not a warning.
	_, err := Collect(root, []string{"en", "ru"})
	require.Error(t, err)
}
