package listing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Koz-TV/k-engine/internal/config"
	"github.com/Koz-TV/k-engine/internal/content"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.ContentDir = t.TempDir()
	cfg.Languages = []string{"en", "ru"}
	return cfg
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func seedPosts(t *testing.T, cfg *config.Config) {
	root := cfg.KindRoot(content.KindPost)
	writeFile(t, filepath.Join(root, "setup-ssh", "en.md"),
		"---\ntitle: Setting up SSH\ndate: 2023-11-02\nfeatured: true\n---\nbody\n")
	writeFile(t, filepath.Join(root, "setup-ssh", "ru.md"),
		"---\ntitle: Настройка SSH\nslug: nastroyka-ssh\ndate: 2023-11-02\n---\nbody\n")
	writeFile(t, filepath.Join(root, "homelab", "en.md"),
		"---\ntitle: Homelab\ndate: 2024-03-10\n---\nbody\n")
	writeFile(t, filepath.Join(root, "wip", "en.md"),
		"---\ntitle: WIP\ndate: 2024-06-01\ndraft: true\n---\nbody\n")
	// Backup dirs under the kind root are not items.
	writeFile(t, filepath.Join(root, "_old_structure_backup", "en", "setup-ssh", "index.md"), "old\n")
}

func TestListNewestFirst(t *testing.T) {
	cfg := testConfig(t)
	seedPosts(t, cfg)

	posts, err := NewLister(cfg).List(content.KindPost, "en")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "homelab", posts[0].FolderSlug)
	assert.Equal(t, "setup-ssh", posts[1].FolderSlug)
	assert.Equal(t, "/posts/homelab/", posts[0].URL)
}

func TestListUsesLanguageOwnSlugAndPrefix(t *testing.T) {
	cfg := testConfig(t)
	seedPosts(t, cfg)

	posts, err := NewLister(cfg).List(content.KindPost, "ru")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "setup-ssh", posts[0].FolderSlug)
	assert.Equal(t, "nastroyka-ssh", posts[0].PublicSlug)
	assert.Equal(t, "/ru/posts/nastroyka-ssh/", posts[0].URL)
	assert.Equal(t, "Настройка SSH", posts[0].Title)
}

func TestFeatured(t *testing.T) {
	cfg := testConfig(t)
	seedPosts(t, cfg)

	featured, err := NewLister(cfg).Featured(content.KindPost, "en")
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "setup-ssh", featured[0].FolderSlug)
}

func TestListMissingKindRoot(t *testing.T) {
	cfg := testConfig(t)
	posts, err := NewLister(cfg).List(content.KindProject, "en")
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestListSkipsUnparseableFrontMatter(t *testing.T) {
	cfg := testConfig(t)
	root := cfg.KindRoot(content.KindPost)
	writeFile(t, filepath.Join(root, "good", "en.md"), "---\ntitle: ok\n---\nbody\n")
	writeFile(t, filepath.Join(root, "bad", "en.md"), "---\ntitle: [broken\n---\nbody\n")

	posts, err := NewLister(cfg).List(content.KindPost, "en")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "good", posts[0].FolderSlug)
}
