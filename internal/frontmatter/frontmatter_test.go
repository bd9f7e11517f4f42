package frontmatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitNoFrontMatter(t *testing.T) {
	doc := []byte("# Just a heading\n\nbody text\n")
	meta, body, had, err := Split(doc)
	require.NoError(t, err)
	assert.False(t, had)
	assert.Nil(t, meta)
	assert.Equal(t, doc, body)
}

func TestSplitBasic(t *testing.T) {
	doc := []byte("---\ntitle: Setting up SSH\nslug: nastroyka-ssh\n---\n# Body\n")
	meta, body, had, err := Split(doc)
	require.NoError(t, err)
	assert.True(t, had)
	assert.Equal(t, "title: Setting up SSH\nslug: nastroyka-ssh\n", string(meta))
	assert.Equal(t, "# Body\n", string(body))
}

func TestSplitEmptyFrontMatter(t *testing.T) {
	doc := []byte("---\n---\nbody\n")
	meta, body, had, err := Split(doc)
	require.NoError(t, err)
	assert.True(t, had)
	assert.Empty(t, meta)
	assert.Equal(t, "body\n", string(body))
}

func TestSplitCRLF(t *testing.T) {
	doc := []byte("---\r\nslug: other\r\n---\r\nbody\r\n")
	meta, body, had, err := Split(doc)
	require.NoError(t, err)
	assert.True(t, had)
	assert.Equal(t, "slug: other\r\n", string(meta))
	assert.Equal(t, "body\r\n", string(body))
}

func TestSplitMissingClosingDelimiter(t *testing.T) {
	_, _, _, err := Split([]byte("---\ntitle: oops\nno closing\n"))
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
}

func TestSplitDashesInBody(t *testing.T) {
	doc := []byte("---\ntitle: x\n---\nintro\n\n---\n\noutro\n")
	meta, body, had, err := Split(doc)
	require.NoError(t, err)
	assert.True(t, had)
	assert.Equal(t, "title: x\n", string(meta))
	assert.Equal(t, "intro\n\n---\n\noutro\n", string(body))
}

func TestParseMeta(t *testing.T) {
	meta := []byte("title: Настройка SSH\nslug: nastroyka-ssh\ndate: 2023-11-02\nfeatured: true\n")
	m, err := ParseMeta(meta)
	require.NoError(t, err)
	assert.Equal(t, "Настройка SSH", m.Title)
	assert.Equal(t, "nastroyka-ssh", m.Slug)
	assert.Equal(t, time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC), m.Date)
	assert.True(t, m.Featured)
	assert.False(t, m.Draft)
}

func TestParseMetaEmpty(t *testing.T) {
	m, err := ParseMeta(nil)
	require.NoError(t, err)
	assert.Equal(t, Meta{}, m)
}

func TestParseMetaInvalidYAML(t *testing.T) {
	_, err := ParseMeta([]byte("slug: [unclosed\n"))
	require.Error(t, err)
}

func TestParseFields(t *testing.T) {
	fields, err := ParseFields([]byte("slug: abc\ntags:\n  - ssh\n  - linux\n"))
	require.NoError(t, err)
	assert.Equal(t, "abc", fields["slug"])
	assert.Len(t, fields["tags"], 2)
}
