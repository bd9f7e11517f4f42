// Package frontmatter splits YAML front-matter from Markdown documents and
// decodes the fields the content repository cares about.
package frontmatter

import (
	"bytes"
	"errors"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// front-matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml front-matter start delimiter found but closing delimiter is missing")

var delimiter = []byte("---")

// Meta holds the typed front-matter fields consumed by the resolver and the
// listing layer. Slug is the per-language public slug override; when empty the
// folder slug is used.
type Meta struct {
	Title    string    `yaml:"title"`
	Slug     string    `yaml:"slug"`
	Date     time.Time `yaml:"date"`
	Featured bool      `yaml:"featured"`
	Draft    bool      `yaml:"draft"`
}

// Split separates YAML front-matter (`---` delimited) from the Markdown body.
//
// If the document does not start with a front-matter delimiter, had is false
// and body is the full input. Both CRLF and LF documents are accepted.
func Split(content []byte) (meta []byte, body []byte, had bool, err error) {
	rest, ok := cutDelimiterLine(content)
	if !ok {
		return nil, content, false, nil
	}

	offset := 0
	for offset <= len(rest) {
		line, next := nextLine(rest, offset)
		if line < 0 {
			return nil, nil, false, ErrMissingClosingDelimiter
		}
		if isDelimiterLine(rest[line:lineEnd(rest, line)]) {
			return rest[:line], rest[next:], true, nil
		}
		offset = next
	}
	return nil, nil, false, ErrMissingClosingDelimiter
}

// ParseMeta decodes raw front-matter (without delimiters) into Meta.
func ParseMeta(meta []byte) (Meta, error) {
	var m Meta
	if len(meta) == 0 {
		return m, nil
	}
	if err := yaml.Unmarshal(meta, &m); err != nil {
		return Meta{}, err
	}
	return m, nil
}

// ParseFields decodes raw front-matter into a generic map for callers that
// need fields outside Meta.
func ParseFields(meta []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(meta) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(meta, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// cutDelimiterLine strips the opening `---` line, reporting whether the
// document starts with one.
func cutDelimiterLine(content []byte) ([]byte, bool) {
	if !bytes.HasPrefix(content, delimiter) {
		return nil, false
	}
	rest := content[len(delimiter):]
	switch {
	case bytes.HasPrefix(rest, []byte("\r\n")):
		return rest[2:], true
	case bytes.HasPrefix(rest, []byte("\n")):
		return rest[1:], true
	}
	return nil, false
}

// nextLine returns the start of the line at offset and the start of the line
// after it, or (-1, -1) when offset is past the last newline.
func nextLine(b []byte, offset int) (start, next int) {
	if offset > len(b) {
		return -1, -1
	}
	idx := bytes.IndexByte(b[offset:], '\n')
	if idx < 0 {
		return -1, -1
	}
	return offset, offset + idx + 1
}

func lineEnd(b []byte, start int) int {
	idx := bytes.IndexByte(b[start:], '\n')
	if idx < 0 {
		return len(b)
	}
	return start + idx
}

func isDelimiterLine(line []byte) bool {
	line = bytes.TrimSuffix(line, []byte("\r"))
	return bytes.Equal(line, delimiter)
}
