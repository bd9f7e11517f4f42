package logfields

import (
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Slug", KeySlug, "setup-ssh", Slug("setup-ssh")},
		{"Lang", KeyLang, "ru", Lang("ru")},
		{"Kind", KeyKind, "post", Kind("post")},
		{"Path", KeyPath, "/tmp/content", Path("/tmp/content")},
		{"File", KeyFile, "en.md", File("en.md")},
		{"Source", KeySource, "en/setup-ssh", Source("en/setup-ssh")},
		{"Target", KeyTarget, "setup-ssh/en.md", Target("setup-ssh/en.md")},
		{"Phase", KeyPhase, "backup", Phase("backup")},
		{"RunID", KeyRunID, "abc", RunID("abc")},
		{"Mode", KeyMode, "dry-run", Mode("dry-run")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

// TestNumericHelpers verifies keys for numeric helpers.
func TestNumericHelpers(t *testing.T) {
	if v := Items(3); v.Key != KeyItems {
		t.Fatalf("Items key mismatch: %s", v.Key)
	}
	if v := Count(42); v.Key != KeyCount {
		t.Fatalf("Count key mismatch: %s", v.Key)
	}
}

// TestErrorHelper ensures Error() handles nil and non-nil errors predictably.
func TestErrorHelper(t *testing.T) {
	attr := Error(nil)
	if attr.Key != KeyError {
		t.Fatalf("Error key mismatch: %s", attr.Key)
	}
	if attr.Value.String() != "" {
		t.Fatalf("expected empty error string, got %s", attr.Value.String())
	}
	attr = Error(errTest{})
	if attr.Value.String() != "err-test" {
		t.Fatalf("expected 'err-test', got %s", attr.Value.String())
	}
}

type errTest struct{}

func (e errTest) Error() string { return "err-test" }
