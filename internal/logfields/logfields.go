package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeySlug   = "slug"
	KeyLang   = "lang"
	KeyKind   = "kind"
	KeyPath   = "path"
	KeyFile   = "file"
	KeySource = "source"
	KeyTarget = "target"
	KeyPhase  = "phase"
	KeyRunID  = "run_id"
	KeyMode   = "mode"
	KeyItems  = "items"
	KeyCount  = "count"
	KeyError  = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Slug(s string) slog.Attr   { return slog.String(KeySlug, s) }
func Lang(l string) slog.Attr   { return slog.String(KeyLang, l) }
func Kind(k string) slog.Attr   { return slog.String(KeyKind, k) }
func Path(p string) slog.Attr   { return slog.String(KeyPath, p) }
func File(f string) slog.Attr   { return slog.String(KeyFile, f) }
func Source(s string) slog.Attr { return slog.String(KeySource, s) }
func Target(t string) slog.Attr { return slog.String(KeyTarget, t) }
func Phase(p string) slog.Attr  { return slog.String(KeyPhase, p) }
func RunID(id string) slog.Attr { return slog.String(KeyRunID, id) }
func Mode(m string) slog.Attr   { return slog.String(KeyMode, m) }
func Items(n int) slog.Attr     { return slog.Int(KeyItems, n) }
func Count(n int) slog.Attr     { return slog.Int(KeyCount, n) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
