package resolver

import (
	"path"
	"strings"
)

// canonicalize resolves raw (an include directive's path, or the initial
// main-module path) relative to base (the canonical path of the including
// module, or "" for the entry point), validates its characters, and
// rejects anything that would escape the root.
//
// Canonical paths are slash-separated and rooted at the main module's
// directory; there is no notion of an OS filesystem here; the result is
// just a normalized key for the Loader and for cycle/dedup bookkeeping.
func canonicalize(base, raw string) (string, bool) {
	if raw == "" || !validPathChars(raw) {
		return "", false
	}

	var joined string
	if path.IsAbs(raw) {
		joined = raw[1:]
	} else {
		joined = path.Join(path.Dir(base), raw)
	}
	clean := path.Clean(joined)
	if clean == "." {
		return "", false
	}
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", false
	}
	return clean, true
}

func validPathChars(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_' || r == '.' || r == '/' || r == '-':
		default:
			return false
		}
	}
	return true
}
