package hierarchy

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName canonicalizes a display name for duplicate detection: NFKC
// compatibility normalization folds width and ligature variants, then the
// result is lower-cased. Missing names normalize to the empty string.
func NormalizeName(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToLower(norm.NFKC.String(name))
}
