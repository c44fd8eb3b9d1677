// Package ident derives grouping identifiers from image filenames.
package ident

import "regexp"

// Filenames group by the digit run immediately before the .jpg suffix.
// The last five digits are a per-image serial and are dropped; the remainder
// is the identifier shared across folders.
var trailingDigits = regexp.MustCompile(`(\d+)\.jpg$`)

// Extract returns the identifier for filename, or ok=false when the name has
// no trailing digit run before ".jpg". The ".jpg" literal is matched
// case-sensitively; callers filter extensions case-insensitively beforehand,
// so an upper-case ".JPG" name passes the filter but yields no identifier.
//
// A run of five or fewer digits is returned whole. That means very short
// numeric names are not truncated at all, which is intentional.
func Extract(filename string) (string, bool) {
	m := trailingDigits.FindStringSubmatch(filename)
	if m == nil {
		return "", false
	}
	run := m[1]
	if len(run) > 5 {
		return run[:len(run)-5], true
	}
	return run, true
}
