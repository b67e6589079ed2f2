package sarif

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const pathSeparators = `/\`

// computePrefixes produces the uppercase prefix list used for stripping.
// Explicit prefixes are trimmed and uppercased. With autotrim, a prefix
// inferred from the given (unstripped) records is appended, unless an
// explicit prefix already starts with it and stripping it again would be
// redundant. Returns nil when there is nothing to strip.
func computePrefixes(autotrim bool, pathPrefixes []string, records []*Record) []string {
	var prefixes []string
	for _, prefix := range pathPrefixes {
		prefixes = append(prefixes, strings.ToUpper(strings.TrimSpace(prefix)))
	}
	if autotrim {
		if candidate := inferAutotrimPrefix(records); candidate != "" {
			covered := false
			for _, prefix := range prefixes {
				if strings.HasPrefix(prefix, candidate) {
					covered = true
					break
				}
			}
			if !covered {
				prefixes = append(prefixes, candidate)
			}
		}
	}
	if len(prefixes) == 0 {
		return nil
	}
	return prefixes
}

// inferAutotrimPrefix derives an uppercase common path prefix from record
// locations. A single location is cut at its last path separator; multiple
// locations share their longest common character prefix.
func inferAutotrimPrefix(records []*Record) string {
	switch {
	case len(records) == 1:
		loc := strings.TrimSpace(records[0].Location)
		if pos := strings.LastIndexAny(loc, pathSeparators); pos > -1 {
			return strings.ToUpper(loc[:pos])
		}
		return ""
	case len(records) > 1:
		common := strings.TrimSpace(records[0].Location)
		for _, record := range records[1:] {
			common = commonPrefix(common, strings.TrimSpace(record.Location))
			if common == "" {
				break
			}
		}
		return strings.ToUpper(common)
	}
	return ""
}

// commonPrefix returns the longest shared leading substring of a and b.
func commonPrefix(a, b string) string {
	limit := len(a)
	if len(b) < limit {
		limit = len(b)
	}
	for i := 0; i < limit; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:limit]
}

// stripPathPrefix removes the first matching prefix from location. Matching
// is case-insensitive and the first configured prefix wins. A path separator
// immediately following the prefix is consumed too, so the stripped location
// does not begin with one.
func stripPathPrefix(location string, prefixesUpper []string) string {
	if len(prefixesUpper) == 0 {
		return location
	}
	locationUpper := strings.ToUpper(location)
	for _, prefix := range prefixesUpper {
		if !strings.HasPrefix(locationUpper, prefix) {
			continue
		}
		end := prefixByteLen(location, prefix)
		if len(location) > end && strings.ContainsRune(pathSeparators, rune(location[end])) {
			end++
		}
		return location[end:]
	}
	return location
}

// prefixByteLen returns the length in bytes of the leading part of location
// whose uppercase form is prefixUpper. ToUpper can change a rune's byte
// length (U+0131 maps to the one-byte I), so len(prefixUpper) cannot be used
// to slice the original string directly.
func prefixByteLen(location, prefixUpper string) int {
	upper := 0
	for i, r := range location {
		if upper >= len(prefixUpper) {
			return i
		}
		upper += utf8.RuneLen(unicode.ToUpper(r))
	}
	return len(location)
}
