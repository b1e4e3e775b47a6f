package token

import "strings"

// #region parse

// Parse splits a CSM-1 token into a prefix → value map. The parser is
// deliberately tolerant: lines without a colon are skipped, duplicate
// prefixes keep the last value, and values keep any embedded colons.
// It never fails; empty input yields an empty map.
func Parse(token string) map[string]string {
	parsed := make(map[string]string)
	if token == "" {
		return parsed
	}
	for _, line := range strings.Split(token, "\n") {
		prefix, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		parsed[prefix] = value
	}
	return parsed
}

// FromWire converts a wire token back to CSM-1 line form.
func FromWire(wire string) string {
	return strings.ReplaceAll(wire, WireSeparator, "\n")
}

// ParseWire parses a wire-format token.
func ParseWire(wire string) map[string]string {
	return Parse(FromWire(wire))
}

// #endregion parse
