package parsing

import "strings"

// normalizeToken lowercases and trims a single token.
func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizeTokens lowercases, trims, and dedupes a token list, dropping
// empties and preserving first-seen order. Skill and domain sets are
// case-normalized here once so scoring can compare them directly.
func normalizeTokens(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = normalizeToken(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// trimAll trims whitespace from each entry and drops empties, preserving
// order and case (bullets and titles keep their original casing).
func trimAll(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}
