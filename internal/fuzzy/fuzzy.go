// Package fuzzy matches free-form input tokens against a fixed vocabulary,
// tolerating typos via normalized Levenshtein similarity.
package fuzzy

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Threshold is the minimum similarity score (0..1) for a non-exact match.
const Threshold = 0.72

// Match returns the vocabulary entry that best matches input, or false if no
// entry is close enough. An exact case-insensitive match wins outright.
// Otherwise every entry is scored and the highest score wins, provided it
// reaches Threshold. Ties resolve to the entry that appears first in the
// vocabulary: the comparison is strictly-greater, so a later entry with the
// same score never displaces an earlier one.
func Match(input string, vocabulary []string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}

	for _, entry := range vocabulary {
		if entry == normalized {
			return entry, true
		}
	}

	lev := metrics.NewLevenshtein()
	best := ""
	bestScore := 0.0
	for _, entry := range vocabulary {
		score := strutil.Similarity(normalized, entry, lev)
		if score > bestScore {
			bestScore = score
			best = entry
		}
	}

	if bestScore >= Threshold {
		return best, true
	}
	return "", false
}
