// Package matching computes tool-overlap match scores between a required
// tool set and a held tool set.
package matching

import (
	"math"
	"strings"
)

// Score calculates the percentage match of a held tool set against a required
// tool set. The denominator is the size of the required set, so a strict
// superset of the requirements scores exactly 100. Tool names compare
// case-insensitively and duplicates are ignored. The result is rounded half
// up to the nearest integer in [0, 100].
func Score(required, have []string) int {
	req := normalizeSet(required)
	if len(req) == 0 {
		return 100
	}

	held := normalizeSet(have)
	if len(held) == 0 {
		return 0
	}

	matched := 0
	for tool := range req {
		if held[tool] {
			matched++
		}
	}

	return int(math.Round(float64(matched) / float64(len(req)) * 100))
}

// Matched returns the required tools that are present in the held set,
// in their original required-list order and spelling.
func Matched(required, have []string) []string {
	held := normalizeSet(have)
	if len(held) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(required))
	var matched []string
	for _, tool := range required {
		normalized := normalizeTool(tool)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		if held[normalized] {
			matched = append(matched, tool)
		}
	}
	return matched
}

// Overlaps reports whether at least one required tool is held. Used by the
// listing tool facet, which passes on any overlap rather than a full match.
func Overlaps(required, have []string) bool {
	held := normalizeSet(have)
	for _, tool := range required {
		if held[normalizeTool(tool)] {
			return true
		}
	}
	return false
}

func normalizeSet(tools []string) map[string]bool {
	set := make(map[string]bool, len(tools))
	for _, tool := range tools {
		normalized := normalizeTool(tool)
		if normalized != "" {
			set[normalized] = true
		}
	}
	return set
}

func normalizeTool(tool string) string {
	return strings.ToLower(strings.TrimSpace(tool))
}
