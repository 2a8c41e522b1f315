package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	maxSuggestions = 5
	maxDistance    = 2
	minSubsequence = 3
)

// suggest returns candidates close to name: within a small edit distance,
// or containing name as a subsequence when name is long enough to be
// meaningful. Closest candidates come first.
func suggest(name string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}
	upper := strings.ToUpper(name)
	var found []scored
	for _, c := range candidates {
		cu := strings.ToUpper(c)
		if cu == upper {
			continue
		}
		dist := fuzzy.LevenshteinDistance(upper, cu)
		if dist <= maxDistance || (len(upper) >= minSubsequence && fuzzy.Match(upper, cu)) {
			found = append(found, scored{name: c, dist: dist})
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].dist != found[j].dist {
			return found[i].dist < found[j].dist
		}
		return found[i].name < found[j].name
	})
	if len(found) > maxSuggestions {
		found = found[:maxSuggestions]
	}
	out := make([]string, len(found))
	for i, s := range found {
		out[i] = s.name
	}
	return out
}

// didYouMean renders the suffix appended to unknown-name failures.
func didYouMean(matches []string) string {
	switch len(matches) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf(", did you mean [%s]?", matches[0])
	default:
		return fmt.Sprintf(", did you mean any of [%s]?", strings.Join(matches, ", "))
	}
}
