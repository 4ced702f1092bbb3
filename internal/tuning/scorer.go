package tuning

import (
	"sort"
	"strings"

	"github.com/wfedor/telecast/internal/models"
)

// Score weights. Suppression outweighs boosting so one explicit dislike is
// not drowned out by incidental keyword matches.
const (
	boostKeywordWeight    = 2
	suppressKeywordWeight = 3
)

const (
	maxAugmentBoosted    = 3
	maxAugmentSuppressed = 3
	minNegatedTermLength = 4
)

// Score computes the tuning score for a single video title attributed to a
// channel. Keyword matches are substring matches against the lowercase
// title; missing channel entries count as zero.
func (p *Profile) Score(title, channelID string) int {
	lower := strings.ToLower(title)

	score := 0
	for kw := range p.BoostedKeywords {
		if strings.Contains(lower, kw) {
			score += boostKeywordWeight
		}
	}
	for kw := range p.SuppressedKeywords {
		if strings.Contains(lower, kw) {
			score -= suppressKeywordWeight
		}
	}
	score += p.BoostedChannels[channelID]
	score -= p.SuppressedChannels[channelID]
	return score
}

// Apply filters blocked videos out of candidates and stable-sorts the rest
// by descending score, so ties keep their original relative order. The
// result is always a permutation of a subset of the input; no videos are
// invented.
func (p *Profile) Apply(candidates []*models.Video, channelID string) []*models.Video {
	kept := make([]*models.Video, 0, len(candidates))
	for _, v := range candidates {
		if p.IsBlocked(v.ID) {
			continue
		}
		kept = append(kept, v)
	}

	scores := make([]int, len(kept))
	for i, v := range kept {
		scores[i] = p.Score(v.Title, channelID)
	}

	// Sort indices so scores move with their videos and the sort stays stable
	indices := make([]int, len(kept))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return scores[indices[i]] > scores[indices[j]]
	})

	sorted := make([]*models.Video, len(kept))
	for i, idx := range indices {
		sorted[i] = kept[idx]
	}
	return sorted
}

// AugmentQuery biases an upstream search query with the viewer's strongest
// signals: up to three boosted keywords as an OR clause and up to three
// suppressed keywords (longer than three characters) as negated terms. This
// is best-effort hinting to the search system; the hard filter is Apply,
// run after fetch.
func (p *Profile) AugmentQuery(baseQuery string) string {
	query := baseQuery

	boosted := sortedKeys(p.BoostedKeywords)
	if len(boosted) > maxAugmentBoosted {
		boosted = boosted[:maxAugmentBoosted]
	}
	if len(boosted) > 0 {
		query += " (" + strings.Join(boosted, "|") + ")"
	}

	var negated []string
	for _, kw := range sortedKeys(p.SuppressedKeywords) {
		if len(kw) >= minNegatedTermLength {
			negated = append(negated, "-"+kw)
			if len(negated) == maxAugmentSuppressed {
				break
			}
		}
	}
	if len(negated) > 0 {
		query += " " + strings.Join(negated, " ")
	}

	return strings.TrimSpace(query)
}

// sortedKeys returns map keys in lexical order so query augmentation is
// deterministic
func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
