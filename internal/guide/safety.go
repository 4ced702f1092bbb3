package guide

import (
	"strings"

	"github.com/wfedor/telecast/internal/models"
)

// Per-category title filtering. A candidate is rejected when its title
// matches any blocklisted term for the channel's category, or when the
// category defines signal terms and the title matches none of them. This is
// not an error path: non-conforming candidates are dropped silently before
// scoring.

var categoryBlockTerms = map[string][]string{
	"sports": {"song", "parody", "cartoon", "anthem", "lyrics", "remix"},
	"news":   {"parody", "satire", "deepfake"},
	"kids":   {"scary", "horror", "gore", "creepypasta"},
}

var categorySignalTerms = map[string][]string{
	"sports": {
		"highlights", "game", "match", "race", "finals", "playoffs",
		"league", "championship", "tournament", "goals", "knockout",
		"vs", "vs.",
	},
}

// FilterSafe drops candidates whose titles fail the category's content
// filter. The result preserves input order.
func FilterSafe(videos []*models.Video, category string) []*models.Video {
	blocked := categoryBlockTerms[category]
	signals := categorySignalTerms[category]
	if len(blocked) == 0 && len(signals) == 0 {
		return videos
	}

	kept := make([]*models.Video, 0, len(videos))
	for _, v := range videos {
		title := strings.ToLower(v.Title)
		if matchesAny(title, blocked) {
			continue
		}
		if len(signals) > 0 && !matchesAny(title, signals) {
			continue
		}
		kept = append(kept, v)
	}
	return kept
}

// matchesAny reports whether the title contains any of the terms
func matchesAny(title string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(title, term) {
			return true
		}
	}
	return false
}
