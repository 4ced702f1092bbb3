package tuning

import (
	"strings"
)

const maxKeywordsPerTitle = 5

// stopWords are tokens that carry no preference signal: articles, pronouns,
// conjunctions, and generic video-metadata words that appear in almost every
// title.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {}, "this": {},
	"that": {}, "are": {}, "was": {}, "you": {}, "your": {}, "our": {},
	"his": {}, "her": {}, "its": {}, "their": {}, "has": {}, "have": {},
	"not": {}, "but": {}, "all": {}, "can": {}, "will": {}, "how": {},
	"what": {}, "when": {}, "where": {}, "why": {}, "who": {},
	"official": {}, "video": {}, "trailer": {}, "teaser": {}, "full": {},
	"episode": {}, "new": {}, "best": {}, "top": {}, "live": {},
	"hd": {}, "4k": {}, "1080p": {}, "720p": {}, "feat": {}, "vs": {},
}

// ExtractKeywords pulls up to five lowercase keywords out of a video title.
// Punctuation is stripped, stop words and year tokens are excluded, and
// tokens shorter than three characters are ignored.
func ExtractKeywords(title string) []string {
	if title == "" {
		return nil
	}

	cleaned := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		if r > 127 {
			// Keep non-ASCII letters; titles are frequently not English
			return r
		}
		return ' '
	}, strings.ToLower(title))

	var keywords []string
	seen := make(map[string]struct{})
	for _, token := range strings.Fields(cleaned) {
		if len(token) < 3 {
			continue
		}
		if _, ok := stopWords[token]; ok {
			continue
		}
		if isYearToken(token) {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		keywords = append(keywords, token)
		if len(keywords) == maxKeywordsPerTitle {
			break
		}
	}
	return keywords
}

// isYearToken reports whether a token looks like a calendar year (1900-2099)
func isYearToken(token string) bool {
	if len(token) != 4 {
		return false
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}
	return token[0] == '1' && token[1] == '9' || token[0] == '2' && token[1] == '0'
}
