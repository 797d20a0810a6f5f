// Package classify scores a free-text transaction description against a
// user's category keyword lists and suggests the best-matching categories.
// Pure functions: no state, no store access, safe under any concurrency.
package classify

import (
	"sort"
	"strings"

	"github.com/centavo-app/centavo/internal/domain"
	"github.com/centavo-app/centavo/internal/textnorm"
)

// MinConfidence is the lowest score a keyword match may have and still
// produce a suggestion.
const MinConfidence = 50

// DefaultLimit is how many ranked suggestions SuggestTop returns when the
// caller passes limit <= 0.
const DefaultLimit = 3

// Score rates how well a keyword matches a description, 0–100.
//
//	100                      exact match
//	80 + min(2*len(kw), 15)  description contains the keyword
//	60                       keyword contains the description (desc >= 3 chars)
//	50 + min(len(kw), 10)    a description word and the keyword share a prefix
//	0                        no match
//
// Longer keywords are more specific, hence the length bonuses; the 3-char
// guard keeps 1–2 character descriptions from matching everything.
func Score(description, keyword string) int {
	desc := textnorm.Normalize(description)
	kw := textnorm.Normalize(keyword)
	if desc == "" || kw == "" {
		return 0
	}

	if desc == kw {
		return 100
	}

	if strings.Contains(desc, kw) {
		return 80 + min(2*len(kw), 15)
	}

	if len(desc) >= 3 && strings.Contains(kw, desc) {
		return 60
	}

	for _, word := range textnorm.Words(desc) {
		if strings.HasPrefix(word, kw) || strings.HasPrefix(kw, word) {
			return 50 + min(len(kw), 10)
		}
	}

	return 0
}

// Suggest returns the single best-scoring category for the description
// among candidates of the given direction, or nil if nothing reaches
// MinConfidence. On equal scores the category encountered first in the
// candidate slice wins; callers must not depend on which of two
// equally-scored categories that is.
func Suggest(description string, candidates []domain.Category, dir domain.Direction) *domain.CategoryMatch {
	if strings.TrimSpace(description) == "" {
		return nil
	}

	var best *domain.CategoryMatch
	for _, c := range candidates {
		if c.Direction != dir {
			continue
		}
		for _, kw := range c.Keywords {
			score := Score(description, kw)
			if score > 0 && (best == nil || score > best.Score) {
				best = &domain.CategoryMatch{
					CategoryID:     c.ID,
					CategoryName:   c.Name,
					Score:          score,
					MatchedKeyword: kw,
				}
			}
		}
	}

	if best == nil || best.Score < MinConfidence {
		return nil
	}
	return best
}

// SuggestTop returns up to limit categories ranked by their single best
// keyword score. Categories whose best score is below MinConfidence are
// excluded entirely. The ranking is deterministic: score descending,
// then category ID ascending.
func SuggestTop(description string, candidates []domain.Category, dir domain.Direction, limit int) []domain.CategoryMatch {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if strings.TrimSpace(description) == "" {
		return nil
	}

	best := make(map[string]domain.CategoryMatch)
	for _, c := range candidates {
		if c.Direction != dir {
			continue
		}
		for _, kw := range c.Keywords {
			score := Score(description, kw)
			if score < MinConfidence {
				continue
			}
			if cur, ok := best[c.ID]; !ok || score > cur.Score {
				best[c.ID] = domain.CategoryMatch{
					CategoryID:     c.ID,
					CategoryName:   c.Name,
					Score:          score,
					MatchedKeyword: kw,
				}
			}
		}
	}

	matches := make([]domain.CategoryMatch, 0, len(best))
	for _, m := range best {
		matches = append(matches, m)
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].CategoryID < matches[j].CategoryID
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
