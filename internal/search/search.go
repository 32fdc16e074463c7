// Package search ranks captured commands against a free-text query.
//
// Ranking is lexical: token overlap between the query and the command,
// weighted toward recent captures. There is no stemming and no semantic
// model; for shell commands, literal token matches are what users expect.
package search

import (
	"sort"
	"strings"
	"time"

	"github.com/icmd-sh/icmd/internal/history"
)

// Result is a ranked match.
type Result struct {
	Command   string
	Directory string
	CreatedAt time.Time
	Score     float64
}

// candidatePool bounds how many stored entries are considered per query.
const candidatePool = 500

// Query returns the top matches for query, best first, at most limit results.
func Query(store *history.Store, query string, limit int) ([]Result, error) {
	if limit < 1 {
		return nil, nil
	}

	seen := make(map[uint]history.Entry)

	// Substring hits for each query token, plus recent entries so partial
	// token matches still surface.
	for _, token := range tokenize(query) {
		entries, err := store.Search(token, candidatePool)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			seen[e.ID] = e
		}
	}
	recent, err := store.Recent(candidatePool)
	if err != nil {
		return nil, err
	}
	for _, e := range recent {
		seen[e.ID] = e
	}

	candidates := make([]history.Entry, 0, len(seen))
	for _, e := range seen {
		candidates = append(candidates, e)
	}

	results := Rank(candidates, query, time.Now())
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Rank scores candidates against query and returns matches sorted best
// first. Entries with no token overlap are dropped.
func Rank(candidates []history.Entry, query string, now time.Time) []Result {
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return nil
	}

	var results []Result
	for _, e := range candidates {
		score := overlapScore(queryTokens, e.Command)
		if score == 0 {
			continue
		}
		score += recencyBonus(now.Sub(e.CreatedAt))
		results = append(results, Result{
			Command:   e.Command,
			Directory: e.Directory,
			CreatedAt: e.CreatedAt,
			Score:     score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results
}

// overlapScore is the fraction of query tokens present in the command.
// Exact token matches count full, prefix matches half.
func overlapScore(queryTokens []string, command string) float64 {
	cmdTokens := tokenize(command)
	if len(cmdTokens) == 0 {
		return 0
	}

	var matched float64
	for _, q := range queryTokens {
		best := 0.0
		for _, c := range cmdTokens {
			switch {
			case c == q:
				best = 1.0
			case best < 0.5 && strings.HasPrefix(c, q):
				best = 0.5
			}
			if best == 1.0 {
				break
			}
		}
		matched += best
	}
	return matched / float64(len(queryTokens))
}

// recencyBonus decays linearly from 0.25 for brand-new entries to zero at
// the 30-day horizon. It breaks ties between equally matching commands.
func recencyBonus(age time.Duration) float64 {
	const horizon = 30 * 24 * time.Hour
	if age < 0 {
		age = 0
	}
	if age >= horizon {
		return 0
	}
	return 0.25 * (1 - float64(age)/float64(horizon))
}

func tokenize(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	tokens := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, `"'`)
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
