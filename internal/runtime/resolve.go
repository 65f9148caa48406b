package runtime

import (
	"fmt"
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/similarity"
)

const (
	// AutoCorrectThreshold is the score below which a fuzzy candidate is
	// accepted as a typo correction.
	AutoCorrectThreshold = 0.2
	// SuggestionThreshold is the admission cutoff: candidates scoring at or
	// above it are not even suggested.
	SuggestionThreshold = 0.4
)

// DiagnosticEmpty is reported when the query is empty after normalization.
const DiagnosticEmpty = "empty identifier"

// Suggestion formats the "did you mean" hint for a candidate step ID.
func Suggestion(id string) string {
	return fmt.Sprintf("did you mean '%s'?", id)
}

// Resolve finds the step a query refers to.
//
// An exact ID match always wins. Otherwise every step is scored by the best of
// its ID and name, and the lowest score is kept (first in order on ties).
// Scores below AutoCorrectThreshold are accepted silently, scores below
// SuggestionThreshold only produce a suggestion, and anything else is not found.
func Resolve(query string, steps []domain.Step) domain.Resolution {
	q := strings.ToLower(strings.TrimSpace(query))
	res := domain.Resolution{Query: q, Kind: domain.MatchNotFound, Score: 1}
	if q == "" {
		res.Kind = domain.MatchEmpty
		res.Diagnostic = DiagnosticEmpty
		return res
	}

	for i := range steps {
		if steps[i].ID == q {
			step := steps[i]
			res.Step = &step
			res.Kind = domain.MatchExact
			res.Score = 0
			return res
		}
	}

	best := -1
	for i := range steps {
		score := similarity.Score(q, steps[i].ID)
		if steps[i].Name != "" {
			if byName := similarity.Score(q, steps[i].Name); byName < score {
				score = byName
			}
		}
		if best == -1 || score < res.Score {
			best = i
			res.Score = score
		}
	}

	if best == -1 || res.Score >= SuggestionThreshold {
		return res
	}

	if res.Score < AutoCorrectThreshold {
		step := steps[best]
		res.Step = &step
		res.Kind = domain.MatchFuzzy
		return res
	}

	res.Kind = domain.MatchSuggested
	res.Diagnostic = Suggestion(steps[best].ID)
	return res
}
