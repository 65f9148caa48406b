package domain

// MatchKind classifies how a query was resolved.
type MatchKind string

const (
	// MatchExact means the normalized query equals a step ID.
	MatchExact MatchKind = "exact"
	// MatchFuzzy means a close candidate was accepted as a typo correction.
	MatchFuzzy MatchKind = "fuzzy_auto_corrected"
	// MatchSuggested means a candidate was found but only offered as a hint.
	MatchSuggested MatchKind = "suggested"
	// MatchNotFound means no candidate cleared the admission cutoff.
	MatchNotFound MatchKind = "not_found"
	// MatchEmpty means the query was empty after normalization.
	MatchEmpty MatchKind = "empty"
)

// Resolution is the outcome of resolving a query against a list of steps.
// Step is nil unless Kind is MatchExact or MatchFuzzy.
type Resolution struct {
	Query      string
	Step       *Step
	Diagnostic string
	Kind       MatchKind
	// Score is the similarity of the best candidate (0 is identical).
	// It is 0 for exact matches and 1 when nothing was scored.
	Score float64
}

// Found reports whether the resolution carries a step.
func (r Resolution) Found() bool {
	return r.Step != nil
}
