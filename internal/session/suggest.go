// internal/session/suggest.go
//
// Suggestion policy on top of the solver:
//   - narrow the answer list with the player's history,
//   - skip ranking when fewer than MinRankPool candidates remain
//     (the player should just pick one),
//   - otherwise rank the pool against the guess vocabulary.

package session

import (
	"context"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// MinRankPool is the smallest pool worth ranking guesses for.
const MinRankPool = 3

// Status values reported in a Suggestion.
const (
	StatusNoCandidates  = "no_candidates"  // history contradicts every answer
	StatusFewCandidates = "few_candidates" // 1 or 2 left; no ranking done
	StatusRanked        = "ranked"
	StatusNoSuggestions = "no_suggestions" // empty search space
)

// Suggestion is the outcome of one suggest request.
type Suggestion struct {
	Status     string               `json:"status"`
	Candidates []solver.Word        `json:"candidates"`
	Guesses    []solver.ScoredGuess `json:"guesses"`
}

// Suggest narrows lists.Answers by history and ranks next guesses.
// opts is passed through to solver.Rank.
func Suggest(ctx context.Context, lists *words.Lists, history []solver.HistoryEntry, opts solver.Options) (Suggestion, error) {
	pool := solver.Narrow(lists.Answers, history)
	out := Suggestion{Candidates: pool, Guesses: []solver.ScoredGuess{}}

	switch {
	case len(pool) == 0:
		out.Status = StatusNoCandidates
		return out, nil
	case len(pool) < MinRankPool:
		out.Status = StatusFewCandidates
		return out, nil
	}

	ranked, err := solver.Rank(ctx, pool, lists.Vocabulary(), opts)
	if err != nil {
		return Suggestion{}, err
	}
	if len(ranked) == 0 {
		out.Status = StatusNoSuggestions
		return out, nil
	}
	out.Status = StatusRanked
	out.Guesses = ranked
	return out, nil
}
