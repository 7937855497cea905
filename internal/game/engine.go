// internal/game/engine.go
//
// Game engine used to simulate the solver playing against a known answer.
// Responsibilities:
//   - Create games with the standard 6 rows.
//   - Apply guesses, scoring them with solver.Evaluate.
//   - Track state transitions: playing → won/lost.
//   - Autoplay: let the greedy entropy strategy play a whole game.
//
// Notes:
//   - Autoplay follows the same policy as interactive suggestions: with one or
//     two candidates left it simply plays the first candidate.

package game

import (
	"context"
	"errors"

	"github.com/robalobadob/wordle/apps/solver/internal/session"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

const defaultRows = 6

var (
	ErrFinished      = errors.New("game finished")
	ErrNoSuggestions = errors.New("solver has no guess to play")
)

// New constructs a game for answer.
func New(answer solver.Word) *Game {
	return &Game{Answer: answer, Rows: defaultRows}
}

// ApplyGuess scores guess against the answer and records it.
// Returns the feedback and the new state string ("playing"/"won"/"lost").
func (g *Game) ApplyGuess(guess solver.Word) (solver.Pattern, string, error) {
	if g.Finished {
		return solver.Pattern{}, g.State(), ErrFinished
	}
	if !guess.Valid() {
		return solver.Pattern{}, g.State(), solver.ErrInvalidWord
	}

	p := solver.Evaluate(guess, g.Answer)
	g.History = append(g.History, solver.HistoryEntry{Guess: guess, Pattern: p})

	if p.Solved() {
		g.Finished, g.Won = true, true
	} else if len(g.History) >= g.Rows {
		g.Finished = true
	}
	return p, g.State(), nil
}

// State reports a coarse string representation of the current game state.
func (g *Game) State() string {
	if g.Finished {
		if g.Won {
			return "won"
		}
		return "lost"
	}
	return "playing"
}

// Autoplay plays g to the end with the solver's top suggestion each turn.
// opener, when set, replaces the first ranked guess (openers are expensive
// to rank from scratch). opts.TopK is forced to 1.
func Autoplay(ctx context.Context, g *Game, lists *words.Lists, opener solver.Word, opts solver.Options) ([]Turn, error) {
	opts.TopK = 1
	var turns []Turn
	for !g.Finished {
		history := g.History

		var next solver.Word
		var entropy float64
		pool := solver.Narrow(lists.Answers, history)

		switch {
		case len(history) == 0 && opener != "":
			next = opener
			entropy = solver.Entropy(opener, pool)
		default:
			sug, err := session.Suggest(ctx, lists, history, opts)
			if err != nil {
				return turns, err
			}
			switch sug.Status {
			case session.StatusRanked:
				next, entropy = sug.Guesses[0].Word, sug.Guesses[0].Entropy
			case session.StatusFewCandidates:
				next = sug.Candidates[0]
				entropy = solver.Entropy(next, sug.Candidates)
			default:
				return turns, ErrNoSuggestions
			}
		}

		p, _, err := g.ApplyGuess(next)
		if err != nil {
			return turns, err
		}
		turns = append(turns, Turn{Guess: next, Pattern: p, Pool: len(pool), Entropy: entropy})
	}
	return turns, nil
}
