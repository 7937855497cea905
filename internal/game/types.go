// internal/game/types.go
//
// Type definitions for simulated games.
// Defines:
//   - Game: state of one game against a known answer.
//   - Turn: one guess played by the solver and the feedback it got.

package game

import "github.com/robalobadob/wordle/apps/solver/internal/solver"

// Game holds the state of a single simulated game.
type Game struct {
	Answer   solver.Word           // The solution word.
	Rows     int                   // Maximum number of guesses allowed (typically 6).
	History  []solver.HistoryEntry // Guesses played so far with their feedback.
	Finished bool                  // True once the game is over (won or lost).
	Won      bool                  // True if the game was finished with a win.
}

// Turn records one solver move.
type Turn struct {
	Guess   solver.Word    `json:"guess"`
	Pattern solver.Pattern `json:"pattern"`
	Pool    int            `json:"pool"`    // candidates left before this guess
	Entropy float64        `json:"entropy"` // expected information of the guess
}
