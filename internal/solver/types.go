// internal/solver/types.go
//
// Core value types for the solving engine.
// Defines:
//   - Word:         a 5-letter lowercase guess or candidate solution.
//   - Mark:         per-letter feedback (hit/present/miss).
//   - Pattern:      the 5 marks produced by one guess against one solution.
//   - HistoryEntry: a recorded (guess, pattern) observation.
//   - ScoredGuess:  a guess paired with its entropy over a pool.
//
// All types are immutable values; the package keeps no state between calls.

package solver

import (
	"errors"
	"fmt"
	"strings"
)

// WordLen is the number of letters in every word and pattern.
const WordLen = 5

// patternSpace is the number of distinct patterns (3^WordLen).
const patternSpace = 243

var (
	ErrInvalidWord    = errors.New("word must be 5 letters a-z")
	ErrInvalidPattern = errors.New("pattern must be 5 chars of g/y/b")
)

// Word is a 5-letter lowercase word. Construct with ParseWord when the
// input is untrusted; a plain conversion is not validated.
type Word string

// ParseWord trims, lowercases and validates s.
func ParseWord(s string) (Word, error) {
	w := Word(strings.ToLower(strings.TrimSpace(s)))
	if !w.Valid() {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidWord)
	}
	return w, nil
}

// Valid reports whether w is exactly 5 lowercase ASCII letters.
func (w Word) Valid() bool {
	if len(w) != WordLen {
		return false
	}
	for i := 0; i < WordLen; i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}

// Mark represents the evaluation result for a single letter in a guess.
type Mark uint8

const (
	MarkMiss    Mark = iota // letter not in the solution (b)
	MarkPresent             // letter in the solution, other position (y)
	MarkHit                 // letter in the correct position (g)
)

// Symbol returns the single-letter form used in typed patterns.
func (m Mark) Symbol() byte {
	switch m {
	case MarkHit:
		return 'g'
	case MarkPresent:
		return 'y'
	default:
		return 'b'
	}
}

func (m Mark) String() string {
	switch m {
	case MarkHit:
		return "hit"
	case MarkPresent:
		return "present"
	default:
		return "miss"
	}
}

// Pattern is the feedback for a whole guess, position by position.
// Patterns are comparable with ==.
type Pattern [WordLen]Mark

// ParsePattern reads a pattern typed as g/y/b letters (case-insensitive).
func ParsePattern(s string) (Pattern, error) {
	var p Pattern
	t := strings.ToLower(strings.TrimSpace(s))
	if len(t) != WordLen {
		return p, fmt.Errorf("%q: %w", s, ErrInvalidPattern)
	}
	for i := 0; i < WordLen; i++ {
		switch t[i] {
		case 'g':
			p[i] = MarkHit
		case 'y':
			p[i] = MarkPresent
		case 'b':
			p[i] = MarkMiss
		default:
			return Pattern{}, fmt.Errorf("%q: %w", s, ErrInvalidPattern)
		}
	}
	return p, nil
}

// MustPattern is ParsePattern for literals; it panics on bad input.
func MustPattern(s string) Pattern {
	p, err := ParsePattern(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Pattern) String() string {
	var b [WordLen]byte
	for i, m := range p {
		b[i] = m.Symbol()
	}
	return string(b[:])
}

// Code packs the pattern into a base-3 integer in [0, 243).
func (p Pattern) Code() int {
	c := 0
	for _, m := range p {
		c = c*3 + int(m)
	}
	return c
}

// Solved reports whether every position is a hit.
func (p Pattern) Solved() bool {
	for _, m := range p {
		if m != MarkHit {
			return false
		}
	}
	return true
}

// MarshalText encodes the pattern as its g/y/b string.
func (p Pattern) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a g/y/b string.
func (p *Pattern) UnmarshalText(b []byte) error {
	v, err := ParsePattern(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// HistoryEntry claims that guessing Guess against the hidden solution
// produced Pattern.
type HistoryEntry struct {
	Guess   Word    `json:"guess"`
	Pattern Pattern `json:"pattern"`
}

func (h HistoryEntry) String() string {
	return string(h.Guess) + " " + h.Pattern.String()
}

// ScoredGuess is a ranked guess.
type ScoredGuess struct {
	Word    Word    `json:"word"`
	Entropy float64 `json:"entropy"`
}
