// internal/solver/feedback.go
//
// Feedback evaluation and candidate narrowing.

package solver

// Evaluate scores guess against solution with the classic two-pass algorithm.
//
// Pass 1:
//   - Mark exact matches as Hit and take those letters out of the solution's counts.
//
// Pass 2:
//   - For each non-hit guess letter: if the solution still has an unclaimed copy,
//     mark Present and consume it; otherwise mark Miss.
//
// Hits are always resolved first, so a repeated guess letter is never credited
// more times than it occurs in the solution. Letters are compared
// case-insensitively. Both words must be WordLen long.
func Evaluate(guess, solution Word) Pattern {
	var res Pattern
	var counts [26]int

	// Letter frequency of the solution (a–z).
	for i := 0; i < WordLen; i++ {
		if j := idx(solution[i]); j >= 0 && j < 26 {
			counts[j]++
		}
	}

	// First pass: hits.
	for i := 0; i < WordLen; i++ {
		if fold(guess[i]) == fold(solution[i]) {
			res[i] = MarkHit
			if j := idx(solution[i]); j >= 0 && j < 26 {
				counts[j]--
			}
		}
	}

	// Second pass: presents/misses for non-hit tiles.
	for i := 0; i < WordLen; i++ {
		if res[i] == MarkHit {
			continue
		}
		j := idx(guess[i])
		if j >= 0 && j < 26 && counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		}
	}
	return res
}

// Narrow returns the words of pool consistent with every history entry,
// in their original order. Neither argument is modified.
func Narrow(pool []Word, history []HistoryEntry) []Word {
	out := make([]Word, len(pool))
	copy(out, pool)
	for _, h := range history {
		if len(out) == 0 {
			break
		}
		kept := out[:0]
		for _, w := range out {
			if Evaluate(h.Guess, w) == h.Pattern {
				kept = append(kept, w)
			}
		}
		out = kept
	}
	return out
}

// fold lowercases an ASCII letter.
func fold(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// idx maps a letter to 0..25; anything else lands outside that range.
func idx(b byte) int { return int(fold(b)) - 'a' }
