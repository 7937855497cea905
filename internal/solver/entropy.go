package solver

import (
	"math"
	"sort"
)

// Entropy is the Shannon entropy (base 2) of the pattern distribution that
// guess induces over pool, assuming every pool member is equally likely.
// It is 0 for an empty or singleton pool and at most log2(len(pool)).
// Bucket sizes are summed in ascending order: guesses that split pool into the
// same sizes score exactly equal.
func Entropy(guess Word, pool []Word) float64 {
	n := len(pool)
	if n == 0 {
		return 0
	}
	var buckets [patternSpace]int
	for _, s := range pool {
		buckets[Evaluate(guess, s).Code()]++
	}
	var sizes [patternSpace]int
	k := 0
	for _, c := range buckets {
		if c > 0 {
			sizes[k] = c
			k++
		}
	}
	sort.Ints(sizes[:k])

	total := float64(n)
	ent := 0.0
	for _, c := range sizes[:k] {
		p := float64(c) / total
		ent -= p * math.Log2(p)
	}
	return ent
}

// Partition groups pool by the pattern each member produces against guess.
// Words inside each bucket keep their pool order.
func Partition(guess Word, pool []Word) map[Pattern][]Word {
	out := make(map[Pattern][]Word)
	for _, s := range pool {
		p := Evaluate(guess, s)
		out[p] = append(out[p], s)
	}
	return out
}
