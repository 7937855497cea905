// internal/solver/rank.go
//
// Guess ranking.
//
// Rank scores every word of the search space against the current pool and
// returns the best ones. A full scan over a large vocabulary is CPU bound, so
// the loop yields to the scheduler every YieldEvery items and checks the
// context there; the caller cancels a scan by cancelling ctx.

package solver

import (
	"context"
	"runtime"
	"sort"
)

const (
	DefaultProgressEvery = 50
	DefaultYieldEvery    = 800
)

// ProgressFunc receives (itemsProcessed, totalItems) during a scan.
type ProgressFunc func(done, total int)

// Options tunes a Rank call. The zero value ranks pool plus vocabulary and
// returns every scored word.
type Options struct {
	TopK          int          // keep the best TopK results; <= 0 keeps all
	OnlyFromPool  bool         // restrict the search space to the pool itself
	Progress      ProgressFunc // optional
	ProgressEvery int          // items between progress calls (default 50)
	YieldEvery    int          // items between yields (default 800)
}

// Rank scores each candidate guess by Entropy against pool, sorts by entropy
// descending (ties by ascending word) and truncates to opts.TopK.
//
// The search space is pool when opts.OnlyFromPool is set, otherwise pool
// followed by vocabulary; each word is scored at most once and malformed
// words are skipped. The only error is ctx.Err() after cancellation.
func Rank(ctx context.Context, pool, vocabulary []Word, opts Options) ([]ScoredGuess, error) {
	space := SearchSpace(pool, vocabulary, opts.OnlyFromPool)

	progressEvery := opts.ProgressEvery
	if progressEvery <= 0 {
		progressEvery = DefaultProgressEvery
	}
	yieldEvery := opts.YieldEvery
	if yieldEvery <= 0 {
		yieldEvery = DefaultYieldEvery
	}

	n := len(space)
	scored := make([]ScoredGuess, 0, n)
	for i, g := range space {
		if i%yieldEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if i > 0 {
				runtime.Gosched()
			}
		}
		if g.Valid() {
			scored = append(scored, ScoredGuess{Word: g, Entropy: Entropy(g, pool)})
		}
		if opts.Progress != nil && ((i+1)%progressEvery == 0 || i+1 == n) {
			opts.Progress(i+1, n)
		}
	}

	SortScored(scored)
	if opts.TopK > 0 && len(scored) > opts.TopK {
		scored = scored[:opts.TopK]
	}
	return scored, nil
}

// SearchSpace builds the list of words Rank would score: pool alone, or pool
// followed by the vocabulary words not seen yet. Duplicates collapse to their
// first occurrence.
func SearchSpace(pool, vocabulary []Word, onlyFromPool bool) []Word {
	size := len(pool)
	if !onlyFromPool {
		size += len(vocabulary)
	}
	seen := make(map[Word]struct{}, size)
	out := make([]Word, 0, size)
	add := func(list []Word) {
		for _, w := range list {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}
	add(pool)
	if !onlyFromPool {
		add(vocabulary)
	}
	return out
}

// SortScored orders s by entropy descending, then word ascending.
func SortScored(s []ScoredGuess) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Entropy != s[j].Entropy {
			return s[i].Entropy > s[j].Entropy
		}
		return s[i].Word < s[j].Word
	})
}
