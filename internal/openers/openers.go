// internal/openers/openers.go
//
// Best opening guesses.
//
// With an empty history the pool is the whole answer list and ranking every
// word of the vocabulary is the most expensive query the solver ever runs.
// Its result only depends on the loaded lists, so it is computed once
// (in parallel shards), written as a TSV file and stored in sqlite.
//
// TSV format, one entry per line:
//
//	<word>\t<entropy with 3 decimals>

package openers

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// DefaultTop is how many openers are kept.
const DefaultTop = 100

// Options tunes Compute.
type Options struct {
	Top      int                 // results kept (default DefaultTop)
	Workers  int                 // parallel shards (default GOMAXPROCS)
	Progress solver.ProgressFunc // aggregated over all shards; calls are serialized
}

// Compute scores every word of answers ∪ vocabulary against the full answer
// list and returns the best opts.Top, ordered like solver.Rank.
func Compute(ctx context.Context, answers, vocabulary []solver.Word, opts Options) ([]solver.ScoredGuess, error) {
	top := opts.Top
	if top <= 0 {
		top = DefaultTop
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	space := solver.SearchSpace(answers, vocabulary, false)
	total := len(space)
	if workers > total {
		workers = total
	}
	if total == 0 {
		return []solver.ScoredGuess{}, nil
	}

	// Shards report under one lock so callers see done strictly increasing.
	var (
		progressMu sync.Mutex
		done       int
	)
	report := func(n int) {
		if opts.Progress == nil {
			return
		}
		progressMu.Lock()
		defer progressMu.Unlock()
		done += n
		opts.Progress(done, total)
	}

	results := make([][]solver.ScoredGuess, workers)
	g, gctx := errgroup.WithContext(ctx)
	chunk := (total + workers - 1) / workers

	for w := 0; w < workers; w++ {
		w := w
		lo := w * chunk
		hi := min(lo+chunk, total)
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			shard := make([]solver.ScoredGuess, 0, hi-lo)
			pending := 0
			for _, guess := range space[lo:hi] {
				if err := gctx.Err(); err != nil {
					return err
				}
				if guess.Valid() {
					shard = append(shard, solver.ScoredGuess{Word: guess, Entropy: solver.Entropy(guess, answers)})
				}
				if pending++; pending == solver.DefaultProgressEvery {
					report(pending)
					pending = 0
				}
			}
			if pending > 0 {
				report(pending)
			}
			solver.SortScored(shard)
			if len(shard) > top {
				shard = shard[:top]
			}
			results[w] = shard
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []solver.ScoredGuess
	for _, r := range results {
		merged = append(merged, r...)
	}
	solver.SortScored(merged)
	if len(merged) > top {
		merged = merged[:top]
	}
	return merged, nil
}

// WriteTSV writes list in the best_openers.txt format.
func WriteTSV(w io.Writer, list []solver.ScoredGuess) error {
	bw := bufio.NewWriter(w)
	for _, s := range list {
		if _, err := fmt.Fprintf(bw, "%s\t%.3f\n", s.Word, s.Entropy); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadTSV parses the best_openers.txt format. Lines without a valid word are
// skipped; a missing entropy column reads as 0.
func ReadTSV(r io.Reader) ([]solver.ScoredGuess, error) {
	var out []solver.ScoredGuess
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		w, err := solver.ParseWord(fields[0])
		if err != nil {
			continue
		}
		s := solver.ScoredGuess{Word: w}
		if len(fields) > 1 {
			if s.Entropy, err = strconv.ParseFloat(fields[1], 64); err != nil {
				return nil, fmt.Errorf("openers: entropy for %s: %w", w, err)
			}
		}
		out = append(out, s)
	}
	return out, sc.Err()
}
