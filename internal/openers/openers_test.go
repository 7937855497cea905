package openers

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/assets"
	"github.com/robalobadob/wordle/apps/solver/internal/db"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

var (
	answers = []solver.Word{"crane", "slate", "plate", "grate"}
	vocab   = []solver.Word{"fuzzy", "slate", "trace", "spade"}
)

func TestComputeMatchesRank(t *testing.T) {
	want, err := solver.Rank(context.Background(), answers, vocab, solver.Options{TopK: 5})
	require.NoError(t, err)

	for _, workers := range []int{1, 2, 3, 16} {
		var mu sync.Mutex
		last := 0
		got, err := Compute(context.Background(), answers, vocab, Options{
			Top:     5,
			Workers: workers,
			Progress: func(done, total int) {
				mu.Lock()
				defer mu.Unlock()
				assert.Equal(t, 7, total)
				assert.Greater(t, done, last, "progress must not step back")
				last = done
			},
		})
		require.NoError(t, err)
		assert.Equal(t, want, got, "workers=%d", workers)
		assert.Equal(t, 7, last)
	}
}

func TestComputeProgressMonotonic(t *testing.T) {
	var big []solver.Word
	for a := 'a'; a <= 'z'; a++ {
		for b := 'a'; b <= 'z'; b++ {
			for _, c := range "aeiou" {
				big = append(big, solver.Word(string([]rune{a, b, c, 'n', 'e'})))
			}
		}
	}

	want := len(solver.SearchSpace(answers, big, false))
	var calls []int
	_, err := Compute(context.Background(), answers, big, Options{
		Workers: 8,
		Progress: func(done, total int) {
			assert.Equal(t, want, total)
			calls = append(calls, done)
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, calls)
	for i := 1; i < len(calls); i++ {
		assert.Greater(t, calls[i], calls[i-1])
	}
	assert.Equal(t, want, calls[len(calls)-1])
}

func TestComputeEmpty(t *testing.T) {
	got, err := Compute(context.Background(), nil, nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestComputeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Compute(ctx, answers, vocab, Options{Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTSV(t *testing.T) {
	list := []solver.ScoredGuess{{Word: "plate", Entropy: 2}, {Word: "crane", Entropy: 1.5}}
	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, list))
	assert.Equal(t, "plate\t2.000\ncrane\t1.500\n", buf.String())

	got, err := ReadTSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, list, got)

	got, err = ReadTSV(strings.NewReader("\nsoare\nbad!!\t1.0\n"))
	require.NoError(t, err)
	assert.Equal(t, []solver.ScoredGuess{{Word: "soare"}}, got)

	_, err = ReadTSV(strings.NewReader("soare\tnope\n"))
	assert.Error(t, err)
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	conn, err := db.Open(filepath.Join(t.TempDir(), "openers.db"))
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, db.Migrate(conn, assets.Migrations()))

	st := NewStore(conn)
	_, err = st.Top(ctx, "k1", 10)
	assert.ErrorIs(t, err, ErrNotComputed)

	list := []solver.ScoredGuess{{Word: "plate", Entropy: 2}, {Word: "slate", Entropy: 2}, {Word: "crane", Entropy: 1.5}}
	require.NoError(t, st.Replace(ctx, "k1", list))

	got, err := st.Top(ctx, "k1", 2)
	require.NoError(t, err)
	assert.Equal(t, list[:2], got)

	require.NoError(t, st.Replace(ctx, "k1", list[2:]))
	got, err = st.Top(ctx, "k1", 0)
	require.NoError(t, err)
	assert.Equal(t, list[2:], got)

	_, err = st.Top(ctx, "k2", 10)
	assert.ErrorIs(t, err, ErrNotComputed)
}
