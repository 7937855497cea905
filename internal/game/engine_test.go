package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func TestApplyGuess(t *testing.T) {
	g := New("plate")
	p, state, err := g.ApplyGuess("crane")
	require.NoError(t, err)
	assert.Equal(t, "bbgbg", p.String())
	assert.Equal(t, "playing", state)

	_, _, err = g.ApplyGuess("BAD!!")
	assert.ErrorIs(t, err, solver.ErrInvalidWord)

	p, state, err = g.ApplyGuess("plate")
	require.NoError(t, err)
	assert.True(t, p.Solved())
	assert.Equal(t, "won", state)

	_, _, err = g.ApplyGuess("slate")
	assert.ErrorIs(t, err, ErrFinished)
}

func TestApplyGuessLoses(t *testing.T) {
	g := New("plate")
	for i := 0; i < defaultRows; i++ {
		_, _, err := g.ApplyGuess("fuzzy")
		require.NoError(t, err)
	}
	assert.Equal(t, "lost", g.State())
	assert.Len(t, g.History, defaultRows)
}

func TestAutoplay(t *testing.T) {
	lists, err := words.Load("", "")
	require.NoError(t, err)

	for _, answer := range []solver.Word{"crane", "plate", "sheep", "youth"} {
		g := New(answer)
		g.Rows = 20 // each miss removes at least the guess from the pool
		turns, err := Autoplay(context.Background(), g, lists, "slate", solver.Options{OnlyFromPool: true})
		require.NoError(t, err, answer)
		require.NotEmpty(t, turns)
		assert.Equal(t, solver.Word("slate"), turns[0].Guess)
		assert.True(t, g.Won, "%s: %+v", answer, turns)
		assert.Equal(t, answer, turns[len(turns)-1].Guess)
		for i := 1; i < len(turns); i++ {
			assert.Less(t, turns[i].Pool, turns[i-1].Pool, "pool must shrink")
		}
	}
}

func TestAutoplayCancelled(t *testing.T) {
	lists, err := words.Load("", "")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Autoplay(ctx, New("crane"), lists, "", solver.Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
