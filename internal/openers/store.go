package openers

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// ErrNotComputed is returned by Top when no openers are stored for a key.
var ErrNotComputed = errors.New("openers not computed for these word lists")

// Store keeps computed openers in the openers table, keyed by words.Lists.Key.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Replace atomically swaps the stored openers for key.
func (s *Store) Replace(ctx context.Context, key string, list []solver.ScoredGuess) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM openers WHERE list_key=?`, key); err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO openers(list_key, rank, word, entropy, computed_at) VALUES(?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, g := range list {
		if _, err := stmt.ExecContext(ctx, key, i+1, string(g.Word), g.Entropy, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Top returns up to limit openers for key, best first.
func (s *Store) Top(ctx context.Context, key string, limit int) ([]solver.ScoredGuess, error) {
	if limit <= 0 {
		limit = DefaultTop
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT word, entropy
FROM openers
WHERE list_key=?
ORDER BY rank ASC
LIMIT ?`, key, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []solver.ScoredGuess
	for rows.Next() {
		var word string
		var g solver.ScoredGuess
		if err := rows.Scan(&word, &g.Entropy); err != nil {
			return nil, err
		}
		g.Word = solver.Word(word)
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNotComputed
	}
	return out, nil
}
