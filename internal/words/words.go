// internal/words/words.go
//
// Word list loading for the solver.
//
// Responsibilities:
//   - Parse answer and guess lists from text (one word per line).
//   - Load lists from configured files or fall back to the embedded defaults.
//   - Expose the loaded lists as explicit values; nothing is kept in globals.
//
// Word Lists:
//   - "answers": candidate solutions, narrowed by the player's history.
//   - "guesses": extra vocabulary considered when ranking guesses.
//
// Load behavior:
//  1. If both paths are set, answers come from the first and guesses from the second.
//  2. If only the guesses path is set, that file is used for both lists.
//  3. If only the answers path is set, that file is used for both lists.
//  4. If neither is set, the embedded assets are used.
//
// Constraints:
//   - Words must be 5 letters a–z; anything else on a line is dropped.
//   - Lists are lowercased and deduplicated, keeping first occurrence.

package words

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/assets"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// ErrNoAnswers is returned when the answer list ends up empty.
var ErrNoAnswers = errors.New("words: answers list is empty")

// Lists holds the loaded answer list and guess vocabulary.
// Callers treat both slices as read-only.
type Lists struct {
	Answers []solver.Word
	Guesses []solver.Word
}

// Load reads the lists described in the package comment.
func Load(answersPath, guessesPath string) (*Lists, error) {
	var ansList, guessList []solver.Word
	var err error

	switch {
	// Case 1: both lists provided
	case answersPath != "" && guessesPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		if guessList, err = readWordFile(guessesPath); err != nil {
			return nil, err
		}

	// Case 2: only guesses file provided → use for both
	case guessesPath != "":
		if guessList, err = readWordFile(guessesPath); err != nil {
			return nil, err
		}
		ansList = guessList

	// Case 3: only answers file provided → use for both
	case answersPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		guessList = ansList

	// Case 4: fallback to embedded defaults
	default:
		if ansList, err = readEmbedded(assets.Answers); err != nil {
			return nil, err
		}
		if guessList, err = readEmbedded(assets.Guesses); err != nil {
			return nil, err
		}
	}

	return New(ansList, guessList)
}

// New builds Lists from already parsed words. An empty guess list falls back
// to the answers and vice versa.
func New(answers, guesses []solver.Word) (*Lists, error) {
	if len(answers) == 0 {
		answers = guesses
	}
	if len(guesses) == 0 {
		guesses = answers
	}
	if len(answers) == 0 {
		return nil, ErrNoAnswers
	}
	return &Lists{Answers: answers, Guesses: guesses}, nil
}

// ParseList reads one word per line, lowercases and trims each line, and
// keeps only valid words. Blank lines and '#' comments are skipped.
func ParseList(r io.Reader) ([]solver.Word, error) {
	var out []solver.Word
	seen := make(map[solver.Word]struct{})
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		w, err := solver.ParseWord(line)
		if err != nil {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out, sc.Err()
}

// readWordFile loads and parses a list file.
func readWordFile(path string) ([]solver.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: %w", err)
	}
	defer f.Close()
	return ParseList(f)
}

func readEmbedded(open func() (io.ReadCloser, error)) ([]solver.Word, error) {
	rc, err := open()
	if err != nil {
		return nil, fmt.Errorf("words: embedded list: %w", err)
	}
	defer rc.Close()
	return ParseList(rc)
}

// Vocabulary returns the guess list used to widen the ranking search space.
func (l *Lists) Vocabulary() []solver.Word {
	if len(l.Guesses) == 0 {
		return l.Answers
	}
	return l.Guesses
}

// Key is a short digest identifying this exact pair of lists. It keys
// caches of results computed from them (e.g. precomputed openers).
func (l *Lists) Key() string {
	h := sha256.New()
	for _, w := range l.Answers {
		io.WriteString(h, string(w))
	}
	h.Write([]byte{'|'})
	for _, w := range l.Guesses {
		io.WriteString(h, string(w))
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Stats returns counts of loaded words: (answers, vocabulary).
// The vocabulary count includes answers that are not in the guess list.
func (l *Lists) Stats() (answersCount int, vocabularyCount int) {
	return len(l.Answers), len(solver.SearchSpace(l.Answers, l.Vocabulary(), false))
}
