package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/session"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

var (
	suggestHistory     []string
	suggestOnlyAnswers bool
	suggestTop         int
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest next guesses for a history of guess:pattern pairs",
	Example: `  wordle-solver suggest --history crane:bbgyb
  wordle-solver suggest --history crane:bbgyb,moist:bbbby --only-answers --top 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := parseHistory(suggestHistory)
		if err != nil {
			return err
		}
		lists := loadLists()

		top := suggestTop
		if top <= 0 {
			top = cfg.TopK
		}

		var bar *progressbar.ProgressBar
		progress := func(done, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionSetDescription("ranking"),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
			}
			_ = bar.Set(done)
		}

		sug, err := session.Suggest(cmd.Context(), lists, history, solver.Options{
			TopK:         top,
			OnlyFromPool: suggestOnlyAnswers,
			Progress:     progress,
		})
		if err != nil {
			return err
		}
		if bar != nil {
			_ = bar.Finish()
		}
		printSuggestion(sug)
		return nil
	},
}

func init() {
	f := suggestCmd.Flags()
	f.StringSliceVar(&suggestHistory, "history", nil, "guess:pattern pairs, pattern letters g/y/b")
	f.BoolVar(&suggestOnlyAnswers, "only-answers", false, "rank only remaining candidates")
	f.IntVar(&suggestTop, "top", 0, "number of suggestions (default SUGGEST_TOP_K)")
}

// parseHistory reads "crane:bbgyb" style entries.
func parseHistory(raw []string) ([]solver.HistoryEntry, error) {
	out := make([]solver.HistoryEntry, 0, len(raw))
	for _, item := range raw {
		guess, pattern, ok := strings.Cut(item, ":")
		if !ok {
			return nil, fmt.Errorf("history %q: want guess:pattern", item)
		}
		w, err := solver.ParseWord(guess)
		if err != nil {
			return nil, fmt.Errorf("history %q: %w", item, err)
		}
		p, err := solver.ParsePattern(pattern)
		if err != nil {
			return nil, fmt.Errorf("history %q: %w", item, err)
		}
		out = append(out, solver.HistoryEntry{Guess: w, Pattern: p})
	}
	return out, nil
}

func printSuggestion(sug session.Suggestion) {
	switch sug.Status {
	case session.StatusNoCandidates:
		fmt.Println("No candidates match this history. Check the patterns.")
		return
	case session.StatusFewCandidates:
		fmt.Printf("Only %d candidate(s) left: %s\n", len(sug.Candidates), joinWords(sug.Candidates))
		return
	case session.StatusNoSuggestions:
		fmt.Println("No guesses to rank.")
		return
	}

	fmt.Printf("%d candidate(s) remain.\n\n", len(sug.Candidates))
	fmt.Printf("%4s  %-6s %s\n", "#", "guess", "bits")
	for i, g := range sug.Guesses {
		fmt.Printf("%4d  %-6s %.3f\n", i+1, g.Word, g.Entropy)
	}
}

func joinWords(ws []solver.Word) string {
	s := make([]string, len(ws))
	for i, w := range ws {
		s[i] = string(w)
	}
	return strings.Join(s, ", ")
}
