package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

var (
	playAnswer      string
	playOpener      string
	playOnlyAnswers bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Watch the solver play against a known answer",
	RunE: func(cmd *cobra.Command, args []string) error {
		answer, err := solver.ParseWord(playAnswer)
		if err != nil {
			return fmt.Errorf("--answer: %w", err)
		}
		var opener solver.Word
		if playOpener != "" {
			if opener, err = solver.ParseWord(playOpener); err != nil {
				return fmt.Errorf("--opener: %w", err)
			}
		}
		lists := loadLists()

		g := game.New(answer)
		turns, err := game.Autoplay(cmd.Context(), g, lists, opener, solver.Options{OnlyFromPool: playOnlyAnswers})
		for i, t := range turns {
			fmt.Printf("%d. %s  %s  pool=%-5d bits=%.3f\n", i+1, t.Guess, t.Pattern, t.Pool, t.Entropy)
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s in %d\n", g.State(), len(turns))
		return nil
	},
}

func init() {
	f := playCmd.Flags()
	f.StringVar(&playAnswer, "answer", "", "solution word")
	f.StringVar(&playOpener, "opener", "", "fixed first guess (skips the opening scan)")
	f.BoolVar(&playOnlyAnswers, "only-answers", false, "only guess remaining candidates")
	_ = playCmd.MarkFlagRequired("answer")
}
