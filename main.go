// main.go
//
// Entry point for the wordle-solver binary.
// Commands:
//   - serve    (default) HTTP + WebSocket API backed by in-memory sessions
//   - suggest  one-shot narrow + rank from the command line
//   - openers  precompute the best first guesses (TSV file + sqlite)
//   - play     let the solver play a game against a known answer
//
// Configuration comes from the environment (see internal/config); flags on the
// individual commands override it.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "wordle-solver",
	Short: "Entropy-based Wordle solver",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			zerolog.SetGlobalLevel(lvl)
		}
		// Human-readable logs for the interactive commands; serve keeps JSON.
		if cmd.HasParent() && cmd.Name() != "serve" {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, suggestCmd, openersCmd, playCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// loadLists loads the configured word lists or exits.
func loadLists() *words.Lists {
	lists, err := words.Load(cfg.AnswersFile, cfg.GuessesFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	a, v := lists.Stats()
	log.Debug().Int("answers", a).Int("vocabulary", v).Str("key", lists.Key()).Msg("word lists loaded")
	return lists
}
