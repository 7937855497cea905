package main

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/openers"
)

var (
	openersTop     int
	openersOut     string
	openersWorkers int
	openersNoDB    bool
)

var openersCmd = &cobra.Command{
	Use:   "openers",
	Short: "Precompute the best opening guesses for the loaded word lists",
	RunE: func(cmd *cobra.Command, args []string) error {
		lists := loadLists()

		_, total := lists.Stats()
		bar := progressbar.NewOptions(total,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("scoring openers"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
		)

		start := time.Now()
		list, err := openers.Compute(cmd.Context(), lists.Answers, lists.Guesses, openers.Options{
			Top:      openersTop,
			Workers:  openersWorkers,
			Progress: func(done, _ int) { _ = bar.Set(done) },
		})
		if err != nil {
			return err
		}
		_ = bar.Finish()
		log.Info().Int("openers", len(list)).Dur("took", time.Since(start)).Msg("openers computed")

		if openersOut != "" {
			f, err := os.Create(openersOut)
			if err != nil {
				return err
			}
			if err := openers.WriteTSV(f, list); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			log.Info().Str("file", openersOut).Msg("openers written")
		}

		if !openersNoDB {
			conn, store := openOpeners()
			if store == nil {
				return nil
			}
			defer conn.Close()
			if err := store.Replace(cmd.Context(), lists.Key(), list); err != nil {
				return err
			}
			log.Info().Str("db", cfg.DBPath).Str("key", lists.Key()).Msg("openers stored")
		}
		return nil
	},
}

func init() {
	f := openersCmd.Flags()
	f.IntVar(&openersTop, "top", openers.DefaultTop, "number of openers kept")
	f.StringVar(&openersOut, "out", "best_openers.txt", "TSV output file (empty to skip)")
	f.IntVar(&openersWorkers, "workers", 0, "parallel workers (default GOMAXPROCS)")
	f.BoolVar(&openersNoDB, "no-db", false, "do not store the result in DB_PATH")
}
