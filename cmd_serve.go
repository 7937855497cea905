package main

import (
	"database/sql"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/assets"
	"github.com/robalobadob/wordle/apps/solver/internal/db"
	"github.com/robalobadob/wordle/apps/solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/solver/internal/openers"
	"github.com/robalobadob/wordle/apps/solver/internal/session"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP/WebSocket API",
	RunE: func(cmd *cobra.Command, args []string) error {
		lists := loadLists()

		conn, store := openOpeners()
		if conn != nil {
			defer conn.Close()
		}

		srv, err := httpserver.New(httpserver.Options{
			Store:        session.NewMemoryStore(cfg.SessionTTL),
			Lists:        lists,
			Openers:      store,
			JWTSecret:    cfg.JWTSecret,
			SessionTTL:   cfg.SessionTTL,
			ClientOrigin: cfg.ClientOrigin,
			Secure:       cfg.Production,
			TopK:         cfg.TopK,
			CacheSize:    cfg.CacheSize,
		})
		if err != nil {
			return err
		}

		port := cfg.Port
		if servePort != "" {
			port = servePort
		}
		log.Info().Str("port", port).Msg("starting wordle-solver")
		if err := srv.Run(cmd.Context(), ":"+port); err != nil {
			log.Error().Err(err).Msg("server exited")
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (overrides PORT)")
}

// openOpeners opens the openers database. Serving continues without stored
// openers when the database is unavailable.
func openOpeners() (*sql.DB, *openers.Store) {
	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.DBPath).Msg("openers database unavailable")
		return nil, nil
	}
	if err := db.Migrate(conn, assets.Migrations()); err != nil {
		log.Warn().Err(err).Msg("openers migrations failed")
		_ = conn.Close()
		return nil, nil
	}
	return conn, openers.NewStore(conn)
}
