// main.go
//
// Entry point for the hangman binary.
// Commands:
//   - serve: HTTP API on PORT backed by SQLite at DB_PATH (migrated on start).
//   - play:  hangman in the terminal, one guess per line.
//   - rps:   a single rock-paper-scissors round against the computer.
//
// Config comes from the environment (and .env); logs go through zerolog,
// pretty-printed outside production.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/adamduehansen/hangman/assets"
	"github.com/adamduehansen/hangman/internal/config"
	"github.com/adamduehansen/hangman/internal/db"
	"github.com/adamduehansen/hangman/internal/httpserver"
	"github.com/adamduehansen/hangman/internal/rps"
	"github.com/adamduehansen/hangman/internal/store"
	"github.com/adamduehansen/hangman/internal/terminal"
	"github.com/adamduehansen/hangman/internal/words"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var cfg config.Config
	root := &cobra.Command{
		Use:           "hangman",
		Short:         "Hangman game server and terminal games",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			zerolog.SetGlobalLevel(cfg.Level())
			if !cfg.Production() {
				log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			}
		},
	}
	root.AddCommand(serveCmd(&cfg), playCmd(&cfg), rpsCmd())
	return root
}

func serveCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			wl, err := words.Load(cfg.WordsFile)
			if err != nil {
				log.Error().Err(err).Msg("failed to load word list")
				return err
			}
			sqlDB, err := db.OpenAndMigrate(cfg.DBPath, assets.Migrations())
			if err != nil {
				log.Error().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
				return err
			}
			defer sqlDB.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := httpserver.New(*cfg, store.NewSQLStore(sqlDB), sqlDB, wl)
			log.Info().Str("port", cfg.Port).Int("words", wl.Len()).Msg("starting hangman server")
			if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
				log.Error().Err(err).Msg("server exited")
				return err
			}
			return nil
		},
	}
}

func playCmd(cfg *config.Config) *cobra.Command {
	var secret string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play hangman in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				wl, err := words.Load(cfg.WordsFile)
				if err != nil {
					return err
				}
				secret = wl.Random()
			} else if !words.Valid(words.Normalize(secret)) {
				return fmt.Errorf("word must be %d-%d letters a-z", words.MinLen, words.MaxLen)
			}
			_, err := terminal.Play(cmd.InOrStdin(), cmd.OutOrStdout(), secret)
			return err
		},
	}
	cmd.Flags().StringVar(&secret, "word", "", "secret word (random when empty)")
	return cmd
}

func rpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "rps <rock|paper|scissor>",
		Short:     "Play one round of rock-paper-scissors",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(rps.Rock), string(rps.Paper), string(rps.Scissor)},
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := rps.ParseHand(args[0])
			if err != nil {
				return err
			}
			out := rps.Play(h, rps.RandomOpponent)
			fmt.Fprintf(cmd.OutOrStdout(), "you played %s, computer played %s: %s!\n", out.Player, out.Computer, out.Result)
			return nil
		},
	}
}
