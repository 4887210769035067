// Command moviequiz is a console word-scramble quiz over movie titles.
//
// Commands
//
//   - (default)  Play the quiz on stdin/stdout
//   - serve      Expose the quiz as JSON endpoints
//   - history    Print recent results and lifetime totals
//
// Configuration comes from the environment (and a .env file in the working
// directory); flags override it.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/moviequiz/assets"
	"github.com/robalobadob/moviequiz/internal/daily"
	"github.com/robalobadob/moviequiz/internal/history"
	"github.com/robalobadob/moviequiz/internal/httpserver"
	"github.com/robalobadob/moviequiz/internal/quiz"
	"github.com/robalobadob/moviequiz/internal/store"
	"github.com/robalobadob/moviequiz/internal/titles"
)

// errNoDatabase is returned by commands that need history when none is set.
var errNoDatabase = errors.New("no database configured (use --db or QUIZ_DB)")

// streams is the console the commands talk to.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
	tty bool // out is a terminal
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, s streams) int {
	cfg := loadConfig()
	setupLogging(s.err, cfg.LogLevel)

	root := newRootCmd(&cfg, s)
	root.SetArgs(args)
	root.SetIn(s.in)
	root.SetOut(s.out)
	root.SetErr(s.err)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil, errors.Is(err, quiz.ErrInputClosed):
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		log.Error().Err(err).Msg("moviequiz failed")
		return 1
	}
}

func setupLogging(w io.Writer, level string) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
}

func newRootCmd(cfg *config, s streams) *cobra.Command {
	var (
		shuffle bool
		isDaily bool
		seed    uint64
	)

	root := &cobra.Command{
		Use:           "moviequiz",
		Short:         "Guess the movie from its scrambled title",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
				zerolog.SetGlobalLevel(lvl)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return play(cmd.Context(), cfg, s, playOptions{shuffle: shuffle, daily: isDaily, seed: seed})
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&cfg.TitlesFile, "file", "f", cfg.TitlesFile, "title list, one movie per line (default: built-in list)")
	pf.StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite file for run history (default: history off)")
	pf.IntVarP(&cfg.Attempts, "attempts", "a", cfg.Attempts, "guesses allowed per title")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	f := root.Flags()
	f.BoolVar(&shuffle, "shuffle", false, "shuffle the order of titles")
	f.BoolVar(&isDaily, "daily", false, "play today's shared quiz (fixed order and scrambles)")
	f.Uint64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	f.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colors and screen clearing")

	root.AddCommand(serveCmd(cfg), historyCmd(cfg, s))
	return root
}

type playOptions struct {
	shuffle bool
	daily   bool
	seed    uint64
}

// play runs one console quiz and records it when history is configured.
func play(ctx context.Context, cfg *config, s streams, opts playOptions) error {
	list, err := titles.Load(cfg.TitlesFile)
	if err != nil {
		return err
	}
	if cfg.Attempts < 1 {
		return fmt.Errorf("--attempts must be at least 1, got %d", cfg.Attempts)
	}

	mode := history.ModeConsole
	if opts.daily {
		opts.seed = daily.Seed(time.Now(), cfg.DailySalt)
		opts.shuffle = true
		mode = history.ModeDaily
	}

	runner := quiz.NewRunner(s.in, s.out, quiz.NewRand(opts.seed), quiz.Config{
		Attempts: cfg.Attempts,
		Shuffle:  opts.shuffle,
		Palette:  quiz.Palette{Enabled: s.tty && !cfg.NoColor},
		Pause:    s.tty,
	})
	score, runErr := runner.Run(ctx, list)

	if cfg.DBPath != "" {
		recordResult(context.WithoutCancel(ctx), cfg.DBPath, history.FromScore(mode, score, runErr != nil))
	}
	return runErr
}

// recordResult stores r; failures are logged and never fail the quiz.
func recordResult(ctx context.Context, dsn string, r history.Result) {
	db, err := history.Open(dsn, assets.Migrations())
	if err != nil {
		log.Warn().Err(err).Str("db", dsn).Msg("open history")
		return
	}
	defer db.Close()
	if _, err := history.NewStore(db).InsertResult(ctx, r); err != nil {
		log.Warn().Err(err).Str("db", dsn).Msg("record result")
	}
}

func serveCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the quiz over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := titles.Load(cfg.TitlesFile)
			if err != nil {
				return err
			}

			var hist *history.Store
			if cfg.DBPath != "" {
				db, err := history.Open(cfg.DBPath, assets.Migrations())
				if err != nil {
					return err
				}
				defer db.Close()
				hist = history.NewStore(db)
			}

			srv := httpserver.New(store.NewMemoryStore(), hist, list, httpserver.Config{
				Attempts:  cfg.Attempts,
				DailySalt: cfg.DailySalt,
			})
			return listen(cmd.Context(), ":"+cfg.Port, srv.Router())
		},
	}
	cmd.Flags().StringVar(&cfg.Port, "port", cfg.Port, "listen port")
	return cmd
}

// listen serves h on addr until ctx is done, then shuts down gracefully.
func listen(ctx context.Context, addr string, h http.Handler) error {
	hs := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("addr", addr).Msg("starting moviequiz server")
	if err := hs.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	log.Info().Msg("server stopped")
	return nil
}

func historyCmd(cfg *config, s streams) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent results and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.DBPath == "" {
				return errNoDatabase
			}
			db, err := history.Open(cfg.DBPath, assets.Migrations())
			if err != nil {
				return err
			}
			defer db.Close()

			st := history.NewStore(db)
			recent, err := st.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("recent results: %w", err)
			}
			totals, err := st.Totals(cmd.Context())
			if err != nil {
				return fmt.Errorf("totals: %w", err)
			}
			printHistory(s.out, recent, totals)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of recent results to show")
	return cmd
}

func printHistory(w io.Writer, recent []history.Result, totals history.Totals) {
	if len(recent) == 0 {
		fmt.Fprintln(w, "No quizzes played yet.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tMODE\tSCORE\tPLAYED")
	for _, r := range recent {
		played := fmt.Sprintf("%d/%d", r.Played, r.Total)
		if r.Aborted {
			played += " (stopped)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Mode, r.Correct, r.Played, played)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\n%d quizzes, %d of %d titles guessed, best run %d\n",
		totals.Runs, totals.Correct, totals.Played, totals.Best)
}
