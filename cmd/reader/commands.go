package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/samvad-hq/cryptonews-reader/internal/app"
	"github.com/samvad-hq/cryptonews-reader/internal/config"
	"github.com/samvad-hq/cryptonews-reader/internal/domain"
	"github.com/samvad-hq/cryptonews-reader/internal/logger"
	"github.com/samvad-hq/cryptonews-reader/internal/web"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

type cli struct {
	out     io.Writer
	envFile string
	log     logger.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:           "reader",
		Short:         "Crypto news reader",
		Long:          "reader fetches the latest crypto news, filters and ranks it, and serves it over HTTP or prints it to the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&c.envFile, "config", "", "path to env file (default configs/.env)")

	root.AddCommand(
		c.serveCmd(),
		c.listCmd(),
		c.showCmd(),
		c.saveCmd(),
		c.savedCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(c.out, "reader %s (commit: %s)\n", version, commit)
			},
		},
	)
	return root
}

// open loads config and builds the reader runtime. Terminal commands log to
// stderr so stdout stays readable.
func (c *cli) open(ctx context.Context, logSink io.Writer) (*config.Config, *app.Reader, func(), error) {
	cfg, err := config.Load(c.envFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.InitWriter(cfg, logSink)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}

	c.log = log

	reader, err := app.NewReader(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize reader", "error", err)
		_ = logger.Close()
		return nil, nil, nil, err
	}

	cleanup := func() {
		if err := reader.Close(); err != nil {
			logger.ErrorObj("reader close failed", "error", err)
		}
		_ = logger.Close()
	}
	return cfg, reader, cleanup, nil
}

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the reader over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, reader, cleanup, err := c.open(ctx, os.Stdout)
			if err != nil {
				return err
			}
			defer cleanup()

			logger.InfoObj("reader starting", "config", cfg)

			router, err := web.NewRouter(reader, web.Options{ProxyUpstream: cfg.ProxyUpstream}, c.log)
			if err != nil {
				return fmt.Errorf("build router: %w", err)
			}

			go func() { _ = reader.Refresh(ctx) }()

			srv := &http.Server{
				Addr:              cfg.HTTPAddr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				logger.InfoObj("http server listening", "http_addr", cfg.HTTPAddr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.InfoObj("http server shutting down", "reason", ctx.Err())
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("http shutdown: %w", err)
			}
			return nil
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	var (
		filter string
		query  string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch the latest news and print the filtered list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := domain.ParseFilterMode(filter)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			_, reader, cleanup, err := c.open(ctx, os.Stderr)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := refresh(ctx, reader); err != nil {
				return err
			}
			reader.SetFilter(mode)
			reader.SetQuery(query)

			st := reader.Snapshot()
			renderList(c.out, st, st.Visible(), time.Now())
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", string(domain.FilterHot), "filter mode: hot, rising, bullish, bearish, important, saved")
	cmd.Flags().StringVar(&query, "query", "", "search text matched against titles, tags and coins")
	return cmd
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one article with related articles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			_, reader, cleanup, err := c.open(ctx, os.Stderr)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := refresh(ctx, reader); err != nil {
				return err
			}
			article, related, ok := reader.Article(id)
			if !ok {
				return fmt.Errorf("article %d not found", id)
			}
			st := reader.Snapshot()
			renderDetail(c.out, article, related, st.Saved.Has(id), time.Now())
			return nil
		},
	}
}

func (c *cli) saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <id>",
		Short: "Toggle the saved state of an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			_, reader, cleanup, err := c.open(ctx, os.Stderr)
			if err != nil {
				return err
			}
			defer cleanup()

			saved, err := reader.ToggleSaved(ctx, id)
			if err != nil {
				return err
			}
			renderToggle(c.out, id, saved)
			return nil
		},
	}
}

func (c *cli) savedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "saved",
		Short: "Print saved article ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, reader, cleanup, err := c.open(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer cleanup()

			renderSaved(c.out, reader.Snapshot().Saved.IDs())
			return nil
		},
	}
}

// refresh runs one fetch. Failures already surface as the banner; only an
// interrupt stops the command.
func refresh(ctx context.Context, reader *app.Reader) error {
	err := reader.Refresh(ctx)
	if errors.Is(err, domain.ErrCancelled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid article id %q", raw)
	}
	return id, nil
}
