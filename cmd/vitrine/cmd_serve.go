package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/3-lines-studio/vitrine"
	"github.com/3-lines-studio/vitrine/internal/adapters/cli"
)

const shutdownTimeout = 5 * time.Second

var (
	serveAddr     string
	serveStrategy string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser playground",
	Long: `Starts the HTTP playground: an editor and a live preview pane.

With the save strategy the same server also accepts the snapshots it
posts, writes them to the preview file and hot reloads from the watcher.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if serveStrategy != "" {
		cfg.Strategy = serveStrategy
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := vitrine.New(cfg, vitrine.WithLogger(logger))
	if err != nil {
		return err
	}
	defer app.Stop()

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}

	if err := app.Start(); err != nil {
		_ = ln.Close()
		return err
	}

	out := cli.NewOutput()
	out.PrintHeader("Vitrine")
	out.PrintSuccess("Playground ready at http://%s", ln.Addr())
	out.PrintStep(out.Gray("strategy: %s"), app.Session().Strategy())

	return serve(ctx, app, ln)
}

// serve runs the HTTP server until ctx is done. The session is closed
// before shutdown so event streams end instead of holding it open.
func serve(ctx context.Context, app *vitrine.App, ln net.Listener) error {
	srv := &http.Server{
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		app.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown incomplete", zap.Error(err))
			return err
		}
		return nil
	})
	return g.Wait()
}
