package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/folio/internal/probe"
	"github.com/ziadkadry99/folio/internal/server"
)

var (
	servePort  int
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portfolio web server",
	Long: `Serves the portfolio pages, the /api status endpoint, the demo telemetry
socket and the assets directory. With --watch, markdown content is reloaded
when it changes on disk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		lib, sh, err := newShell(cfg, logger)
		if err != nil {
			return err
		}

		srv := server.New(server.Config{
			Port:      cfg.Server.Port,
			AssetsDir: cfg.AssetsDir,
			AllowAll:  cfg.Server.AllowAll,
		}, database, sh, logger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		seeded, err := srv.Members().Seed(ctx, cfg.Members)
		if err != nil {
			return fmt.Errorf("seeding members: %w", err)
		}
		if seeded > 0 {
			logger.Info("seeded members", zap.Int("count", seeded))
		}

		if serveWatch {
			go func() {
				if err := lib.Watch(ctx, logger); err != nil {
					logger.Warn("content watcher stopped", zap.Error(err))
				}
			}()
		}

		ln, err := net.Listen("tcp", srv.Addr())
		if err != nil {
			return fmt.Errorf("listening on %s: %w", srv.Addr(), err)
		}

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Serve(ln) }()

		if cfg.Server.Probe {
			base := fmt.Sprintf("http://localhost:%d", ln.Addr().(*net.TCPAddr).Port)
			go probe.New(base, nil, logger).Run(ctx)
		}

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("shutting down: %w", err)
		}
		return <-errCh
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (overrides server.port)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload markdown content when it changes")
	rootCmd.AddCommand(serveCmd)
}
