package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathcheck/internal/logging"
	"github.com/abhisek/mathcheck/internal/server"
	"github.com/abhisek/mathcheck/internal/verdictlog"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the answer checker over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		if noLog, _ := cmd.Flags().GetBool("no-log-verdicts"); noLog {
			cfg.Server.LogVerdicts = false
		}

		logger, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		opts := server.Options{Logger: logger, Version: version}
		if cfg.Server.LogVerdicts {
			dbPath, err := resolveDBPath(cmd, cfg)
			if err != nil {
				return fmt.Errorf("resolve database path: %w", err)
			}
			st, err := verdictlog.Open(dbPath)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Verdict log unavailable:", err)
				fmt.Fprintln(os.Stderr, "Serving without recording verdicts.")
			} else {
				defer st.Close()
				opts.Recorder = st
				logger.Info("recording verdicts", zap.String("db", dbPath))
			}
		}

		srv := server.New(cfg, opts)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() { errc <- srv.Start() }()

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return <-errc
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides config and MATHCHECK_ADDR)")
	serveCmd.Flags().Bool("no-log-verdicts", false, "Do not record served comparisons in the verdict log")
}
