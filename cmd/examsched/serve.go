package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rhyrak/examsched/internal/metrics"
	"github.com/rhyrak/examsched/internal/server"
	"github.com/rhyrak/examsched/internal/store"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scheduling HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, logr, err := root.setup()
			if err != nil {
				return err
			}
			defer logr.Sync() //nolint:errcheck
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if cfg.Log.Level != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			st, err := store.NewSQLiteStore(cfg.Store.Path, logr)
			if err != nil {
				return err
			}
			defer func() {
				if err := st.Close(); err != nil {
					logr.Error("store close", zap.Error(err))
				}
			}()
			if err := st.Migrate(ctx); err != nil {
				return err
			}

			return server.New(cfg, st, logr, metrics.New()).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
