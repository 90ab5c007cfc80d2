package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reithediver/lol-smurfguard-sub000/core"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.logger.Sync() // nolint:errcheck

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			registry, err := core.Setup(ctx, rt.config, rt.logger)
			if err != nil {
				return err
			}

			if err := registry.StartAll(ctx); err != nil {
				registry.StopAll()
				return err
			}

			<-ctx.Done()
			rt.logger.Info("received shutdown signal, stopping services")
			registry.StopAll()
			rt.logger.Info("services stopped", zap.String("port", rt.config.Server.Port))
			return nil
		},
	}
}
