package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kasuboski/gapz/pkg/logger"
	"github.com/kasuboski/gapz/server"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the job scheduler and http api",
	Long:  `start the job scheduler and http api`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx = logger.WithCtx(ctx, log)

		a, err := newApp(ctx)
		if err != nil {
			log.Fatalw("failed to start", zap.Error(err))
		}
		defer a.Close()

		srv := server.New(log, a.manager)

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return a.manager.Run(ctx)
		})
		g.Go(func() error {
			return srv.Serve(ctx, a.config.Server.Port)
		})

		if err := g.Wait(); err != nil {
			log.Errorw("server stopped", zap.Error(err))
			return
		}

		log.Infow("shut down")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
