package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/kasuboski/gapz/pkg/logger"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
)

// reconcileCmd runs a single reconciliation pass over every series in the catalog
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Add missing and unaired episodes to the catalog and remove stale ones",
	Long: `Reconcile every series in the catalog against its cached episode metadata.

Virtual seasons and episodes that are no longer backed by metadata, or that are now
on disk, are removed. Episodes the metadata knows about but the library doesn't are
added as missing or unaired.`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		ctx = logger.WithCtx(ctx, log)

		a, err := newApp(ctx)
		if err != nil {
			log.Fatalw("failed to start", zap.Error(err))
		}
		defer a.Close()

		summary, err := a.manager.ScanOrchestrator().Run(ctx, func(percent float64) {
			log.Infow("reconciling", zap.Float64("percent", percent))
		})
		if err != nil {
			log.Errorw("reconcile incomplete", zap.Error(err), zap.Stringer("summary", summary))
			return
		}

		log.Infow("reconcile complete", zap.Stringer("summary", summary))
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}
