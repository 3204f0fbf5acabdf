package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/kasuboski/gapz/pkg/library"
	"github.com/kasuboski/gapz/pkg/logger"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Inspect and scan the tv library",
}

// libraryScanCmd mirrors the tv library on disk into the catalog
var libraryScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the tv library into the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		a, err := newApp(ctx)
		if err != nil {
			log.Fatalw("failed to start", zap.Error(err))
		}
		defer a.Close()

		if a.config.Library.TVDir == "" {
			log.Fatalw("library.tv must be set to scan")
		}

		lib := library.New(os.DirFS(a.config.Library.TVDir), a.config.Library.TVDir)
		result, err := lib.Scan(ctx, a.catalog)
		if err != nil {
			log.Fatalw("failed to scan library", zap.Error(err))
		}

		log.Infow("scanned library",
			zap.Int("files", result.Files),
			zap.Int("added", result.Added),
			zap.Int("removed", result.Removed),
			zap.Int("skipped", result.Skipped))
	},
}

// libraryListCmd lists the episode files found at a path without touching the catalog
var libraryListCmd = &cobra.Command{
	Use:        "list",
	Short:      "List tv episodes found at a path",
	Args:       cobra.ExactArgs(1),
	ArgAliases: []string{"path to TV library"},
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		path := args[0]
		lib := library.New(os.DirFS(path), path)
		episodes, err := lib.FindEpisodes(ctx)
		if err != nil {
			log.Fatal(err)
		}

		for _, ep := range episodes {
			fmt.Fprintln(cmd.OutOrStdout(), ep.String())
		}
	},
}

func init() {
	libraryCmd.AddCommand(libraryScanCmd)
	libraryCmd.AddCommand(libraryListCmd)
	rootCmd.AddCommand(libraryCmd)
}
