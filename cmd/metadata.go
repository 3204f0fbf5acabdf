package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/kasuboski/gapz/pkg/logger"
	"github.com/kasuboski/gapz/pkg/metadata"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
)

var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Inspect the local metadata cache",
}

// metadataRecordsCmd prints the records parsed from a series' cache directory
var metadataRecordsCmd = &cobra.Command{
	Use:   "records <providerID>",
	Short: "Print the episode records cached for a series",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		cfg, err := readConfig()
		if err != nil {
			log.Fatalw("failed to read configurations", zap.Error(err))
		}
		if cfg.Metadata.CacheDir == "" {
			log.Fatalw("metadata.cacheDir must be set to read records")
		}

		records, err := metadata.NewDirReader(cfg.Metadata.CacheDir).Records(ctx, args[0])
		if err != nil {
			log.Fatalw("failed to read records", zap.Error(err), zap.String("provider_id", args[0]))
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderRecords(records))

		log.Debugw("read records", zap.Int("count", records.Len()))
	},
}

// renderRecords lays records out as a table in cache order
func renderRecords(records metadata.RecordSet) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Season", "Episode", "Aired"})

	for _, r := range records.Records() {
		aired := "-"
		if r.AirDate != nil {
			aired = r.AirDate.Format(time.DateOnly)
		}
		tw.AppendRow(table.Row{strconv.Itoa(r.Season), strconv.Itoa(r.Episode), aired})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

func init() {
	metadataCmd.AddCommand(metadataRecordsCmd)
	rootCmd.AddCommand(metadataCmd)
}
