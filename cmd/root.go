package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gapz",
	Short: "gapz cli",
	Long:  `gapz keeps a tv library's missing and unaired episodes in step with cached episode metadata`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
}

const (
	defaultJobTicker = time.Hour * 6
)

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.SetEnvPrefix("GAPZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8080)

	viper.SetDefault("library.tv", "")

	viper.SetDefault("metadata.cacheDir", "")
	viper.SetDefault("metadata.internetEnabled", true)
	viper.SetDefault("metadata.excludedTypes", []string{})
	viper.SetDefault("metadata.seasonZeroName", "Specials")

	viper.SetDefault("storage.filePath", "gapz.sqlite")

	viper.SetDefault("manager.jobs.libraryScan", defaultJobTicker)
	viper.SetDefault("manager.jobs.seriesReconcile", defaultJobTicker)
	viper.SetDefault("manager.jobs.jobScheduleInterval", time.Minute)
	viper.SetDefault("manager.jobs.cleanupPeriod", time.Hour*24*7)
	viper.SetDefault("manager.jobs.minJobsToKeep", 10)
}
