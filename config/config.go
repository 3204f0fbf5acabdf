package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Library  Library  `json:"library" yaml:"library" mapstructure:"library"`
	Metadata Metadata `json:"metadata" yaml:"metadata" mapstructure:"metadata"`
	Storage  Storage  `json:"storage" yaml:"storage" mapstructure:"storage"`
	Server   Server   `json:"server" yaml:"server" mapstructure:"server"`
	Manager  Manager  `json:"manager" yaml:"manager" mapstructure:"manager"`
}

type Server struct {
	Port int `json:"port" yaml:"port" mapstructure:"port" validate:"omitempty,min=1,max=65535"`
}

type Library struct {
	TVDir string `json:"tv" yaml:"tv" mapstructure:"tv"`
}

// Metadata is the global policy for remote metadata and the location of the
// locally cached per-episode records
type Metadata struct {
	CacheDir        string   `json:"cacheDir" yaml:"cacheDir" mapstructure:"cacheDir"`
	InternetEnabled bool     `json:"internetEnabled" yaml:"internetEnabled" mapstructure:"internetEnabled"`
	ExcludedTypes   []string `json:"excludedTypes" yaml:"excludedTypes" mapstructure:"excludedTypes"`
	SeasonZeroName  string   `json:"seasonZeroName" yaml:"seasonZeroName" mapstructure:"seasonZeroName"`
}

// Storage configuration is assumed to be for sqlite database only currently
type Storage struct {
	FilePath string `json:"filePath" yaml:"filePath" mapstructure:"filePath"`
}

// Manager houses configuration related to the manager and reconcillation
type Manager struct {
	Jobs Jobs `json:"jobs" yaml:"jobs" mapstructure:"jobs"`
}

type Jobs struct {
	SeriesReconcile     time.Duration `json:"seriesReconcile" yaml:"seriesReconcile" mapstructure:"seriesReconcile" validate:"gte=0"`
	LibraryScan         time.Duration `json:"libraryScan" yaml:"libraryScan" mapstructure:"libraryScan" validate:"gte=0"`
	JobScheduleInterval time.Duration `json:"jobScheduleInterval" yaml:"jobScheduleInterval" mapstructure:"jobScheduleInterval" validate:"gte=0"`
	// CleanupPeriod of -1 disables pruning of finished jobs
	CleanupPeriod time.Duration `json:"cleanupPeriod" yaml:"cleanupPeriod" mapstructure:"cleanupPeriod"`
	MinJobsToKeep int           `json:"minJobsToKeep" yaml:"minJobsToKeep" mapstructure:"minJobsToKeep" validate:"gte=0"`
}

type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

// New reads a new configuration
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		err := cu.ReadInConfig()
		if err != nil {
			return c, err
		}
	}

	err := cu.Unmarshal(&c)
	return c, err
}

// Validate checks the configuration for values that can't be used
func (c Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}
