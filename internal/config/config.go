// Package config resolves input paths, output locations and logging from
// flags, BRTIERS_* environment variables (optionally from a .env file) and
// an optional brtiers.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Keys shared with the CLI flag bindings.
const (
	KeyStats        = "input.stats"
	KeyVehicleStats = "input.vehicle_stats"
	KeyVehicleInfo  = "input.vehicle_info"
	KeyOutputDir    = "output.dir"
	KeyDB           = "db"
	KeyLogLevel     = "log.level"
)

type Config struct {
	StatsPath        string
	VehicleStatsPath string
	VehicleInfoPath  string
	OutputDir        string
	DBPath           string // empty means <OutputDir>/brtiers.db
	LogLevel         string
}

// ModeDir is where one mode's artifacts are written.
func (c *Config) ModeDir(mode string) string {
	return filepath.Join(c.OutputDir, mode)
}

// SnapshotPath is the SQLite file runs are recorded in.
func (c *Config) SnapshotPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(c.OutputDir, "brtiers.db")
}

// SetDefaults registers defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyStats, "data.txt")
	v.SetDefault(KeyVehicleStats, "GlobalUserStats.json")
	v.SetDefault(KeyVehicleInfo, "VehicleInfo.json")
	v.SetDefault(KeyOutputDir, "output")
	v.SetDefault(KeyDB, "")
	v.SetDefault(KeyLogLevel, "info")
}

// Load reads .env (if present), the config file and the environment into v
// and returns the resolved Config. configFile may be empty, in which case
// brtiers.yaml is looked up in the working directory and is optional.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	SetDefaults(v)
	v.SetEnvPrefix("BRTIERS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("brtiers")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		StatsPath:        v.GetString(KeyStats),
		VehicleStatsPath: v.GetString(KeyVehicleStats),
		VehicleInfoPath:  v.GetString(KeyVehicleInfo),
		OutputDir:        v.GetString(KeyOutputDir),
		DBPath:           v.GetString(KeyDB),
		LogLevel:         v.GetString(KeyLogLevel),
	}
	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("%s must not be empty", KeyOutputDir)
	}
	return cfg, nil
}
