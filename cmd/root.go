package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pable/brtiers/internal/config"
	"github.com/pable/brtiers/internal/logger"
	"github.com/pable/brtiers/internal/model"
	"github.com/pable/brtiers/internal/storage"
)

var (
	cfgFile string
	v       = viper.New()
	cfg     *config.Config
	log     zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "brtiers",
	Short: "Battle rating matchmaking tier analysis",
	Long: `Compute, per country and battle rating, how often matches land in each
matchmaking tier, and score BRs by combining that spread with historical
vehicle win rates.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		cfg = c
		log = logger.New(cfg.LogLevel)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./brtiers.yaml)")
	pf.String("stats", "data.txt", "per-mode play count feed")
	pf.String("vehicle-stats", "GlobalUserStats.json", "historical per-vehicle stats feed")
	pf.String("vehicle-info", "VehicleInfo.json", "vehicle metadata feed")
	pf.String("out", "output", "output directory")
	pf.String("db", "", "path to SQLite snapshot (default <out>/brtiers.db)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")

	for key, flag := range map[string]string{
		config.KeyStats:        "stats",
		config.KeyVehicleStats: "vehicle-stats",
		config.KeyVehicleInfo:  "vehicle-info",
		config.KeyOutputDir:    "out",
		config.KeyDB:           "db",
		config.KeyLogLevel:     "log-level",
	} {
		if err := v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(weightedCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(shellCmd)
}

// selectModes expands a --mode value into the modes to process.
func selectModes(s string) ([]model.MatchMode, error) {
	if strings.EqualFold(strings.TrimSpace(s), "all") {
		return model.AllModes, nil
	}
	m, err := model.ParseMatchMode(s)
	if err != nil {
		return nil, err
	}
	return []model.MatchMode{m}, nil
}

// openSnapshot opens the SQLite snapshot, creating its directory.
func openSnapshot() (*storage.DB, error) {
	path := cfg.SnapshotPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}
