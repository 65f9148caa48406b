package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/wayfinder/internal/config"
	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	settings = config.Default()
	logger   = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "wayfinder",
	Short: "Wayfinder resolves conversational flow steps for AI agents",
	Long: `Wayfinder reads a guided dialogue flow (a YAML/JSON file, a directory of
markdown steps or a Redis hash) and answers step lookups with the compacted
instructions an agent needs, tolerating typos in the step ID.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v := viper.New()
		if err := config.Init(v, cfgFile); err != nil {
			return err
		}
		if err := bindFlags(cmd, v); err != nil {
			return err
		}
		loaded, err := config.Load(v)
		if err != nil {
			return err
		}
		settings = loaded

		level, err := logging.ParseLevel(settings.Log.Level)
		if err != nil {
			return err
		}
		logger = logging.NewWithWriter(cmd.ErrOrStderr(), level, logging.Format(settings.Log.Format))
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default ./wayfinder.yaml)")
	flags.StringP("flow", "f", "", "Flow file or directory of markdown steps")
	flags.String("source", config.SourceAuto, "Parameter source: auto, file, loam or redis")
	flags.String("name", "", "Flow name used in logs and metrics")
	flags.Int("item", 0, "Batch item to serve")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("log-format", "text", "Log format: text or json")
	flags.String("redis-addr", "", "Redis address (redis source)")
}

// flagKeys maps persistent flags onto config keys.
var flagKeys = map[string]string{
	"flow":       "flow.path",
	"source":     "flow.source",
	"name":       "flow.name",
	"item":       "flow.item",
	"log-level":  "log.level",
	"log-format": "log.format",
	"redis-addr": "redis.addr",
}

// bindFlags binds the flags that were set on the command line. Unset flags
// leave the config file, environment and defaults in charge.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}
