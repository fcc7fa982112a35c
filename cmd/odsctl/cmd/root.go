/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/odsdb/pkg/config"
	"github.com/ssargent/odsdb/pkg/di"
	"github.com/ssargent/odsdb/pkg/logging"
)

var (
	container *di.Container
	cfg       *config.Config
)

// SetContainer injects the dependency container used by the commands
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "odsctl",
	Short: "odsctl - ODS outline decoder and store",
	Long: `odsctl decodes, encodes, compares and stores the binary outline
(sitemap) records found in ODS design notes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg = loaded

		level, err := logging.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return err
		}
		logging.SetLevel(level)

		if container == nil {
			container = di.NewContainer()
		}
		return nil
	},
}

// loadConfig reads the config file if there is one and applies flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	explicit := configPath != ""
	if !explicit {
		configPath = config.GetDefaultConfigPath()
	}

	c := config.DefaultConfig()
	if config.ConfigExists(configPath) {
		var err error
		if c, err = config.LoadConfig(configPath); err != nil {
			return nil, err
		}
		logging.Debug("loaded configuration from %s", configPath)
	} else if explicit {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if cmd.Flags().Changed("data-dir") {
		c.DataDir, _ = cmd.Flags().GetString("data-dir")
	}
	if cmd.Flags().Changed("log-level") {
		c.Logging.Level, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("max-size") {
		c.Decode.MaxSize, _ = cmd.Flags().GetInt("max-size")
	}
	if cmd.Flags().Changed("version-gate") {
		c.Decode.VersionGate, _ = cmd.Flags().GetBool("version-gate")
	}
	if cmd.Flags().Changed("lenient") {
		lenient, _ := cmd.Flags().GetBool("lenient")
		c.Decode.StrictEntryCount = !lenient
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
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
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: OS-specific location)")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "./data", "Data directory for the outline store")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Int("max-size", 16<<20, "Largest outline buffer accepted, 0 for no limit")
	rootCmd.PersistentFlags().Bool("version-gate", false, "Skip toolbar and popup fields on format minor version 0")
	rootCmd.PersistentFlags().Bool("lenient", false, "Accept buffers whose item counters disagree with the entry count")
}
