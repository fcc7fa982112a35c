/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/odsdb/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an odsctl configuration for local use",
	Long: `Create a configuration file with a generated API key and an empty
outline store.

Examples:
  odsctl init
  odsctl init --config ./odsctl.yaml --data-dir ./data
  odsctl init --force --print-key`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		force, _ := cmd.Flags().GetBool("force")
		printKey, _ := cmd.Flags().GetBool("print-key")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		created, err := initialize(configPath, cfg.DataDir, force)
		if err != nil {
			return err
		}
		if created == nil {
			cmd.Printf("Configuration already exists at %s. Use --force to replace it.\n", configPath)
			return nil
		}

		cmd.Printf("✅ Configuration created at %s\n", configPath)
		cmd.Printf("Data directory: %s\n", created.DataDir)
		if printKey {
			cmd.Printf("API key: %s\n", created.Security.APIKey)
		}
		cmd.Printf("\nYou can now start the server with:\n")
		cmd.Printf("  odsctl serve --config %s\n", configPath)
		return nil
	},
}

// initialize bootstraps a config file and data directory. It returns nil
// without error when a config already exists and force is false.
func initialize(configPath, dataDir string, force bool) (*config.Config, error) {
	if config.ConfigExists(configPath) && !force {
		return nil, nil
	}

	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	created, err := config.BootstrapConfig(configPath, dataDir)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().Bool("force", false, "Replace an existing configuration")
	initCmd.Flags().Bool("print-key", false, "Print the generated API key")
}
