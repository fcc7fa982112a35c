/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/odsdb/pkg/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the odsdb REST API server. Requests must carry the configured
API key in the X-API-Key header.

Examples:
  odsctl serve
  odsctl serve --port 9000 --bind 0.0.0.0
  odsctl serve --api-key=mysecretkey --data-dir=./data`,
	RunE: func(cmd *cobra.Command, args []string) error {
		serverConfig, err := serverConfigFromFlags(cmd)
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		cmd.Printf("🚀 Starting odsdb server on %s:%d\n", serverConfig.Bind, serverConfig.Port)
		cmd.Printf("📁 Data directory: %s\n", serverConfig.DataDir)

		starter := container.GetServerFactory().CreateServerStarter()
		return starter.StartServer(store, newCodec(), serverConfig)
	},
}

// serverConfigFromFlags merges serve flags over the loaded configuration
func serverConfigFromFlags(cmd *cobra.Command) (api.ServerConfig, error) {
	sc := api.ServerConfig{
		Port:        cfg.Port,
		Bind:        cfg.Bind,
		APIKey:      cfg.Security.APIKey,
		DataDir:     cfg.DataDir,
		MaxBodySize: int64(cfg.Decode.MaxSize),
	}
	if cmd.Flags().Changed("port") {
		sc.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("bind") {
		sc.Bind, _ = cmd.Flags().GetString("bind")
	}
	if cmd.Flags().Changed("api-key") {
		sc.APIKey, _ = cmd.Flags().GetString("api-key")
	}

	if sc.APIKey == "" || sc.APIKey == "auto" {
		return sc, fmt.Errorf("no API key configured (run 'odsctl init' or pass --api-key)")
	}
	return sc, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind server to")
	serveCmd.Flags().String("api-key", "", "API key for client authentication")
}
