package cmd

import (
	"fmt"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print a stored outline",
	Long: `Print a stored outline decoded, or the raw buffer with --raw.

Examples:
  odsctl get 2ekn2pDzY1uxBfgSNqbsaVaR7sp
  odsctl get --format table 2ekn2pDzY1uxBfgSNqbsaVaR7sp
  odsctl get --raw -o sitemap.bin 2ekn2pDzY1uxBfgSNqbsaVaR7sp`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		raw, _ := cmd.Flags().GetBool("raw")
		out, _ := cmd.Flags().GetString("output")

		id, err := ksuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid outline id: %w", err)
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		buf, err := store.Read(id)
		if err != nil {
			return err
		}
		if raw {
			return writeOutput(cmd.OutOrStdout(), out, buf)
		}

		outline, err := newCodec().Decode(buf)
		if err != nil {
			return fmt.Errorf("stored outline %s no longer decodes: %w", id, err)
		}
		return writeOutline(cmd.OutOrStdout(), outline, format, false)
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().StringP("format", "f", formatJSON, "Output format (json, yaml, text, table)")
	getCmd.Flags().Bool("raw", false, "Write the stored buffer instead of decoding it")
	getCmd.Flags().StringP("output", "o", "", "With --raw, write to this file instead of stdout")
}
