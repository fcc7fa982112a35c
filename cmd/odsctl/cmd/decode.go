package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssargent/odsdb/pkg/logging"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Decode an outline buffer",
	Long: `Decode a binary outline buffer and print it. Use "-" to read stdin.

Examples:
  odsctl decode sitemap.bin
  odsctl decode --format yaml sitemap.bin
  odsctl decode --format text --offsets - < sitemap.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		offsets, _ := cmd.Flags().GetBool("offsets")

		buf, err := readInput(cmd.InOrStdin(), args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		start := time.Now()
		outline, err := newCodec().Decode(buf)
		if err != nil {
			return fmt.Errorf("failed to decode %s: %w", args[0], err)
		}
		logging.Debug("decoded %d entries from %d bytes in %s", len(outline.Entries), len(buf), time.Since(start))

		return writeOutline(cmd.OutOrStdout(), outline, format, offsets)
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringP("format", "f", formatJSON, "Output format (json, yaml, text, table)")
	decodeCmd.Flags().Bool("offsets", false, "Include entry byte spans in text output")
}
