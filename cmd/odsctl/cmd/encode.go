package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode <file>",
	Short: "Encode an outline document into a binary buffer",
	Long: `Encode a YAML or JSON outline (as printed by decode) back into the
binary format. Unless --input-format is given, files ending in .json are
read as JSON and anything else as YAML.

Examples:
  odsctl encode sitemap.yaml -o sitemap.bin
  odsctl decode -f json a.bin | odsctl encode --input-format json - > b.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		inputFormat, _ := cmd.Flags().GetString("input-format")

		data, err := readInput(cmd.InOrStdin(), args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		outline, err := parseOutline(args[0], inputFormat, data)
		if err != nil {
			return err
		}

		buf, err := newCodec().Encode(outline)
		if err != nil {
			return fmt.Errorf("failed to encode outline: %w", err)
		}

		return writeOutput(cmd.OutOrStdout(), out, buf)
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().StringP("output", "o", "", "Write the buffer to this file instead of stdout")
	encodeCmd.Flags().String("input-format", "", "Input format (json or yaml)")
}
