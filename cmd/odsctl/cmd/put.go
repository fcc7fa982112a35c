package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put <file>",
	Short: "Store an outline buffer",
	Long: `Validate an outline buffer and store it. The new outline id is printed.

Example:
  odsctl put sitemap.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, err := readInput(cmd.InOrStdin(), args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.Create(buf)
		if err != nil {
			return fmt.Errorf("failed to store outline: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), id.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(putCmd)
}
