package cmd

import (
	"fmt"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored outline",
	Long: `Delete a stored outline.

Example:
  odsctl delete 2ekn2pDzY1uxBfgSNqbsaVaR7sp`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ksuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid outline id: %w", err)
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(id); err != nil {
			return err
		}

		cmd.Printf("Successfully deleted outline '%s'\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
