package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored outlines",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		infos, err := store.List()
		if err != nil {
			return err
		}

		switch format {
		case formatJSON:
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(infos)
		case formatTable:
			if len(infos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No outlines found")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSIZE\tCREATED")
			for _, info := range infos {
				fmt.Fprintf(w, "%s\t%d\t%s\n", info.ID, info.Size, info.Created.Format(time.RFC3339))
			}
			return w.Flush()
		default:
			return fmt.Errorf("unknown output format %q (want json or table)", format)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringP("format", "f", formatTable, "Output format (json, table)")
}
