package cmd

import (
	"fmt"
	"io"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/odsdb/pkg/api"
	"github.com/ssargent/odsdb/pkg/codec"
	"github.com/ssargent/odsdb/pkg/diff"
)

// diffCmd represents the diff command
var diffCmd = &cobra.Command{
	Use:   "diff <a> <b>",
	Short: "Compare two outlines",
	Long: `Print a unified diff between the text renderings of two outlines.
Arguments are file paths, or stored outline ids with --stored.

Examples:
  odsctl diff old.bin new.bin
  odsctl diff --stored 2ekn2pDzY1uxBfgSNqbsaVaR7sp 2ekn3Rq4n0IcmhxRraRpOYBmjyO`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		stored, _ := cmd.Flags().GetBool("stored")
		offsets, _ := cmd.Flags().GetBool("offsets")
		contextLines, _ := cmd.Flags().GetInt("context")

		c := newCodec()
		var load func(string) ([]byte, error)
		if stored {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()
			load = storedLoader(store)
		} else {
			load = func(path string) ([]byte, error) { return readInput(cmd.InOrStdin(), path) }
		}

		var outlines [2]*codec.Outline
		for i, arg := range args {
			buf, err := load(arg)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", arg, err)
			}
			if outlines[i], err = c.Decode(buf); err != nil {
				return fmt.Errorf("failed to decode %s: %w", arg, err)
			}
		}

		return writeDiff(cmd.OutOrStdout(), args[0], args[1], outlines[0], outlines[1], diff.Options{Context: contextLines, Offsets: offsets})
	},
}

func storedLoader(store api.IOutlineStore) func(string) ([]byte, error) {
	return func(arg string) ([]byte, error) {
		id, err := ksuid.Parse(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid outline id: %w", err)
		}
		return store.Read(id)
	}
}

func writeDiff(w io.Writer, aName, bName string, a, b *codec.Outline, opt diff.Options) error {
	patch, err := diff.Unified(aName, bName, a, b, opt)
	if err != nil {
		return err
	}
	if patch == "" {
		_, err = fmt.Fprintln(w, "Outlines are identical")
		return err
	}
	_, err = io.WriteString(w, patch)
	return err
}

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().Bool("stored", false, "Treat arguments as stored outline ids")
	diffCmd.Flags().Bool("offsets", false, "Include entry byte spans in the comparison")
	diffCmd.Flags().IntP("context", "U", diff.DefaultContext, "Lines of context around each change")
}
