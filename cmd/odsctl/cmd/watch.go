package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/odsdb/pkg/api"
	"github.com/ssargent/odsdb/pkg/logging"
	"github.com/ssargent/odsdb/pkg/watch"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Decode outline files as they change",
	Long: `Watch a directory and decode every outline file that is created or
written. With --store, buffers that decode are also stored.

Examples:
  odsctl watch ./exports
  odsctl watch --ext .bin --store`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.Watch.Dir
		if len(args) == 1 {
			dir = args[0]
		}
		exts := cfg.Watch.Extensions
		if cmd.Flags().Changed("ext") {
			exts, _ = cmd.Flags().GetStringSlice("ext")
		}
		keep, _ := cmd.Flags().GetBool("store")

		var store api.IOutlineStore
		if keep {
			var err error
			if store, err = openStore(); err != nil {
				return err
			}
			defer store.Close()
		}

		w, err := watch.New(dir, newCodec(), watchHandler(store), watch.Options{Extensions: exts})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

// watchHandler logs each decoded file and stores it when store is not nil
func watchHandler(store api.IOutlineStore) watch.Handler {
	return func(e watch.Event) {
		if e.Err != nil {
			logging.Warn("%s: %v", e.Path, e.Err)
			return
		}
		logging.Info("%s: %d entries %v", e.Path, len(e.Outline.Entries), e.Outline.Titles())

		if store == nil {
			return
		}
		id, err := store.Create(e.Data)
		if err != nil {
			logging.Error("%s: store: %v", e.Path, err)
			return
		}
		logging.Info("%s: stored as %s", e.Path, id)
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringSlice("ext", nil, "File extensions to decode (default from config)")
	watchCmd.Flags().Bool("store", false, "Store every buffer that decodes")
}
