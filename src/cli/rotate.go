package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"compose-backup/src/rotate"
	"compose-backup/src/safety"
	"compose-backup/src/target"
)

func newRotateCmd(stdout, stderr io.Writer) *cobra.Command {
	var keep int
	cmd := &cobra.Command{
		Use:   "rotate REMOTE REMOTE_PATH",
		Short: "Delete old remote backup archives, keeping the newest N",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if keep < 1 {
				return errors.New("--keep must be at least 1")
			}
			dest, err := target.New(args[0], args[1])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			store := newStore(stdout)
			entries, err := store.List(ctx, dest)
			if err != nil {
				return err
			}
			toDelete, err := rotate.Plan(entries, keep)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tMODTIME\tACTION")
			for _, e := range toDelete {
				modTime := ""
				if !e.ModTime.IsZero() {
					modTime = e.ModTime.Format("2006-01-02 15:04:05")
				}
				fmt.Fprintf(tw, "%s\t%s\tdelete\n", e.Path, modTime)
			}
			_ = tw.Flush()

			opts := getSafetyOptions(cmd)
			if opts.DryRun || len(toDelete) == 0 {
				return nil
			}
			ok, err := safety.Confirm(opts, os.Stdin, stdout, fmt.Sprintf("Delete %d backups from %s?", len(toDelete), dest))
			if err != nil || !ok {
				return err
			}
			for _, e := range toDelete {
				remoteFile := dest.Join(e.Path)
				fmt.Fprintf(stdout, "Deleting %s\n", remoteFile)
				if err := store.Delete(ctx, remoteFile); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&keep, "keep", 4, "Number of most recent backups to keep")
	return cmd
}
