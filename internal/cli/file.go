package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newFileCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file",
		Short: "Manage shared files",
	}
	cmd.AddCommand(
		newFileListCommand(app),
		newFileDeleteCommand(app),
	)
	return cmd
}

func newFileListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your shared files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireUser(); err != nil {
				return err
			}

			files, err := app.Client.ListFiles(cmd.Context())
			if err != nil {
				app.notifyAPIError(err)
				return err
			}
			if len(files) == 0 {
				app.Notify.Info("No shared files.")
				return nil
			}

			w := tabwriter.NewWriter(app.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSIZE\tURL\tDOWNLOADS")
			for i := range files {
				f := &files[i]
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\n", f.ID, f.FileName, f.Size, f.ShortURL, f.Downloads)
			}
			return w.Flush()
		},
	}
}

func newFileDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a shared file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireUser(); err != nil {
				return err
			}

			if err := app.Client.DeleteFile(cmd.Context(), args[0]); err != nil {
				app.notifyAPIError(err)
				return err
			}

			app.Notify.Success("File deleted.")
			return nil
		},
	}
}
