package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bliic/bliic/internal/api"
	"github.com/bliic/bliic/internal/model"
)

func newQRCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qr",
		Short: "Manage QR codes",
	}
	cmd.AddCommand(
		newQRCreateCommand(app),
		newQRListCommand(app),
		newQRDeleteCommand(app),
	)
	return cmd
}

func newQRCreateCommand(app *App) *cobra.Command {
	var data, label, format string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Generate a QR code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireUser(); err != nil {
				return err
			}
			if data == "" {
				return fmt.Errorf("--data is required")
			}

			code, err := app.Client.CreateQRCode(cmd.Context(), api.CreateQRCodeInput{
				Data:   data,
				Label:  label,
				Format: model.QRFormat(format),
			})
			if err != nil {
				app.notifyAPIError(err)
				return err
			}

			fmt.Fprintln(app.Out, code.ImageURL)
			app.Notify.Success("QR code created.")
			return nil
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "data to encode")
	cmd.Flags().StringVar(&label, "label", "", "display label")
	cmd.Flags().StringVar(&format, "format", "png", "image format (png or svg)")

	return cmd
}

func newQRListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your QR codes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireUser(); err != nil {
				return err
			}

			codes, err := app.Client.ListQRCodes(cmd.Context())
			if err != nil {
				app.notifyAPIError(err)
				return err
			}
			if len(codes) == 0 {
				app.Notify.Info("No QR codes yet.")
				return nil
			}

			w := tabwriter.NewWriter(app.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tLABEL\tDATA\tFORMAT\tSCANS")
			for i := range codes {
				q := &codes[i]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", q.ID, q.Label, q.Data, q.Format, q.ScanCount)
			}
			return w.Flush()
		},
	}
}

func newQRDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a QR code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireUser(); err != nil {
				return err
			}

			if err := app.Client.DeleteQRCode(cmd.Context(), args[0]); err != nil {
				app.notifyAPIError(err)
				return err
			}

			app.Notify.Success("QR code deleted.")
			return nil
		},
	}
}
