package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/bliic/bliic/internal/api"
)

func newLinkCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Manage short links",
	}
	cmd.AddCommand(
		newLinkCreateCommand(app),
		newLinkListCommand(app),
		newLinkGetCommand(app),
		newLinkDeleteCommand(app),
	)
	return cmd
}

func newLinkCreateCommand(app *App) *cobra.Command {
	var destination, code, title string
	var expiresIn time.Duration

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Shorten a URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireUser(); err != nil {
				return err
			}
			if destination == "" {
				return fmt.Errorf("--to is required")
			}

			in := api.CreateLinkInput{
				Destination: destination,
				CustomCode:  code,
				Title:       title,
			}
			if expiresIn > 0 {
				t := time.Now().Add(expiresIn)
				in.ExpiresAt = &t
			}

			link, err := app.Client.CreateLink(cmd.Context(), in)
			if err != nil {
				app.notifyAPIError(err)
				return err
			}

			fmt.Fprintln(app.Out, link.ShortURL)
			app.Notify.Success("Link created.")
			return nil
		},
	}

	cmd.Flags().StringVar(&destination, "to", "", "destination URL")
	cmd.Flags().StringVar(&code, "code", "", "custom short code")
	cmd.Flags().StringVar(&title, "title", "", "link title")
	cmd.Flags().DurationVar(&expiresIn, "expires-in", 0, "expiry relative to now (e.g. 72h)")

	return cmd
}

func newLinkListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your short links",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireUser(); err != nil {
				return err
			}

			links, err := app.Client.ListLinks(cmd.Context())
			if err != nil {
				app.notifyAPIError(err)
				return err
			}
			if len(links) == 0 {
				app.Notify.Info("No links yet.")
				return nil
			}

			w := tabwriter.NewWriter(app.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSHORT\tDESTINATION\tSTATUS\tCLICKS")
			for i := range links {
				l := &links[i]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", l.ID, l.ShortURL, l.Destination, l.Status(), l.ClickCount)
			}
			return w.Flush()
		},
	}
}

func newLinkGetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireUser(); err != nil {
				return err
			}

			link, err := app.Client.GetLink(cmd.Context(), args[0])
			if err != nil {
				app.notifyAPIError(err)
				return err
			}

			fmt.Fprintf(app.Out, "ID:          %s\n", link.ID)
			fmt.Fprintf(app.Out, "Short URL:   %s\n", link.ShortURL)
			fmt.Fprintf(app.Out, "Destination: %s\n", link.Destination)
			if link.Title != "" {
				fmt.Fprintf(app.Out, "Title:       %s\n", link.Title)
			}
			fmt.Fprintf(app.Out, "Status:      %s\n", link.Status())
			fmt.Fprintf(app.Out, "Clicks:      %d\n", link.ClickCount)
			if link.ExpiresAt != nil {
				fmt.Fprintf(app.Out, "Expires:     %s\n", link.ExpiresAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func newLinkDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireUser(); err != nil {
				return err
			}

			if err := app.Client.DeleteLink(cmd.Context(), args[0]); err != nil {
				app.notifyAPIError(err)
				return err
			}

			app.Notify.Success("Link deleted.")
			return nil
		},
	}
}
