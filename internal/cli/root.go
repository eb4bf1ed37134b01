package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the bliic command tree around the shared App.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "bliic",
		Short:         "Command-line client for the Bliic link shortener",
		Long:          "bliic manages short links, QR codes, and shared files on a Bliic account from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCommand(app),
		newLogoutCommand(app),
		newRegisterCommand(app),
		newWhoamiCommand(app),
		newLinkCommand(app),
		newQRCommand(app),
		newFileCommand(app),
		newBillingCommand(app),
		newAdminCommand(app),
	)

	return root
}
