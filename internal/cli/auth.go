package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCommand(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the Bliic API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			if password == "" {
				return fmt.Errorf("--password is required")
			}

			sess, err := app.Session.Login(cmd.Context(), email, password)
			if err != nil {
				app.notifyAPIError(err)
				return err
			}

			app.Notify.Success(fmt.Sprintf("Logged in as %s (%s plan).", sess.User.Email, sess.User.Plan))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")

	return cmd
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			wasLoggedIn := app.Session.IsAuthenticated()
			app.Session.Logout()

			if wasLoggedIn {
				app.Notify.Success("Logged out.")
			} else {
				app.Notify.Info("Already logged out.")
			}
			return nil
		},
	}
}

func newRegisterCommand(app *App) *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a Bliic account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			if password == "" {
				return fmt.Errorf("--password is required")
			}

			resp, err := app.Client.Register(cmd.Context(), email, password, name)
			if err != nil {
				app.notifyAPIError(err)
				return err
			}

			// Registration logs the account in server-side; adopt the
			// returned session with the same side effects as login.
			sess, err := app.Session.Adopt(resp.User, resp.AccessToken)
			if err != nil {
				app.Notify.Warn("Account created; log in with 'bliic login'.")
				return nil
			}

			app.Notify.Success(fmt.Sprintf("Welcome, %s. Account created and logged in.", sess.User.Email))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&name, "name", "", "display name")

	return cmd
}

func newWhoamiCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.requireUser()
			if err != nil {
				return err
			}

			fmt.Fprintf(app.Out, "ID:    %s\n", user.ID)
			fmt.Fprintf(app.Out, "Email: %s\n", user.Email)
			fmt.Fprintf(app.Out, "Name:  %s\n", user.Name)
			fmt.Fprintf(app.Out, "Plan:  %s\n", user.Plan)
			fmt.Fprintf(app.Out, "Role:  %s\n", user.EffectiveRole())
			if len(user.Access.Permissions) > 0 {
				fmt.Fprintf(app.Out, "Perms: %v\n", user.Access.Permissions)
			}
			if user.Access.Trial != nil && user.Access.Trial.Active {
				fmt.Fprintln(app.Out, "Trial: active")
			}
			return nil
		},
	}
}
