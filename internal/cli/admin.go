package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bliic/bliic/internal/model"
)

func newAdminCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administer accounts (admin role required)",
	}
	cmd.AddCommand(
		newAdminUsersCommand(app),
		newAdminSetPlanCommand(app),
		newAdminSetRoleCommand(app),
	)
	return cmd
}

// requireAdmin checks the local session's role before spending a round
// trip; the server enforces it again regardless.
func requireAdmin(app *App) (model.User, error) {
	user, err := app.requireUser()
	if err != nil {
		return model.User{}, err
	}
	if !user.EffectiveRole().CanAdminister() {
		app.Notify.Error("This command needs an admin role.")
		return model.User{}, fmt.Errorf("admin role required")
	}
	return user, nil
}

func newAdminUsersCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireAdmin(app); err != nil {
				return err
			}

			users, err := app.Client.ListUsers(cmd.Context())
			if err != nil {
				app.notifyAPIError(err)
				return err
			}

			w := tabwriter.NewWriter(app.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEMAIL\tNAME\tPLAN\tROLE")
			for i := range users {
				u := &users[i]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Name, u.Plan, u.EffectiveRole())
			}
			return w.Flush()
		},
	}
}

func newAdminSetPlanCommand(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "set-plan <user-id>",
		Short: "Change an account's plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireAdmin(app); err != nil {
				return err
			}

			p := model.Plan(plan)
			if !p.IsValid() {
				return fmt.Errorf("unknown plan %q", plan)
			}

			user, err := app.Client.UpdateUserPlan(cmd.Context(), args[0], p)
			if err != nil {
				app.notifyAPIError(err)
				return err
			}

			app.Notify.Success(fmt.Sprintf("%s is now on the %s plan.", user.Email, user.Plan))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "target plan")

	return cmd
}

func newAdminSetRoleCommand(app *App) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "set-role <user-id>",
		Short: "Change an account's role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireAdmin(app); err != nil {
				return err
			}

			r := model.Role(role)
			if !r.IsValid() {
				return fmt.Errorf("unknown role %q", role)
			}

			user, err := app.Client.UpdateUserRole(cmd.Context(), args[0], r)
			if err != nil {
				app.notifyAPIError(err)
				return err
			}

			app.Notify.Success(fmt.Sprintf("%s is now a %s.", user.Email, user.EffectiveRole()))
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "target role")

	return cmd
}
