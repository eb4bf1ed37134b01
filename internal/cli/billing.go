package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bliic/bliic/internal/model"
)

func newBillingCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "billing",
		Short: "Inspect and change your subscription",
	}
	cmd.AddCommand(
		newBillingStatusCommand(app),
		newBillingUpgradeCommand(app),
	)
	return cmd
}

func newBillingStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current subscription",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireUser(); err != nil {
				return err
			}

			sub, err := app.Client.Subscription(cmd.Context())
			if err != nil {
				app.notifyAPIError(err)
				return err
			}

			fmt.Fprintf(app.Out, "Plan:   %s\n", sub.Plan)
			fmt.Fprintf(app.Out, "Status: %s\n", sub.Status)
			if sub.CurrentPeriodEnd != nil {
				fmt.Fprintf(app.Out, "Renews: %s\n", sub.CurrentPeriodEnd.Format(time.RFC3339))
			}
			if sub.CancelAtPeriodEnd {
				app.Notify.Warn("Subscription cancels at period end.")
			}
			return nil
		},
	}
}

func newBillingUpgradeCommand(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Start a checkout for a paid plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireUser(); err != nil {
				return err
			}

			p := model.Plan(plan)
			if !p.IsValid() || !p.IsPaid() {
				return fmt.Errorf("--plan must be a paid plan (premium, premium_quarterly, premium_annual, enterprise)")
			}

			checkout, err := app.Client.CreateCheckout(cmd.Context(), p)
			if err != nil {
				app.notifyAPIError(err)
				return err
			}

			fmt.Fprintln(app.Out, checkout.URL)
			app.Notify.Info("Open the checkout URL to complete payment.")
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "target plan")

	return cmd
}
