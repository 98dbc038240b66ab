package cmd

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"marketgate/internal/bootstrap"
	"marketgate/internal/bootstrap/logging"
	"marketgate/internal/errs"
	"marketgate/internal/usecase/review"
	"marketgate/internal/usecase/reviewconsole"
)

var consoleReviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Start the review queue console",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *review.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		sellerID, _ := cmd.Flags().GetString("seller")
		refreshInterval, _ := cmd.Flags().GetDuration("refresh-interval")
		if refreshInterval <= 0 {
			refreshInterval = 5 * time.Second
		}

		model := reviewconsole.NewConsoleModel(ctx, svc, reviewconsole.Options{
			SellerID:        sellerID,
			RefreshInterval: refreshInterval,
		})

		program := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return errs.Wrap(err, "run review console")
		}
		return nil
	}),
}

func init() {
	consoleCmd.AddCommand(consoleReviewCmd)
	consoleReviewCmd.Flags().String("seller", "", "Restrict the console to one seller id")
	consoleReviewCmd.Flags().Duration("refresh-interval", 5*time.Second, "Auto refresh interval")
}
