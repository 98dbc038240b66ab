package cmd

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"marketgate/internal/bootstrap"
	"marketgate/internal/bootstrap/logging"
	"marketgate/internal/errs"
	"marketgate/internal/usecase/review"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Print the assessment queue",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *review.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		sellerID, _ := cmd.Flags().GetString("seller")
		items, err := svc.LoadAssessments(ctx, sellerID)
		if err != nil {
			return errs.Wrap(err, "load assessments")
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PRODUCT\tSTATUS\tSELLER\tSUBMITTED")
		for _, item := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.ProductName, item.Status, item.SellerName, item.SubmittedAt)
		}
		if err := w.Flush(); err != nil {
			return errs.Wrap(err, "write queue output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(queueCmd)
	queueCmd.Flags().String("seller", "", "Restrict the queue to one seller id")
}
