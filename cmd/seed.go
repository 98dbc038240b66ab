package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"marketgate/internal/bootstrap"
	"marketgate/internal/bootstrap/logging"
	"marketgate/internal/errs"
	"marketgate/internal/infrastructure/persistence/sqlite/repository"
	"marketgate/internal/ports"
	"marketgate/internal/usecase/review"
)

// seedCmd loads a small demo data set: two sellers, a handful of products in
// the normal pipeline, and one product persisted without an assessment so the
// reconciliation path has something to repair.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo sellers and products",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *review.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		if err := app.InitSchema(ctx); err != nil {
			return errs.Wrap(err, "initialize schema")
		}

		oakID, err := svc.RegisterSeller(ctx, review.RegisterSellerInput{StoreName: "Oak & Grain Workshop"})
		if err != nil {
			return errs.Wrap(err, "register seller")
		}
		brassID, err := svc.RegisterSeller(ctx, review.RegisterSellerInput{StoreName: "Brass Lantern Goods"})
		if err != nil {
			return errs.Wrap(err, "register seller")
		}

		products := []review.SubmitProductInput{
			{SellerID: oakID, Name: "Walnut Writing Desk", PriceCents: 128_00, Images: []string{"desk-front.jpg", "desk-side.jpg"}, Variants: []string{"natural", "ebonized"}},
			{SellerID: oakID, Name: "Oak Bookshelf", PriceCents: 89_00, Images: []string{"shelf.jpg"}},
			{SellerID: brassID, Name: "Storm Lantern", PriceCents: 45_50, Images: []string{"lantern.jpg"}, Variants: []string{"brass", "copper"}},
		}
		for _, input := range products {
			item, err := svc.SubmitProduct(ctx, input)
			if err != nil {
				return errs.Wrap(err, "submit product")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded product %s (%s)\n", input.Name, item.ProductID)
		}

		// One product goes straight into the products table, bypassing the
		// pipeline, so `queue` shows the reconciliation job picking it up.
		repo := repository.NewReviewRepository(app.DB)
		orphanID := uuid.NewString()
		if err := repo.CreateProduct(ctx, ports.ProductCreate{
			ProductID:  orphanID,
			SellerID:   brassID,
			Name:       "Unlisted Candle Sconce",
			PriceCents: 22_00,
			CreatedAt:  time.Now().UTC().Format(time.RFC3339Nano),
		}); err != nil {
			return errs.Wrap(err, "create orphan product")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded orphan product Unlisted Candle Sconce (%s)\n", orphanID)

		return nil
	}),
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
