package review

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"marketgate/internal/bootstrap/logging"
	"marketgate/internal/domain/assessment"
	"marketgate/internal/errs"
	"marketgate/internal/ports"
)

// Reconcile creates a PENDING_DIGITAL_REVIEW assessment for every product
// that has none. Orphans are processed concurrently and independently: a
// failure for one is logged and swallowed so it cannot block the rest.
// Returns how many assessments were actually created; running it again is a
// no-op thanks to the per-product upsert.
func (s *Service) Reconcile(ctx context.Context) (int, error) {
	if ctx == nil {
		return 0, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return 0, errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return 0, errors.New("review repository is required")
	}

	orphans, err := s.repo.ListOrphanProducts(ctx)
	if err != nil {
		return 0, errs.Wrap(err, "list orphan products")
	}
	if len(orphans) == 0 {
		return 0, nil
	}

	now := nowUTCString()

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0

	for _, orphan := range orphans {
		wg.Add(1)
		go func(orphan ports.OrphanProduct) {
			defer wg.Done()

			inserted, err := s.repo.CreateAssessment(ctx, ports.AssessmentRecord{
				AssessmentID: uuid.NewString(),
				ProductID:    orphan.ProductID,
				Status:       assessment.StatusPendingDigitalReview,
				SellerName:   displayName(orphan.StoreName, orphan.Name),
				SubmittedAt:  now,
			})
			if err != nil {
				logging.Warn(ctx, "reconcile orphan failed",
					slog.String("product_id", orphan.ProductID),
					slog.Any("err", errs.Loggable(err)))
				return
			}

			if inserted {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}(orphan)
	}
	wg.Wait()

	if created > 0 {
		logging.Info(ctx, "reconciled orphan products", slog.Int("created", created))
	}
	return created, nil
}
