package review

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"marketgate/internal/bootstrap/logging"
	"marketgate/internal/errs"
	"marketgate/internal/ports"
)

// LoadAssessments loads the review queue. With a seller id it returns only
// that seller's products (seller view); without one it is the admin view:
// reconciliation runs first so orphan products get their missing
// assessments, and the shared queue cache is rebuilt from the result.
// Rows are deduplicated by product id before the queue is exposed.
func (s *Service) LoadAssessments(ctx context.Context, sellerID string) ([]AssessmentItem, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return nil, errors.New("review repository is required")
	}

	sellerID = strings.TrimSpace(sellerID)
	adminView := sellerID == ""

	if adminView {
		// Best effort: a failed reconciliation must not block the queue.
		if _, err := s.Reconcile(ctx); err != nil {
			logging.Warn(ctx, "queue reconciliation failed", slog.Any("err", errs.Loggable(err)))
		}
	}

	rows, err := s.repo.ListAssessments(ctx, ports.AssessmentFilter{SellerID: sellerID})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(rows))
	items := make([]AssessmentItem, 0, len(rows))
	entries := make([]ports.QueueEntry, 0, len(rows))

	for _, row := range rows {
		if _, dup := seen[row.ProductID]; dup {
			continue
		}
		seen[row.ProductID] = struct{}{}

		sellerName := row.SellerName
		if sellerName == "" {
			sellerName = displayName(row.StoreName, row.ProductName)
		}

		entry := entryFromRecord(row.AssessmentRecord, row.ProductName, row.PriceCents, sellerName)
		entries = append(entries, entry)
		items = append(items, itemFromEntry(entry))
	}

	if s.queue != nil {
		if adminView {
			s.queue.ReplaceAll(entries)
		} else {
			for _, entry := range entries {
				s.queue.Put(entry)
			}
		}
	}

	return items, nil
}
