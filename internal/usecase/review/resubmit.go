package review

import (
	"context"

	"marketgate/internal/domain/assessment"
	"marketgate/internal/ports"
)

// ResubmitForReview re-enters a FOR_REVISION product at the start of the
// pipeline after the seller reworked the listing. The previous rejection
// fields are cleared and submitted_at is stamped afresh; the revision ledger
// keeps the history.
func (s *Service) ResubmitForReview(ctx context.Context, productID string) (AssessmentItem, error) {
	return s.applyTransition(ctx, transitionRequest{
		productID: productID,
		decide:    assessment.ResubmitForReview,
		change: func(change *ports.AssessmentChange) {
			change.ClearRejection = true
		},
	})
}
