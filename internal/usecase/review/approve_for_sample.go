package review

import (
	"context"

	"marketgate/internal/domain/assessment"
)

// ApproveForSample passes a product's digital review and moves it to
// WAITING_FOR_SAMPLE. The approval ledger gains one record.
func (s *Service) ApproveForSample(ctx context.Context, productID string) (AssessmentItem, error) {
	return s.applyTransition(ctx, transitionRequest{
		productID: productID,
		decide:    assessment.ApproveForSample,
	})
}
