package review

import (
	"context"

	"marketgate/internal/domain/assessment"
)

// PassQualityCheck completes the physical sample review. The product becomes
// ACTIVE_VERIFIED and its derived approval flag flips to approved.
func (s *Service) PassQualityCheck(ctx context.Context, productID string) (AssessmentItem, error) {
	return s.applyTransition(ctx, transitionRequest{
		productID: productID,
		decide:    assessment.PassQualityCheck,
	})
}
