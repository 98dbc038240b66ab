package review

import (
	"context"
	"strings"

	"marketgate/internal/domain/assessment"
	"marketgate/internal/ports"
)

// SubmitSample records how the seller is shipping the physical sample and
// moves the product into IN_QUALITY_REVIEW. The logistics method lands both
// on the assessment row and in the logistics ledger.
func (s *Service) SubmitSample(ctx context.Context, productID string, logisticsMethod string) (AssessmentItem, error) {
	method := strings.TrimSpace(logisticsMethod)

	return s.applyTransition(ctx, transitionRequest{
		productID: productID,
		decide: func(current assessment.Status) (assessment.Decision, error) {
			return assessment.SubmitSample(current, method)
		},
		change: func(change *ports.AssessmentChange) {
			change.Logistics = &method
		},
	})
}
