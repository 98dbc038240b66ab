package review

import (
	"context"
	"strings"

	"marketgate/internal/domain/assessment"
	"marketgate/internal/ports"
)

// RequestRevision sends a product back to the seller for fixes. Unlike a
// rejection the product stays in the pipeline: the seller is expected to
// resubmit it for a fresh digital review.
func (s *Service) RequestRevision(ctx context.Context, productID string, reason string, stage string) (AssessmentItem, error) {
	trimmed := strings.TrimSpace(reason)
	reviewStage := assessment.Stage(strings.TrimSpace(stage))

	return s.applyTransition(ctx, transitionRequest{
		productID: productID,
		decide: func(current assessment.Status) (assessment.Decision, error) {
			return assessment.RequestRevision(current, trimmed, reviewStage)
		},
		change: func(change *ports.AssessmentChange) {
			stageValue := string(reviewStage)
			change.RejectionReason = &trimmed
			change.RejectionStage = &stageValue
		},
	})
}
