package review

import (
	"context"
	"strings"

	"marketgate/internal/domain/assessment"
	"marketgate/internal/ports"
)

// Reject fails a product at either review stage. Allowed from any
// non-terminal status; the reason is recorded on the assessment and in the
// rejection ledger.
func (s *Service) Reject(ctx context.Context, productID string, reason string, stage string) (AssessmentItem, error) {
	trimmed := strings.TrimSpace(reason)
	reviewStage := assessment.Stage(strings.TrimSpace(stage))

	return s.applyTransition(ctx, transitionRequest{
		productID: productID,
		decide: func(current assessment.Status) (assessment.Decision, error) {
			return assessment.Reject(current, trimmed, reviewStage)
		},
		change: func(change *ports.AssessmentChange) {
			stageValue := string(reviewStage)
			change.RejectionReason = &trimmed
			change.RejectionStage = &stageValue
		},
	})
}
