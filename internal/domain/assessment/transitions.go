package assessment

import (
	"fmt"
	"strings"
)

// TimestampField names the single assessment timestamp a transition stamps.
type TimestampField string

const (
	StampNone                TimestampField = ""
	StampSubmittedAt         TimestampField = "submitted_at"
	StampApprovedAt          TimestampField = "approved_at"
	StampVerifiedAt          TimestampField = "verified_at"
	StampRejectedAt          TimestampField = "rejected_at"
	StampRevisionRequestedAt TimestampField = "revision_requested_at"
)

// LedgerKind selects which append-only ledger a transition writes to.
type LedgerKind string

const (
	LedgerNone      LedgerKind = ""
	LedgerApproval  LedgerKind = "approval"
	LedgerRejection LedgerKind = "rejection"
	LedgerRevision  LedgerKind = "revision"
	LedgerLogistics LedgerKind = "logistics"
)

const (
	descDigitalReviewPassed = "Digital review passed"
	descProductVerified     = "Product verified and approved"
	descResubmitted         = "Resubmitted for digital review"
)

// Decision is the outcome of a successful transition: the next status, the
// timestamp to stamp, and the ledger record the recorder must append.
type Decision struct {
	Next        Status
	Stamp       TimestampField
	Ledger      LedgerKind
	Description string
}

func guardErr(action string, current Status) error {
	return fmt.Errorf("%w: cannot %s from %s", ErrGuardViolation, action, current)
}

// ApproveForSample passes the digital review and asks the seller for a
// physical sample.
func ApproveForSample(current Status) (Decision, error) {
	if current != StatusPendingDigitalReview {
		return Decision{}, guardErr("approve for sample", current)
	}
	return Decision{
		Next:        StatusWaitingForSample,
		Stamp:       StampApprovedAt,
		Ledger:      LedgerApproval,
		Description: descDigitalReviewPassed,
	}, nil
}

// SubmitSample records the seller's sample logistics and moves the product
// into physical quality review.
func SubmitSample(current Status, logisticsMethod string) (Decision, error) {
	method := strings.TrimSpace(logisticsMethod)
	if method == "" {
		return Decision{}, ErrLogisticsMethodRequired
	}
	if current != StatusWaitingForSample {
		return Decision{}, guardErr("submit sample", current)
	}
	return Decision{
		Next:        StatusInQualityReview,
		Stamp:       StampNone,
		Ledger:      LedgerLogistics,
		Description: method,
	}, nil
}

// PassQualityCheck completes the physical review and verifies the product.
func PassQualityCheck(current Status) (Decision, error) {
	if current != StatusInQualityReview {
		return Decision{}, guardErr("pass quality check", current)
	}
	return Decision{
		Next:        StatusActiveVerified,
		Stamp:       StampVerifiedAt,
		Ledger:      LedgerApproval,
		Description: descProductVerified,
	}, nil
}

// Reject fails the product at either review stage. Allowed from any
// non-terminal status.
func Reject(current Status, reason string, stage Stage) (Decision, error) {
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return Decision{}, ErrReasonRequired
	}
	if _, err := ParseStage(string(stage)); err != nil {
		return Decision{}, err
	}
	if current.Terminal() {
		return Decision{}, guardErr("reject", current)
	}
	return Decision{
		Next:        StatusRejected,
		Stamp:       StampRejectedAt,
		Ledger:      LedgerRejection,
		Description: trimmed,
	}, nil
}

// RequestRevision sends the product back to the seller for fixes without
// rejecting it outright.
func RequestRevision(current Status, reason string, stage Stage) (Decision, error) {
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return Decision{}, ErrReasonRequired
	}
	if _, err := ParseStage(string(stage)); err != nil {
		return Decision{}, err
	}
	if current.Terminal() || current == StatusForRevision {
		return Decision{}, guardErr("request revision", current)
	}
	return Decision{
		Next:        StatusForRevision,
		Stamp:       StampRevisionRequestedAt,
		Ledger:      LedgerRevision,
		Description: trimmed,
	}, nil
}

// ResubmitForReview returns a FOR_REVISION product to the start of the
// pipeline after the seller reworked the listing.
func ResubmitForReview(current Status) (Decision, error) {
	if current != StatusForRevision {
		return Decision{}, guardErr("resubmit", current)
	}
	return Decision{
		Next:        StatusPendingDigitalReview,
		Stamp:       StampSubmittedAt,
		Ledger:      LedgerRevision,
		Description: descResubmitted,
	}, nil
}
