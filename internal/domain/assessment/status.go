package assessment

import "fmt"

// Status is the canonical review status of an assessment. The lowercase
// storage vocabulary exists only at the persistence boundary; use
// StorageValue and StatusFromStorage to cross it.
type Status string

const (
	StatusPendingDigitalReview Status = "PENDING_DIGITAL_REVIEW"
	StatusWaitingForSample     Status = "WAITING_FOR_SAMPLE"
	StatusInQualityReview      Status = "IN_QUALITY_REVIEW"
	StatusActiveVerified       Status = "ACTIVE_VERIFIED"
	StatusForRevision          Status = "FOR_REVISION"
	StatusRejected             Status = "REJECTED"
)

// AllStatuses lists every canonical status, in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusPendingDigitalReview,
		StatusWaitingForSample,
		StatusInQualityReview,
		StatusActiveVerified,
		StatusForRevision,
		StatusRejected,
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusPendingDigitalReview, StatusWaitingForSample, StatusInQualityReview,
		StatusActiveVerified, StatusForRevision, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusActiveVerified || s == StatusRejected
}

// StorageValue translates a canonical status into the storage vocabulary.
// This is the only place the two vocabularies meet, together with
// StatusFromStorage.
func StorageValue(s Status) (string, error) {
	switch s {
	case StatusPendingDigitalReview:
		return "pending_digital_review", nil
	case StatusWaitingForSample:
		return "waiting_for_sample", nil
	case StatusInQualityReview:
		return "pending_physical_review", nil
	case StatusActiveVerified:
		return "verified", nil
	case StatusForRevision:
		return "for_revision", nil
	case StatusRejected:
		return "rejected", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, string(s))
}

// StatusFromStorage translates a storage vocabulary value back into the
// canonical status.
func StatusFromStorage(value string) (Status, error) {
	switch value {
	case "pending_digital_review":
		return StatusPendingDigitalReview, nil
	case "waiting_for_sample":
		return StatusWaitingForSample, nil
	case "pending_physical_review":
		return StatusInQualityReview, nil
	case "verified":
		return StatusActiveVerified, nil
	case "for_revision":
		return StatusForRevision, nil
	case "rejected":
		return StatusRejected, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, value)
}

// ProductApproval is the derived approval flag written onto the product row.
type ProductApproval string

const (
	ApprovalPending  ProductApproval = "pending"
	ApprovalApproved ProductApproval = "approved"
	ApprovalRejected ProductApproval = "rejected"
)

// DeriveProductStatus maps an assessment status onto the product-level
// approval flag. Total over all canonical statuses.
func DeriveProductStatus(s Status) ProductApproval {
	switch s {
	case StatusActiveVerified:
		return ApprovalApproved
	case StatusRejected:
		return ApprovalRejected
	default:
		return ApprovalPending
	}
}

// Stage names the review stage a rejection or revision request refers to.
type Stage string

const (
	StageDigital  Stage = "digital"
	StagePhysical Stage = "physical"
)

// ParseStage validates and normalizes a review stage value.
func ParseStage(value string) (Stage, error) {
	switch Stage(value) {
	case StageDigital:
		return StageDigital, nil
	case StagePhysical:
		return StagePhysical, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStage, value)
}
