package ports

import "marketgate/internal/domain/assessment"

// QueueEntry is the read-optimized shape UI consumers page through. It is
// derived from the persisted assessment and refreshed after each committed
// transition; it never feeds back into transition decisions beyond the
// fast-fail guard mirror.
type QueueEntry struct {
	ProductID           string
	AssessmentID        string
	Status              assessment.Status
	ProductName         string
	PriceCents          int64
	SellerName          string
	Logistics           string
	SubmittedAt         string
	ApprovedAt          string
	VerifiedAt          string
	RejectedAt          string
	RevisionRequestedAt string
	RejectionReason     string
	RejectionStage      string
}

// QueueCache is the orchestrator's local cache, injected explicitly rather
// than living as ambient process state. Reads never touch the network.
type QueueCache interface {
	ReplaceAll(entries []QueueEntry)
	Put(entry QueueEntry)
	Get(productID string) (QueueEntry, bool)
	ByStatus(status assessment.Status) []QueueEntry
	All() []QueueEntry
}
