package review

import (
	"marketgate/internal/domain/assessment"
	"marketgate/internal/ports"
)

// Service orchestrates the assessment pipeline: it validates input, asks the
// domain state machine for a decision, persists the transition through the
// repository inside one unit of work, and keeps the injected queue cache in
// step with committed state.
type Service struct {
	repo  ports.ReviewRepository
	uow   ports.UnitOfWork
	queue ports.QueueCache
}

func NewService(repo ports.ReviewRepository, uow ports.UnitOfWork, queue ports.QueueCache) *Service {
	return &Service{
		repo:  repo,
		uow:   uow,
		queue: queue,
	}
}

// AssessmentItem is the queue-view shape handed to UI consumers.
type AssessmentItem struct {
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

type LedgerItem struct {
	Kind        assessment.LedgerKind
	Description string
	CreatedAt   string
}

type ProductInfo struct {
	ProductID      string
	SellerID       string
	Name           string
	PriceCents     int64
	Images         []string
	Variants       []string
	ApprovalStatus assessment.ProductApproval
	StoreName      string
}

// AssessmentDetail is the single-assessment read with the linked product,
// the seller's display name, and the accumulated ledger entries.
type AssessmentDetail struct {
	AssessmentItem
	Product ProductInfo
	Ledger  []LedgerItem
}

type SubmitProductInput struct {
	SellerID   string
	Name       string
	PriceCents int64
	Images     []string
	Variants   []string
}

type RegisterSellerInput struct {
	StoreName string
}

func itemFromEntry(entry ports.QueueEntry) AssessmentItem {
	return AssessmentItem{
		ProductID:           entry.ProductID,
		AssessmentID:        entry.AssessmentID,
		Status:              entry.Status,
		ProductName:         entry.ProductName,
		PriceCents:          entry.PriceCents,
		SellerName:          entry.SellerName,
		Logistics:           entry.Logistics,
		SubmittedAt:         entry.SubmittedAt,
		ApprovedAt:          entry.ApprovedAt,
		VerifiedAt:          entry.VerifiedAt,
		RejectedAt:          entry.RejectedAt,
		RevisionRequestedAt: entry.RevisionRequestedAt,
		RejectionReason:     entry.RejectionReason,
		RejectionStage:      entry.RejectionStage,
	}
}

func entryFromRecord(record ports.AssessmentRecord, productName string, priceCents int64, sellerName string) ports.QueueEntry {
	return ports.QueueEntry{
		ProductID:           record.ProductID,
		AssessmentID:        record.AssessmentID,
		Status:              record.Status,
		ProductName:         productName,
		PriceCents:          priceCents,
		SellerName:          sellerName,
		Logistics:           derefString(record.Logistics),
		SubmittedAt:         record.SubmittedAt,
		ApprovedAt:          derefString(record.ApprovedAt),
		VerifiedAt:          derefString(record.VerifiedAt),
		RejectedAt:          derefString(record.RejectedAt),
		RevisionRequestedAt: derefString(record.RevisionRequestedAt),
		RejectionReason:     derefString(record.RejectionReason),
		RejectionStage:      derefString(record.RejectionStage),
	}
}
