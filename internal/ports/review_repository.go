package ports

import (
	"context"
	"errors"

	"marketgate/internal/domain/assessment"
)

var (
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrProductNotFound    = errors.New("product not found")
)

// AssessmentRecord is the authoritative assessment row, with the status
// already translated into the canonical vocabulary.
type AssessmentRecord struct {
	AssessmentID        string
	ProductID           string
	Status              assessment.Status
	SellerName          string
	Logistics           *string
	SubmittedAt         string
	ApprovedAt          *string
	VerifiedAt          *string
	RejectedAt          *string
	RevisionRequestedAt *string
	RejectionReason     *string
	RejectionStage      *string
}

// AssessmentListRow joins the assessment with the product columns queue
// views need.
type AssessmentListRow struct {
	AssessmentRecord
	ProductName string
	PriceCents  int64
	StoreName   string
}

type AssessmentFilter struct {
	// SellerID scopes the list to one seller's products. Empty means the
	// global admin queue.
	SellerID string
}

// AssessmentChange is one state-machine transition flattened into column
// writes. StampAt is written into the column named by StampField.
type AssessmentChange struct {
	Status          assessment.Status
	StampField      assessment.TimestampField
	StampAt         string
	Logistics       *string
	RejectionReason *string
	RejectionStage  *string
	ClearRejection  bool
}

type ProductRef struct {
	ProductID      string
	SellerID       string
	Name           string
	PriceCents     int64
	Images         []string
	Variants       []string
	ApprovalStatus assessment.ProductApproval
	StoreName      string
}

// OrphanProduct is a product without an assessment, joined with its
// seller's store name for display-name resolution.
type OrphanProduct struct {
	ProductID string
	Name      string
	SellerID  string
	StoreName string
}

type LedgerEntry struct {
	Kind        assessment.LedgerKind
	Description string
	CreatedAt   string
}

type LedgerAppend struct {
	AssessmentID string
	ProductID    string
	Description  string
	CreatedAt    string
}

type SellerCreate struct {
	SellerID  string
	StoreName string
	CreatedAt string
}

type ProductCreate struct {
	ProductID  string
	SellerID   string
	Name       string
	PriceCents int64
	Images     []string
	Variants   []string
	CreatedAt  string
}

type ReviewReadRepository interface {
	ListAssessments(ctx context.Context, filter AssessmentFilter) ([]AssessmentListRow, error)
	GetAssessmentByProduct(ctx context.Context, productID string) (AssessmentRecord, error)
	GetProduct(ctx context.Context, productID string) (ProductRef, error)
	ListLedger(ctx context.Context, assessmentID string) ([]LedgerEntry, error)
	ListOrphanProducts(ctx context.Context) ([]OrphanProduct, error)
}

type ReviewRepository interface {
	ReviewReadRepository
	// CreateAssessment is an idempotent upsert keyed by product_id. It
	// reports whether a new row was actually inserted.
	CreateAssessment(ctx context.Context, record AssessmentRecord) (bool, error)
	ApplyTransition(ctx context.Context, assessmentID string, change AssessmentChange) error
	SetProductApproval(ctx context.Context, productID string, approval assessment.ProductApproval, updatedAt string) error
	AppendApprovalRecord(ctx context.Context, input LedgerAppend) error
	AppendRejectionRecord(ctx context.Context, input LedgerAppend) error
	AppendRevisionRecord(ctx context.Context, input LedgerAppend) error
	AppendLogisticsRecord(ctx context.Context, input LedgerAppend) error
	CreateSeller(ctx context.Context, input SellerCreate) error
	CreateProduct(ctx context.Context, input ProductCreate) error
}
