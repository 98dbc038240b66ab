package review

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"marketgate/internal/domain/assessment"
	cacheinfra "marketgate/internal/infrastructure/cache"
	"marketgate/internal/infrastructure/persistence/sqlite/model"
	sqliterepo "marketgate/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "marketgate/internal/infrastructure/persistence/sqlite/uow"
	"marketgate/internal/ports"
)

var dbSeq atomic.Int64

func setupService(t *testing.T) (*Service, *sqliterepo.ReviewRepository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:review%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Seller{},
		&model.Product{},
		&model.Assessment{},
		&model.ApprovalRecord{},
		&model.RejectionRecord{},
		&model.RevisionRecord{},
		&model.LogisticsRecord{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	repo := sqliterepo.NewReviewRepository(db)
	uow := sqliteuow.NewUnitOfWork(db)
	queue := cacheinfra.NewMemoryQueueCache()
	return NewService(repo, uow, queue), repo, db
}

func submitTestProduct(t *testing.T, svc *Service) AssessmentItem {
	t.Helper()
	ctx := context.Background()

	sellerID, err := svc.RegisterSeller(ctx, RegisterSellerInput{StoreName: "Borneo Curios"})
	if err != nil {
		t.Fatalf("RegisterSeller() error = %v", err)
	}

	item, err := svc.SubmitProduct(ctx, SubmitProductInput{
		SellerID:   sellerID,
		Name:       "Rattan basket",
		PriceCents: 4500,
		Images:     []string{"basket-front.jpg"},
		Variants:   []string{"small", "large"},
	})
	if err != nil {
		t.Fatalf("SubmitProduct() error = %v", err)
	}
	if item.Status != assessment.StatusPendingDigitalReview {
		t.Fatalf("SubmitProduct() status = %s, want PENDING_DIGITAL_REVIEW", item.Status)
	}
	return item
}

func productApproval(t *testing.T, repo *sqliterepo.ReviewRepository, productID string) assessment.ProductApproval {
	t.Helper()
	product, err := repo.GetProduct(context.Background(), productID)
	if err != nil {
		t.Fatalf("GetProduct() error = %v", err)
	}
	return product.ApprovalStatus
}

func TestHappyPathDigitalThenPhysicalReview(t *testing.T) {
	svc, repo, _ := setupService(t)
	ctx := context.Background()
	submitted := submitTestProduct(t, svc)

	item, err := svc.ApproveForSample(ctx, submitted.ProductID)
	if err != nil {
		t.Fatalf("ApproveForSample() error = %v", err)
	}
	if item.Status != assessment.StatusWaitingForSample {
		t.Fatalf("ApproveForSample() status = %s", item.Status)
	}
	if item.ApprovedAt == "" {
		t.Fatalf("ApproveForSample() approved_at not stamped")
	}
	if got := productApproval(t, repo, submitted.ProductID); got != assessment.ApprovalPending {
		t.Fatalf("product approval after digital pass = %s, want pending", got)
	}

	item, err = svc.SubmitSample(ctx, submitted.ProductID, "Drop-off via courier")
	if err != nil {
		t.Fatalf("SubmitSample() error = %v", err)
	}
	if item.Status != assessment.StatusInQualityReview {
		t.Fatalf("SubmitSample() status = %s", item.Status)
	}
	if item.Logistics != "Drop-off via courier" {
		t.Fatalf("SubmitSample() logistics = %q", item.Logistics)
	}

	item, err = svc.PassQualityCheck(ctx, submitted.ProductID)
	if err != nil {
		t.Fatalf("PassQualityCheck() error = %v", err)
	}
	if item.Status != assessment.StatusActiveVerified {
		t.Fatalf("PassQualityCheck() status = %s", item.Status)
	}
	if item.VerifiedAt == "" {
		t.Fatalf("PassQualityCheck() verified_at not stamped")
	}
	if got := productApproval(t, repo, submitted.ProductID); got != assessment.ApprovalApproved {
		t.Fatalf("product approval after verification = %s, want approved", got)
	}

	// Two approval records accumulate: digital pass, then physical pass.
	detail, err := svc.GetDetail(ctx, submitted.ProductID)
	if err != nil {
		t.Fatalf("GetDetail() error = %v", err)
	}

	approvals := 0
	logisticsSeen := false
	for _, entry := range detail.Ledger {
		switch entry.Kind {
		case assessment.LedgerApproval:
			approvals++
		case assessment.LedgerLogistics:
			logisticsSeen = true
			if entry.Description != "Drop-off via courier" {
				t.Fatalf("logistics record description = %q", entry.Description)
			}
		}
	}
	if approvals < 2 {
		t.Fatalf("approval records = %d, want >= 2", approvals)
	}
	if !logisticsSeen {
		t.Fatalf("logistics record missing from ledger")
	}
	if detail.Product.ApprovalStatus != assessment.ApprovalApproved {
		t.Fatalf("detail product approval = %s", detail.Product.ApprovalStatus)
	}
}

func TestRejectionScenario(t *testing.T) {
	svc, repo, _ := setupService(t)
	ctx := context.Background()
	submitted := submitTestProduct(t, svc)

	item, err := svc.Reject(ctx, submitted.ProductID, "blurry images", "digital")
	if err != nil {
		t.Fatalf("Reject() error = %v", err)
	}
	if item.Status != assessment.StatusRejected {
		t.Fatalf("Reject() status = %s", item.Status)
	}
	if item.RejectionReason != "blurry images" || item.RejectionStage != "digital" {
		t.Fatalf("Reject() reason/stage = %q/%q", item.RejectionReason, item.RejectionStage)
	}
	if item.RejectedAt == "" {
		t.Fatalf("Reject() rejected_at not stamped")
	}
	if got := productApproval(t, repo, submitted.ProductID); got != assessment.ApprovalRejected {
		t.Fatalf("product approval after reject = %s, want rejected", got)
	}

	detail, err := svc.GetDetail(ctx, submitted.ProductID)
	if err != nil {
		t.Fatalf("GetDetail() error = %v", err)
	}
	found := false
	for _, entry := range detail.Ledger {
		if entry.Kind == assessment.LedgerRejection && entry.Description == "blurry images" {
			found = true
		}
	}
	if !found {
		t.Fatalf("rejection record missing, ledger = %+v", detail.Ledger)
	}

	// Terminal: no further transitions.
	if _, err := svc.ApproveForSample(ctx, submitted.ProductID); !errors.Is(err, assessment.ErrGuardViolation) {
		t.Fatalf("ApproveForSample(rejected) error = %v, want ErrGuardViolation", err)
	}
}

func TestRevisionAndResubmission(t *testing.T) {
	svc, repo, _ := setupService(t)
	ctx := context.Background()
	submitted := submitTestProduct(t, svc)

	item, err := svc.RequestRevision(ctx, submitted.ProductID, "add specs", "digital")
	if err != nil {
		t.Fatalf("RequestRevision() error = %v", err)
	}
	if item.Status != assessment.StatusForRevision {
		t.Fatalf("RequestRevision() status = %s", item.Status)
	}
	if item.RevisionRequestedAt == "" {
		t.Fatalf("RequestRevision() revision_requested_at not stamped")
	}
	if got := productApproval(t, repo, submitted.ProductID); got != assessment.ApprovalPending {
		t.Fatalf("product approval after revision request = %s, want pending", got)
	}

	detail, err := svc.GetDetail(ctx, submitted.ProductID)
	if err != nil {
		t.Fatalf("GetDetail() error = %v", err)
	}
	found := false
	for _, entry := range detail.Ledger {
		if entry.Kind == assessment.LedgerRevision && entry.Description == "add specs" {
			found = true
		}
	}
	if !found {
		t.Fatalf("revision record missing, ledger = %+v", detail.Ledger)
	}

	item, err = svc.ResubmitForReview(ctx, submitted.ProductID)
	if err != nil {
		t.Fatalf("ResubmitForReview() error = %v", err)
	}
	if item.Status != assessment.StatusPendingDigitalReview {
		t.Fatalf("ResubmitForReview() status = %s", item.Status)
	}
	if item.RejectionReason != "" || item.RejectionStage != "" {
		t.Fatalf("ResubmitForReview() kept rejection fields %q/%q", item.RejectionReason, item.RejectionStage)
	}
}

func TestInvalidTransitionLeavesEverythingUnchanged(t *testing.T) {
	svc, repo, db := setupService(t)
	ctx := context.Background()
	submitted := submitTestProduct(t, svc)

	_, err := svc.SubmitSample(ctx, submitted.ProductID, "courier")
	if !errors.Is(err, assessment.ErrGuardViolation) {
		t.Fatalf("SubmitSample(pending) error = %v, want ErrGuardViolation", err)
	}

	record, err := repo.GetAssessmentByProduct(ctx, submitted.ProductID)
	if err != nil {
		t.Fatalf("GetAssessmentByProduct() error = %v", err)
	}
	if record.Status != assessment.StatusPendingDigitalReview {
		t.Fatalf("status after failed transition = %s", record.Status)
	}
	if record.Logistics != nil {
		t.Fatalf("logistics written despite guard failure")
	}

	var count int64
	if err := db.Model(&model.LogisticsRecord{}).Count(&count).Error; err != nil {
		t.Fatalf("count logistics records: %v", err)
	}
	if count != 0 {
		t.Fatalf("logistics records = %d, want 0", count)
	}
	if got := productApproval(t, repo, submitted.ProductID); got != assessment.ApprovalPending {
		t.Fatalf("product approval changed to %s by failed transition", got)
	}
}

func TestValidationFailsBeforeAnyWrite(t *testing.T) {
	svc, _, db := setupService(t)
	ctx := context.Background()
	submitted := submitTestProduct(t, svc)

	if _, err := svc.Reject(ctx, submitted.ProductID, "   ", "digital"); !errors.Is(err, assessment.ErrReasonRequired) {
		t.Fatalf("Reject(empty reason) error = %v, want ErrReasonRequired", err)
	}
	if _, err := svc.Reject(ctx, submitted.ProductID, "bad", "emotional"); !errors.Is(err, assessment.ErrInvalidStage) {
		t.Fatalf("Reject(bad stage) error = %v, want ErrInvalidStage", err)
	}

	var count int64
	if err := db.Model(&model.RejectionRecord{}).Count(&count).Error; err != nil {
		t.Fatalf("count rejection records: %v", err)
	}
	if count != 0 {
		t.Fatalf("rejection records = %d, want 0", count)
	}
}

func TestTransitionOnUnknownProduct(t *testing.T) {
	svc, _, _ := setupService(t)

	if _, err := svc.ApproveForSample(context.Background(), "no-such-product"); !errors.Is(err, ports.ErrAssessmentNotFound) {
		t.Fatalf("ApproveForSample(unknown) error = %v, want ErrAssessmentNotFound", err)
	}
}

func TestCacheReadsAfterTransitions(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()
	submitted := submitTestProduct(t, svc)

	item, ok := svc.GetByID(submitted.ProductID)
	if !ok {
		t.Fatalf("GetByID() miss after submit")
	}
	if item.Status != assessment.StatusPendingDigitalReview {
		t.Fatalf("GetByID() status = %s", item.Status)
	}
	if item.PriceCents != 4500 {
		t.Fatalf("GetByID() price = %d, want 4500", item.PriceCents)
	}

	approved, err := svc.ApproveForSample(ctx, submitted.ProductID)
	if err != nil {
		t.Fatalf("ApproveForSample() error = %v", err)
	}
	if approved.PriceCents != 4500 {
		t.Fatalf("ApproveForSample() price = %d, want 4500", approved.PriceCents)
	}

	waiting := svc.GetByStatus(assessment.StatusWaitingForSample)
	if len(waiting) != 1 || waiting[0].ProductID != submitted.ProductID {
		t.Fatalf("GetByStatus(WAITING_FOR_SAMPLE) = %+v", waiting)
	}
	if waiting[0].PriceCents != 4500 {
		t.Fatalf("GetByStatus() price = %d, want 4500", waiting[0].PriceCents)
	}
	if len(svc.GetByStatus(assessment.StatusPendingDigitalReview)) != 0 {
		t.Fatalf("GetByStatus(PENDING) should be empty after approval")
	}

	// An admin reload rebuilds the cache from the store; the price must
	// survive the round trip.
	if _, err := svc.LoadAssessments(ctx, ""); err != nil {
		t.Fatalf("LoadAssessments() error = %v", err)
	}
	reloaded, ok := svc.GetByID(submitted.ProductID)
	if !ok {
		t.Fatalf("GetByID() miss after admin reload")
	}
	if reloaded.PriceCents != 4500 {
		t.Fatalf("GetByID() price after reload = %d, want 4500", reloaded.PriceCents)
	}
}
