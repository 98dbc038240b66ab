package review

import (
	"context"
	"testing"

	"marketgate/internal/domain/assessment"
	"marketgate/internal/infrastructure/persistence/sqlite/model"
	"marketgate/internal/ports"
)

func TestReconcileCreatesAssessmentsForOrphansOnce(t *testing.T) {
	svc, repo, db := setupService(t)
	ctx := context.Background()

	if err := repo.CreateSeller(ctx, ports.SellerCreate{
		SellerID:  "seller-1",
		StoreName: "Borneo Curios",
		CreatedAt: "2026-08-01T00:00:00Z",
	}); err != nil {
		t.Fatalf("CreateSeller() error = %v", err)
	}

	// Products created behind the pipeline's back, with no assessment.
	for _, productID := range []string{"orphan-1", "orphan-2"} {
		if err := repo.CreateProduct(ctx, ports.ProductCreate{
			ProductID: productID,
			SellerID:  "seller-1",
			Name:      "Orphan " + productID,
			CreatedAt: "2026-08-01T00:00:00Z",
		}); err != nil {
			t.Fatalf("CreateProduct(%s) error = %v", productID, err)
		}
	}

	created, err := svc.Reconcile(ctx)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if created != 2 {
		t.Fatalf("Reconcile() created = %d, want 2", created)
	}

	// Running it again must not duplicate anything.
	created, err = svc.Reconcile(ctx)
	if err != nil {
		t.Fatalf("Reconcile(second) error = %v", err)
	}
	if created != 0 {
		t.Fatalf("Reconcile(second) created = %d, want 0", created)
	}

	var count int64
	if err := db.Model(&model.Assessment{}).Count(&count).Error; err != nil {
		t.Fatalf("count assessments: %v", err)
	}
	if count != 2 {
		t.Fatalf("assessments = %d, want 2", count)
	}

	record, err := repo.GetAssessmentByProduct(ctx, "orphan-1")
	if err != nil {
		t.Fatalf("GetAssessmentByProduct(orphan-1) error = %v", err)
	}
	if record.Status != assessment.StatusPendingDigitalReview {
		t.Fatalf("orphan status = %s, want PENDING_DIGITAL_REVIEW", record.Status)
	}
	if record.SellerName != "Borneo Curios" {
		t.Fatalf("orphan seller name = %q, want store name", record.SellerName)
	}
}

func TestReconcileDisplayNameFallsBackToProductName(t *testing.T) {
	svc, repo, _ := setupService(t)
	ctx := context.Background()

	// No seller row at all: store name unavailable.
	if err := repo.CreateProduct(ctx, ports.ProductCreate{
		ProductID: "orphan-nameless",
		SellerID:  "ghost-seller",
		Name:      "Clay pot",
		CreatedAt: "2026-08-01T00:00:00Z",
	}); err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}

	if _, err := svc.Reconcile(ctx); err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}

	record, err := repo.GetAssessmentByProduct(ctx, "orphan-nameless")
	if err != nil {
		t.Fatalf("GetAssessmentByProduct() error = %v", err)
	}
	if record.SellerName != "Clay pot" {
		t.Fatalf("seller name = %q, want product name fallback", record.SellerName)
	}
}

func TestLoadAssessmentsAdminViewReconcilesAndFillsCache(t *testing.T) {
	svc, repo, _ := setupService(t)
	ctx := context.Background()

	if err := repo.CreateSeller(ctx, ports.SellerCreate{
		SellerID:  "seller-1",
		StoreName: "Borneo Curios",
		CreatedAt: "2026-08-01T00:00:00Z",
	}); err != nil {
		t.Fatalf("CreateSeller() error = %v", err)
	}
	if err := repo.CreateProduct(ctx, ports.ProductCreate{
		ProductID: "orphan-1",
		SellerID:  "seller-1",
		Name:      "Woven mat",
		CreatedAt: "2026-08-01T00:00:00Z",
	}); err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}

	items, err := svc.LoadAssessments(ctx, "")
	if err != nil {
		t.Fatalf("LoadAssessments(admin) error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("LoadAssessments(admin) = %d items, want 1 (orphan reconciled)", len(items))
	}
	if items[0].ProductID != "orphan-1" || items[0].ProductName != "Woven mat" {
		t.Fatalf("LoadAssessments(admin) item = %+v", items[0])
	}

	if _, ok := svc.GetByID("orphan-1"); !ok {
		t.Fatalf("GetByID() miss after admin load")
	}
}

func TestLoadAssessmentsSellerViewIsScoped(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	sellerA, err := svc.RegisterSeller(ctx, RegisterSellerInput{StoreName: "Store A"})
	if err != nil {
		t.Fatalf("RegisterSeller(A) error = %v", err)
	}
	sellerB, err := svc.RegisterSeller(ctx, RegisterSellerInput{StoreName: "Store B"})
	if err != nil {
		t.Fatalf("RegisterSeller(B) error = %v", err)
	}

	if _, err := svc.SubmitProduct(ctx, SubmitProductInput{SellerID: sellerA, Name: "A's basket"}); err != nil {
		t.Fatalf("SubmitProduct(A) error = %v", err)
	}
	if _, err := svc.SubmitProduct(ctx, SubmitProductInput{SellerID: sellerB, Name: "B's pot"}); err != nil {
		t.Fatalf("SubmitProduct(B) error = %v", err)
	}

	items, err := svc.LoadAssessments(ctx, sellerA)
	if err != nil {
		t.Fatalf("LoadAssessments(sellerA) error = %v", err)
	}
	if len(items) != 1 || items[0].ProductName != "A's basket" {
		t.Fatalf("LoadAssessments(sellerA) = %+v, want only A's product", items)
	}

	all, err := svc.LoadAssessments(ctx, "")
	if err != nil {
		t.Fatalf("LoadAssessments(admin) error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("LoadAssessments(admin) = %d items, want 2", len(all))
	}
}
