package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"marketgate/internal/infrastructure/cache"
	"marketgate/internal/infrastructure/persistence/sqlite/model"
	sqliterepo "marketgate/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "marketgate/internal/infrastructure/persistence/sqlite/uow"
	"marketgate/internal/usecase/review"
)

var dbSeq atomic.Int64

func setupHandler(t *testing.T) (http.Handler, *review.Service) {
	t.Helper()

	dsn := fmt.Sprintf("file:handler%d?mode=memory&cache=shared", dbSeq.Add(1))
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

	svc := review.NewService(
		sqliterepo.NewReviewRepository(db),
		sqliteuow.NewUnitOfWork(db),
		cache.NewMemoryQueueCache(),
	)
	return NewRouter(NewHTTPHandler(svc)), svc
}

func submitViaService(t *testing.T, svc *review.Service) string {
	t.Helper()
	ctx := context.Background()

	sellerID, err := svc.RegisterSeller(ctx, review.RegisterSellerInput{StoreName: "Borneo Curios"})
	if err != nil {
		t.Fatalf("RegisterSeller() error = %v", err)
	}
	item, err := svc.SubmitProduct(ctx, review.SubmitProductInput{SellerID: sellerID, Name: "Rattan basket"})
	if err != nil {
		t.Fatalf("SubmitProduct() error = %v", err)
	}
	return item.ProductID
}

func TestApproveThenSubmitSampleOverHTTP(t *testing.T) {
	router, svc := setupHandler(t)
	productID := submitViaService(t, svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/assessments/"+productID+"/approve-for-sample", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("approve-for-sample status = %d, body = %s", rec.Code, rec.Body.String())
	}

	body, _ := json.Marshal(map[string]string{"logistics_method": "Drop-off via courier"})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/assessments/"+productID+"/submit-sample", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("submit-sample status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var item review.AssessmentItem
	if err := json.Unmarshal(rec.Body.Bytes(), &item); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if item.Logistics != "Drop-off via courier" {
		t.Fatalf("logistics = %q", item.Logistics)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	router, svc := setupHandler(t)
	productID := submitViaService(t, svc)

	// Guard violation: sample submission while still in digital review.
	body, _ := json.Marshal(map[string]string{"logistics_method": "courier"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/assessments/"+productID+"/submit-sample", bytes.NewReader(body)))
	if rec.Code != http.StatusConflict {
		t.Fatalf("guard violation status = %d, want 409", rec.Code)
	}

	// Validation: empty rejection reason.
	body, _ = json.Marshal(map[string]string{"reason": "", "stage": "digital"})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/assessments/"+productID+"/reject", bytes.NewReader(body)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("validation status = %d, want 400", rec.Code)
	}

	// Not found: unknown product.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/assessments/no-such-product/pass-quality-check", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("not found status = %d, want 404", rec.Code)
	}
}

func TestListAndDetailOverHTTP(t *testing.T) {
	router, svc := setupHandler(t)
	productID := submitViaService(t, svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/assessments", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}

	var items []review.AssessmentItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != productID {
		t.Fatalf("list = %+v", items)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/assessments/"+productID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("detail status = %d", rec.Code)
	}

	var detail review.AssessmentDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if detail.Product.Name != "Rattan basket" {
		t.Fatalf("detail product = %+v", detail.Product)
	}
}
