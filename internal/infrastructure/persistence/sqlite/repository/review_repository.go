package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketgate/internal/domain/assessment"
	"marketgate/internal/errs"
	"marketgate/internal/infrastructure/persistence/sqlite/model"
	"marketgate/internal/ports"
)

type ReviewRepository struct {
	db *gorm.DB
}

var _ ports.ReviewRepository = (*ReviewRepository)(nil)

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return r.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

type assessmentListScan struct {
	model.Assessment
	ProductName string
	PriceCents  int64
	StoreName   *string
}

func (r *ReviewRepository) ListAssessments(ctx context.Context, filter ports.AssessmentFilter) ([]ports.AssessmentListRow, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Table("assessments").
		Select("assessments.*, products.name AS product_name, products.price_cents, sellers.store_name").
		Joins("JOIN products ON products.product_id = assessments.product_id").
		Joins("LEFT JOIN sellers ON sellers.seller_id = products.seller_id").
		Order("assessments.submitted_at desc")

	if sellerID := strings.TrimSpace(filter.SellerID); sellerID != "" {
		query = query.Where("products.seller_id = ?", sellerID)
	}

	var rows []assessmentListScan
	if err := query.Scan(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query assessments")
	}

	items := make([]ports.AssessmentListRow, 0, len(rows))
	for _, row := range rows {
		record, err := mapAssessment(row.Assessment)
		if err != nil {
			return nil, err
		}
		items = append(items, ports.AssessmentListRow{
			AssessmentRecord: record,
			ProductName:      row.ProductName,
			PriceCents:       row.PriceCents,
			StoreName:        derefString(row.StoreName),
		})
	}
	return items, nil
}

func (r *ReviewRepository) GetAssessmentByProduct(ctx context.Context, productID string) (ports.AssessmentRecord, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.AssessmentRecord{}, err
	}

	var row model.Assessment
	if err := db.Where("product_id = ?", productID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.AssessmentRecord{}, ports.ErrAssessmentNotFound
		}
		return ports.AssessmentRecord{}, errs.Wrap(err, "query assessment by product")
	}

	return mapAssessment(row)
}

func (r *ReviewRepository) GetProduct(ctx context.Context, productID string) (ports.ProductRef, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.ProductRef{}, err
	}

	var row model.Product
	if err := db.Where("product_id = ?", productID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ProductRef{}, ports.ErrProductNotFound
		}
		return ports.ProductRef{}, errs.Wrap(err, "query product")
	}

	storeName := ""
	var seller model.Seller
	if err := db.Where("seller_id = ?", row.SellerID).Take(&seller).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ProductRef{}, errs.Wrap(err, "query seller")
		}
	} else {
		storeName = seller.StoreName
	}

	images, err := decodeStringList(row.ImagesJSON)
	if err != nil {
		return ports.ProductRef{}, errs.Wrap(err, "decode product images")
	}
	variants, err := decodeStringList(row.VariantsJSON)
	if err != nil {
		return ports.ProductRef{}, errs.Wrap(err, "decode product variants")
	}

	return ports.ProductRef{
		ProductID:      row.ProductID,
		SellerID:       row.SellerID,
		Name:           row.Name,
		PriceCents:     row.PriceCents,
		Images:         images,
		Variants:       variants,
		ApprovalStatus: assessment.ProductApproval(row.ApprovalStatus),
		StoreName:      storeName,
	}, nil
}

func (r *ReviewRepository) ListLedger(ctx context.Context, assessmentID string) ([]ports.LedgerEntry, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]ports.LedgerEntry, 0, 8)

	var approvals []model.ApprovalRecord
	if err := db.Where("assessment_id = ?", assessmentID).Order("id asc").Find(&approvals).Error; err != nil {
		return nil, errs.Wrap(err, "query approval records")
	}
	for _, row := range approvals {
		entries = append(entries, ports.LedgerEntry{Kind: assessment.LedgerApproval, Description: row.Description, CreatedAt: row.CreatedAt})
	}

	var rejections []model.RejectionRecord
	if err := db.Where("assessment_id = ?", assessmentID).Order("id asc").Find(&rejections).Error; err != nil {
		return nil, errs.Wrap(err, "query rejection records")
	}
	for _, row := range rejections {
		entries = append(entries, ports.LedgerEntry{Kind: assessment.LedgerRejection, Description: row.Description, CreatedAt: row.CreatedAt})
	}

	var revisions []model.RevisionRecord
	if err := db.Where("assessment_id = ?", assessmentID).Order("id asc").Find(&revisions).Error; err != nil {
		return nil, errs.Wrap(err, "query revision records")
	}
	for _, row := range revisions {
		entries = append(entries, ports.LedgerEntry{Kind: assessment.LedgerRevision, Description: row.Description, CreatedAt: row.CreatedAt})
	}

	var logistics []model.LogisticsRecord
	if err := db.Where("assessment_id = ?", assessmentID).Order("id asc").Find(&logistics).Error; err != nil {
		return nil, errs.Wrap(err, "query logistics records")
	}
	for _, row := range logistics {
		entries = append(entries, ports.LedgerEntry{Kind: assessment.LedgerLogistics, Description: row.Description, CreatedAt: row.CreatedAt})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt < entries[j].CreatedAt
	})
	return entries, nil
}

func (r *ReviewRepository) ListOrphanProducts(ctx context.Context) ([]ports.OrphanProduct, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	sub := db.Session(&gorm.Session{NewDB: true}).Model(&model.Assessment{}).Select("product_id")

	type orphanScan struct {
		ProductID string
		Name      string
		SellerID  string
		StoreName *string
	}

	var rows []orphanScan
	if err := db.Table("products").
		Select("products.product_id, products.name, products.seller_id, sellers.store_name").
		Joins("LEFT JOIN sellers ON sellers.seller_id = products.seller_id").
		Where("products.product_id NOT IN (?)", sub).
		Order("products.product_id asc").
		Scan(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query orphan products")
	}

	items := make([]ports.OrphanProduct, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OrphanProduct{
			ProductID: row.ProductID,
			Name:      row.Name,
			SellerID:  row.SellerID,
			StoreName: derefString(row.StoreName),
		})
	}
	return items, nil
}

func (r *ReviewRepository) CreateAssessment(ctx context.Context, record ports.AssessmentRecord) (bool, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return false, err
	}

	status, err := assessment.StorageValue(record.Status)
	if err != nil {
		return false, err
	}

	row := model.Assessment{
		AssessmentID:        record.AssessmentID,
		ProductID:           record.ProductID,
		Status:              status,
		SellerName:          record.SellerName,
		Logistics:           record.Logistics,
		SubmittedAt:         record.SubmittedAt,
		ApprovedAt:          record.ApprovedAt,
		VerifiedAt:          record.VerifiedAt,
		RejectedAt:          record.RejectedAt,
		RevisionRequestedAt: record.RevisionRequestedAt,
		RejectionReason:     record.RejectionReason,
		RejectionStage:      record.RejectionStage,
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoNothing: true,
	}).Create(&row)
	if result.Error != nil {
		return false, errs.Wrap(result.Error, "insert assessment")
	}
	return result.RowsAffected > 0, nil
}

func (r *ReviewRepository) ApplyTransition(ctx context.Context, assessmentID string, change ports.AssessmentChange) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	status, err := assessment.StorageValue(change.Status)
	if err != nil {
		return err
	}

	updates := map[string]any{"status": status}
	if change.StampField != assessment.StampNone {
		updates[string(change.StampField)] = change.StampAt
	}
	if change.Logistics != nil {
		updates["logistics"] = *change.Logistics
	}
	if change.RejectionReason != nil {
		updates["rejection_reason"] = *change.RejectionReason
	}
	if change.RejectionStage != nil {
		updates["rejection_stage"] = *change.RejectionStage
	}
	if change.ClearRejection {
		updates["rejection_reason"] = nil
		updates["rejection_stage"] = nil
	}

	result := db.Model(&model.Assessment{}).
		Where("assessment_id = ?", assessmentID).
		Updates(updates)
	if result.Error != nil {
		return errs.Wrap(result.Error, "update assessment")
	}
	if result.RowsAffected == 0 {
		return ports.ErrAssessmentNotFound
	}
	return nil
}

func (r *ReviewRepository) SetProductApproval(ctx context.Context, productID string, approval assessment.ProductApproval, updatedAt string) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	result := db.Model(&model.Product{}).
		Where("product_id = ?", productID).
		Updates(map[string]any{
			"approval_status": string(approval),
			"updated_at":      updatedAt,
		})
	if result.Error != nil {
		return errs.Wrap(result.Error, "update product approval status")
	}
	if result.RowsAffected == 0 {
		return ports.ErrProductNotFound
	}
	return nil
}

func (r *ReviewRepository) AppendApprovalRecord(ctx context.Context, input ports.LedgerAppend) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	row := model.ApprovalRecord{
		AssessmentID: input.AssessmentID,
		Description:  input.Description,
		CreatedAt:    input.CreatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert approval record")
	}
	return nil
}

func (r *ReviewRepository) AppendRejectionRecord(ctx context.Context, input ports.LedgerAppend) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	row := model.RejectionRecord{
		AssessmentID: input.AssessmentID,
		ProductID:    input.ProductID,
		Description:  input.Description,
		CreatedAt:    input.CreatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert rejection record")
	}
	return nil
}

func (r *ReviewRepository) AppendRevisionRecord(ctx context.Context, input ports.LedgerAppend) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	row := model.RevisionRecord{
		AssessmentID: input.AssessmentID,
		Description:  input.Description,
		CreatedAt:    input.CreatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert revision record")
	}
	return nil
}

func (r *ReviewRepository) AppendLogisticsRecord(ctx context.Context, input ports.LedgerAppend) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	row := model.LogisticsRecord{
		AssessmentID: input.AssessmentID,
		Description:  input.Description,
		CreatedAt:    input.CreatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert logistics record")
	}
	return nil
}

func (r *ReviewRepository) CreateSeller(ctx context.Context, input ports.SellerCreate) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	row := model.Seller{
		SellerID:  input.SellerID,
		StoreName: input.StoreName,
		CreatedAt: input.CreatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert seller")
	}
	return nil
}

func (r *ReviewRepository) CreateProduct(ctx context.Context, input ports.ProductCreate) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	images, err := encodeStringList(input.Images)
	if err != nil {
		return errs.Wrap(err, "encode product images")
	}
	variants, err := encodeStringList(input.Variants)
	if err != nil {
		return errs.Wrap(err, "encode product variants")
	}

	row := model.Product{
		ProductID:      input.ProductID,
		SellerID:       input.SellerID,
		Name:           input.Name,
		PriceCents:     input.PriceCents,
		ImagesJSON:     images,
		VariantsJSON:   variants,
		ApprovalStatus: string(assessment.ApprovalPending),
		CreatedAt:      input.CreatedAt,
		UpdatedAt:      input.CreatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert product")
	}
	return nil
}

func mapAssessment(row model.Assessment) (ports.AssessmentRecord, error) {
	status, err := assessment.StatusFromStorage(row.Status)
	if err != nil {
		return ports.AssessmentRecord{}, err
	}

	return ports.AssessmentRecord{
		AssessmentID:        row.AssessmentID,
		ProductID:           row.ProductID,
		Status:              status,
		SellerName:          row.SellerName,
		Logistics:           row.Logistics,
		SubmittedAt:         row.SubmittedAt,
		ApprovedAt:          row.ApprovedAt,
		VerifiedAt:          row.VerifiedAt,
		RejectedAt:          row.RejectedAt,
		RevisionRequestedAt: row.RevisionRequestedAt,
		RejectionReason:     row.RejectionReason,
		RejectionStage:      row.RejectionStage,
	}, nil
}

func decodeStringList(raw string) ([]string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	var items []string
	if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func encodeStringList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}

	encoded, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func derefString(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}
