package review

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"marketgate/internal/domain/assessment"
	"marketgate/internal/errs"
	"marketgate/internal/ports"
)

// SubmitProduct is the seller-add-product boundary: it creates the product
// row and its assessment at PENDING_DIGITAL_REVIEW in one transaction. The
// catalog side owns every other product field.
func (s *Service) SubmitProduct(ctx context.Context, input SubmitProductInput) (AssessmentItem, error) {
	if ctx == nil {
		return AssessmentItem{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return AssessmentItem{}, errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return AssessmentItem{}, errors.New("review repository is required")
	}
	if s.uow == nil {
		return AssessmentItem{}, errors.New("review unit of work is required")
	}

	sellerID := strings.TrimSpace(input.SellerID)
	if sellerID == "" {
		return AssessmentItem{}, errors.New("seller id is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return AssessmentItem{}, errors.New("product name is required")
	}

	now := nowUTCString()
	productID := uuid.NewString()
	assessmentID := uuid.NewString()

	var record ports.AssessmentRecord
	var sellerName string

	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.CreateProduct(txCtx, ports.ProductCreate{
			ProductID:  productID,
			SellerID:   sellerID,
			Name:       name,
			PriceCents: input.PriceCents,
			Images:     input.Images,
			Variants:   input.Variants,
			CreatedAt:  now,
		}); err != nil {
			return err
		}

		product, err := s.repo.GetProduct(txCtx, productID)
		if err != nil {
			return err
		}
		sellerName = displayName(product.StoreName, product.Name)

		record = ports.AssessmentRecord{
			AssessmentID: assessmentID,
			ProductID:    productID,
			Status:       assessment.StatusPendingDigitalReview,
			SellerName:   sellerName,
			SubmittedAt:  now,
		}

		if _, err := s.repo.CreateAssessment(txCtx, record); err != nil {
			return err
		}
		return nil
	}); err != nil {
		return AssessmentItem{}, err
	}

	entry := entryFromRecord(record, name, input.PriceCents, sellerName)
	s.cachePut(entry)
	return itemFromEntry(entry), nil
}

// RegisterSeller creates a seller account stub so demo and test flows can
// submit products against it.
func (s *Service) RegisterSeller(ctx context.Context, input RegisterSellerInput) (string, error) {
	if ctx == nil {
		return "", errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return "", errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return "", errors.New("review repository is required")
	}

	storeName := strings.TrimSpace(input.StoreName)
	if storeName == "" {
		return "", errors.New("store name is required")
	}

	sellerID := uuid.NewString()
	if err := s.repo.CreateSeller(ctx, ports.SellerCreate{
		SellerID:  sellerID,
		StoreName: storeName,
		CreatedAt: nowUTCString(),
	}); err != nil {
		return "", err
	}
	return sellerID, nil
}
