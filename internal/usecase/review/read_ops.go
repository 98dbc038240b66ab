package review

import (
	"context"
	"errors"
	"strings"

	"marketgate/internal/domain/assessment"
	"marketgate/internal/errs"
)

// GetByID returns the cached queue entry for a product. Pure cache read; a
// miss only means the queue has not been loaded, not that nothing persists.
func (s *Service) GetByID(productID string) (AssessmentItem, bool) {
	entry, ok := s.cacheGet(strings.TrimSpace(productID))
	if !ok {
		return AssessmentItem{}, false
	}
	return itemFromEntry(entry), true
}

// GetByStatus returns all cached queue entries in one status. Pure cache read.
func (s *Service) GetByStatus(status assessment.Status) []AssessmentItem {
	if s.queue == nil {
		return nil
	}

	entries := s.queue.ByStatus(status)
	items := make([]AssessmentItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, itemFromEntry(entry))
	}
	return items
}

// GetDetail reads one assessment from the store together with the linked
// product, the seller display name, and the full ledger history.
func (s *Service) GetDetail(ctx context.Context, productID string) (AssessmentDetail, error) {
	if ctx == nil {
		return AssessmentDetail{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return AssessmentDetail{}, errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return AssessmentDetail{}, errors.New("review repository is required")
	}

	productID = strings.TrimSpace(productID)
	if productID == "" {
		return AssessmentDetail{}, errors.New("product id is required")
	}

	record, err := s.repo.GetAssessmentByProduct(ctx, productID)
	if err != nil {
		return AssessmentDetail{}, err
	}

	product, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return AssessmentDetail{}, err
	}

	ledger, err := s.repo.ListLedger(ctx, record.AssessmentID)
	if err != nil {
		return AssessmentDetail{}, err
	}

	sellerName := record.SellerName
	if sellerName == "" {
		sellerName = displayName(product.StoreName, product.Name)
	}

	entry := entryFromRecord(record, product.Name, product.PriceCents, sellerName)
	item := itemFromEntry(entry)

	items := make([]LedgerItem, 0, len(ledger))
	for _, l := range ledger {
		items = append(items, LedgerItem{
			Kind:        l.Kind,
			Description: l.Description,
			CreatedAt:   l.CreatedAt,
		})
	}

	return AssessmentDetail{
		AssessmentItem: item,
		Product: ProductInfo{
			ProductID:      product.ProductID,
			SellerID:       product.SellerID,
			Name:           product.Name,
			PriceCents:     product.PriceCents,
			Images:         product.Images,
			Variants:       product.Variants,
			ApprovalStatus: product.ApprovalStatus,
			StoreName:      product.StoreName,
		},
		Ledger: items,
	}, nil
}
