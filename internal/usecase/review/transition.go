package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"marketgate/internal/domain/assessment"
	"marketgate/internal/errs"
	"marketgate/internal/ports"
)

type transitionRequest struct {
	productID string
	decide    func(assessment.Status) (assessment.Decision, error)
	// change may add extra column writes (logistics, rejection fields) on
	// top of the status and timestamp the decision dictates.
	change func(*ports.AssessmentChange)
}

// applyTransition runs one state-machine transition end to end: cache
// fast-fail guard, authoritative re-check and write inside the unit of work
// (assessment update + ledger append + product-status sync), then the cache
// patch once the transaction committed.
func (s *Service) applyTransition(ctx context.Context, req transitionRequest) (AssessmentItem, error) {
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

	productID := strings.TrimSpace(req.productID)
	if productID == "" {
		return AssessmentItem{}, errors.New("product id is required")
	}

	// Mirror the guard against the cached status so a stale cache cannot
	// silently hand a doomed request to the store.
	if entry, ok := s.cacheGet(productID); ok {
		if _, err := req.decide(entry.Status); err != nil {
			return AssessmentItem{}, err
		}
	}

	now := nowUTCString()

	var record ports.AssessmentRecord
	var productName, sellerName string
	var priceCents int64

	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		loaded, err := s.repo.GetAssessmentByProduct(txCtx, productID)
		if err != nil {
			return err
		}

		decision, err := req.decide(loaded.Status)
		if err != nil {
			return err
		}

		change := ports.AssessmentChange{
			Status:     decision.Next,
			StampField: decision.Stamp,
			StampAt:    now,
		}
		if req.change != nil {
			req.change(&change)
		}

		if err := s.repo.ApplyTransition(txCtx, loaded.AssessmentID, change); err != nil {
			return err
		}

		if err := appendLedger(txCtx, s.repo, loaded, decision, now); err != nil {
			return err
		}

		derived := assessment.DeriveProductStatus(decision.Next)
		if err := s.repo.SetProductApproval(txCtx, productID, derived, now); err != nil {
			return err
		}

		record = applyChange(loaded, change)

		product, err := s.repo.GetProduct(txCtx, productID)
		if err != nil {
			return err
		}
		productName = product.Name
		priceCents = product.PriceCents
		sellerName = displayName(product.StoreName, product.Name)
		if loaded.SellerName != "" {
			sellerName = loaded.SellerName
		}

		return nil
	}); err != nil {
		return AssessmentItem{}, err
	}

	entry := entryFromRecord(record, productName, priceCents, sellerName)
	s.cachePut(entry)
	return itemFromEntry(entry), nil
}

// appendLedger is the audit-trail recorder: every transition that implies a
// decision appends exactly one record to its ledger.
func appendLedger(ctx context.Context, repo ports.ReviewRepository, record ports.AssessmentRecord, decision assessment.Decision, now string) error {
	input := ports.LedgerAppend{
		AssessmentID: record.AssessmentID,
		ProductID:    record.ProductID,
		Description:  decision.Description,
		CreatedAt:    now,
	}

	switch decision.Ledger {
	case assessment.LedgerNone:
		return nil
	case assessment.LedgerApproval:
		return repo.AppendApprovalRecord(ctx, input)
	case assessment.LedgerRejection:
		return repo.AppendRejectionRecord(ctx, input)
	case assessment.LedgerRevision:
		return repo.AppendRevisionRecord(ctx, input)
	case assessment.LedgerLogistics:
		return repo.AppendLogisticsRecord(ctx, input)
	}
	return fmt.Errorf("unknown ledger kind %q", decision.Ledger)
}

// applyChange mirrors the repository column writes onto the in-memory record
// so the cache can be patched without a re-read.
func applyChange(record ports.AssessmentRecord, change ports.AssessmentChange) ports.AssessmentRecord {
	record.Status = change.Status

	if change.StampField != assessment.StampNone {
		stamp := change.StampAt
		switch change.StampField {
		case assessment.StampSubmittedAt:
			record.SubmittedAt = stamp
		case assessment.StampApprovedAt:
			record.ApprovedAt = &stamp
		case assessment.StampVerifiedAt:
			record.VerifiedAt = &stamp
		case assessment.StampRejectedAt:
			record.RejectedAt = &stamp
		case assessment.StampRevisionRequestedAt:
			record.RevisionRequestedAt = &stamp
		}
	}

	if change.Logistics != nil {
		record.Logistics = change.Logistics
	}
	if change.RejectionReason != nil {
		record.RejectionReason = change.RejectionReason
	}
	if change.RejectionStage != nil {
		record.RejectionStage = change.RejectionStage
	}
	if change.ClearRejection {
		record.RejectionReason = nil
		record.RejectionStage = nil
	}

	return record
}

func (s *Service) cacheGet(productID string) (ports.QueueEntry, bool) {
	if s.queue == nil {
		return ports.QueueEntry{}, false
	}
	return s.queue.Get(productID)
}

func (s *Service) cachePut(entry ports.QueueEntry) {
	if s.queue == nil {
		return
	}
	s.queue.Put(entry)
}
