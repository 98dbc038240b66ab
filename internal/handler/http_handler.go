package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"marketgate/internal/bootstrap/logging"
	"marketgate/internal/domain/assessment"
	"marketgate/internal/errs"
	"marketgate/internal/ports"
	"marketgate/internal/usecase/review"
)

// HTTPHandler exposes the assessment pipeline to the seller and admin UIs.
type HTTPHandler struct {
	service *review.Service
}

func NewHTTPHandler(service *review.Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

func NewRouter(h *HTTPHandler) http.Handler {
	r := chi.NewRouter()

	r.Route("/v1/assessments", func(r chi.Router) {
		r.Get("/", h.ListAssessments)
		r.Route("/{productID}", func(r chi.Router) {
			r.Get("/", h.GetAssessment)
			r.Post("/approve-for-sample", h.ApproveForSample)
			r.Post("/submit-sample", h.SubmitSample)
			r.Post("/pass-quality-check", h.PassQualityCheck)
			r.Post("/reject", h.Reject)
			r.Post("/request-revision", h.RequestRevision)
			r.Post("/resubmit", h.Resubmit)
		})
	})

	return r
}

type submitSampleRequest struct {
	LogisticsMethod string `json:"logistics_method"`
}

type reviewDecisionRequest struct {
	Reason string `json:"reason"`
	Stage  string `json:"stage"`
}

func (h *HTTPHandler) ListAssessments(w http.ResponseWriter, r *http.Request) {
	sellerID := r.URL.Query().Get("seller_id")

	items, err := h.service.LoadAssessments(r.Context(), sellerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *HTTPHandler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	detail, err := h.service.GetDetail(r.Context(), productID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *HTTPHandler) ApproveForSample(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.ApproveForSample(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *HTTPHandler) SubmitSample(w http.ResponseWriter, r *http.Request) {
	var req submitSampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.service.SubmitSample(r.Context(), chi.URLParam(r, "productID"), req.LogisticsMethod)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *HTTPHandler) PassQualityCheck(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.PassQualityCheck(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *HTTPHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req reviewDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.service.Reject(r.Context(), chi.URLParam(r, "productID"), req.Reason, req.Stage)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *HTTPHandler) RequestRevision(w http.ResponseWriter, r *http.Request) {
	var req reviewDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.service.RequestRevision(r.Context(), chi.URLParam(r, "productID"), req.Reason, req.Stage)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *HTTPHandler) Resubmit(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.ResubmitForReview(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps the pipeline's error taxonomy onto HTTP status codes:
// validation 400, guard violation 409, not found 404, everything else 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, assessment.ErrReasonRequired),
		errors.Is(err, assessment.ErrLogisticsMethodRequired),
		errors.Is(err, assessment.ErrInvalidStage):
		status = http.StatusBadRequest
	case errors.Is(err, assessment.ErrGuardViolation):
		status = http.StatusConflict
	case errors.Is(err, ports.ErrAssessmentNotFound),
		errors.Is(err, ports.ErrProductNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		logging.Error(r.Context(), "assessment request failed",
			slog.String("path", r.URL.Path),
			slog.Any("err", errs.Loggable(err)))
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}
