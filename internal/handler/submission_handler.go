package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/service"
)

// maxBodyBytes bounds contact form and admin request bodies.
const maxBodyBytes = 64 << 10

const (
	msgSubmitted    = "Thank you! Your message has been received."
	msgSubmitFailed = "Failed to submit form. Please try again later."
	msgListFailed   = "Failed to fetch submissions"
	msgUpdateFailed = "Failed to update submission"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type listResponse struct {
	Success     bool                `json:"success"`
	Submissions []*model.Submission `json:"submissions"`
	Count       int                 `json:"count"`
}

// SubmissionHandler serves the contact form and its admin endpoints.
// Admin routes must be wrapped with auth.RequireBearer by the caller.
type SubmissionHandler struct {
	intake   service.SubmissionService
	admin    service.SubmissionAdminService
	ipHeader string
}

// NewSubmissionHandler creates a SubmissionHandler. ipHeader names the
// request header carrying the client IP stored with each submission.
func NewSubmissionHandler(intake service.SubmissionService, admin service.SubmissionAdminService, ipHeader string) *SubmissionHandler {
	return &SubmissionHandler{intake: intake, admin: admin, ipHeader: ipHeader}
}

// Submit handles POST /api/submit.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in model.SubmissionInput
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: service.ReasonInvalidBody})
		return
	}

	meta := model.RequestMeta{
		UserAgent: r.Header.Get("User-Agent"),
	}
	if h.ipHeader != "" {
		meta.IPAddress = r.Header.Get(h.ipHeader)
	}

	if _, err := h.intake.Submit(r.Context(), in, meta); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Reason})
			return
		}
		slog.ErrorContext(r.Context(), "form submission failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgSubmitFailed})
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{Success: true, Message: msgSubmitted})
}

// SubmitPreflight handles OPTIONS /api/submit. The contact form may be posted
// from any origin.
func (h *SubmissionHandler) SubmitPreflight(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Del("Access-Control-Allow-Credentials")
	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/submissions.
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.admin.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "error fetching submissions", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgListFailed})
		return
	}
	// Return [] not null for empty lists
	if subs == nil {
		subs = []*model.Submission{}
	}
	writeJSON(w, http.StatusOK, listResponse{Success: true, Submissions: subs, Count: len(subs)})
}

// Update handles PATCH /api/submissions with body {"id": n, "read": bool}.
func (h *SubmissionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.ReadUpdate
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": service.ReasonInvalidBody})
		return
	}

	if err := h.admin.SetRead(r.Context(), req); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Reason})
			return
		}
		slog.ErrorContext(r.Context(), "error updating submission", "id", req.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": msgUpdateFailed})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
