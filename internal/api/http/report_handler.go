package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/service"
)

type ReportHandler struct {
	reports service.ReportService
}

func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) Register(r *mux.Router) {
	r.HandleFunc("/reports/occupancy", h.occupancy).Methods(http.MethodGet)
	r.HandleFunc("/reports/utility-split", h.utilitySplit).Methods(http.MethodGet)
}

func (h *ReportHandler) occupancy(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reports.GetOccupancySummary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *ReportHandler) utilitySplit(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("period_start"))
	if err != nil {
		writeError(w, domain.NewValidationError("period_start must be an RFC 3339 timestamp"))
		return
	}
	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("period_end"))
	if err != nil {
		writeError(w, domain.NewValidationError("period_end must be an RFC 3339 timestamp"))
		return
	}

	split, err := h.reports.GetUtilitySplit(r.Context(), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, split)
}
