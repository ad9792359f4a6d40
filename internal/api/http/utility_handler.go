package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/repository"
	"boardinghouse-backend/internal/service"
)

type UtilityHandler struct {
	utilities service.UtilityService
}

func NewUtilityHandler(utilities service.UtilityService) *UtilityHandler {
	return &UtilityHandler{utilities: utilities}
}

func (h *UtilityHandler) Register(r *mux.Router) {
	r.HandleFunc("/utilities", h.create).Methods(http.MethodPost)
	r.HandleFunc("/utilities", h.list).Methods(http.MethodGet)
	r.HandleFunc("/utilities/stats", h.stats).Methods(http.MethodGet)
	r.HandleFunc("/utilities/latest", h.latest).Methods(http.MethodGet)
	r.HandleFunc("/utilities/summary", h.consumptionSummary).Methods(http.MethodGet)
	r.HandleFunc("/utilities/summary/{roomId}", h.consumptionSummary).Methods(http.MethodGet)
	r.HandleFunc("/utilities/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/utilities/{id}", h.delete).Methods(http.MethodDelete)
}

type utilityReadingResponse struct {
	Reading     *domain.UtilityReading `json:"reading"`
	Consumption float64                `json:"consumption"`
	CostCents   int64                  `json:"cost_cents"`
}

func newUtilityReadingResponse(reading *domain.UtilityReading) utilityReadingResponse {
	return utilityReadingResponse{
		Reading:     reading,
		Consumption: reading.Consumption(),
		CostCents:   reading.CostCents(),
	}
}

func (h *UtilityHandler) create(w http.ResponseWriter, r *http.Request) {
	var cmd service.CreateUtilityReadingCommand
	if err := decodeJSON(r, &cmd); err != nil {
		writeError(w, err)
		return
	}

	reading, err := h.utilities.CreateReading(r.Context(), cmd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newUtilityReadingResponse(reading))
}

func (h *UtilityHandler) list(w http.ResponseWriter, r *http.Request) {
	var filter repository.UtilityFilter
	filter.RoomID = r.URL.Query().Get("room_id")
	if v := r.URL.Query().Get("type"); v != "" {
		utilityType := domain.UtilityType(v)
		if !utilityType.Valid() {
			writeError(w, domain.NewValidationError("unknown utility type "+v))
			return
		}
		filter.Type = &utilityType
	}
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, domain.NewValidationError("from must be an RFC 3339 timestamp"))
			return
		}
		filter.From = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, domain.NewValidationError("to must be an RFC 3339 timestamp"))
			return
		}
		filter.To = &t
	}

	readings, err := h.utilities.ListReadings(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, readings)
}

func (h *UtilityHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.utilities.GetUtilityStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *UtilityHandler) latest(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room_id")
	utilityType := domain.UtilityType(r.URL.Query().Get("type"))
	if roomID == "" || !utilityType.Valid() {
		writeError(w, domain.NewValidationError("room_id and a valid type are required"))
		return
	}

	reading, err := h.utilities.GetLatestReading(r.Context(), roomID, utilityType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newUtilityReadingResponse(reading))
}

func (h *UtilityHandler) consumptionSummary(w http.ResponseWriter, r *http.Request) {
	var utilityType *domain.UtilityType
	if v := r.URL.Query().Get("type"); v != "" {
		t := domain.UtilityType(v)
		if !t.Valid() {
			writeError(w, domain.NewValidationError("unknown utility type "+v))
			return
		}
		utilityType = &t
	}
	months := 0
	if v := r.URL.Query().Get("months"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, domain.NewValidationError("months must be a number"))
			return
		}
		months = m
	}

	summary, err := h.utilities.GetConsumptionSummary(r.Context(), mux.Vars(r)["roomId"], utilityType, months)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *UtilityHandler) get(w http.ResponseWriter, r *http.Request) {
	reading, err := h.utilities.GetReading(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newUtilityReadingResponse(reading))
}

func (h *UtilityHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.utilities.DeleteReading(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
