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

type BoarderHandler struct {
	boarders service.BoarderService
}

func NewBoarderHandler(boarders service.BoarderService) *BoarderHandler {
	return &BoarderHandler{boarders: boarders}
}

func (h *BoarderHandler) Register(r *mux.Router) {
	r.HandleFunc("/boarders", h.create).Methods(http.MethodPost)
	r.HandleFunc("/boarders", h.list).Methods(http.MethodGet)
	r.HandleFunc("/boarders/stats", h.stats).Methods(http.MethodGet)
	r.HandleFunc("/boarders/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/boarders/{id}", h.update).Methods(http.MethodPut)
	r.HandleFunc("/boarders/{id}", h.delete).Methods(http.MethodDelete)
	r.HandleFunc("/boarders/{id}/room", h.assignRoom).Methods(http.MethodPut)
	r.HandleFunc("/boarders/{id}/room", h.removeRoom).Methods(http.MethodDelete)
	r.HandleFunc("/boarders/{id}/deactivate", h.deactivate).Methods(http.MethodPost)
	r.HandleFunc("/boarders/{id}/reactivate", h.reactivate).Methods(http.MethodPost)
	r.HandleFunc("/boarders/{id}/access-code", h.regenerateAccessCode).Methods(http.MethodPost)
}

func (h *BoarderHandler) create(w http.ResponseWriter, r *http.Request) {
	var cmd service.CreateBoarderCommand
	if err := decodeJSON(r, &cmd); err != nil {
		writeError(w, err)
		return
	}

	boarder, err := h.boarders.CreateBoarder(r.Context(), cmd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, boarder)
}

func (h *BoarderHandler) list(w http.ResponseWriter, r *http.Request) {
	var filter repository.BoarderFilter
	if v := r.URL.Query().Get("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, domain.NewValidationError("active must be true or false"))
			return
		}
		filter.Active = &active
	}
	filter.RoomID = r.URL.Query().Get("room_id")
	filter.Search = r.URL.Query().Get("search")

	boarders, err := h.boarders.ListBoarders(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, boarders)
}

func (h *BoarderHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.boarders.GetBoarderStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *BoarderHandler) get(w http.ResponseWriter, r *http.Request) {
	boarder, err := h.boarders.GetBoarder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, boarder)
}

func (h *BoarderHandler) update(w http.ResponseWriter, r *http.Request) {
	var cmd service.UpdateBoarderCommand
	if err := decodeJSON(r, &cmd); err != nil {
		writeError(w, err)
		return
	}

	boarder, err := h.boarders.UpdateBoarder(r.Context(), mux.Vars(r)["id"], cmd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, boarder)
}

func (h *BoarderHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.boarders.DeleteBoarder(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *BoarderHandler) assignRoom(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RoomID string `json:"room_id"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.RoomID == "" {
		writeError(w, domain.NewValidationError("room id is required"))
		return
	}

	boarder, err := h.boarders.AssignRoom(r.Context(), mux.Vars(r)["id"], body.RoomID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, boarder)
}

func (h *BoarderHandler) removeRoom(w http.ResponseWriter, r *http.Request) {
	boarder, err := h.boarders.RemoveRoom(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, boarder)
}

func (h *BoarderHandler) deactivate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MoveOutDate *time.Time `json:"move_out_date"`
	}
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &body); err != nil {
			writeError(w, err)
			return
		}
	}

	boarder, err := h.boarders.DeactivateBoarder(r.Context(), mux.Vars(r)["id"], body.MoveOutDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, boarder)
}

func (h *BoarderHandler) reactivate(w http.ResponseWriter, r *http.Request) {
	boarder, err := h.boarders.ReactivateBoarder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, boarder)
}

func (h *BoarderHandler) regenerateAccessCode(w http.ResponseWriter, r *http.Request) {
	code, err := h.boarders.RegenerateAccessCode(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access_code": code})
}
