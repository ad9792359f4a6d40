package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/repository"
	"boardinghouse-backend/internal/service"
)

type RoomHandler struct {
	rooms service.RoomService
}

func NewRoomHandler(rooms service.RoomService) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

func (h *RoomHandler) Register(r *mux.Router) {
	r.HandleFunc("/rooms", h.create).Methods(http.MethodPost)
	r.HandleFunc("/rooms", h.list).Methods(http.MethodGet)
	r.HandleFunc("/rooms/stats", h.stats).Methods(http.MethodGet)
	r.HandleFunc("/rooms/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/rooms/{id}", h.update).Methods(http.MethodPut)
	r.HandleFunc("/rooms/{id}", h.delete).Methods(http.MethodDelete)
	r.HandleFunc("/rooms/{id}/available", h.markAvailable).Methods(http.MethodPost)
	r.HandleFunc("/rooms/{id}/occupied", h.markOccupied).Methods(http.MethodPost)
	r.HandleFunc("/rooms/{id}/maintenance", h.markMaintenance).Methods(http.MethodPost)
	r.HandleFunc("/rooms/{id}/refresh-occupancy", h.refreshOccupancy).Methods(http.MethodPost)
}

type roomDetailResponse struct {
	Room      *domain.Room `json:"room"`
	Occupancy int          `json:"occupancy"`
}

func (h *RoomHandler) create(w http.ResponseWriter, r *http.Request) {
	var cmd service.CreateRoomCommand
	if err := decodeJSON(r, &cmd); err != nil {
		writeError(w, err)
		return
	}

	room, err := h.rooms.CreateRoom(r.Context(), cmd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

func (h *RoomHandler) list(w http.ResponseWriter, r *http.Request) {
	var filter repository.RoomFilter
	if v := r.URL.Query().Get("status"); v != "" {
		status := domain.RoomStatus(v)
		if !status.Valid() {
			writeError(w, domain.NewValidationError("unknown room status "+v))
			return
		}
		filter.Status = &status
	}
	if v := r.URL.Query().Get("floor"); v != "" {
		floor, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, domain.NewValidationError("floor must be a number"))
			return
		}
		filter.Floor = &floor
	}
	filter.Search = r.URL.Query().Get("search")

	rooms, err := h.rooms.ListRooms(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (h *RoomHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.rooms.GetRoomStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *RoomHandler) get(w http.ResponseWriter, r *http.Request) {
	room, occupancy, err := h.rooms.GetRoom(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roomDetailResponse{Room: room, Occupancy: occupancy})
}

func (h *RoomHandler) update(w http.ResponseWriter, r *http.Request) {
	var cmd service.UpdateRoomCommand
	if err := decodeJSON(r, &cmd); err != nil {
		writeError(w, err)
		return
	}

	room, err := h.rooms.UpdateRoom(r.Context(), mux.Vars(r)["id"], cmd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (h *RoomHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.rooms.DeleteRoom(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *RoomHandler) markAvailable(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.rooms.MarkRoomAvailable)
}

func (h *RoomHandler) markOccupied(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.rooms.MarkRoomOccupied)
}

func (h *RoomHandler) markMaintenance(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.rooms.MarkRoomMaintenance)
}

func (h *RoomHandler) refreshOccupancy(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.rooms.RefreshOccupancy)
}

func (h *RoomHandler) transition(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, id string) (*domain.Room, error)) {
	room, err := apply(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}
