package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/service"
)

type NotificationHandler struct {
	notifications service.NotificationService
}

func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// Register mounts the self-service inbox. Boarders see their own
// notifications; staff share the staff inbox.
func (h *NotificationHandler) Register(r *mux.Router) {
	r.HandleFunc("/me/notifications", h.list).Methods(http.MethodGet)
	r.HandleFunc("/me/notifications/{id}/read", h.markAsRead).Methods(http.MethodPost)
}

type notificationListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	Total         int                   `json:"total"`
}

func (h *NotificationHandler) list(w http.ResponseWriter, r *http.Request) {
	recipientID := h.recipientID(r)
	if recipientID == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	notifications, total, err := h.notifications.List(r.Context(), recipientID, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notificationListResponse{Notifications: notifications, Total: total})
}

func (h *NotificationHandler) markAsRead(w http.ResponseWriter, r *http.Request) {
	recipientID := h.recipientID(r)
	if recipientID == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
		return
	}

	if err := h.notifications.MarkAsRead(r.Context(), mux.Vars(r)["id"], recipientID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// recipientID resolves the inbox for the session: boarders read their own,
// staff read the shared staff inbox.
func (h *NotificationHandler) recipientID(r *http.Request) string {
	claims := claimsFrom(r)
	if claims == nil {
		return ""
	}
	role := domain.UserRole(claims.Role)
	if role.IsAdmin() || role.IsStaff() {
		return service.StaffInboxID
	}
	return claims.SubjectID
}
