package domain

import "time"

// Notification is an in-app message derived from a dispatched domain event.
type Notification struct {
	ID          string            `json:"id"`
	RecipientID string            `json:"recipient_id"`
	Title       string            `json:"title"`
	Message     string            `json:"message"`
	IsRead      bool              `json:"is_read"`
	Attributes  map[string]string `json:"attributes"`
	CreatedAt   time.Time         `json:"created_at"`
}
