package domain

import (
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Boarder struct {
	recorder

	ID               string     `json:"id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone,omitempty"`
	EmergencyContact string     `json:"emergency_contact,omitempty"`
	EmergencyPhone   string     `json:"emergency_phone,omitempty"`
	AccessCode       string     `json:"access_code"`
	MoveInDate       time.Time  `json:"move_in_date"`
	MoveOutDate      *time.Time `json:"move_out_date,omitempty"`
	IsActive         bool       `json:"is_active"`
	RoomID           *string    `json:"room_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// NewBoarder validates every creation rule and reports all failures
// together. Boarders start active with a freshly generated access code.
func NewBoarder(firstName, lastName, email, phone, emergencyContact, emergencyPhone string, moveInDate time.Time) (*Boarder, error) {
	if violations := validateBoarderFields(firstName, lastName, email, moveInDate); len(violations) > 0 {
		return nil, NewValidationError(violations...)
	}
	now := time.Now()
	b := &Boarder{
		ID:               uuid.NewString(),
		FirstName:        strings.TrimSpace(firstName),
		LastName:         strings.TrimSpace(lastName),
		Email:            strings.ToLower(strings.TrimSpace(email)),
		Phone:            phone,
		EmergencyContact: emergencyContact,
		EmergencyPhone:   emergencyPhone,
		MoveInDate:       moveInDate,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	b.AccessCode = generateAccessCode(b.FirstName, b.LastName)
	b.record(EventBoarderCreated, map[string]string{
		"boarder_id":  b.ID,
		"email":       b.Email,
		"access_code": b.AccessCode,
	})
	return b, nil
}

func validateBoarderFields(firstName, lastName, email string, moveInDate time.Time) []string {
	var violations []string
	if strings.TrimSpace(firstName) == "" {
		violations = append(violations, "first name is required")
	}
	if strings.TrimSpace(lastName) == "" {
		violations = append(violations, "last name is required")
	}
	if strings.TrimSpace(email) == "" {
		violations = append(violations, "email is required")
	} else if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		violations = append(violations, "email is not a valid address")
	}
	if moveInDate.After(time.Now()) {
		violations = append(violations, "move-in date cannot be in the future")
	}
	return violations
}

// Update changes the boarder's details, re-validating the creation rules.
// Email uniqueness is the service's responsibility.
func (b *Boarder) Update(firstName, lastName, email, phone, emergencyContact, emergencyPhone string, moveInDate time.Time) error {
	if violations := validateBoarderFields(firstName, lastName, email, moveInDate); len(violations) > 0 {
		return NewValidationError(violations...)
	}
	b.FirstName = strings.TrimSpace(firstName)
	b.LastName = strings.TrimSpace(lastName)
	b.Email = strings.ToLower(strings.TrimSpace(email))
	b.Phone = phone
	b.EmergencyContact = emergencyContact
	b.EmergencyPhone = emergencyPhone
	b.MoveInDate = moveInDate
	b.UpdatedAt = time.Now()
	return nil
}

func (b *Boarder) FullName() string {
	return b.FirstName + " " + b.LastName
}

// RegenerateAccessCode derives a new code from the current name and time
// without changing identity.
func (b *Boarder) RegenerateAccessCode() string {
	b.AccessCode = generateAccessCode(b.FirstName, b.LastName)
	b.UpdatedAt = time.Now()
	return b.AccessCode
}

// generateAccessCode builds {firstInitial}{lastInitial}{base36 millis},
// uppercased.
func generateAccessCode(firstName, lastName string) string {
	code := nameInitial(firstName) + nameInitial(lastName) + strconv.FormatInt(time.Now().UnixMilli(), 36)
	return strings.ToUpper(code)
}

func nameInitial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return string([]rune(name)[0])
}

// AssignRoom links the boarder to a room. Only active boarders occupy
// bed-space; the service performs capacity and room-state checks first.
func (b *Boarder) AssignRoom(roomID string) error {
	if !b.IsActive {
		return NewInvalidTransitionError("cannot assign a room to an inactive boarder")
	}
	b.RoomID = &roomID
	b.UpdatedAt = time.Now()
	b.record(EventRoomAssigned, map[string]string{
		"boarder_id": b.ID,
		"room_id":    roomID,
	})
	return nil
}

// RemoveRoom unlinks the boarder from their room. No-op when unassigned.
func (b *Boarder) RemoveRoom() error {
	if !b.IsActive {
		return NewInvalidTransitionError("cannot remove the room of an inactive boarder")
	}
	if b.RoomID == nil {
		return nil
	}
	roomID := *b.RoomID
	b.RoomID = nil
	b.UpdatedAt = time.Now()
	b.record(EventRoomVacated, map[string]string{
		"boarder_id": b.ID,
		"room_id":    roomID,
	})
	return nil
}

// Deactivate records a move-out. Idempotent when already inactive; the
// move-out date defaults to now.
func (b *Boarder) Deactivate(moveOutDate *time.Time) {
	if !b.IsActive {
		return
	}
	when := time.Now()
	if moveOutDate != nil {
		when = *moveOutDate
	}
	b.IsActive = false
	b.MoveOutDate = &when
	b.UpdatedAt = time.Now()
	b.record(EventBoarderDeactivated, map[string]string{
		"boarder_id":    b.ID,
		"move_out_date": when.Format(time.RFC3339),
	})
}

// Reactivate clears the move-out date. Idempotent when already active.
func (b *Boarder) Reactivate() {
	if b.IsActive {
		return
	}
	b.IsActive = true
	b.MoveOutDate = nil
	b.UpdatedAt = time.Now()
	b.record(EventBoarderReactivated, map[string]string{"boarder_id": b.ID})
}
