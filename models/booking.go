package models

import "time"

// Appointment is the reservation of exactly one slot label of one FreeTime entry.
// While it exists, its label is absent from the ledger.
type Appointment struct {
	ID              string    `bson:"id" json:"appointment_id"`
	UserID          string    `bson:"userId" json:"user_id"`
	AuthorityID     string    `bson:"authorityId" json:"authority_id"`
	Date            string    `bson:"date" json:"date"`           // "YYYY-MM-DD"
	TimeSlot        string    `bson:"timeSlot" json:"time_slot"`  // immutable once created
	SlotKey         string    `bson:"slotKey" json:"-"`           // unique: authority|date|label
	IssueID         string    `bson:"issueId,omitempty" json:"issue_id,omitempty"`
	OfficialComment string    `bson:"officialComment,omitempty" json:"official_comment,omitempty"`
	Status          string    `bson:"status" json:"status"`
	CreatedAt       time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updated_at"`
}

// AppointmentStatusBooked is the only stored state; cancellation deletes the record.
const AppointmentStatusBooked = "Booked"

// SlotKeyFor builds the booking key that at most one live appointment may hold.
func SlotKeyFor(authorityID, date, label string) string {
	return authorityID + "|" + date + "|" + label
}

// BookRequest is the input of the allocation engine.
type BookRequest struct {
	UserID      string `json:"-"`
	AuthorityID string `json:"authority_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	TimeSlot    string `json:"time_slot" binding:"required"`
	IssueID     string `json:"issue_id,omitempty"`
}

// CancelRequest carries the appointment and mandatory reason; the actor comes from
// the authenticated session.
type CancelRequest struct {
	AppointmentID string `json:"appointment_id" binding:"required"`
	Reason        string `json:"reason" binding:"required"`
}

// BookingResponse is returned after a successful booking.
type BookingResponse struct {
	AppointmentID string `json:"appointment_id"`
	AuthorityID   string `json:"authority_id"`
	Date          string `json:"date"`
	TimeSlot      string `json:"time_slot"`
}

// CommentRequest sets or replaces an official's comment on an appointment.
type CommentRequest struct {
	Comment string `json:"comment"`
}
