// File: models/records.go
package models

import "time"

// Attendee is a person attached to an appointment. No effect on slot state.
type Attendee struct {
	ID            string    `bson:"id" json:"attendee_id"`
	AppointmentID string    `bson:"appointmentId" json:"appointment_id"`
	NIC           string    `bson:"nic" json:"nic"`
	Name          string    `bson:"name" json:"name"`
	Phone         string    `bson:"phone,omitempty" json:"phone_no,omitempty"`
	AddedBy       string    `bson:"addedBy" json:"added_by"` // "user" or "official"
	CreatedAt     time.Time `bson:"createdAt" json:"created_at"`
}

type AddAttendeeRequest struct {
	AppointmentID string `json:"appointment_id" binding:"required"`
	NIC           string `json:"nic" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone_no"`
}

// Attachment holds the ordered, de-duplicated file URLs of one appointment.
// Removing the last URL deletes the record.
type Attachment struct {
	ID            string    `bson:"id" json:"attachment_id"`
	AppointmentID string    `bson:"appointmentId" json:"appointment_id"`
	FileURLs      []string  `bson:"fileUrls" json:"file_urls"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updated_at"`
}

type AddFileRequest struct {
	AppointmentID string `json:"appointment_id" binding:"required"`
	FileURL       string `json:"file_url" binding:"required"`
}

type RemoveFileRequest struct {
	AttachmentID string `json:"attachment_id" binding:"required"`
	FileURL      string `json:"file_url" binding:"required"`
}

// Feedback is at most one rating per appointment.
type Feedback struct {
	ID            string    `bson:"id" json:"feedback_id"`
	AppointmentID string    `bson:"appointmentId" json:"appointment_id"`
	AuthorityID   string    `bson:"authorityId" json:"authority_id"`
	Rating        int       `bson:"rating" json:"rating"` // 1..5
	Comment       string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updated_at"`
}

type CreateFeedbackRequest struct {
	AppointmentID string `json:"appointment_id" binding:"required"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
}

// UpdateFeedbackRequest patches a feedback; nil fields are left untouched.
type UpdateFeedbackRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// FeedbackFilter narrows ListFeedback. Zero Limit means no limit.
type FeedbackFilter struct {
	AuthorityID string
	Limit       int64
	Offset      int64
}
