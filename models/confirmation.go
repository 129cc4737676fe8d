package models

import "time"

// QRPayload is the self-contained credential encoded into an appointment QR code.
// A verifier needs only these fields and the signing secret.
type QRPayload struct {
	AppointmentID    string    `json:"appointmentId"`
	UserID           string    `json:"userId"`
	ServiceType      string    `json:"serviceType"`
	Location         string    `json:"location"`
	DateTime         string    `json:"dateTime"`
	VerificationHash string    `json:"verificationHash"`
	GeneratedAt      time.Time `json:"generatedAt"`
	ExpiryDateTime   time.Time `json:"expiryDateTime"`
}

// CredentialDescriptor carries the human-facing labels printed on a credential.
type CredentialDescriptor struct {
	ServiceType string `json:"serviceType"`
	Location    string `json:"location"`
}

// IssuedCredential is the issuer's output: the payload, its serialized form and a
// printable receipt.
type IssuedCredential struct {
	Payload QRPayload `json:"payload"`
	QRData  string    `json:"qrCodeData"`
	Receipt string    `json:"receipt"`
}

type VerifyRequest struct {
	QRCodeData string `json:"qrCodeData" binding:"required"`
}

// VerifiedAppointment is the summary returned for an accepted credential.
type VerifiedAppointment struct {
	AppointmentID string `json:"appointmentId"`
	ServiceType   string `json:"serviceType"`
	Location      string `json:"location"`
	DateTime      string `json:"dateTime"`
	Status        string `json:"status"`
}

type VerificationResult struct {
	Valid       bool                 `json:"valid"`
	Reason      string               `json:"reason,omitempty"`
	Appointment *VerifiedAppointment `json:"appointment,omitempty"`
}
