package credential

import (
	"encoding/json"

	"govconnect/models"
	"govconnect/utils"
)

// Verify checks a serialized payload. Expiry is checked before the signature, so an
// expired credential is reported as Expired whatever its hash. A rejected credential
// returns both a result with Valid false and the classified error.
func (s *Service) Verify(raw string) (*models.VerificationResult, error) {
	var p models.QRPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, utils.Validation("qrCodeData is not a valid credential payload")
	}
	if p.AppointmentID == "" || p.VerificationHash == "" || p.ExpiryDateTime.IsZero() {
		return nil, utils.Validation("qrCodeData is missing required fields")
	}

	if s.Now().After(p.ExpiryDateTime) {
		return &models.VerificationResult{Valid: false, Reason: string(utils.KindExpired)},
			utils.Expired("credential expired at %s", p.ExpiryDateTime.Format("2006-01-02 15:04 MST"))
	}
	if !s.validSignature(&p) {
		return &models.VerificationResult{Valid: false, Reason: string(utils.KindTamperedOrForged)},
			utils.TamperedOrForged("credential signature does not match")
	}

	return &models.VerificationResult{
		Valid: true,
		Appointment: &models.VerifiedAppointment{
			AppointmentID: p.AppointmentID,
			ServiceType:   p.ServiceType,
			Location:      p.Location,
			DateTime:      p.DateTime,
			Status:        models.AppointmentStatusBooked,
		},
	}, nil
}
