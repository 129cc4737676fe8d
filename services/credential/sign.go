package credential

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"time"

	"govconnect/models"
)

// canonical serializes the signed fields in a fixed order, each prefixed with its
// length so no two distinct tuples share an encoding.
func canonical(p *models.QRPayload) []byte {
	fields := []string{
		p.AppointmentID,
		p.UserID,
		p.ServiceType,
		p.Location,
		p.DateTime,
		p.ExpiryDateTime.UTC().Format(time.RFC3339Nano),
	}
	var buf []byte
	for _, f := range fields {
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(f)))
		buf = append(buf, f...)
	}
	return buf
}

func (s *Service) sign(p *models.QRPayload) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write(canonical(p))
	return hex.EncodeToString(mac.Sum(nil))
}

// validSignature compares the presented hash with the expected lowercase hex text, so
// any change to the presented string, including letter case, is rejected.
func (s *Service) validSignature(p *models.QRPayload) bool {
	return hmac.Equal([]byte(p.VerificationHash), []byte(s.sign(p)))
}
