package credential

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"time"

	authorityRepo "govconnect/database/repository/authority"
	recordsRepo "govconnect/database/repository/records"
	"govconnect/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/hkdf"
)

// Issuer produces signed appointment credentials.
type Issuer interface {
	Issue(appt *models.Appointment, desc models.CredentialDescriptor) (*models.IssuedCredential, error)
	IssueForAppointment(ctx context.Context, actor models.Actor, appointmentID string, desc models.CredentialDescriptor) (*models.IssuedCredential, error)
	QRCodePNG(qrData string, size int) ([]byte, error)
}

// Verifier checks a presented credential using only the payload and the secret.
type Verifier interface {
	Verify(raw string) (*models.VerificationResult, error)
}

// Service implements both sides. The lookup repositories are only used by
// IssueForAppointment; Verify never touches storage.
type Service struct {
	key         []byte
	Grace       time.Duration
	Location    *time.Location
	Records     recordsRepo.RecordRepository
	Authorities authorityRepo.AuthorityRepository
	Logger      *zap.Logger
	Now         func() time.Time
}

const keyInfo = "govconnect appointment credential v1"

// NewService derives the signing key from secret. records and authorities may be nil
// for a verify-only service.
func NewService(secret string, grace time.Duration, loc *time.Location, records recordsRepo.RecordRepository, authorities authorityRepo.AuthorityRepository, logger *zap.Logger) (*Service, error) {
	if secret == "" {
		return nil, fmt.Errorf("credential service initialization error: signing secret is empty")
	}
	key, err := deriveKey(secret)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		key:         key,
		Grace:       grace,
		Location:    loc,
		Records:     records,
		Authorities: authorities,
		Logger:      logger,
		Now:         time.Now,
	}, nil
}

func deriveKey(secret string) ([]byte, error) {
	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive credential key: %w", err)
	}
	return key, nil
}
