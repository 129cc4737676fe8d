package credential

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"govconnect/models"
	"govconnect/utils"

	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

var receiptTemplate = template.Must(template.New("receipt").Parse(`APPOINTMENT CONFIRMATION
Appointment ID : {{.AppointmentID}}
Service        : {{.ServiceType}}
Location       : {{.Location}}
Date & Time    : {{.DateTime}}
Valid until    : {{.Expiry}}

Present the QR code at the counter. It cannot be used after the time above.
`))

// Issue signs a credential for appt. The expiry is the slot start plus Grace in the
// configured timezone.
func (s *Service) Issue(appt *models.Appointment, desc models.CredentialDescriptor) (*models.IssuedCredential, error) {
	if appt == nil || appt.ID == "" || appt.UserID == "" {
		return nil, utils.Validation("a booked appointment is required")
	}
	start, err := utils.SlotStart(appt.Date, appt.TimeSlot, s.Location)
	if err != nil {
		return nil, err
	}
	desc.ServiceType = strings.TrimSpace(desc.ServiceType)
	desc.Location = strings.TrimSpace(desc.Location)
	if desc.ServiceType == "" || desc.Location == "" {
		return nil, utils.Validation("service type and location are required")
	}

	payload := models.QRPayload{
		AppointmentID:  appt.ID,
		UserID:         appt.UserID,
		ServiceType:    desc.ServiceType,
		Location:       desc.Location,
		DateTime:       utils.FormatAppointmentTime(start),
		GeneratedAt:    s.Now().UTC().Truncate(time.Second),
		ExpiryDateTime: start.Add(s.Grace).UTC(),
	}
	payload.VerificationHash = s.sign(&payload)

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, utils.Internal(err, "failed to encode credential")
	}

	var receipt bytes.Buffer
	err = receiptTemplate.Execute(&receipt, map[string]string{
		"AppointmentID": payload.AppointmentID,
		"ServiceType":   payload.ServiceType,
		"Location":      payload.Location,
		"DateTime":      payload.DateTime,
		"Expiry":        utils.FormatAppointmentTime(payload.ExpiryDateTime.In(s.Location)),
	})
	if err != nil {
		return nil, utils.Internal(err, "failed to render receipt")
	}

	return &models.IssuedCredential{
		Payload: payload,
		QRData:  string(data),
		Receipt: receipt.String(),
	}, nil
}

// IssueForAppointment loads the appointment for its owner and fills descriptor gaps
// from the authority directory: category as service type, name as location.
func (s *Service) IssueForAppointment(ctx context.Context, actor models.Actor, appointmentID string, desc models.CredentialDescriptor) (*models.IssuedCredential, error) {
	if s.Records == nil {
		return nil, fmt.Errorf("credential service has no record store")
	}
	if !actor.Valid() {
		return nil, utils.Unauthorized("authentication required")
	}
	appt, err := s.Records.GetAppointment(ctx, appointmentID)
	if err != nil {
		if utils.KindOf(err) != utils.KindInternal {
			return nil, err
		}
		return nil, utils.Internal(err, "failed to load appointment")
	}
	if !actor.CanAccess(appt) {
		return nil, utils.Forbidden("not allowed to access appointment %s", appointmentID)
	}

	if (desc.ServiceType == "" || desc.Location == "") && s.Authorities != nil {
		authority, err := s.Authorities.GetByID(ctx, appt.AuthorityID)
		if err != nil {
			s.Logger.Warn("Authority lookup failed for credential", zap.String("authorityId", appt.AuthorityID), zap.Error(err))
		} else {
			if desc.ServiceType == "" {
				desc.ServiceType = authority.Category
			}
			if desc.Location == "" {
				desc.Location = authority.Name
				if authority.Location != "" {
					desc.Location = authority.Name + ", " + authority.Location
				}
			}
		}
	}

	issued, err := s.Issue(appt, desc)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("Credential issued", zap.String("appointmentId", appt.ID), zap.Time("expiry", issued.Payload.ExpiryDateTime))
	return issued, nil
}

// QRCodePNG renders qrData as a PNG image size pixels wide.
func (s *Service) QRCodePNG(qrData string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(qrData, qrcode.Medium, size)
	if err != nil {
		return nil, utils.Internal(err, "failed to render QR code")
	}
	return png, nil
}
