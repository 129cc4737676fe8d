package records

import (
	"context"
	"net/url"
	"strings"

	"govconnect/models"
	"govconnect/utils"
)

func (s *DefaultRecordService) AddFile(ctx context.Context, actor models.Actor, req models.AddFileRequest) (*models.Attachment, error) {
	fileURL, err := validateFileURL(req.FileURL)
	if err != nil {
		return nil, err
	}
	appt, err := s.GetAppointment(ctx, actor, req.AppointmentID)
	if err != nil {
		return nil, err
	}
	att, err := s.Repo.AddFile(ctx, appt.ID, fileURL)
	if err != nil {
		return nil, classify(err, "failed to add file")
	}
	return att, nil
}

func (s *DefaultRecordService) GetAttachment(ctx context.Context, actor models.Actor, appointmentID string) (*models.Attachment, error) {
	appt, err := s.GetAppointment(ctx, actor, appointmentID)
	if err != nil {
		return nil, err
	}
	att, err := s.Repo.GetAttachmentByAppointment(ctx, appt.ID)
	if err != nil {
		return nil, classify(err, "failed to load attachment")
	}
	return att, nil
}

// RemoveFile drops one URL. A nil attachment means the last URL went and the record
// was deleted.
func (s *DefaultRecordService) RemoveFile(ctx context.Context, actor models.Actor, req models.RemoveFileRequest) (*models.Attachment, error) {
	if strings.TrimSpace(req.AttachmentID) == "" {
		return nil, utils.Validation("attachment_id is required")
	}
	fileURL, err := validateFileURL(req.FileURL)
	if err != nil {
		return nil, err
	}
	att, err := s.Repo.GetAttachment(ctx, req.AttachmentID)
	if err != nil {
		return nil, classify(err, "failed to load attachment")
	}
	if _, err := s.GetAppointment(ctx, actor, att.AppointmentID); err != nil {
		return nil, err
	}
	updated, err := s.Repo.RemoveFile(ctx, att.ID, fileURL)
	if err != nil {
		return nil, classify(err, "failed to remove file")
	}
	return updated, nil
}

func validateFileURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", utils.Validation("file_url must be an absolute URL")
	}
	return raw, nil
}
