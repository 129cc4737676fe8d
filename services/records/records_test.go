package records

import (
	"context"
	"testing"

	recordsRepo "govconnect/database/repository/records"
	"govconnect/models"
	"govconnect/utils"
)

type memRecords struct {
	recordsRepo.RecordRepository
	appts       map[string]*models.Appointment
	attendees   map[string]*models.Attendee
	attachments map[string]*models.Attachment // by appointment
	feedback    map[string]*models.Feedback   // by appointment
	comments    int
}

func newMemRecords() *memRecords {
	return &memRecords{
		appts: map[string]*models.Appointment{
			"appt-1": {ID: "appt-1", UserID: "user-1", AuthorityID: "auth-1", Date: "2025-08-15", TimeSlot: "10:00 - 10:30", Status: models.AppointmentStatusBooked},
		},
		attendees:   map[string]*models.Attendee{},
		attachments: map[string]*models.Attachment{},
		feedback:    map[string]*models.Feedback{},
	}
}

func (m *memRecords) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	appt, ok := m.appts[id]
	if !ok {
		return nil, utils.NotFound("appointment %s not found", id)
	}
	cp := *appt
	return &cp, nil
}

func (m *memRecords) SetOfficialComment(_ context.Context, id, comment string) (*models.Appointment, error) {
	appt, ok := m.appts[id]
	if !ok {
		return nil, utils.NotFound("appointment %s not found", id)
	}
	before := *appt
	appt.OfficialComment = comment
	m.comments++
	return &before, nil
}

func (m *memRecords) InsertAttendee(_ context.Context, a *models.Attendee) error {
	m.attendees[a.ID] = a
	return nil
}

func (m *memRecords) GetAttendee(_ context.Context, id string) (*models.Attendee, error) {
	a, ok := m.attendees[id]
	if !ok {
		return nil, utils.NotFound("attendee %s not found", id)
	}
	return a, nil
}

func (m *memRecords) DeleteAttendee(_ context.Context, id string) error {
	if _, ok := m.attendees[id]; !ok {
		return utils.NotFound("attendee %s not found", id)
	}
	delete(m.attendees, id)
	return nil
}

func (m *memRecords) AddFile(_ context.Context, appointmentID, fileURL string) (*models.Attachment, error) {
	att, ok := m.attachments[appointmentID]
	if !ok {
		att = &models.Attachment{ID: "att-" + appointmentID, AppointmentID: appointmentID}
		m.attachments[appointmentID] = att
	}
	for _, u := range att.FileURLs {
		if u == fileURL {
			return att, nil
		}
	}
	att.FileURLs = append(att.FileURLs, fileURL)
	return att, nil
}

func (m *memRecords) GetAttachment(_ context.Context, id string) (*models.Attachment, error) {
	for _, att := range m.attachments {
		if att.ID == id {
			return att, nil
		}
	}
	return nil, utils.NotFound("attachment not found")
}

func (m *memRecords) GetAttachmentByAppointment(_ context.Context, appointmentID string) (*models.Attachment, error) {
	att, ok := m.attachments[appointmentID]
	if !ok {
		return nil, utils.NotFound("attachment not found")
	}
	return att, nil
}

func (m *memRecords) RemoveFile(ctx context.Context, attachmentID, fileURL string) (*models.Attachment, error) {
	att, err := m.GetAttachment(ctx, attachmentID)
	if err != nil {
		return nil, err
	}
	for i, u := range att.FileURLs {
		if u == fileURL {
			att.FileURLs = append(att.FileURLs[:i], att.FileURLs[i+1:]...)
			if len(att.FileURLs) == 0 {
				delete(m.attachments, att.AppointmentID)
				return nil, nil
			}
			return att, nil
		}
	}
	return nil, utils.NotFound("file URL not found in the attachment")
}

func (m *memRecords) InsertFeedback(_ context.Context, fb *models.Feedback) error {
	if _, ok := m.feedback[fb.AppointmentID]; ok {
		return utils.Conflict("feedback already exists for appointment %s", fb.AppointmentID)
	}
	m.feedback[fb.AppointmentID] = fb
	return nil
}

func (m *memRecords) UpdateFeedback(_ context.Context, appointmentID string, rating *int, comment *string) (*models.Feedback, error) {
	fb, ok := m.feedback[appointmentID]
	if !ok {
		return nil, utils.NotFound("feedback not found for appointment %s", appointmentID)
	}
	if rating != nil {
		fb.Rating = *rating
	}
	if comment != nil {
		fb.Comment = *comment
	}
	return fb, nil
}

func (m *memRecords) ListFeedback(_ context.Context, filter models.FeedbackFilter) ([]models.Feedback, error) {
	if filter.Limit != 100 {
		return nil, utils.Validation("unexpected limit %d", filter.Limit)
	}
	return []models.Feedback{}, nil
}

type statusRecorder struct {
	changes []models.StatusChange
}

func (s *statusRecorder) NotifyConfirmation(context.Context, *models.Appointment) {}
func (s *statusRecorder) NotifyCancellation(context.Context, *models.Appointment, string, models.Actor) {
}
func (s *statusRecorder) NotifyStatusChange(_ context.Context, c models.StatusChange) {
	s.changes = append(s.changes, c)
}
func (s *statusRecorder) ScheduleReminder(context.Context, *models.Appointment) {}

func newRecordService(t *testing.T) (*DefaultRecordService, *memRecords, *statusRecorder) {
	t.Helper()
	repo := newMemRecords()
	notifier := &statusRecorder{}
	svc, err := NewDefaultRecordService(repo, notifier, nil)
	if err != nil {
		t.Fatalf("NewDefaultRecordService: %v", err)
	}
	n := 0
	svc.NewID = func() string {
		n++
		return "id-" + string(rune('0'+n))
	}
	return svc, repo, notifier
}

var (
	owner    = models.Citizen("user-1")
	stranger = models.Citizen("user-2")
	official = models.Official("auth-1")
	outsider = models.Official("auth-2")
)

func TestGetAppointmentScopesByActor(t *testing.T) {
	svc, _, _ := newRecordService(t)
	ctx := context.Background()

	for _, actor := range []models.Actor{owner, official} {
		if _, err := svc.GetAppointment(ctx, actor, "appt-1"); err != nil {
			t.Errorf("GetAppointment(%+v): %v", actor, err)
		}
	}
	for _, actor := range []models.Actor{stranger, outsider} {
		if _, err := svc.GetAppointment(ctx, actor, "appt-1"); !utils.IsKind(err, utils.KindForbidden) {
			t.Errorf("GetAppointment(%+v) err = %v, want Forbidden", actor, err)
		}
	}
	if _, err := svc.GetAppointment(ctx, models.Actor{}, "appt-1"); !utils.IsKind(err, utils.KindUnauthorized) {
		t.Errorf("anonymous err = %v, want Unauthorized", err)
	}
	if _, err := svc.GetAppointment(ctx, owner, "missing"); !utils.IsKind(err, utils.KindNotFound) {
		t.Errorf("missing err = %v, want NotFound", err)
	}
}

func TestSetOfficialCommentNotifiesCitizen(t *testing.T) {
	svc, repo, notifier := newRecordService(t)
	ctx := context.Background()

	if _, err := svc.SetOfficialComment(ctx, owner, "appt-1", "bring your NIC"); !utils.IsKind(err, utils.KindForbidden) {
		t.Fatalf("citizen err = %v, want Forbidden", err)
	}
	if _, err := svc.SetOfficialComment(ctx, outsider, "appt-1", "bring your NIC"); !utils.IsKind(err, utils.KindForbidden) {
		t.Fatalf("outsider err = %v, want Forbidden", err)
	}

	updated, err := svc.SetOfficialComment(ctx, official, "appt-1", "bring your NIC")
	if err != nil {
		t.Fatalf("SetOfficialComment: %v", err)
	}
	if updated.OfficialComment != "bring your NIC" {
		t.Errorf("comment = %q", updated.OfficialComment)
	}
	if repo.comments != 1 {
		t.Errorf("repo writes = %d, want 1", repo.comments)
	}
	if len(notifier.changes) != 1 {
		t.Fatalf("status changes = %d, want 1", len(notifier.changes))
	}
	c := notifier.changes[0]
	if c.Subject != "appointment" || c.UserID != "user-1" || c.Previous != "" || c.Next != "bring your NIC" {
		t.Errorf("status change = %+v", c)
	}
}

func TestAddAttendeeRecordsRole(t *testing.T) {
	svc, _, _ := newRecordService(t)
	ctx := context.Background()

	a, err := svc.AddAttendee(ctx, official, models.AddAttendeeRequest{AppointmentID: "appt-1", NIC: " 901234567V ", Name: "Nimal"})
	if err != nil {
		t.Fatalf("AddAttendee: %v", err)
	}
	if a.AddedBy != "official" || a.NIC != "901234567V" {
		t.Errorf("attendee = %+v", a)
	}

	if _, err := svc.AddAttendee(ctx, owner, models.AddAttendeeRequest{AppointmentID: "appt-1", Name: "Nimal"}); !utils.IsKind(err, utils.KindValidation) {
		t.Errorf("missing nic err = %v, want ValidationError", err)
	}
	if err := svc.RemoveAttendee(ctx, stranger, a.ID); !utils.IsKind(err, utils.KindForbidden) {
		t.Errorf("stranger remove err = %v, want Forbidden", err)
	}
	if err := svc.RemoveAttendee(ctx, owner, a.ID); err != nil {
		t.Errorf("owner remove: %v", err)
	}
	if err := svc.RemoveAttendee(ctx, owner, a.ID); !utils.IsKind(err, utils.KindNotFound) {
		t.Errorf("second remove err = %v, want NotFound", err)
	}
}

func TestAttachmentLifecycle(t *testing.T) {
	svc, repo, _ := newRecordService(t)
	ctx := context.Background()

	if _, err := svc.AddFile(ctx, owner, models.AddFileRequest{AppointmentID: "appt-1", FileURL: "not a url"}); !utils.IsKind(err, utils.KindValidation) {
		t.Fatalf("relative url err = %v, want ValidationError", err)
	}

	first := "https://files.example.lk/a.pdf"
	second := "https://files.example.lk/b.pdf"
	for _, u := range []string{first, second, first} {
		if _, err := svc.AddFile(ctx, owner, models.AddFileRequest{AppointmentID: "appt-1", FileURL: u}); err != nil {
			t.Fatalf("AddFile(%s): %v", u, err)
		}
	}
	att, err := svc.GetAttachment(ctx, official, "appt-1")
	if err != nil {
		t.Fatalf("GetAttachment: %v", err)
	}
	if len(att.FileURLs) != 2 || att.FileURLs[0] != first || att.FileURLs[1] != second {
		t.Fatalf("file urls = %v", att.FileURLs)
	}

	left, err := svc.RemoveFile(ctx, owner, models.RemoveFileRequest{AttachmentID: att.ID, FileURL: first})
	if err != nil || left == nil || len(left.FileURLs) != 1 {
		t.Fatalf("RemoveFile first = %+v, %v", left, err)
	}
	left, err = svc.RemoveFile(ctx, owner, models.RemoveFileRequest{AttachmentID: att.ID, FileURL: second})
	if err != nil || left != nil {
		t.Fatalf("RemoveFile last = %+v, %v; want nil attachment", left, err)
	}
	if len(repo.attachments) != 0 {
		t.Errorf("empty attachment kept")
	}
	if _, err := svc.GetAttachment(ctx, owner, "appt-1"); !utils.IsKind(err, utils.KindNotFound) {
		t.Errorf("GetAttachment after last removal err = %v, want NotFound", err)
	}
}

func TestFeedbackRules(t *testing.T) {
	svc, _, _ := newRecordService(t)
	ctx := context.Background()

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.CreateFeedback(ctx, owner, models.CreateFeedbackRequest{AppointmentID: "appt-1", Rating: rating})
		if !utils.IsKind(err, utils.KindValidation) {
			t.Errorf("rating %d err = %v, want ValidationError", rating, err)
		}
	}
	if _, err := svc.CreateFeedback(ctx, official, models.CreateFeedbackRequest{AppointmentID: "appt-1", Rating: 4}); !utils.IsKind(err, utils.KindForbidden) {
		t.Errorf("official err = %v, want Forbidden", err)
	}
	if _, err := svc.CreateFeedback(ctx, stranger, models.CreateFeedbackRequest{AppointmentID: "appt-1", Rating: 4}); !utils.IsKind(err, utils.KindForbidden) {
		t.Errorf("stranger err = %v, want Forbidden", err)
	}

	fb, err := svc.CreateFeedback(ctx, owner, models.CreateFeedbackRequest{AppointmentID: "appt-1", Rating: 4, Comment: " quick "})
	if err != nil {
		t.Fatalf("CreateFeedback: %v", err)
	}
	if fb.AuthorityID != "auth-1" || fb.Comment != "quick" {
		t.Errorf("feedback = %+v", fb)
	}
	if _, err := svc.CreateFeedback(ctx, owner, models.CreateFeedbackRequest{AppointmentID: "appt-1", Rating: 5}); !utils.IsKind(err, utils.KindConflict) {
		t.Errorf("second feedback err = %v, want Conflict", err)
	}

	rating := 2
	updated, err := svc.UpdateFeedback(ctx, owner, "appt-1", models.UpdateFeedbackRequest{Rating: &rating})
	if err != nil {
		t.Fatalf("UpdateFeedback: %v", err)
	}
	if updated.Rating != 2 || updated.Comment != "quick" {
		t.Errorf("updated = %+v", updated)
	}
	if _, err := svc.UpdateFeedback(ctx, owner, "appt-1", models.UpdateFeedbackRequest{}); !utils.IsKind(err, utils.KindValidation) {
		t.Errorf("empty update err = %v, want ValidationError", err)
	}
}

func TestListFeedbackCapsLimit(t *testing.T) {
	svc, _, _ := newRecordService(t)
	for _, limit := range []int64{0, 500} {
		if _, err := svc.ListFeedback(context.Background(), models.FeedbackFilter{Limit: limit}); err != nil {
			t.Errorf("limit %d: %v", limit, err)
		}
	}
	if _, err := svc.ListFeedback(context.Background(), models.FeedbackFilter{Offset: -1}); !utils.IsKind(err, utils.KindValidation) {
		t.Errorf("negative offset err = %v, want ValidationError", err)
	}
}

func TestClassifyKeepsNil(t *testing.T) {
	if err := classify(nil, "x"); err != nil {
		t.Fatalf("classify(nil) = %v", err)
	}
	if err := classify(utils.NotFound("gone"), "x"); !utils.IsKind(err, utils.KindNotFound) {
		t.Errorf("classified error rewritten: %v", err)
	}
}
