package timeslot

import (
	"context"
	"sync"
	"testing"

	"govconnect/models"
	"govconnect/utils"
)

type memLedger struct {
	mu      sync.Mutex
	entries map[string][]string
}

func newMemLedger() *memLedger {
	return &memLedger{entries: map[string][]string{}}
}

func key(authorityID, date string) string { return authorityID + "|" + date }

func (m *memLedger) List(_ context.Context, authorityID, date string) ([]models.FreeTime, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.FreeTime
	for k, slots := range m.entries {
		if date != "" && k != key(authorityID, date) {
			continue
		}
		if len(k) <= len(authorityID) || k[:len(authorityID)+1] != authorityID+"|" {
			continue
		}
		out = append(out, models.FreeTime{AuthorityID: authorityID, Date: k[len(authorityID)+1:], Slots: append([]string(nil), slots...)})
	}
	return out, nil
}

func (m *memLedger) HasSlot(_ context.Context, authorityID, date, label string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.entries[key(authorityID, date)] {
		if l == label {
			return true, nil
		}
	}
	return false, nil
}

func (m *memLedger) AddSlot(ctx context.Context, authorityID, date, label string) error {
	if ok, _ := m.HasSlot(ctx, authorityID, date, label); ok {
		return utils.Conflict("time slot %q already exists", label)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(authorityID, date)
	m.entries[k] = append(m.entries[k], label)
	return nil
}

func (m *memLedger) TakeSlot(_ context.Context, authorityID, date, label string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(authorityID, date)
	slots := m.entries[k]
	for i, l := range slots {
		if l == label {
			slots = append(slots[:i], slots[i+1:]...)
			if len(slots) == 0 {
				delete(m.entries, k)
			} else {
				m.entries[k] = slots
			}
			return true, nil
		}
	}
	return false, nil
}

func (m *memLedger) ReopenSlot(ctx context.Context, authorityID, date, label string) error {
	if ok, _ := m.HasSlot(ctx, authorityID, date, label); ok {
		return nil
	}
	return m.AddSlot(ctx, authorityID, date, label)
}

func (m *memLedger) EnsureIndexes(context.Context) error { return nil }

// guardedPublisher refuses labels held by a booking, as the scheduler does.
type guardedPublisher struct {
	ledger *memLedger
	mu     sync.Mutex
	booked map[string]bool
}

func (p *guardedPublisher) book(ctx context.Context, authorityID, date, label string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	taken, _ := p.ledger.TakeSlot(ctx, authorityID, date, label)
	if taken {
		p.booked[models.SlotKeyFor(authorityID, date, label)] = true
	}
	return taken
}

func (p *guardedPublisher) PublishSlot(ctx context.Context, authorityID, date, label string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.booked[models.SlotKeyFor(authorityID, date, label)] {
		return utils.Conflict("time slot %q on %s is booked", label, date)
	}
	return p.ledger.AddSlot(ctx, authorityID, date, label)
}

func newLedgerService(t *testing.T) (*DefaultLedgerService, *memLedger) {
	svc, repo, _ := newGuardedLedgerService(t)
	return svc, repo
}

func newGuardedLedgerService(t *testing.T) (*DefaultLedgerService, *memLedger, *guardedPublisher) {
	t.Helper()
	repo := newMemLedger()
	publisher := &guardedPublisher{ledger: repo, booked: map[string]bool{}}
	svc, err := NewDefaultLedgerService(repo, publisher, nil, 0, nil)
	if err != nil {
		t.Fatalf("NewDefaultLedgerService: %v", err)
	}
	return svc, repo, publisher
}

func TestAddSlotRequiresOwnAuthority(t *testing.T) {
	svc, _ := newLedgerService(t)
	ctx := context.Background()

	if err := svc.AddSlot(ctx, models.Citizen("user-1"), "auth-1", "2025-08-15", "10:00 - 10:30"); !utils.IsKind(err, utils.KindForbidden) {
		t.Errorf("citizen: err = %v, want Forbidden", err)
	}
	if err := svc.AddSlot(ctx, models.Official("auth-2"), "auth-1", "2025-08-15", "10:00 - 10:30"); !utils.IsKind(err, utils.KindForbidden) {
		t.Errorf("foreign official: err = %v, want Forbidden", err)
	}
	if err := svc.AddSlot(ctx, models.Official("auth-1"), "auth-1", "2025-08-15", "10:00 - 10:30"); err != nil {
		t.Errorf("own official: %v", err)
	}
}

func TestAddSlotValidatesInput(t *testing.T) {
	svc, _ := newLedgerService(t)
	ctx := context.Background()
	official := models.Official("auth-1")

	for _, tc := range []struct{ date, label string }{
		{"2025-13-01", "10:00 - 10:30"},
		{"2025-08-15", "10:00-10:30am"},
		{"2025-08-15", "10:30 - 10:00"},
		{"2025-08-15", "24:00 - 24:30"},
	} {
		if err := svc.AddSlot(ctx, official, "auth-1", tc.date, tc.label); !utils.IsKind(err, utils.KindValidation) {
			t.Errorf("AddSlot(%q, %q) err = %v, want ValidationError", tc.date, tc.label, err)
		}
	}
}

func TestAddSlotDuplicateIsConflict(t *testing.T) {
	svc, _ := newLedgerService(t)
	ctx := context.Background()
	official := models.Official("auth-1")

	if err := svc.AddSlot(ctx, official, "auth-1", "2025-08-15", "10:00 - 10:30"); err != nil {
		t.Fatalf("first AddSlot: %v", err)
	}
	if err := svc.AddSlot(ctx, official, "auth-1", "2025-08-15", "10:00 - 10:30"); !utils.IsKind(err, utils.KindConflict) {
		t.Fatalf("second AddSlot err = %v, want Conflict", err)
	}
}

func TestPublishSlotComposesLabel(t *testing.T) {
	svc, repo := newLedgerService(t)
	label, err := svc.PublishSlot(context.Background(), models.Official("auth-1"), models.PublishSlotRequest{
		Date:      "2025-08-15",
		StartTime: "09:00",
		EndTime:   "09:30",
	})
	if err != nil {
		t.Fatalf("PublishSlot: %v", err)
	}
	if label != "09:00 - 09:30" {
		t.Errorf("label = %q", label)
	}
	if ok, _ := repo.HasSlot(context.Background(), "auth-1", "2025-08-15", label); !ok {
		t.Errorf("label not in ledger")
	}

	_, err = svc.PublishSlot(context.Background(), models.Official("auth-1"), models.PublishSlotRequest{Date: "2025-08-15"})
	if !utils.IsKind(err, utils.KindValidation) {
		t.Errorf("empty request err = %v, want ValidationError", err)
	}
}

func TestPublishSlotsReportsPerLabel(t *testing.T) {
	svc, _ := newLedgerService(t)
	ctx := context.Background()
	official := models.Official("auth-1")
	if err := svc.AddSlot(ctx, official, "auth-1", "2025-08-15", "10:00 - 10:30"); err != nil {
		t.Fatalf("AddSlot: %v", err)
	}

	results, err := svc.PublishSlots(ctx, official, models.PublishSlotsRequest{
		Date:   "2025-08-15",
		Labels: []string{"09:30 - 10:00", "10:00 - 10:30", "10:30 - 11:00"},
	})
	if err != nil {
		t.Fatalf("PublishSlots: %v", err)
	}
	want := []string{"added", "conflict", "added"}
	if len(results) != len(want) {
		t.Fatalf("results = %v", results)
	}
	for i, r := range results {
		if r.Status != want[i] {
			t.Errorf("result[%d] = %+v, want status %s", i, r, want[i])
		}
	}

	// One bad label rejects the whole batch before anything is written.
	_, err = svc.PublishSlots(ctx, official, models.PublishSlotsRequest{
		Date:   "2025-08-16",
		Labels: []string{"09:00 - 09:30", "bogus"},
	})
	if !utils.IsKind(err, utils.KindValidation) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	entries, _ := svc.ListOpenSlots(ctx, "auth-1", "2025-08-16")
	if len(entries) != 0 {
		t.Errorf("partial batch written: %v", entries)
	}
}

func TestRemoveSlot(t *testing.T) {
	svc, _ := newLedgerService(t)
	ctx := context.Background()
	official := models.Official("auth-1")
	if err := svc.AddSlot(ctx, official, "auth-1", "2025-08-15", "10:00 - 10:30"); err != nil {
		t.Fatalf("AddSlot: %v", err)
	}

	if err := svc.RemoveSlot(ctx, official, "auth-1", "2025-08-15", "11:00 - 11:30"); !utils.IsKind(err, utils.KindNotFound) {
		t.Errorf("missing label err = %v, want NotFound", err)
	}
	if err := svc.RemoveSlot(ctx, official, "auth-1", "2025-08-15", "10:00 - 10:30"); err != nil {
		t.Fatalf("RemoveSlot: %v", err)
	}

	entries, err := svc.ListOpenSlots(ctx, "auth-1", "")
	if err != nil {
		t.Fatalf("ListOpenSlots: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("empty entry still listed: %v", entries)
	}
}

func TestListOpenSlotsDropsEmptyEntries(t *testing.T) {
	svc, repo := newLedgerService(t)
	repo.entries[key("auth-1", "2025-08-15")] = []string{}
	repo.entries[key("auth-1", "2025-08-16")] = []string{"10:00 - 10:30"}

	entries, err := svc.ListOpenSlots(context.Background(), "auth-1", "")
	if err != nil {
		t.Fatalf("ListOpenSlots: %v", err)
	}
	if len(entries) != 1 || entries[0].Date != "2025-08-16" {
		t.Errorf("entries = %+v", entries)
	}

	if _, err := svc.ListOpenSlots(context.Background(), "", ""); !utils.IsKind(err, utils.KindValidation) {
		t.Errorf("missing authority err = %v, want ValidationError", err)
	}
}

func TestRepublishingBookedSlotConflicts(t *testing.T) {
	svc, _, publisher := newGuardedLedgerService(t)
	ctx := context.Background()
	official := models.Official("auth-1")

	if err := svc.AddSlot(ctx, official, "auth-1", "2025-08-15", "10:00 - 10:30"); err != nil {
		t.Fatalf("AddSlot: %v", err)
	}
	if !publisher.book(ctx, "auth-1", "2025-08-15", "10:00 - 10:30") {
		t.Fatal("booking did not take the label")
	}

	err := svc.AddSlot(ctx, official, "auth-1", "2025-08-15", "10:00 - 10:30")
	if !utils.IsKind(err, utils.KindConflict) {
		t.Fatalf("re-publish err = %v, want Conflict", err)
	}
	entries, err := svc.ListOpenSlots(ctx, "auth-1", "2025-08-15")
	if err != nil {
		t.Fatalf("ListOpenSlots: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("booked label listed as open: %+v", entries)
	}

	results, err := svc.PublishSlots(ctx, official, models.PublishSlotsRequest{
		Date:   "2025-08-15",
		Labels: []string{"10:00 - 10:30", "10:30 - 11:00"},
	})
	if err != nil {
		t.Fatalf("PublishSlots: %v", err)
	}
	if results[0].Status != "conflict" || results[1].Status != "added" {
		t.Errorf("results = %+v", results)
	}
}

func TestRemoveSlotNormalizesLabel(t *testing.T) {
	svc, _ := newLedgerService(t)
	ctx := context.Background()
	official := models.Official("auth-1")
	if err := svc.AddSlot(ctx, official, "auth-1", "2025-08-15", "10:00 - 10:30"); err != nil {
		t.Fatalf("AddSlot: %v", err)
	}

	if err := svc.RemoveSlot(ctx, official, "auth-1", "2025-08-15", " 10:00 - 10:30 "); err != nil {
		t.Fatalf("RemoveSlot with padded label: %v", err)
	}
	if err := svc.RemoveSlot(ctx, official, "auth-1", "2025-08-15", "10am"); !utils.IsKind(err, utils.KindValidation) {
		t.Errorf("malformed label err = %v, want ValidationError", err)
	}
}
