package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FreeTime holds every open slot label of one authority on one date. An entry with
// no labels is never stored: it is deleted when its last label goes.
type FreeTime struct {
	AuthorityID string    `bson:"authorityId" json:"authority_id"`
	Date        string    `bson:"date" json:"date"` // e.g., "2025-08-15"
	Slots       []string  `bson:"slots" json:"time_slots"`
	UpdatedAt   time.Time `bson:"updatedAt,omitempty" json:"updated_at,omitempty"`
}

// PublishSlotRequest defines the payload an official sends to open a slot. Either
// Label or StartTime/EndTime must be set.
type PublishSlotRequest struct {
	Date      string `json:"date" binding:"required"`
	Label     string `json:"label"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// PublishSlotsRequest opens several labels on one date in a single call.
type PublishSlotsRequest struct {
	Date   string   `json:"date" binding:"required"`
	Labels []string `json:"labels" binding:"required"`
}

// PublishSlotResult reports the outcome of one label in a bulk publish.
type PublishSlotResult struct {
	Label  string `json:"label"`
	Status string `json:"status"` // "added" or "conflict"
}

var slotLabelPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d) - ([01]\d|2[0-3]):([0-5]\d)$`)

// SlotWindow is a parsed slot label: minutes from midnight (e.g., 600 for 10:00).
type SlotWindow struct {
	Start int
	End   int
}

// ParseSlotLabel parses a label of the form "HH:MM - HH:MM".
func ParseSlotLabel(label string) (SlotWindow, error) {
	m := slotLabelPattern.FindStringSubmatch(label)
	if m == nil {
		return SlotWindow{}, fmt.Errorf("slot label %q must look like \"HH:MM - HH:MM\"", label)
	}
	w := SlotWindow{
		Start: atoi(m[1])*60 + atoi(m[2]),
		End:   atoi(m[3])*60 + atoi(m[4]),
	}
	if w.Start >= w.End {
		return SlotWindow{}, fmt.Errorf("slot label %q: start must be before end", label)
	}
	return w, nil
}

// ComposeSlotLabel builds a label from separate start and end times.
func ComposeSlotLabel(start, end string) string {
	return strings.TrimSpace(start) + " - " + strings.TrimSpace(end)
}

// Label renders the window back into its canonical label.
func (w SlotWindow) Label() string {
	return fmt.Sprintf("%02d:%02d - %02d:%02d", w.Start/60, w.Start%60, w.End/60, w.End%60)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
