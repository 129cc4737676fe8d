package utils

import (
	"fmt"
	"strings"
	"time"

	"govconnect/models"
)

// ParseDate validates a YYYY-MM-DD calendar date.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, Validation("date %q must be in YYYY-MM-DD format", date)
	}
	return t, nil
}

// SlotStart converts a ledger date and slot label into the wall-clock instant the slot
// begins at in loc.
func SlotStart(date, label string, loc *time.Location) (time.Time, error) {
	day, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	window, err := models.ParseSlotLabel(label)
	if err != nil {
		return time.Time{}, Validation("%s", err.Error())
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(day.Year(), day.Month(), day.Day(), window.Start/60, window.Start%60, 0, 0, loc), nil
}

// FormatAppointmentTime renders an appointment instant for receipts and messages,
// e.g. "Fri, 15 Aug 2025 10:00 +0530".
func FormatAppointmentTime(t time.Time) string {
	return t.Format("Mon, 02 Jan 2006 15:04 -0700")
}

// DescribeActor renders who acted for cancellation reasons and logs.
func DescribeActor(actor models.Actor) string {
	switch {
	case actor.IsCitizen():
		return "user"
	case actor.IsOfficial():
		return fmt.Sprintf("official of %s", actor.AuthorityID)
	default:
		return "unknown"
	}
}
