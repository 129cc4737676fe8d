package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"govconnect/models"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err    error
		kind   ErrorKind
		status int
	}{
		{Validation("bad"), KindValidation, http.StatusBadRequest},
		{SlotUnavailable("taken"), KindSlotUnavailable, http.StatusConflict},
		{Conflict("dup"), KindConflict, http.StatusConflict},
		{NotFound("gone"), KindNotFound, http.StatusNotFound},
		{Forbidden("no"), KindForbidden, http.StatusForbidden},
		{Unauthorized("who"), KindUnauthorized, http.StatusUnauthorized},
		{Expired("late"), KindExpired, http.StatusUnprocessableEntity},
		{TamperedOrForged("bad mac"), KindTamperedOrForged, http.StatusUnprocessableEntity},
		{errors.New("boom"), KindInternal, http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", NotFound("gone")), KindNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.kind {
			t.Errorf("KindOf(%v) = %s, want %s", tt.err, got, tt.kind)
		}
		if got := StatusFor(KindOf(tt.err)); got != tt.status {
			t.Errorf("StatusFor(%s) = %d, want %d", tt.kind, got, tt.status)
		}
	}
	if IsKind(nil, KindInternal) {
		t.Error("IsKind(nil) reported true")
	}
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("socket closed")
	err := Internal(cause, "failed to load")
	if !errors.Is(err, cause) {
		t.Fatalf("cause lost: %v", err)
	}
}

func TestSlotStart(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+30*60)
	got, err := SlotStart("2025-08-15", "10:00 - 10:30", loc)
	if err != nil {
		t.Fatalf("SlotStart: %v", err)
	}
	want := time.Date(2025, 8, 15, 4, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("SlotStart = %s, want %s", got.UTC(), want)
	}
	if FormatAppointmentTime(got) != "Fri, 15 Aug 2025 10:00 +0530" {
		t.Errorf("FormatAppointmentTime = %q", FormatAppointmentTime(got))
	}

	if _, err := SlotStart("2025-02-30", "10:00 - 10:30", loc); !IsKind(err, KindValidation) {
		t.Errorf("bad date err = %v", err)
	}
	if _, err := SlotStart("2025-08-15", "ten", loc); !IsKind(err, KindValidation) {
		t.Errorf("bad label err = %v", err)
	}
}

func TestSessionClaimsRoundTrip(t *testing.T) {
	secret := []byte("s3cret")

	tok, err := GenerateToken(secret, "user-1", RoleCitizen, "", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := ExtractSessionClaims(secret, tok)
	if err != nil {
		t.Fatalf("ExtractSessionClaims: %v", err)
	}
	if claims.Subject != "user-1" || claims.Role != RoleCitizen {
		t.Errorf("claims = %+v", claims)
	}

	tok, _ = GenerateToken(secret, "officer-7", RoleOfficial, "auth-1", time.Hour)
	claims, err = ExtractSessionClaims(secret, tok)
	if err != nil || claims.AuthorityID != "auth-1" {
		t.Errorf("official claims = %+v, %v", claims, err)
	}

	if _, err := ExtractSessionClaims([]byte("other"), tok); err == nil {
		t.Error("token verified with wrong secret")
	}
	expired, _ := GenerateToken(secret, "user-1", RoleCitizen, "", -time.Minute)
	if _, err := ExtractSessionClaims(secret, expired); err == nil {
		t.Error("expired token accepted")
	}
	noAuthority, _ := GenerateToken(secret, "officer-7", RoleOfficial, "", time.Hour)
	if _, err := ExtractSessionClaims(secret, noAuthority); err == nil {
		t.Error("official token without authority accepted")
	}
}

func TestDescribeActor(t *testing.T) {
	if got := DescribeActor(models.Official("auth-1")); got != "official of auth-1" {
		t.Errorf("DescribeActor = %q", got)
	}
	if got := DescribeActor(models.Actor{}); got != "unknown" {
		t.Errorf("DescribeActor(zero) = %q", got)
	}
}

func TestSlotCacheKey(t *testing.T) {
	if got := SlotCacheKey("auth-1", ""); got != SlotCachePrefix+"auth-1:*all" {
		t.Errorf("SlotCacheKey = %q", got)
	}
}
