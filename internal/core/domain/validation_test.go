package domain

import (
	"errors"
	"strings"
	"testing"
)

func validRegistration() Registration {
	return Registration{
		Email:     "a@b.com",
		Password:  "secret1",
		Role:      RoleClient,
		FirstName: "A",
		LastName:  "B",
	}
}

func TestValidateRegistration(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Registration)
		wantMsg string
		field   string
	}{
		{"valid", func(*Registration) {}, "", ""},
		{"missing email", func(r *Registration) { r.Email = "  " }, "Please provide all required fields", "email"},
		{"missing last name", func(r *Registration) { r.LastName = "" }, "Please provide all required fields", "lastName"},
		{"bad role", func(r *Registration) { r.Role = "admin" }, `Invalid role. Must be either "client" or "freelancer"`, "role"},
		{"bad email", func(r *Registration) { r.Email = "not-an-email" }, "Please provide a valid email", "email"},
		{"short password", func(r *Registration) { r.Password = "abc" }, "Password must be at least 6 characters", "password"},
		{"long password", func(r *Registration) { r.Password = strings.Repeat("x", 73) }, "Password must be at most 72 bytes", "password"},
		{"multibyte password over limit", func(r *Registration) { r.Password = strings.Repeat("é", 37) }, "Password must be at most 72 bytes", "password"},
		{"password at limit", func(r *Registration) { r.Password = strings.Repeat("x", 72) }, "", ""},
	}

	for _, tc := range cases {
		r := validRegistration()
		tc.mutate(&r)
		err := ValidateRegistration(r)
		if tc.wantMsg == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tc.name, err)
			}
			continue
		}

		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%s: expected *ValidationError, got %v", tc.name, err)
		}
		if ve.Message != tc.wantMsg {
			t.Errorf("%s: message = %q, want %q", tc.name, ve.Message, tc.wantMsg)
		}
		found := false
		for _, f := range ve.Fields {
			if f.Field == tc.field {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: expected field %q in %+v", tc.name, tc.field, ve.Fields)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}

func TestValidateJob(t *testing.T) {
	j := &Job{ClientID: "c1", Title: "Build API", Description: "Go service"}
	j.ApplyDefaults()
	if err := ValidateJob(j); err != nil {
		t.Fatalf("expected valid job, got %v", err)
	}

	j.Title = "   "
	var ve *ValidationError
	if err := ValidateJob(j); !errors.As(err, &ve) || ve.Message != "Title and description are required" {
		t.Fatalf("expected title validation error, got %v", err)
	}

	j.Title = "ok"
	j.Duration = "forever"
	if err := ValidateJob(j); !errors.As(err, &ve) || ve.Fields[0].Field != "duration" {
		t.Fatalf("expected duration validation error, got %v", err)
	}
}

func TestJob_ApplyDefaults(t *testing.T) {
	j := &Job{Title: "  Logo design  "}
	j.ApplyDefaults()

	if j.Title != "Logo design" {
		t.Errorf("title not trimmed: %q", j.Title)
	}
	if j.Budget.Currency != DefaultCurrency {
		t.Errorf("currency = %q, want %q", j.Budget.Currency, DefaultCurrency)
	}
	if j.Duration != DurationOneToFourWeeks {
		t.Errorf("duration = %q", j.Duration)
	}
	if j.Status != JobStatusOpen {
		t.Errorf("status = %q", j.Status)
	}
	if j.Skills == nil || j.ProposalIDs == nil {
		t.Error("slices must be non-nil")
	}
}

func TestJobPatch_Apply(t *testing.T) {
	j := &Job{ClientID: "owner", Title: "old", Description: "desc", Category: "web"}
	j.ApplyDefaults()

	title := " new title "
	status := JobStatusCancelled
	skills := []string{"go", "mongo"}
	JobPatch{Title: &title, Status: &status, Skills: &skills, Budget: &Budget{}}.Apply(j)

	if j.Title != "new title" {
		t.Errorf("title = %q", j.Title)
	}
	if j.Status != JobStatusCancelled {
		t.Errorf("status = %q", j.Status)
	}
	if len(j.Skills) != 2 {
		t.Errorf("skills = %v", j.Skills)
	}
	if j.Budget.Currency != DefaultCurrency {
		t.Errorf("budget currency default not applied: %q", j.Budget.Currency)
	}
	if j.ClientID != "owner" || j.Category != "web" || j.Description != "desc" {
		t.Errorf("untouched fields changed: %+v", j)
	}
}

func TestValidateProposal(t *testing.T) {
	p := &Proposal{CoverLetter: "hi", ProposedRate: 40, EstimatedDuration: "2 weeks"}
	if err := ValidateProposal(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p.ProposedRate = 0
	var ve *ValidationError
	if err := ValidateProposal(p); !errors.As(err, &ve) || ve.Fields[0].Field != "proposedRate" {
		t.Fatalf("expected proposedRate error, got %v", err)
	}
}

func TestAuthError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &AuthError{Kind: AuthExpired, Err: inner}
	if !errors.Is(err, inner) {
		t.Error("AuthError must unwrap to its cause")
	}
}
