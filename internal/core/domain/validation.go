package domain

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// fieldErrors accumulates rule failures for a single entity.
type fieldErrors []FieldError

func (fe *fieldErrors) add(field, msg string) {
	*fe = append(*fe, FieldError{Field: field, Message: msg})
}

func (fe fieldErrors) has(field string) bool {
	for _, f := range fe {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Registration is the raw input for creating an account.
type Registration struct {
	Email     string
	Password  string
	Role      string
	FirstName string
	LastName  string
}

// ValidateRegistration checks required fields, email shape, password length
// and role. It returns nil or a *ValidationError.
func ValidateRegistration(r Registration) error {
	var missing fieldErrors
	for _, f := range []struct{ name, val string }{
		{"email", r.Email},
		{"password", r.Password},
		{"role", r.Role},
		{"firstName", r.FirstName},
		{"lastName", r.LastName},
	} {
		if strings.TrimSpace(f.val) == "" {
			missing.add(f.name, f.name+" is required")
		}
	}
	if len(missing) > 0 {
		return NewValidationError("Please provide all required fields", missing...)
	}

	if !ValidRole(r.Role) {
		return NewValidationError(`Invalid role. Must be either "client" or "freelancer"`,
			FieldError{Field: "role", Message: r.Role + " is not a valid role"})
	}

	var errs fieldErrors
	if !emailPattern.MatchString(NormalizeEmail(r.Email)) {
		errs.add("email", "Please provide a valid email")
	}
	if len(r.Password) < MinPasswordLength {
		errs.add("password", "Password must be at least 6 characters")
	}
	if len(r.Password) > MaxPasswordLength {
		errs.add("password", "Password must be at most 72 bytes")
	}
	if len(errs) > 0 {
		return NewValidationError(errs[0].Message, errs...)
	}
	return nil
}

// ValidateJob checks the store-level constraints of a job posting.
func ValidateJob(j *Job) error {
	var errs fieldErrors
	if strings.TrimSpace(j.ClientID) == "" {
		errs.add("clientId", "Job owner is required")
	}
	if strings.TrimSpace(j.Title) == "" {
		errs.add("title", "Job title is required")
	}
	if strings.TrimSpace(j.Description) == "" {
		errs.add("description", "Job description is required")
	}
	if !j.Duration.Valid() {
		errs.add("duration", string(j.Duration)+" is not a valid duration")
	}
	if !j.Status.Valid() {
		errs.add("status", string(j.Status)+" is not a valid status")
	}
	if j.Budget.Min != nil && *j.Budget.Min < 0 {
		errs.add("budget.min", "Budget minimum cannot be negative")
	}
	if j.Budget.Max != nil && *j.Budget.Max < 0 {
		errs.add("budget.max", "Budget maximum cannot be negative")
	}
	if len(errs) == 0 {
		return nil
	}
	if errs.has("title") || errs.has("description") {
		return NewValidationError("Title and description are required", errs...)
	}
	return NewValidationError(errs[0].Message, errs...)
}

// ValidateProposal checks the required fields of a proposal.
func ValidateProposal(p *Proposal) error {
	var errs fieldErrors
	if strings.TrimSpace(p.CoverLetter) == "" {
		errs.add("coverLetter", "Cover letter is required")
	}
	if p.ProposedRate <= 0 {
		errs.add("proposedRate", "Proposed rate is required")
	}
	if strings.TrimSpace(p.EstimatedDuration) == "" {
		errs.add("estimatedDuration", "Estimated duration is required")
	}
	if len(errs) > 0 {
		return NewValidationError("Missing required fields", errs...)
	}
	return nil
}
