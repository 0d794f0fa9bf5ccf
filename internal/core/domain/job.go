package domain

import (
	"strings"
	"time"
)

// JobStatus represents the lifecycle state of a job posting.
type JobStatus string

const (
	JobStatusOpen       JobStatus = "open"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// Valid reports whether s is a known job status.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusOpen, JobStatusInProgress, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// JobDuration is the expected length of the engagement.
type JobDuration string

const (
	DurationLessThanWeek        JobDuration = "less_than_week"
	DurationOneToFourWeeks      JobDuration = "one_to_four_weeks"
	DurationOneToThreeMonths    JobDuration = "one_to_three_months"
	DurationMoreThanThreeMonths JobDuration = "more_than_three_months"
)

// Valid reports whether d is one of the four duration buckets.
func (d JobDuration) Valid() bool {
	switch d {
	case DurationLessThanWeek, DurationOneToFourWeeks, DurationOneToThreeMonths, DurationMoreThanThreeMonths:
		return true
	}
	return false
}

const DefaultCurrency = "USD"

// MaxJobListSize bounds the public job listing.
const MaxJobListSize = 200

// Budget is the price range a client is willing to pay.
type Budget struct {
	Min      *float64
	Max      *float64
	Currency string
}

// Job is a posting owned by a client. ClientID never changes after creation.
type Job struct {
	ID              string
	ClientID        string
	Title           string
	Description     string
	Budget          Budget
	Duration        JobDuration
	Skills          []string
	Category        string
	Status          JobStatus
	ProposalIDs     []string
	HiredFreelancer string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsOwnedBy reports whether userID is the client that posted the job.
func (j *Job) IsOwnedBy(userID string) bool {
	return userID != "" && j.ClientID == userID
}

// ApplyDefaults fills the fields a fresh posting gets when left empty and
// trims the title.
func (j *Job) ApplyDefaults() {
	j.Title = strings.TrimSpace(j.Title)
	if j.Budget.Currency == "" {
		j.Budget.Currency = DefaultCurrency
	}
	if j.Duration == "" {
		j.Duration = DurationOneToFourWeeks
	}
	if j.Status == "" {
		j.Status = JobStatusOpen
	}
	if j.Skills == nil {
		j.Skills = []string{}
	}
	if j.ProposalIDs == nil {
		j.ProposalIDs = []string{}
	}
}

// JobPatch is the whitelist of fields an owner may change. Nil means untouched.
type JobPatch struct {
	Title       *string
	Description *string
	Budget      *Budget
	Duration    *JobDuration
	Skills      *[]string
	Category    *string
	Status      *JobStatus
}

// Apply merges the patch onto j field by field.
func (p JobPatch) Apply(j *Job) {
	if p.Title != nil {
		j.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Budget != nil {
		b := *p.Budget
		if b.Currency == "" {
			b.Currency = DefaultCurrency
		}
		j.Budget = b
	}
	if p.Duration != nil {
		j.Duration = *p.Duration
	}
	if p.Skills != nil {
		j.Skills = append([]string{}, (*p.Skills)...)
	}
	if p.Category != nil {
		j.Category = *p.Category
	}
	if p.Status != nil {
		j.Status = *p.Status
	}
}

// JobDetail is a job with its proposals expanded in reference order.
type JobDetail struct {
	Job       *Job
	Proposals []*Proposal
}
