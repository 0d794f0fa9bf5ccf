package handler

import "time"

// --- Requests ---

type budgetRequest struct {
	Min      *float64 `json:"min" validate:"omitempty,gte=0"`
	Max      *float64 `json:"max" validate:"omitempty,gte=0"`
	Currency string   `json:"currency" validate:"omitempty,len=3"`
}

type createJobRequest struct {
	Title       string         `json:"title" validate:"max=200" example:"Build a landing page"`
	Description string         `json:"description" validate:"max=10000" example:"React + Tailwind, 5 sections"`
	Budget      *budgetRequest `json:"budget"`
	Duration    string         `json:"duration" example:"one_to_four_weeks"`
	Skills      []string       `json:"skills" validate:"max=50,dive,max=50"`
	Category    string         `json:"category" validate:"max=100" example:"web-development"`
}

// updateJobRequest lists every field an owner may change. Any other key in
// the body is rejected.
type updateJobRequest struct {
	Title       *string        `json:"title" validate:"omitempty,max=200"`
	Description *string        `json:"description" validate:"omitempty,max=10000"`
	Budget      *budgetRequest `json:"budget"`
	Duration    *string        `json:"duration"`
	Skills      *[]string      `json:"skills" validate:"omitempty,max=50,dive,max=50"`
	Category    *string        `json:"category" validate:"omitempty,max=100"`
	Status      *string        `json:"status"`
}

type submitProposalRequest struct {
	CoverLetter       string   `json:"coverLetter" validate:"max=5000" example:"I have built 20 landing pages."`
	ProposedRate      float64  `json:"proposedRate" validate:"gte=0" example:"45"`
	EstimatedDuration string   `json:"estimatedDuration" validate:"max=100" example:"2 weeks"`
	Attachments       []string `json:"attachments" validate:"max=10,dive,required,max=2048"`
}

// --- Responses ---

type budgetResponse struct {
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Currency string   `json:"currency"`
}

type jobResponse struct {
	ID              string         `json:"id"`
	ClientID        string         `json:"clientId"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Budget          budgetResponse `json:"budget"`
	Duration        string         `json:"duration"`
	Skills          []string       `json:"skills"`
	Category        string         `json:"category,omitempty"`
	Status          string         `json:"status"`
	Proposals       []string       `json:"proposals"`
	HiredFreelancer string         `json:"hiredFreelancer,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// jobDetailResponse is a job with its proposals expanded in place.
type jobDetailResponse struct {
	jobResponse
	Proposals []proposalResponse `json:"proposals"`
}

type proposalResponse struct {
	ID                string    `json:"id"`
	JobID             string    `json:"jobId"`
	FreelancerID      string    `json:"freelancerId"`
	CoverLetter       string    `json:"coverLetter"`
	ProposedRate      float64   `json:"proposedRate"`
	EstimatedDuration string    `json:"estimatedDuration"`
	Attachments       []string  `json:"attachments"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type jobEnvelope struct {
	Success bool        `json:"success"`
	Job     jobResponse `json:"job"`
}

type jobDetailEnvelope struct {
	Success bool              `json:"success"`
	Job     jobDetailResponse `json:"job"`
}

type jobListEnvelope struct {
	Success bool          `json:"success"`
	Count   int           `json:"count"`
	Jobs    []jobResponse `json:"jobs"`
}

type proposalEnvelope struct {
	Success  bool             `json:"success"`
	Proposal proposalResponse `json:"proposal"`
}
