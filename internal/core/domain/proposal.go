package domain

import "time"

// ProposalStatus represents where a proposal is in the hiring flow.
type ProposalStatus string

const (
	ProposalPending   ProposalStatus = "pending"
	ProposalAccepted  ProposalStatus = "accepted"
	ProposalRejected  ProposalStatus = "rejected"
	ProposalWithdrawn ProposalStatus = "withdrawn"
)

// Proposal is a freelancer's bid on a job. At most one exists per
// (JobID, FreelancerID) pair.
type Proposal struct {
	ID                string
	JobID             string
	FreelancerID      string
	CoverLetter       string
	ProposedRate      float64
	EstimatedDuration string
	Attachments       []string
	Status            ProposalStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
