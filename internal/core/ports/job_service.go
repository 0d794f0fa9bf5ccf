package ports

import (
	"context"

	"github.com/wdream/freelancer-platform/internal/core/domain"
)

// CreateJobInput carries the client-supplied fields of a new posting.
type CreateJobInput struct {
	Title       string
	Description string
	Budget      *domain.Budget
	Duration    string
	Skills      []string
	Category    string
}

// SubmitProposalInput carries the freelancer-supplied fields of a proposal.
type SubmitProposalInput struct {
	CoverLetter       string
	ProposedRate      float64
	EstimatedDuration string
	Attachments       []string
}

// JobService defines use-case operations for jobs and their proposals.
type JobService interface {
	Create(ctx context.Context, ownerID string, in CreateJobInput) (*domain.Job, error)
	List(ctx context.Context) ([]*domain.Job, error)
	Get(ctx context.Context, id string) (*domain.JobDetail, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Job, error)
	Update(ctx context.Context, id, callerID string, patch domain.JobPatch) (*domain.Job, error)
	Delete(ctx context.Context, id, callerID string) error
	SubmitProposal(ctx context.Context, jobID, freelancerID string, in SubmitProposalInput) (*domain.Proposal, error)
}
