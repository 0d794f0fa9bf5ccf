package ports

import (
	"context"

	"github.com/wdream/freelancer-platform/internal/core/domain"
)

// ListJobsFilter narrows a job listing. Results are always newest first.
type ListJobsFilter struct {
	ClientID string // empty = all owners
	Limit    int    // 0 = unbounded
}

// JobRepository defines persistence operations for job postings.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	// FindByID returns domain.ErrInvalidID for malformed ids and
	// domain.ErrJobNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context, filter ListJobsFilter) ([]*domain.Job, error)
	// Update writes only the fields named by patch, taking their values from
	// the merged job, and refreshes UpdatedAt. Other fields keep whatever the
	// store currently holds.
	Update(ctx context.Context, job *domain.Job, patch domain.JobPatch) (*domain.Job, error)
	Delete(ctx context.Context, id string) error
	AppendProposal(ctx context.Context, jobID, proposalID string) error
}

// ProposalRepository defines persistence operations for proposals.
type ProposalRepository interface {
	// Create persists a proposal. A second proposal for the same
	// (job, freelancer) pair yields domain.ErrProposalExists.
	Create(ctx context.Context, p *domain.Proposal) (*domain.Proposal, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Proposal, error)
	DeleteAllForJob(ctx context.Context, jobID string) (int64, error)
}

// Transactor runs fn inside a single store transaction when the store
// supports it, or runs it directly otherwise.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
