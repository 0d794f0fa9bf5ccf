package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/wdream/freelancer-platform/internal/core/domain"
	"github.com/wdream/freelancer-platform/internal/core/ports"
)

type JobService struct {
	jobs      ports.JobRepository
	proposals ports.ProposalRepository
	users     ports.UserRepository
	tx        ports.Transactor
	logger    zerolog.Logger
}

func NewJobService(
	jobs ports.JobRepository,
	proposals ports.ProposalRepository,
	users ports.UserRepository,
	tx ports.Transactor,
	logger zerolog.Logger,
) *JobService {
	return &JobService{jobs: jobs, proposals: proposals, users: users, tx: tx, logger: logger}
}

// Create persists a new open posting for ownerID and bumps the owner's
// posted-job counter.
func (s *JobService) Create(ctx context.Context, ownerID string, in ports.CreateJobInput) (*domain.Job, error) {
	now := time.Now().UTC()
	job := &domain.Job{
		ClientID:    ownerID,
		Title:       in.Title,
		Description: in.Description,
		Duration:    domain.JobDuration(strings.TrimSpace(in.Duration)),
		Skills:      append([]string{}, in.Skills...),
		Category:    in.Category,
		Status:      domain.JobStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Budget != nil {
		job.Budget = *in.Budget
	}
	job.ApplyDefaults()

	if err := domain.ValidateJob(job); err != nil {
		return nil, err
	}

	var created *domain.Job
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.jobs.Create(ctx, job)
		if err != nil {
			return fmt.Errorf("create job: %w", err)
		}
		if err := s.users.IncrementCounter(ctx, ownerID, domain.CounterPostedJobs, 1); err != nil {
			return fmt.Errorf("increment posted jobs: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("client_id", ownerID).Msg("failed to create job")
		return nil, err
	}

	s.logger.Info().Str("job_id", created.ID).Str("client_id", ownerID).Msg("job created")
	return created, nil
}

// List returns the most recent postings, newest first.
func (s *JobService) List(ctx context.Context) ([]*domain.Job, error) {
	return s.jobs.List(ctx, ports.ListJobsFilter{Limit: domain.MaxJobListSize})
}

func (s *JobService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Job, error) {
	return s.jobs.List(ctx, ports.ListJobsFilter{ClientID: ownerID})
}

// Get returns the job with its proposals expanded in reference order.
func (s *JobService) Get(ctx context.Context, id string) (*domain.JobDetail, error) {
	job, err := s.findJob(ctx, id)
	if err != nil {
		return nil, err
	}

	found, err := s.proposals.FindByIDs(ctx, job.ProposalIDs)
	if err != nil {
		return nil, fmt.Errorf("load proposals: %w", err)
	}
	byID := make(map[string]*domain.Proposal, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	detail := &domain.JobDetail{Job: job, Proposals: make([]*domain.Proposal, 0, len(job.ProposalIDs))}
	for _, pid := range job.ProposalIDs {
		if p, ok := byID[pid]; ok {
			detail.Proposals = append(detail.Proposals, p)
		}
	}
	return detail, nil
}

// Update merges the whitelisted patch onto a job owned by callerID.
func (s *JobService) Update(ctx context.Context, id, callerID string, patch domain.JobPatch) (*domain.Job, error) {
	job, err := s.findJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if !job.IsOwnedBy(callerID) {
		return nil, domain.ErrForbidden
	}

	patch.Apply(job)
	if err := domain.ValidateJob(job); err != nil {
		return nil, err
	}

	updated, err := s.jobs.Update(ctx, job, patch)
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return updated, nil
}

// Delete removes a job owned by callerID together with its proposals and
// decrements the owner's posted-job counter.
func (s *JobService) Delete(ctx context.Context, id, callerID string) error {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !job.IsOwnedBy(callerID) {
		return domain.ErrForbidden
	}

	var removed int64
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		if removed, err = s.proposals.DeleteAllForJob(ctx, job.ID); err != nil {
			return fmt.Errorf("delete proposals: %w", err)
		}
		if err := s.jobs.Delete(ctx, job.ID); err != nil {
			return fmt.Errorf("delete job: %w", err)
		}
		if err := s.users.IncrementCounter(ctx, job.ClientID, domain.CounterPostedJobs, -1); err != nil {
			return fmt.Errorf("decrement posted jobs: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("job_id", job.ID).Msg("failed to delete job")
		return err
	}

	s.logger.Info().Str("job_id", job.ID).Int64("proposals_removed", removed).Msg("job deleted")
	return nil
}

// SubmitProposal records freelancerID's bid on a job and links it to the job.
func (s *JobService) SubmitProposal(ctx context.Context, jobID, freelancerID string, in ports.SubmitProposalInput) (*domain.Proposal, error) {
	now := time.Now().UTC()
	proposal := &domain.Proposal{
		JobID:             jobID,
		FreelancerID:      freelancerID,
		CoverLetter:       in.CoverLetter,
		ProposedRate:      in.ProposedRate,
		EstimatedDuration: in.EstimatedDuration,
		Attachments:       append([]string{}, in.Attachments...),
		Status:            domain.ProposalPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := domain.ValidateProposal(proposal); err != nil {
		return nil, err
	}

	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	proposal.JobID = job.ID

	var created *domain.Proposal
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		if created, err = s.proposals.Create(ctx, proposal); err != nil {
			return err
		}
		if err := s.jobs.AppendProposal(ctx, job.ID, created.ID); err != nil {
			return fmt.Errorf("link proposal: %w", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrProposalExists) {
			s.logger.Error().Err(err).Str("job_id", job.ID).Msg("failed to submit proposal")
		}
		return nil, err
	}

	s.logger.Info().Str("job_id", job.ID).Str("proposal_id", created.ID).Str("freelancer_id", freelancerID).Msg("proposal submitted")
	return created, nil
}

// findJob treats a malformed id the same as a missing job.
func (s *JobService) findJob(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if errors.Is(err, domain.ErrInvalidID) {
		return nil, domain.ErrJobNotFound
	}
	return job, err
}
