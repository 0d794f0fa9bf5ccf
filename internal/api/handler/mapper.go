package handler

import (
	"github.com/wdream/freelancer-platform/internal/core/domain"
	"github.com/wdream/freelancer-platform/internal/core/ports"
)

func toUserResponse(u *domain.User) userResponse {
	resp := userResponse{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
		Profile: profileResponse{
			FirstName: u.Profile.FirstName,
			LastName:  u.Profile.LastName,
			Avatar:    u.Profile.Avatar,
			Bio:       u.Profile.Bio,
			Location:  u.Profile.Location,
			Phone:     u.Profile.Phone,
		},
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
	if fp := u.FreelancerProfile; fp != nil {
		portfolio := make([]portfolioEntryResponse, 0, len(fp.Portfolio))
		for _, p := range fp.Portfolio {
			portfolio = append(portfolio, portfolioEntryResponse(p))
		}
		resp.FreelancerProfile = &freelancerProfileResponse{
			Skills:        nonNilStrings(fp.Skills),
			HourlyRate:    fp.HourlyRate,
			Portfolio:     portfolio,
			Experience:    fp.Experience,
			Rating:        fp.Rating,
			CompletedJobs: fp.CompletedJobs,
		}
	}
	if cp := u.ClientProfile; cp != nil {
		resp.ClientProfile = &clientProfileResponse{
			CompanyName: cp.CompanyName,
			Industry:    cp.Industry,
			PostedJobs:  cp.PostedJobs,
		}
	}
	return resp
}

func toJobResponse(j *domain.Job) jobResponse {
	return jobResponse{
		ID:          j.ID,
		ClientID:    j.ClientID,
		Title:       j.Title,
		Description: j.Description,
		Budget: budgetResponse{
			Min:      j.Budget.Min,
			Max:      j.Budget.Max,
			Currency: j.Budget.Currency,
		},
		Duration:        string(j.Duration),
		Skills:          nonNilStrings(j.Skills),
		Category:        j.Category,
		Status:          string(j.Status),
		Proposals:       nonNilStrings(j.ProposalIDs),
		HiredFreelancer: j.HiredFreelancer,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
}

func toJobResponses(jobs []*domain.Job) []jobResponse {
	out := make([]jobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobResponse(j))
	}
	return out
}

func toJobDetailResponse(d *domain.JobDetail) jobDetailResponse {
	resp := jobDetailResponse{
		jobResponse: toJobResponse(d.Job),
		Proposals:   make([]proposalResponse, 0, len(d.Proposals)),
	}
	for _, p := range d.Proposals {
		resp.Proposals = append(resp.Proposals, toProposalResponse(p))
	}
	return resp
}

func toProposalResponse(p *domain.Proposal) proposalResponse {
	return proposalResponse{
		ID:                p.ID,
		JobID:             p.JobID,
		FreelancerID:      p.FreelancerID,
		CoverLetter:       p.CoverLetter,
		ProposedRate:      p.ProposedRate,
		EstimatedDuration: p.EstimatedDuration,
		Attachments:       nonNilStrings(p.Attachments),
		Status:            string(p.Status),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func (r *budgetRequest) toDomain() *domain.Budget {
	if r == nil {
		return nil
	}
	return &domain.Budget{Min: r.Min, Max: r.Max, Currency: r.Currency}
}

func (r createJobRequest) toInput() ports.CreateJobInput {
	return ports.CreateJobInput{
		Title:       r.Title,
		Description: r.Description,
		Budget:      r.Budget.toDomain(),
		Duration:    r.Duration,
		Skills:      r.Skills,
		Category:    r.Category,
	}
}

func (r updateJobRequest) toPatch() domain.JobPatch {
	patch := domain.JobPatch{
		Title:       r.Title,
		Description: r.Description,
		Budget:      r.Budget.toDomain(),
		Skills:      r.Skills,
		Category:    r.Category,
	}
	if r.Duration != nil {
		d := domain.JobDuration(*r.Duration)
		patch.Duration = &d
	}
	if r.Status != nil {
		s := domain.JobStatus(*r.Status)
		patch.Status = &s
	}
	return patch
}

func (r submitProposalRequest) toInput() ports.SubmitProposalInput {
	return ports.SubmitProposalInput{
		CoverLetter:       r.CoverLetter,
		ProposedRate:      r.ProposedRate,
		EstimatedDuration: r.EstimatedDuration,
		Attachments:       r.Attachments,
	}
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
