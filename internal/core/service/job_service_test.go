package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/wdream/freelancer-platform/internal/core/domain"
	"github.com/wdream/freelancer-platform/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubJobRepo struct {
	byID    map[string]*domain.Job
	nextID  int
	baseNow time.Time
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{byID: make(map[string]*domain.Job), baseNow: time.Now().UTC()}
}

func cloneJob(j *domain.Job) *domain.Job {
	clone := *j
	clone.Skills = append([]string{}, j.Skills...)
	clone.ProposalIDs = append([]string{}, j.ProposalIDs...)
	return &clone
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) (*domain.Job, error) {
	r.nextID++
	stored := cloneJob(job)
	stored.ID = fmt.Sprintf("job-%d", r.nextID)
	// Strictly increasing creation times keep ordering deterministic.
	stored.CreatedAt = r.baseNow.Add(time.Duration(r.nextID) * time.Second)
	r.byID[stored.ID] = stored
	return cloneJob(stored), nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	if !strings.HasPrefix(id, "job-") {
		return nil, domain.ErrInvalidID
	}
	j, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return cloneJob(j), nil
}

func (r *stubJobRepo) List(_ context.Context, f ports.ListJobsFilter) ([]*domain.Job, error) {
	var out []*domain.Job
	for _, j := range r.byID {
		if f.ClientID != "" && j.ClientID != f.ClientID {
			continue
		}
		out = append(out, cloneJob(j))
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *stubJobRepo) Update(_ context.Context, job *domain.Job, patch domain.JobPatch) (*domain.Job, error) {
	current, ok := r.byID[job.ID]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	stored := cloneJob(current)
	patch.Apply(stored)
	stored.UpdatedAt = time.Now().UTC()
	r.byID[job.ID] = stored
	return cloneJob(stored), nil
}

func (r *stubJobRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubJobRepo) AppendProposal(_ context.Context, jobID, proposalID string) error {
	j, ok := r.byID[jobID]
	if !ok {
		return domain.ErrJobNotFound
	}
	j.ProposalIDs = append(j.ProposalIDs, proposalID)
	return nil
}

type stubProposalRepo struct {
	byID   map[string]*domain.Proposal
	nextID int
}

func newStubProposalRepo() *stubProposalRepo {
	return &stubProposalRepo{byID: make(map[string]*domain.Proposal)}
}

func (r *stubProposalRepo) Create(_ context.Context, p *domain.Proposal) (*domain.Proposal, error) {
	for _, existing := range r.byID {
		if existing.JobID == p.JobID && existing.FreelancerID == p.FreelancerID {
			return nil, domain.ErrProposalExists
		}
	}
	r.nextID++
	stored := *p
	stored.ID = fmt.Sprintf("proposal-%d", r.nextID)
	r.byID[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *stubProposalRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Proposal, error) {
	var out []*domain.Proposal
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			clone := *p
			out = append(out, &clone)
		}
	}
	// Reverse to prove the service restores reference order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (r *stubProposalRepo) DeleteAllForJob(_ context.Context, jobID string) (int64, error) {
	var n int64
	for id, p := range r.byID {
		if p.JobID == jobID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

type stubTx struct{ calls int }

func (t *stubTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type jobFixture struct {
	svc       *JobService
	jobs      *stubJobRepo
	proposals *stubProposalRepo
	users     *stubUserRepo
	tx        *stubTx
	client    *domain.User
	other     *domain.User
	freelance *domain.User
}

func newJobFixture(t *testing.T) *jobFixture {
	t.Helper()
	f := &jobFixture{
		jobs:      newStubJobRepo(),
		proposals: newStubProposalRepo(),
		users:     newStubUserRepo(),
		tx:        &stubTx{},
	}
	f.svc = NewJobService(f.jobs, f.proposals, f.users, f.tx, zerolog.Nop())
	f.client = f.addUser(t, "client@example.com", domain.RoleClient)
	f.other = f.addUser(t, "other@example.com", domain.RoleClient)
	f.freelance = f.addUser(t, "free@example.com", domain.RoleFreelancer)
	return f
}

func (f *jobFixture) addUser(t *testing.T, email, role string) *domain.User {
	t.Helper()
	u := &domain.User{Email: email, Role: role, IsActive: true}
	if role == domain.RoleClient {
		u.ClientProfile = &domain.ClientProfile{}
	} else {
		u.FreelancerProfile = &domain.FreelancerProfile{}
	}
	created, err := f.users.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("add user: %v", err)
	}
	return created
}

func (f *jobFixture) postedJobs(id string) int {
	return f.users.byID[id].ClientProfile.PostedJobs
}

func (f *jobFixture) createJob(t *testing.T, ownerID, title string) *domain.Job {
	t.Helper()
	job, err := f.svc.Create(context.Background(), ownerID, ports.CreateJobInput{
		Title:       title,
		Description: "Description for " + title,
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	return job
}

func proposalInput() ports.SubmitProposalInput {
	return ports.SubmitProposalInput{CoverLetter: "I can do it", ProposedRate: 50, EstimatedDuration: "2 weeks"}
}

// ---------------------------------------------------------------------------
// Create / List / Get
// ---------------------------------------------------------------------------

func TestJobService_Create(t *testing.T) {
	f := newJobFixture(t)
	lo, hi := 100.0, 500.0

	job, err := f.svc.Create(context.Background(), f.client.ID, ports.CreateJobInput{
		Title:       "  Build a landing page ",
		Description: "React + Tailwind",
		Budget:      &domain.Budget{Min: &lo, Max: &hi},
		Skills:      []string{"react"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if job.Title != "Build a landing page" {
		t.Errorf("title = %q", job.Title)
	}
	if job.Status != domain.JobStatusOpen || job.Duration != domain.DurationOneToFourWeeks {
		t.Errorf("defaults not applied: status=%q duration=%q", job.Status, job.Duration)
	}
	if job.Budget.Currency != domain.DefaultCurrency {
		t.Errorf("currency = %q", job.Budget.Currency)
	}
	if job.ClientID != f.client.ID || len(job.ProposalIDs) != 0 {
		t.Errorf("unexpected job: %+v", job)
	}
	if got := f.postedJobs(f.client.ID); got != 1 {
		t.Errorf("posted jobs = %d, want 1", got)
	}
	if f.tx.calls != 1 {
		t.Errorf("transaction calls = %d, want 1", f.tx.calls)
	}
}

func TestJobService_Create_Validation(t *testing.T) {
	f := newJobFixture(t)

	_, err := f.svc.Create(context.Background(), f.client.ID, ports.CreateJobInput{Title: "   ", Description: "x"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Message != "Title and description are required" {
		t.Fatalf("expected title validation error, got %v", err)
	}

	_, err = f.svc.Create(context.Background(), f.client.ID, ports.CreateJobInput{Title: "t", Description: "d", Duration: "forever"})
	if !errors.As(err, &ve) {
		t.Fatalf("expected duration validation error, got %v", err)
	}
	if got := f.postedJobs(f.client.ID); got != 0 {
		t.Errorf("posted jobs = %d, want 0", got)
	}
}

func TestJobService_List_NewestFirstAndBounded(t *testing.T) {
	f := newJobFixture(t)
	for i := 0; i < domain.MaxJobListSize+5; i++ {
		f.createJob(t, f.client.ID, fmt.Sprintf("job %d", i))
	}

	jobs, err := f.svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(jobs) != domain.MaxJobListSize {
		t.Fatalf("len = %d, want %d", len(jobs), domain.MaxJobListSize)
	}
	for i := 1; i < len(jobs); i++ {
		if jobs[i].CreatedAt.After(jobs[i-1].CreatedAt) {
			t.Fatalf("jobs not ordered newest first at index %d", i)
		}
	}
	if jobs[0].Title != fmt.Sprintf("job %d", domain.MaxJobListSize+4) {
		t.Errorf("first job = %q", jobs[0].Title)
	}
}

func TestJobService_ListByOwner(t *testing.T) {
	f := newJobFixture(t)
	f.createJob(t, f.client.ID, "mine 1")
	f.createJob(t, f.other.ID, "theirs")
	f.createJob(t, f.client.ID, "mine 2")

	jobs, err := f.svc.ListByOwner(context.Background(), f.client.ID)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(jobs) != 2 || jobs[0].Title != "mine 2" || jobs[1].Title != "mine 1" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
}

func TestJobService_Get_ExpandsProposalsInOrder(t *testing.T) {
	f := newJobFixture(t)
	job := f.createJob(t, f.client.ID, "expand")
	second := f.addUser(t, "free2@example.com", domain.RoleFreelancer)

	p1, err := f.svc.SubmitProposal(context.Background(), job.ID, f.freelance.ID, proposalInput())
	if err != nil {
		t.Fatalf("submit 1: %v", err)
	}
	p2, err := f.svc.SubmitProposal(context.Background(), job.ID, second.ID, proposalInput())
	if err != nil {
		t.Fatalf("submit 2: %v", err)
	}

	detail, err := f.svc.Get(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(detail.Proposals) != 2 || detail.Proposals[0].ID != p1.ID || detail.Proposals[1].ID != p2.ID {
		t.Fatalf("proposals not in reference order: %+v", detail.Proposals)
	}
}

func TestJobService_Get_NotFound(t *testing.T) {
	f := newJobFixture(t)
	for _, id := range []string{"job-999", "not-an-id"} {
		if _, err := f.svc.Get(context.Background(), id); !errors.Is(err, domain.ErrJobNotFound) {
			t.Errorf("%s: expected ErrJobNotFound, got %v", id, err)
		}
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestJobService_Update(t *testing.T) {
	f := newJobFixture(t)
	job := f.createJob(t, f.client.ID, "original")

	title := "renamed"
	status := domain.JobStatusInProgress
	updated, err := f.svc.Update(context.Background(), job.ID, f.client.ID, domain.JobPatch{Title: &title, Status: &status})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "renamed" || updated.Status != domain.JobStatusInProgress {
		t.Errorf("patch not applied: %+v", updated)
	}
	if updated.ClientID != f.client.ID {
		t.Errorf("owner changed: %q", updated.ClientID)
	}
}

func TestJobService_Update_NonOwnerForbidden(t *testing.T) {
	f := newJobFixture(t)
	job := f.createJob(t, f.client.ID, "original")

	title := "hijacked"
	if _, err := f.svc.Update(context.Background(), job.ID, f.other.ID, domain.JobPatch{Title: &title}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if f.jobs.byID[job.ID].Title != "original" {
		t.Error("job must be unchanged after forbidden update")
	}
}

func TestJobService_Update_InvalidPatch(t *testing.T) {
	f := newJobFixture(t)
	job := f.createJob(t, f.client.ID, "original")

	bad := domain.JobStatus("archived")
	var ve *domain.ValidationError
	if _, err := f.svc.Update(context.Background(), job.ID, f.client.ID, domain.JobPatch{Status: &bad}); !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := f.svc.Update(context.Background(), "bogus", f.client.ID, domain.JobPatch{}); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound for malformed id, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestJobService_Delete_CascadesAndDecrements(t *testing.T) {
	f := newJobFixture(t)
	job := f.createJob(t, f.client.ID, "doomed")
	keep := f.createJob(t, f.client.ID, "kept")
	if _, err := f.svc.SubmitProposal(context.Background(), job.ID, f.freelance.ID, proposalInput()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := f.svc.SubmitProposal(context.Background(), keep.ID, f.freelance.ID, proposalInput()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := f.postedJobs(f.client.ID); got != 2 {
		t.Fatalf("posted jobs = %d, want 2", got)
	}

	if err := f.svc.Delete(context.Background(), job.ID, f.client.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, ok := f.jobs.byID[job.ID]; ok {
		t.Error("job still present")
	}
	for _, p := range f.proposals.byID {
		if p.JobID == job.ID {
			t.Errorf("proposal %s of deleted job survived", p.ID)
		}
	}
	if len(f.proposals.byID) != 1 {
		t.Errorf("proposals of other jobs must survive, have %d", len(f.proposals.byID))
	}
	if got := f.postedJobs(f.client.ID); got != 1 {
		t.Errorf("posted jobs = %d, want 1", got)
	}
}

func TestJobService_Delete_Errors(t *testing.T) {
	f := newJobFixture(t)
	job := f.createJob(t, f.client.ID, "guarded")

	if err := f.svc.Delete(context.Background(), "bogus", f.client.ID); !errors.Is(err, domain.ErrInvalidID) {
		t.Errorf("malformed id: expected ErrInvalidID, got %v", err)
	}
	if err := f.svc.Delete(context.Background(), "job-999", f.client.ID); !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("missing job: expected ErrJobNotFound, got %v", err)
	}
	if err := f.svc.Delete(context.Background(), job.ID, f.other.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("non-owner: expected ErrForbidden, got %v", err)
	}
	if _, ok := f.jobs.byID[job.ID]; !ok {
		t.Error("job must survive failed deletes")
	}
	if got := f.postedJobs(f.client.ID); got != 1 {
		t.Errorf("posted jobs = %d, want 1", got)
	}
}

// ---------------------------------------------------------------------------
// SubmitProposal
// ---------------------------------------------------------------------------

func TestJobService_SubmitProposal(t *testing.T) {
	f := newJobFixture(t)
	job := f.createJob(t, f.client.ID, "bid on me")

	p, err := f.svc.SubmitProposal(context.Background(), job.ID, f.freelance.ID, ports.SubmitProposalInput{
		CoverLetter:       "Hello",
		ProposedRate:      75,
		EstimatedDuration: "1 month",
		Attachments:       []string{"https://example.com/cv.pdf"},
	})
	if err != nil {
		t.Fatalf("SubmitProposal: %v", err)
	}
	if p.Status != domain.ProposalPending || p.JobID != job.ID || p.FreelancerID != f.freelance.ID {
		t.Errorf("unexpected proposal: %+v", p)
	}
	refs := f.jobs.byID[job.ID].ProposalIDs
	if len(refs) != 1 || refs[0] != p.ID {
		t.Errorf("job references = %v, want [%s]", refs, p.ID)
	}
}

func TestJobService_SubmitProposal_Duplicate(t *testing.T) {
	f := newJobFixture(t)
	job := f.createJob(t, f.client.ID, "popular")

	if _, err := f.svc.SubmitProposal(context.Background(), job.ID, f.freelance.ID, proposalInput()); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := f.svc.SubmitProposal(context.Background(), job.ID, f.freelance.ID, proposalInput()); !errors.Is(err, domain.ErrProposalExists) {
		t.Fatalf("expected ErrProposalExists, got %v", err)
	}

	second := f.addUser(t, "free2@example.com", domain.RoleFreelancer)
	if _, err := f.svc.SubmitProposal(context.Background(), job.ID, second.ID, proposalInput()); err != nil {
		t.Fatalf("a different freelancer must be able to submit: %v", err)
	}
	if refs := f.jobs.byID[job.ID].ProposalIDs; len(refs) != 2 {
		t.Errorf("job references = %v, want 2", refs)
	}
}

func TestJobService_SubmitProposal_Errors(t *testing.T) {
	f := newJobFixture(t)
	job := f.createJob(t, f.client.ID, "strict")

	var ve *domain.ValidationError
	in := proposalInput()
	in.CoverLetter = ""
	if _, err := f.svc.SubmitProposal(context.Background(), job.ID, f.freelance.ID, in); !errors.As(err, &ve) || ve.Message != "Missing required fields" {
		t.Errorf("expected validation error, got %v", err)
	}

	for _, id := range []string{"job-999", "garbage"} {
		if _, err := f.svc.SubmitProposal(context.Background(), id, f.freelance.ID, proposalInput()); !errors.Is(err, domain.ErrJobNotFound) {
			t.Errorf("%s: expected ErrJobNotFound, got %v", id, err)
		}
	}
}
