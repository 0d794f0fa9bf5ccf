package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wdream/freelancer-platform/internal/core/domain"
)

func TestJobDocumentMapping(t *testing.T) {
	owner := primitive.NewObjectID().Hex()
	proposal := primitive.NewObjectID().Hex()
	lo := 10.0
	now := time.Now().UTC().Truncate(time.Millisecond)

	job := &domain.Job{
		ClientID:    owner,
		Title:       "Logo",
		Description: "Vector logo",
		Budget:      domain.Budget{Min: &lo, Currency: "EUR"},
		Duration:    domain.DurationLessThanWeek,
		Status:      domain.JobStatusOpen,
		ProposalIDs: []string{proposal},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	doc, err := toMongoJob(job)
	if err != nil {
		t.Fatalf("toMongoJob: %v", err)
	}
	if doc.Skills == nil {
		t.Error("skills must be stored as an empty array, not null")
	}

	back := doc.toDomain()
	if back.ClientID != owner || back.Budget.Currency != "EUR" || *back.Budget.Min != 10 {
		t.Errorf("unexpected round trip: %+v", back)
	}
	if len(back.ProposalIDs) != 1 || back.ProposalIDs[0] != proposal {
		t.Errorf("proposal ids = %v", back.ProposalIDs)
	}
	if back.HiredFreelancer != "" {
		t.Errorf("hired freelancer = %q", back.HiredFreelancer)
	}
}

func TestJobDocumentMapping_BadOwner(t *testing.T) {
	if _, err := toMongoJob(&domain.Job{ClientID: "nope"}); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestUserDocumentMapping(t *testing.T) {
	u := &domain.User{
		Email:        "  Mixed@Case.io ",
		PasswordHash: "hash",
		Role:         domain.RoleFreelancer,
		Profile:      domain.Profile{FirstName: "A", LastName: "B"},
		FreelancerProfile: &domain.FreelancerProfile{
			Portfolio: []domain.PortfolioEntry{{Title: "Site", URL: "https://x.io"}},
		},
		IsActive: true,
	}

	doc := toMongoUser(u)
	if doc.Email != "mixed@case.io" {
		t.Errorf("email = %q", doc.Email)
	}
	if doc.ClientProfile != nil {
		t.Error("freelancer must not get a client profile")
	}

	back := doc.toDomain()
	if back.FreelancerProfile == nil || len(back.FreelancerProfile.Portfolio) != 1 {
		t.Fatalf("portfolio lost: %+v", back.FreelancerProfile)
	}
	if back.FreelancerProfile.Skills == nil {
		t.Error("skills must be non-nil")
	}
}

func TestRepositories_RejectMalformedIDs(t *testing.T) {
	ctx := context.Background()
	jobs := &JobRepository{}
	users := &UserRepository{}
	proposals := &ProposalRepository{}

	if _, err := jobs.FindByID(ctx, "xyz"); !errors.Is(err, domain.ErrInvalidID) {
		t.Errorf("jobs.FindByID: %v", err)
	}
	if err := jobs.Delete(ctx, "xyz"); !errors.Is(err, domain.ErrInvalidID) {
		t.Errorf("jobs.Delete: %v", err)
	}
	if _, err := users.FindByID(ctx, "xyz"); !errors.Is(err, domain.ErrInvalidID) {
		t.Errorf("users.FindByID: %v", err)
	}
	if err := users.IncrementCounter(ctx, "xyz", domain.CounterPostedJobs, 1); !errors.Is(err, domain.ErrInvalidID) {
		t.Errorf("users.IncrementCounter: %v", err)
	}
	if _, err := proposals.DeleteAllForJob(ctx, "xyz"); !errors.Is(err, domain.ErrInvalidID) {
		t.Errorf("proposals.DeleteAllForJob: %v", err)
	}
	if got, err := proposals.FindByIDs(ctx, nil); err != nil || len(got) != 0 {
		t.Errorf("proposals.FindByIDs(nil) = %v, %v", got, err)
	}
}

func TestTransactor_Disabled(t *testing.T) {
	called := false
	err := NewTransactor(nil, true).WithTransaction(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	if err != nil || !called {
		t.Fatalf("expected direct call, got called=%v err=%v", called, err)
	}
}

func TestUpdateSet_OnlyPatchedFields(t *testing.T) {
	title := "  Renamed  "
	job := &domain.Job{
		Title:       "Renamed",
		Description: "stale description from an earlier read",
		Status:      domain.JobStatusOpen,
		Budget:      domain.Budget{Currency: "USD"},
	}

	set := updateSet(job, domain.JobPatch{Title: &title})
	if len(set) != 2 {
		t.Fatalf("expected title and updated_at only, got %v", set)
	}
	if set["title"] != "Renamed" {
		t.Errorf("title = %v, want the merged value", set["title"])
	}
	if _, ok := set["updated_at"]; !ok {
		t.Error("updated_at must always be refreshed")
	}
	for _, k := range []string{"description", "budget", "status", "skills", "duration", "category"} {
		if _, ok := set[k]; ok {
			t.Errorf("%s must not be written when absent from the patch", k)
		}
	}

	skills := []string{}
	status := domain.JobStatusCompleted
	job.Status = status
	set = updateSet(job, domain.JobPatch{Skills: &skills, Status: &status})
	if set["status"] != "completed" {
		t.Errorf("status = %v", set["status"])
	}
	if s, ok := set["skills"].([]string); !ok || s == nil {
		t.Errorf("skills must be a non-nil array, got %#v", set["skills"])
	}
}
