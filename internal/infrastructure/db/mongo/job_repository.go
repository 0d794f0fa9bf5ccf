package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wdream/freelancer-platform/internal/core/domain"
	"github.com/wdream/freelancer-platform/internal/core/ports"
)

type JobRepository struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{col: db.Collection(collectionJobs)}
}

type mongoBudget struct {
	Min      *float64 `bson:"min,omitempty"`
	Max      *float64 `bson:"max,omitempty"`
	Currency string   `bson:"currency"`
}

type mongoJob struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty"`
	ClientID        primitive.ObjectID   `bson:"client_id"`
	Title           string               `bson:"title"`
	Description     string               `bson:"description"`
	Budget          mongoBudget          `bson:"budget"`
	Duration        string               `bson:"duration"`
	Skills          []string             `bson:"skills"`
	Category        string               `bson:"category,omitempty"`
	Status          string               `bson:"status"`
	Proposals       []primitive.ObjectID `bson:"proposals"`
	HiredFreelancer *primitive.ObjectID  `bson:"hired_freelancer,omitempty"`
	CreatedAt       time.Time            `bson:"created_at"`
	UpdatedAt       time.Time            `bson:"updated_at"`
}

// Create inserts a new job document.
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	doc, err := toMongoJob(job)
	if err != nil {
		return nil, err
	}
	doc.ID = primitive.NewObjectID()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mj mongoJob
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mj); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return mj.toDomain(), nil
}

// List returns jobs newest first, optionally scoped to one owner.
func (r *JobRepository) List(ctx context.Context, f ports.ListJobsFilter) ([]*domain.Job, error) {
	filter := bson.M{}
	if f.ClientID != "" {
		oid, err := primitive.ObjectIDFromHex(f.ClientID)
		if err != nil {
			return []*domain.Job{}, nil
		}
		filter["client_id"] = oid
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer cursor.Close(ctx)

	jobs := make([]*domain.Job, 0)
	for cursor.Next(ctx) {
		var mj mongoJob
		if err := cursor.Decode(&mj); err != nil {
			return nil, fmt.Errorf("decode job: %w", err)
		}
		jobs = append(jobs, mj.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list jobs cursor: %w", err)
	}
	return jobs, nil
}

// Update sets the fields named by patch to their merged values in job and
// returns the stored document. Owner, proposal references and creation time
// are never touched here.
func (r *JobRepository) Update(ctx context.Context, job *domain.Job, patch domain.JobPatch) (*domain.Job, error) {
	oid, err := primitive.ObjectIDFromHex(job.ID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	set := updateSet(job, patch)

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mj mongoJob
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mj); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("update job: %w", err)
	}
	return mj.toDomain(), nil
}

// updateSet builds the $set document for the fields present in patch.
func updateSet(job *domain.Job, patch domain.JobPatch) bson.M {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = job.Title
	}
	if patch.Description != nil {
		set["description"] = job.Description
	}
	if patch.Budget != nil {
		set["budget"] = mongoBudget(job.Budget)
	}
	if patch.Duration != nil {
		set["duration"] = string(job.Duration)
	}
	if patch.Skills != nil {
		set["skills"] = nonNil(job.Skills)
	}
	if patch.Category != nil {
		set["category"] = job.Category
	}
	if patch.Status != nil {
		set["status"] = string(job.Status)
	}
	return set
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// AppendProposal pushes a proposal reference onto the job's ordered list.
func (r *JobRepository) AppendProposal(ctx context.Context, jobID, proposalID string) error {
	jid, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return domain.ErrInvalidID
	}
	pid, err := primitive.ObjectIDFromHex(proposalID)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"proposals": pid},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := r.col.UpdateByID(ctx, jid, update)
	if err != nil {
		return fmt.Errorf("append proposal: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func toMongoJob(j *domain.Job) (mongoJob, error) {
	clientID, err := primitive.ObjectIDFromHex(j.ClientID)
	if err != nil {
		return mongoJob{}, fmt.Errorf("job owner: %w", domain.ErrInvalidID)
	}
	proposals, err := toObjectIDs(j.ProposalIDs)
	if err != nil {
		return mongoJob{}, err
	}

	doc := mongoJob{
		ClientID:    clientID,
		Title:       j.Title,
		Description: j.Description,
		Budget:      mongoBudget(j.Budget),
		Duration:    string(j.Duration),
		Skills:      nonNil(j.Skills),
		Category:    j.Category,
		Status:      string(j.Status),
		Proposals:   proposals,
		CreatedAt:   j.CreatedAt.UTC(),
		UpdatedAt:   j.UpdatedAt.UTC(),
	}
	if j.HiredFreelancer != "" {
		hired, err := primitive.ObjectIDFromHex(j.HiredFreelancer)
		if err != nil {
			return mongoJob{}, fmt.Errorf("hired freelancer: %w", domain.ErrInvalidID)
		}
		doc.HiredFreelancer = &hired
	}
	return doc, nil
}

func (mj mongoJob) toDomain() *domain.Job {
	j := &domain.Job{
		ID:          mj.ID.Hex(),
		ClientID:    mj.ClientID.Hex(),
		Title:       mj.Title,
		Description: mj.Description,
		Budget:      domain.Budget(mj.Budget),
		Duration:    domain.JobDuration(mj.Duration),
		Skills:      nonNil(mj.Skills),
		Category:    mj.Category,
		Status:      domain.JobStatus(mj.Status),
		ProposalIDs: make([]string, 0, len(mj.Proposals)),
		CreatedAt:   mj.CreatedAt.UTC(),
		UpdatedAt:   mj.UpdatedAt.UTC(),
	}
	for _, p := range mj.Proposals {
		j.ProposalIDs = append(j.ProposalIDs, p.Hex())
	}
	if mj.HiredFreelancer != nil {
		j.HiredFreelancer = mj.HiredFreelancer.Hex()
	}
	return j
}

func toObjectIDs(ids []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		out = append(out, oid)
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
