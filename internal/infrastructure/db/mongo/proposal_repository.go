package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wdream/freelancer-platform/internal/core/domain"
)

type ProposalRepository struct {
	col *mongo.Collection
}

func NewProposalRepository(db *mongo.Database) *ProposalRepository {
	return &ProposalRepository{col: db.Collection(collectionProposals)}
}

type mongoProposal struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	JobID             primitive.ObjectID `bson:"job_id"`
	FreelancerID      primitive.ObjectID `bson:"freelancer_id"`
	CoverLetter       string             `bson:"cover_letter"`
	ProposedRate      float64            `bson:"proposed_rate"`
	EstimatedDuration string             `bson:"estimated_duration"`
	Attachments       []string           `bson:"attachments"`
	Status            string             `bson:"status"`
	CreatedAt         time.Time          `bson:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at"`
}

// Create inserts a proposal. The unique (job_id, freelancer_id) index turns
// a second bid from the same freelancer into domain.ErrProposalExists.
func (r *ProposalRepository) Create(ctx context.Context, p *domain.Proposal) (*domain.Proposal, error) {
	jobID, err := primitive.ObjectIDFromHex(p.JobID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	freelancerID, err := primitive.ObjectIDFromHex(p.FreelancerID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	doc := mongoProposal{
		ID:                primitive.NewObjectID(),
		JobID:             jobID,
		FreelancerID:      freelancerID,
		CoverLetter:       p.CoverLetter,
		ProposedRate:      p.ProposedRate,
		EstimatedDuration: p.EstimatedDuration,
		Attachments:       nonNil(p.Attachments),
		Status:            string(p.Status),
		CreatedAt:         p.CreatedAt.UTC(),
		UpdatedAt:         p.UpdatedAt.UTC(),
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrProposalExists
		}
		return nil, fmt.Errorf("insert proposal: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByIDs loads the given proposals. Order is unspecified and unknown ids
// are skipped.
func (r *ProposalRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Proposal, error) {
	if len(ids) == 0 {
		return []*domain.Proposal{}, nil
	}
	oids, err := toObjectIDs(ids)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find proposals: %w", err)
	}

	var docs []mongoProposal
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode proposals: %w", err)
	}

	out := make([]*domain.Proposal, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// DeleteAllForJob removes every proposal that references jobID.
func (r *ProposalRepository) DeleteAllForJob(ctx context.Context, jobID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return 0, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"job_id": oid})
	if err != nil {
		return 0, fmt.Errorf("delete proposals: %w", err)
	}
	return res.DeletedCount, nil
}

func (mp mongoProposal) toDomain() *domain.Proposal {
	return &domain.Proposal{
		ID:                mp.ID.Hex(),
		JobID:             mp.JobID.Hex(),
		FreelancerID:      mp.FreelancerID.Hex(),
		CoverLetter:       mp.CoverLetter,
		ProposedRate:      mp.ProposedRate,
		EstimatedDuration: mp.EstimatedDuration,
		Attachments:       nonNil(mp.Attachments),
		Status:            domain.ProposalStatus(mp.Status),
		CreatedAt:         mp.CreatedAt.UTC(),
		UpdatedAt:         mp.UpdatedAt.UTC(),
	}
}
