package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionUsers     = "users"
	collectionJobs      = "jobs"
	collectionProposals = "proposals"
)

// EnsureIndexes creates the indexes every collection relies on. The unique
// indexes back the email and one-proposal-per-freelancer constraints.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	specs := map[string][]mongo.IndexModel{
		collectionUsers: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_email"),
			},
		},
		collectionJobs: {
			{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		collectionProposals: {
			{
				Keys:    bson.D{{Key: "job_id", Value: 1}, {Key: "freelancer_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_job_freelancer"),
			},
		},
	}

	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
