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
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type mongoProfile struct {
	FirstName string `bson:"first_name"`
	LastName  string `bson:"last_name"`
	Avatar    string `bson:"avatar,omitempty"`
	Bio       string `bson:"bio,omitempty"`
	Location  string `bson:"location,omitempty"`
	Phone     string `bson:"phone,omitempty"`
}

type mongoPortfolioEntry struct {
	Title       string `bson:"title"`
	Description string `bson:"description,omitempty"`
	URL         string `bson:"url,omitempty"`
	Image       string `bson:"image,omitempty"`
}

type mongoFreelancerProfile struct {
	Skills        []string              `bson:"skills"`
	HourlyRate    float64               `bson:"hourly_rate"`
	Portfolio     []mongoPortfolioEntry `bson:"portfolio"`
	Experience    string                `bson:"experience,omitempty"`
	Rating        float64               `bson:"rating"`
	CompletedJobs int                   `bson:"completed_jobs"`
}

type mongoClientProfile struct {
	CompanyName string `bson:"company_name,omitempty"`
	Industry    string `bson:"industry,omitempty"`
	PostedJobs  int    `bson:"posted_jobs"`
}

type mongoUser struct {
	ID                primitive.ObjectID      `bson:"_id,omitempty"`
	Email             string                  `bson:"email"`
	PasswordHash      string                  `bson:"password_hash"`
	Role              string                  `bson:"role"`
	Profile           mongoProfile            `bson:"profile"`
	FreelancerProfile *mongoFreelancerProfile `bson:"freelancer_profile,omitempty"`
	ClientProfile     *mongoClientProfile     `bson:"client_profile,omitempty"`
	IsActive          bool                    `bson:"is_active"`
	CreatedAt         time.Time               `bson:"created_at"`
	UpdatedAt         time.Time               `bson:"updated_at"`
}

// counterFields maps a counter to its document path.
var counterFields = map[domain.UserCounter]string{
	domain.CounterPostedJobs:    "client_profile.posted_jobs",
	domain.CounterCompletedJobs: "freelancer_profile.completed_jobs",
}

// Create inserts a new user. The unique email index turns a duplicate into
// domain.ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoUser(user)
	doc.ID = primitive.NewObjectID()

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := doc.toDomain()
	created.PasswordHash = ""
	return created, nil
}

// FindByEmail returns the user including its password hash.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": domain.NormalizeEmail(email)}, nil)
}

// FindByID returns the user with the password hash projected out.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	opts := options.FindOne().SetProjection(bson.M{"password_hash": 0})
	return r.findOne(ctx, bson.M{"_id": oid}, opts)
}

// IncrementCounter applies an atomic $inc to one profile counter.
func (r *UserRepository) IncrementCounter(ctx context.Context, id string, counter domain.UserCounter, delta int) error {
	field, ok := counterFields[counter]
	if !ok {
		return fmt.Errorf("unknown user counter %q", counter)
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{field: delta},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("increment %s: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	var err error
	if opts != nil {
		err = r.col.FindOne(ctx, filter, opts).Decode(&mu)
	} else {
		err = r.col.FindOne(ctx, filter).Decode(&mu)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func toMongoUser(u *domain.User) mongoUser {
	doc := mongoUser{
		Email:        domain.NormalizeEmail(u.Email),
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Profile: mongoProfile{
			FirstName: u.Profile.FirstName,
			LastName:  u.Profile.LastName,
			Avatar:    u.Profile.Avatar,
			Bio:       u.Profile.Bio,
			Location:  u.Profile.Location,
			Phone:     u.Profile.Phone,
		},
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
	if fp := u.FreelancerProfile; fp != nil {
		portfolio := make([]mongoPortfolioEntry, 0, len(fp.Portfolio))
		for _, p := range fp.Portfolio {
			portfolio = append(portfolio, mongoPortfolioEntry(p))
		}
		skills := fp.Skills
		if skills == nil {
			skills = []string{}
		}
		doc.FreelancerProfile = &mongoFreelancerProfile{
			Skills:        skills,
			HourlyRate:    fp.HourlyRate,
			Portfolio:     portfolio,
			Experience:    fp.Experience,
			Rating:        fp.Rating,
			CompletedJobs: fp.CompletedJobs,
		}
	}
	if cp := u.ClientProfile; cp != nil {
		doc.ClientProfile = &mongoClientProfile{
			CompanyName: cp.CompanyName,
			Industry:    cp.Industry,
			PostedJobs:  cp.PostedJobs,
		}
	}
	return doc
}

func (mu mongoUser) toDomain() *domain.User {
	u := &domain.User{
		ID:           mu.ID.Hex(),
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		Role:         mu.Role,
		Profile: domain.Profile{
			FirstName: mu.Profile.FirstName,
			LastName:  mu.Profile.LastName,
			Avatar:    mu.Profile.Avatar,
			Bio:       mu.Profile.Bio,
			Location:  mu.Profile.Location,
			Phone:     mu.Profile.Phone,
		},
		IsActive:  mu.IsActive,
		CreatedAt: mu.CreatedAt.UTC(),
		UpdatedAt: mu.UpdatedAt.UTC(),
	}
	if fp := mu.FreelancerProfile; fp != nil {
		portfolio := make([]domain.PortfolioEntry, 0, len(fp.Portfolio))
		for _, p := range fp.Portfolio {
			portfolio = append(portfolio, domain.PortfolioEntry(p))
		}
		u.FreelancerProfile = &domain.FreelancerProfile{
			Skills:        append([]string{}, fp.Skills...),
			HourlyRate:    fp.HourlyRate,
			Portfolio:     portfolio,
			Experience:    fp.Experience,
			Rating:        fp.Rating,
			CompletedJobs: fp.CompletedJobs,
		}
	}
	if cp := mu.ClientProfile; cp != nil {
		u.ClientProfile = &domain.ClientProfile{
			CompanyName: cp.CompanyName,
			Industry:    cp.Industry,
			PostedJobs:  cp.PostedJobs,
		}
	}
	return u
}
