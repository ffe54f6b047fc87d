package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rooman-dev/agl-new/internal/core/domain"
)

const (
	submissionsCollection = "form_submissions"
	writeTimeout          = 5 * time.Second
)

// SubmissionRepository archives relayed form submissions.
type SubmissionRepository struct {
	col *mongo.Collection
}

func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	return &SubmissionRepository{col: db.Collection(submissionsCollection)}
}

type submissionDocument struct {
	Kind        string            `bson:"kind"`
	Name        string            `bson:"name"`
	Email       string            `bson:"email"`
	Fields      map[string]string `bson:"fields,omitempty"`
	Status      string            `bson:"status"`
	Error       string            `bson:"error,omitempty"`
	SubmittedAt time.Time         `bson:"submitted_at"`
}

func (r *SubmissionRepository) Insert(ctx context.Context, s *domain.Submission) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	doc := submissionDocument{
		Kind:        string(s.Kind),
		Name:        s.Name,
		Email:       s.Email,
		Fields:      s.Fields,
		Status:      string(s.Status),
		Error:       s.Error,
		SubmittedAt: s.SubmittedAt.UTC(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// EnsureIndexes creates the lookup indexes on form_submissions.
func (r *SubmissionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "submitted_at", Value: -1}}},
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}

	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("ensure submission indexes: %w", err)
	}
	return nil
}
