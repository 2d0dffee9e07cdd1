package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/yoockh/mockview/internal/models"
	"github.com/yoockh/mockview/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InterviewRepository persists whole session snapshots. Save replaces the
// full document; there are no partial field updates at this boundary.
type InterviewRepository interface {
	Create(ctx context.Context, s *models.InterviewSession) error
	FindBySessionID(ctx context.Context, sessionID string) (*models.InterviewSession, error)
	Save(ctx context.Context, s *models.InterviewSession) error
}

type interviewRepo struct {
	col *mongo.Collection
}

func NewInterviewRepo(db *mongo.Database) InterviewRepository {
	return &interviewRepo{col: db.Collection("interview_sessions")}
}

func (r *interviewRepo) Create(ctx context.Context, s *models.InterviewSession) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, s)
	return err
}

func (r *interviewRepo) FindBySessionID(ctx context.Context, sessionID string) (*models.InterviewSession, error) {
	var s models.InterviewSession
	err := r.col.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &s, err
}

func (r *interviewRepo) Save(ctx context.Context, s *models.InterviewSession) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"session_id": s.SessionID}, s)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}
