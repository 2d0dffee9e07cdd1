// Package memory holds a map-backed session store used in development when
// no Mongo URI is configured, and by the service tests.
package memory

import (
	"context"
	"sync"

	"github.com/yoockh/mockview/internal/models"
	mongorepo "github.com/yoockh/mockview/internal/repositories/mongo"
	"github.com/yoockh/mockview/internal/utils"
)

type interviewRepo struct {
	mu       sync.RWMutex
	sessions map[string]*models.InterviewSession
}

func NewInterviewRepo() mongorepo.InterviewRepository {
	return &interviewRepo{sessions: make(map[string]*models.InterviewSession)}
}

// clone deep-copies a session so callers never alias stored state.
func clone(s *models.InterviewSession) *models.InterviewSession {
	out := *s
	out.Questions = append([]string(nil), s.Questions...)
	out.Turns = make([]models.SessionTurn, len(s.Turns))
	for i, t := range s.Turns {
		ct := t
		if t.FollowUpQuestion != nil {
			v := *t.FollowUpQuestion
			ct.FollowUpQuestion = &v
		}
		if t.FollowUpAnswer != nil {
			v := *t.FollowUpAnswer
			ct.FollowUpAnswer = &v
		}
		if t.FollowUpResponseDelaySec != nil {
			v := *t.FollowUpResponseDelaySec
			ct.FollowUpResponseDelaySec = &v
		}
		out.Turns[i] = ct
	}
	if s.PendingFollowUpQuestion != nil {
		v := *s.PendingFollowUpQuestion
		out.PendingFollowUpQuestion = &v
	}
	if s.Result != nil {
		r := *s.Result
		r.Corrections = append([]models.Correction(nil), s.Result.Corrections...)
		r.InterviewTips = append([]string(nil), s.Result.InterviewTips...)
		out.Result = &r
	}
	return &out
}

func (r *interviewRepo) Create(_ context.Context, s *models.InterviewSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.SessionID] = clone(s)
	return nil
}

func (r *interviewRepo) FindBySessionID(_ context.Context, sessionID string) (*models.InterviewSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return clone(s), nil
}

func (r *interviewRepo) Save(_ context.Context, s *models.InterviewSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.SessionID]; !ok {
		return utils.ErrNotFound
	}
	r.sessions[s.SessionID] = clone(s)
	return nil
}
