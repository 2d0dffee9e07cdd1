package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/mockview/internal/cache"
	"github.com/yoockh/mockview/internal/catalog"
	"github.com/yoockh/mockview/internal/models"
	"github.com/yoockh/mockview/internal/providers/coach"
	"github.com/yoockh/mockview/internal/providers/stt"
	mongorepo "github.com/yoockh/mockview/internal/repositories/mongo"
	"github.com/yoockh/mockview/internal/storage"
	"github.com/yoockh/mockview/internal/timing"
	"github.com/yoockh/mockview/internal/utils"
)

const resultCacheTTL = 15 * time.Minute

type CreateSessionInput struct {
	QuestionCount  *int
	AllowFollowUps *bool
}

type SubmitAnswerInput struct {
	Text             string
	AudioBase64      string
	MimeType         string
	ResponseDelaySec *float64
}

// PromptView is what the client should show right now. Prompt is nil once
// the session has completed.
type PromptView struct {
	Status         string  `json:"status"`
	Prompt         *string `json:"prompt"`
	PromptType     string  `json:"prompt_type"`
	QuestionNumber int     `json:"question_number"`
	TotalQuestions int     `json:"total_questions"`
}

// SubmitOutcome is the result of one answer transition.
type SubmitOutcome struct {
	SessionStatus      string                    `json:"session_status"`
	InterviewerMessage string                    `json:"interviewer_message"`
	PromptType         string                    `json:"prompt_type"`
	NextPrompt         *string                   `json:"next_prompt"`
	QuestionNumber     int                       `json:"question_number"`
	TotalQuestions     int                       `json:"total_questions"`
	Result             *models.InterviewFeedback `json:"result,omitempty"`
}

type ResultView struct {
	SessionID string                    `json:"session_id"`
	Status    string                    `json:"status"`
	Result    *models.InterviewFeedback `json:"result"`
}

type InterviewService interface {
	Create(ctx context.Context, in CreateSessionInput) (*models.InterviewSession, error)
	CurrentPrompt(ctx context.Context, sessionID string) (*PromptView, error)
	SubmitAnswer(ctx context.Context, sessionID string, in SubmitAnswerInput) (*SubmitOutcome, error)
	Result(ctx context.Context, sessionID string) (*ResultView, error)
}

// InterviewServiceDeps wires the state machine to its collaborators.
// Transcripts, Audio, Cache, and Logger are optional.
type InterviewServiceDeps struct {
	Sessions mongorepo.InterviewRepository
	STT      stt.Provider
	Coach    coach.Provider

	Transcripts TranscriptService
	Audio       storage.Uploader
	Cache       cache.Cache
	Logger      *logrus.Logger
}

type interviewService struct {
	InterviewServiceDeps
	locks sessionLocks
}

func NewInterviewService(d InterviewServiceDeps) (InterviewService, error) {
	if d.Sessions == nil || d.Coach == nil {
		return nil, errors.New("InterviewService missing dependency: Sessions and Coach must be set")
	}
	if d.Logger == nil {
		d.Logger = logrus.New()
	}
	return &interviewService{InterviewServiceDeps: d}, nil
}

// sessionLocks serializes read-decide-write per session id so concurrent
// submissions against the same session cannot interleave.
type sessionLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func (l *sessionLocks) acquire(id string) func() {
	l.mu.Lock()
	if l.m == nil {
		l.m = make(map[string]*sync.Mutex)
	}
	sm, ok := l.m[id]
	if !ok {
		sm = &sync.Mutex{}
		l.m[id] = sm
	}
	l.mu.Unlock()

	sm.Lock()
	return sm.Unlock
}

func (s *interviewService) Create(ctx context.Context, in CreateSessionInput) (*models.InterviewSession, error) {
	const op = "InterviewService.Create"

	count := catalog.DefaultQuestionCount
	if in.QuestionCount != nil {
		count = *in.QuestionCount
	}
	allowFollowUps := true
	if in.AllowFollowUps != nil {
		allowFollowUps = *in.AllowFollowUps
	}

	session := &models.InterviewSession{
		SessionID:      uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
		Status:         models.StatusInProgress,
		AllowFollowUps: allowFollowUps,
		Questions:      catalog.Slice(count),
		QuestionIndex:  0,
		Turns:          []models.SessionTurn{},
	}

	if err := s.Sessions.Create(ctx, session); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create session", err)
	}
	return session, nil
}

func (s *interviewService) load(ctx context.Context, op, sessionID string) (*models.InterviewSession, error) {
	if sessionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}
	sess, err := s.Sessions.FindBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "session not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load session", err)
	}
	return sess, nil
}

func (s *interviewService) CurrentPrompt(ctx context.Context, sessionID string) (*PromptView, error) {
	const op = "InterviewService.CurrentPrompt"

	sess, err := s.load(ctx, op, sessionID)
	if err != nil {
		return nil, err
	}

	total := len(sess.Questions)
	switch {
	case sess.Completed():
		return &PromptView{
			Status:         sess.Status,
			PromptType:     models.PromptTypeCompleted,
			QuestionNumber: total,
			TotalQuestions: total,
		}, nil
	case sess.AwaitingFollowUp:
		return &PromptView{
			Status:         sess.Status,
			Prompt:         sess.PendingFollowUpQuestion,
			PromptType:     models.PromptTypeFollowUp,
			QuestionNumber: sess.QuestionIndex + 1,
			TotalQuestions: total,
		}, nil
	default:
		if sess.QuestionIndex >= total {
			return nil, utils.E(utils.CodeInvalidState, op, "no question at current index", nil)
		}
		q := sess.Questions[sess.QuestionIndex]
		return &PromptView{
			Status:         sess.Status,
			Prompt:         &q,
			PromptType:     models.PromptTypeQuestion,
			QuestionNumber: sess.QuestionIndex + 1,
			TotalQuestions: total,
		}, nil
	}
}

// resolveAnswer turns the submitted payload into a transcript, preferring
// text over audio.
func (s *interviewService) resolveAnswer(ctx context.Context, op string, in SubmitAnswerInput) (text string, audio []byte, err error) {
	if t := strings.TrimSpace(in.Text); t != "" {
		return t, nil, nil
	}

	if in.AudioBase64 == "" {
		return "", nil, utils.E(utils.CodeInvalidArgument, op, "either text or audio_base64 is required", nil)
	}

	audio, err = base64.StdEncoding.DecodeString(in.AudioBase64)
	if err != nil {
		return "", nil, utils.E(utils.CodeInvalidArgument, op, "audio_base64 is not valid base64", err)
	}
	if len(audio) == 0 {
		return "", nil, utils.E(utils.CodeInvalidArgument, op, "decoded audio is empty", nil)
	}
	if s.STT == nil {
		return "", nil, utils.E(utils.CodeUnavailable, op, "audio answers are not enabled", nil)
	}

	text, err = s.STT.Transcribe(ctx, audio, in.MimeType)
	if err != nil {
		return "", nil, err
	}
	if text = strings.TrimSpace(text); text == "" {
		return "", nil, utils.E(utils.CodeInvalidArgument, op, "transcription produced no text", nil)
	}
	return text, audio, nil
}

func normalizeDelay(op string, delay *float64) (float64, error) {
	if delay == nil {
		return 0, nil
	}
	d := *delay
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0, utils.E(utils.CodeInvalidArgument, op, "response_delay_sec must be a non-negative finite number", nil)
	}
	return timing.Round2(d), nil
}

func (s *interviewService) SubmitAnswer(ctx context.Context, sessionID string, in SubmitAnswerInput) (*SubmitOutcome, error) {
	const op = "InterviewService.SubmitAnswer"

	unlock := s.locks.acquire(sessionID)
	defer unlock()

	sess, err := s.load(ctx, op, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Completed() {
		return nil, utils.E(utils.CodeInvalidState, op, "session is already completed", nil)
	}

	answer, audio, err := s.resolveAnswer(ctx, op, in)
	if err != nil {
		return nil, err
	}

	delay, err := normalizeDelay(op, in.ResponseDelaySec)
	if err != nil {
		return nil, err
	}

	var outcome *SubmitOutcome
	var kind string
	if sess.AwaitingFollowUp {
		kind = "follow_up"
		outcome, err = s.submitFollowUpAnswer(ctx, sess, answer, delay)
	} else {
		kind = "main"
		outcome, err = s.submitMainAnswer(ctx, sess, answer, delay)
	}
	if err != nil {
		return nil, err
	}

	s.record(ctx, sess, kind, answer, audio, in.MimeType, outcome)
	return outcome, nil
}

func (s *interviewService) submitMainAnswer(ctx context.Context, sess *models.InterviewSession, answer string, delay float64) (*SubmitOutcome, error) {
	const op = "InterviewService.SubmitAnswer"

	if sess.QuestionIndex >= len(sess.Questions) {
		return nil, utils.E(utils.CodeInvalidState, op, "no question at current index", nil)
	}
	question := sess.Questions[sess.QuestionIndex]

	reply, err := s.Coach.InterviewerReply(ctx, question, answer)
	if err != nil {
		return nil, err
	}

	followUp := reply.FollowUp
	if !sess.AllowFollowUps {
		followUp = nil
	}

	sess.Turns = append(sess.Turns, models.SessionTurn{
		Question:             question,
		Answer:               answer,
		FollowUpQuestion:     followUp,
		MainResponseDelaySec: delay,
	})

	if followUp != nil {
		sess.AwaitingFollowUp = true
		sess.PendingFollowUpQuestion = followUp
		if err := s.save(ctx, op, sess); err != nil {
			return nil, err
		}
		return &SubmitOutcome{
			SessionStatus:      sess.Status,
			InterviewerMessage: reply.Reply,
			PromptType:         models.PromptTypeFollowUp,
			NextPrompt:         followUp,
			QuestionNumber:     sess.QuestionIndex + 1,
			TotalQuestions:     len(sess.Questions),
		}, nil
	}

	sess.QuestionIndex++
	if err := s.completeIfExhausted(ctx, sess); err != nil {
		return nil, err
	}
	if err := s.save(ctx, op, sess); err != nil {
		return nil, err
	}
	return s.advanceOutcome(sess, reply.Reply), nil
}

func (s *interviewService) submitFollowUpAnswer(ctx context.Context, sess *models.InterviewSession, answer string, delay float64) (*SubmitOutcome, error) {
	const op = "InterviewService.SubmitAnswer"

	if len(sess.Turns) == 0 {
		return nil, utils.E(utils.CodeInvalidState, op, "awaiting follow-up with no recorded turn", nil)
	}
	turn := &sess.Turns[len(sess.Turns)-1]
	if turn.FollowUpQuestion == nil {
		return nil, utils.E(utils.CodeInvalidState, op, "awaiting follow-up but last turn has no follow-up question", nil)
	}

	turn.FollowUpAnswer = &answer
	turn.FollowUpResponseDelaySec = &delay

	closing, err := s.Coach.FollowUpClose(ctx, coach.Exchange{
		Question:         turn.Question,
		Answer:           turn.Answer,
		FollowUpQuestion: *turn.FollowUpQuestion,
		FollowUpAnswer:   answer,
	})
	if err != nil {
		return nil, err
	}

	sess.AwaitingFollowUp = false
	sess.PendingFollowUpQuestion = nil
	sess.QuestionIndex++

	if err := s.completeIfExhausted(ctx, sess); err != nil {
		return nil, err
	}
	if err := s.save(ctx, op, sess); err != nil {
		return nil, err
	}
	return s.advanceOutcome(sess, closing), nil
}

// completeIfExhausted finalizes the session once every question has been
// answered: it computes the timing summary locally, asks the coach for the
// report, and marks the session completed. A coach failure aborts the whole
// transition before anything is persisted.
func (s *interviewService) completeIfExhausted(ctx context.Context, sess *models.InterviewSession) error {
	if sess.QuestionIndex != len(sess.Questions) {
		return nil
	}

	summary := timing.Summarize(sess.Turns)

	transcript := make([]coach.TranscriptEntry, len(sess.Turns))
	for i, t := range sess.Turns {
		transcript[i] = coach.TranscriptEntry{
			QuestionNumber:   i + 1,
			Question:         t.Question,
			Answer:           t.Answer,
			FollowUpQuestion: t.FollowUpQuestion,
			FollowUpAnswer:   t.FollowUpAnswer,
		}
	}

	fb, err := s.Coach.Feedback(ctx, coach.FeedbackInput{Timing: summary, Transcript: transcript})
	if err != nil {
		return err
	}

	// The oracle echoes a timing summary back; the locally computed one is
	// authoritative.
	fb.TimingSummary = summary

	sess.Result = &fb
	sess.Status = models.StatusCompleted
	return nil
}

func (s *interviewService) advanceOutcome(sess *models.InterviewSession, message string) *SubmitOutcome {
	total := len(sess.Questions)
	out := &SubmitOutcome{
		SessionStatus:      sess.Status,
		InterviewerMessage: message,
		TotalQuestions:     total,
	}

	if sess.Completed() {
		out.PromptType = models.PromptTypeCompleted
		out.QuestionNumber = total
		out.Result = sess.Result
		return out
	}

	next := sess.Questions[sess.QuestionIndex]
	out.PromptType = models.PromptTypeQuestion
	out.NextPrompt = &next
	out.QuestionNumber = sess.QuestionIndex + 1
	return out
}

func (s *interviewService) save(ctx context.Context, op string, sess *models.InterviewSession) error {
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to save session", err)
	}
	return nil
}

// record is the best-effort audit tail of a successful transition: archive
// the raw audio, then append candidate and interviewer transcript rows.
// Failures here are logged and never surfaced.
func (s *interviewService) record(ctx context.Context, sess *models.InterviewSession, kind, answer string, audio []byte, mimeType string, outcome *SubmitOutcome) {
	meta := map[string]any{
		"kind":            kind,
		"question_number": outcome.QuestionNumber,
	}

	if len(audio) > 0 && s.Audio != nil {
		name := fmt.Sprintf("answers/%s/%02d-%s%s", sess.SessionID, len(sess.Turns), kind, extForMime(mimeType))
		url, err := s.Audio.Upload(ctx, name, mimeType, bytes.NewReader(audio))
		if err != nil {
			s.Logger.WithError(err).WithField("session_id", sess.SessionID).Warn("audio archive upload failed")
		} else {
			meta["audio_url"] = url
		}
	}

	if s.Transcripts == nil {
		return
	}
	if _, err := s.Transcripts.Append(ctx, sess.SessionID, RoleCandidate, answer, meta); err != nil {
		s.Logger.WithError(err).WithField("session_id", sess.SessionID).Warn("transcript append failed")
	}
	if outcome.InterviewerMessage != "" {
		if _, err := s.Transcripts.Append(ctx, sess.SessionID, RoleInterviewer, outcome.InterviewerMessage, map[string]any{"kind": kind}); err != nil {
			s.Logger.WithError(err).WithField("session_id", sess.SessionID).Warn("transcript append failed")
		}
	}
}

func (s *interviewService) Result(ctx context.Context, sessionID string) (*ResultView, error) {
	const op = "InterviewService.Result"

	if s.Cache != nil {
		var cached ResultView
		if hit, err := s.Cache.GetJSON(ctx, cache.ResultKey(sessionID), &cached); err == nil && hit {
			return &cached, nil
		}
	}

	sess, err := s.load(ctx, op, sessionID)
	if err != nil {
		return nil, err
	}

	view := &ResultView{
		SessionID: sess.SessionID,
		Status:    sess.Status,
		Result:    sess.Result,
	}

	// Completed sessions are immutable, so the view can be cached freely.
	if sess.Completed() && s.Cache != nil {
		if err := s.Cache.SetJSON(ctx, cache.ResultKey(sessionID), view, resultCacheTTL); err != nil {
			s.Logger.WithError(err).WithField("session_id", sessionID).Warn("result cache set failed")
		}
	}
	return view, nil
}

func extForMime(mimeType string) string {
	switch mimeType {
	case "audio/webm":
		return ".webm"
	case "audio/ogg":
		return ".ogg"
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	default:
		return ".wav"
	}
}
