package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/yoockh/mockview/internal/models"
	pgrepo "github.com/yoockh/mockview/internal/repositories/postgres"
	"github.com/yoockh/mockview/internal/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RoleCandidate   = "candidate"
	RoleInterviewer = "interviewer"
)

// TranscriptService keeps the per-utterance audit log. Appends are
// best-effort from the caller's point of view: the interview state machine
// never fails a transition because a log row could not be written.
type TranscriptService interface {
	Append(ctx context.Context, sessionID, role, content string, metadata map[string]any) (*models.TranscriptLog, error)
	ListBySession(ctx context.Context, sessionID string, limit int) ([]models.TranscriptLog, error)
}

type transcriptService struct {
	rows pgrepo.TranscriptRepo
}

func NewTranscriptService(rows pgrepo.TranscriptRepo) TranscriptService {
	return &transcriptService{rows: rows}
}

func (s *transcriptService) Append(ctx context.Context, sessionID, role, content string, metadata map[string]any) (*models.TranscriptLog, error) {
	const op = "TranscriptService.Append"

	if sessionID == "" || role == "" || content == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session_id, role, and content are required", nil)
	}

	row := &models.TranscriptLog{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}

	if len(metadata) > 0 {
		b, err := json.Marshal(metadata)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to encode metadata", err)
		}
		row.Metadata = datatypes.JSON(b)
	}

	if err := s.rows.Insert(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to insert transcript log", err)
	}
	return row, nil
}

func (s *transcriptService) ListBySession(ctx context.Context, sessionID string, limit int) ([]models.TranscriptLog, error) {
	const op = "TranscriptService.ListBySession"

	if sessionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}

	rows, err := s.rows.ListBySession(ctx, sessionID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list transcript logs", err)
	}
	return rows, nil
}
