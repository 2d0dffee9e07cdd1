// Package coach wraps the language-model oracle that plays the interviewer:
// it reacts to answers, optionally poses one follow-up, and writes the final
// feedback report.
package coach

import (
	"context"

	"github.com/yoockh/mockview/internal/models"
)

// ReplyOutcome is the interviewer's reaction to a main answer. FollowUp is
// nil when the model chose not to probe further.
type ReplyOutcome struct {
	Reply    string
	FollowUp *string
}

// Exchange is one full question round, used to close out a follow-up.
type Exchange struct {
	Question         string
	Answer           string
	FollowUpQuestion string
	FollowUpAnswer   string
}

// TranscriptEntry is one answered question as presented to the feedback call.
type TranscriptEntry struct {
	QuestionNumber   int     `json:"question_number"`
	Question         string  `json:"question"`
	Answer           string  `json:"answer"`
	FollowUpQuestion *string `json:"follow_up_question,omitempty"`
	FollowUpAnswer   *string `json:"follow_up_answer,omitempty"`
}

type FeedbackInput struct {
	Timing     models.TimingSummary
	Transcript []TranscriptEntry
}

type Provider interface {
	InterviewerReply(ctx context.Context, question, answer string) (ReplyOutcome, error)
	FollowUpClose(ctx context.Context, ex Exchange) (string, error)
	Feedback(ctx context.Context, in FeedbackInput) (models.InterviewFeedback, error)
	Close() error
}
