package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Prompt kinds returned to the client.
const (
	PromptTypeQuestion  = "question"
	PromptTypeFollowUp  = "follow_up"
	PromptTypeCompleted = "completed"
)

type InterviewSession struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	SessionID string             `bson:"session_id" json:"session_id"` // uuid v4
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	Status         string   `bson:"status" json:"status"` // in_progress|completed
	AllowFollowUps bool     `bson:"allow_follow_ups" json:"allow_follow_ups"`
	Questions      []string `bson:"questions" json:"questions"`
	QuestionIndex  int      `bson:"question_index" json:"question_index"`

	AwaitingFollowUp        bool    `bson:"awaiting_follow_up" json:"awaiting_follow_up"`
	PendingFollowUpQuestion *string `bson:"pending_follow_up_question,omitempty" json:"pending_follow_up_question,omitempty"`

	Turns  []SessionTurn      `bson:"turns" json:"turns"`
	Result *InterviewFeedback `bson:"result,omitempty" json:"result,omitempty"`
}

// Completed reports whether the session has produced its final feedback.
func (s *InterviewSession) Completed() bool { return s.Status == StatusCompleted }

type SessionTurn struct {
	Question                 string   `bson:"question" json:"question"`
	Answer                   string   `bson:"answer" json:"answer"`
	FollowUpQuestion         *string  `bson:"follow_up_question,omitempty" json:"follow_up_question,omitempty"`
	FollowUpAnswer           *string  `bson:"follow_up_answer,omitempty" json:"follow_up_answer,omitempty"`
	MainResponseDelaySec     float64  `bson:"main_response_delay_sec" json:"main_response_delay_sec"`
	FollowUpResponseDelaySec *float64 `bson:"follow_up_response_delay_sec,omitempty" json:"follow_up_response_delay_sec,omitempty"`
}

// TimingSummary counts individual recorded delays, so a question with an
// answered follow-up contributes two entries to TotalTurns.
type TimingSummary struct {
	AvgResponseDelaySec float64 `bson:"avg_response_delay_sec" json:"avg_response_delay_sec"`
	LongPausesCount     int     `bson:"long_pauses_count" json:"long_pauses_count"`
	TotalTurns          int     `bson:"total_turns" json:"total_turns"`
}

type Correction struct {
	Original  string `bson:"original" json:"original"`
	Corrected string `bson:"corrected" json:"corrected"`
	Reason    string `bson:"reason" json:"reason"`
}

type ImprovedAnswer struct {
	Question string `bson:"question" json:"question"`
	Answer   string `bson:"answer" json:"answer"`
}

type InterviewFeedback struct {
	TimingSummary      TimingSummary  `bson:"timing_summary" json:"timing_summary"`
	Corrections        []Correction   `bson:"corrections" json:"corrections"`
	ImprovedBestAnswer ImprovedAnswer `bson:"improved_best_answer" json:"improved_best_answer"`
	InterviewTips      []string       `bson:"interview_tips" json:"interview_tips"`
}
