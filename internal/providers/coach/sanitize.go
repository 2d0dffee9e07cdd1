package coach

import (
	"fmt"
	"strings"

	"github.com/yoockh/mockview/internal/models"
)

// Bounds on free-form model output. The model is prompted to respect these
// but the response is clamped regardless.
const (
	MaxCorrections   = 8
	MaxInterviewTips = 3
)

// rawReply is the wire shape the model is asked to produce for an
// interviewer reply.
type rawReply struct {
	Reply            string `json:"reply"`
	FollowUpQuestion string `json:"follow_up_question"`
}

// rawFeedback mirrors models.InterviewFeedback minus the timing summary,
// which is always computed locally.
type rawFeedback struct {
	Corrections []struct {
		Original  string `json:"original"`
		Corrected string `json:"corrected"`
		Reason    string `json:"reason"`
	} `json:"corrections"`
	ImprovedBestAnswer struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	} `json:"improved_best_answer"`
	InterviewTips []string `json:"interview_tips"`
}

// sanitizeReply normalizes a model reply: reply text is required, the
// follow-up is optional and blank means none.
func sanitizeReply(r rawReply) (ReplyOutcome, error) {
	reply := strings.TrimSpace(r.Reply)
	if reply == "" {
		return ReplyOutcome{}, fmt.Errorf("model returned blank interviewer reply")
	}

	out := ReplyOutcome{Reply: reply}
	if fu := strings.TrimSpace(r.FollowUpQuestion); fu != "" {
		out.FollowUp = &fu
	}
	return out, nil
}

// sanitizeFeedback clamps list lengths, drops blank entries, and coerces
// whatever the model produced into the shape the session stores. It never
// fails: a degenerate response yields empty-but-valid feedback.
func sanitizeFeedback(r rawFeedback) models.InterviewFeedback {
	out := models.InterviewFeedback{
		Corrections:   []models.Correction{},
		InterviewTips: []string{},
	}

	for _, c := range r.Corrections {
		orig := strings.TrimSpace(c.Original)
		corr := strings.TrimSpace(c.Corrected)
		if orig == "" || corr == "" {
			continue
		}
		out.Corrections = append(out.Corrections, models.Correction{
			Original:  orig,
			Corrected: corr,
			Reason:    strings.TrimSpace(c.Reason),
		})
		if len(out.Corrections) == MaxCorrections {
			break
		}
	}

	out.ImprovedBestAnswer = models.ImprovedAnswer{
		Question: strings.TrimSpace(r.ImprovedBestAnswer.Question),
		Answer:   strings.TrimSpace(r.ImprovedBestAnswer.Answer),
	}

	for _, tip := range r.InterviewTips {
		if tip = strings.TrimSpace(tip); tip == "" {
			continue
		}
		out.InterviewTips = append(out.InterviewTips, tip)
		if len(out.InterviewTips) == MaxInterviewTips {
			break
		}
	}

	return out
}
