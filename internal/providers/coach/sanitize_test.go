package coach

import (
	"strings"
	"testing"
)

func TestSanitizeReplyRequiresText(t *testing.T) {
	if _, err := sanitizeReply(rawReply{Reply: "   "}); err == nil {
		t.Fatal("expected error for blank reply")
	}
}

func TestSanitizeReplyBlankFollowUpMeansNone(t *testing.T) {
	out, err := sanitizeReply(rawReply{Reply: "Nice answer.", FollowUpQuestion: "  "})
	if err != nil {
		t.Fatalf("sanitizeReply err: %v", err)
	}
	if out.FollowUp != nil {
		t.Fatalf("expected nil follow-up, got %q", *out.FollowUp)
	}
}

func TestSanitizeReplyTrims(t *testing.T) {
	out, err := sanitizeReply(rawReply{Reply: "  ok  ", FollowUpQuestion: " why? "})
	if err != nil {
		t.Fatalf("sanitizeReply err: %v", err)
	}
	if out.Reply != "ok" {
		t.Errorf("Reply = %q, want %q", out.Reply, "ok")
	}
	if out.FollowUp == nil || *out.FollowUp != "why?" {
		t.Errorf("FollowUp = %v, want why?", out.FollowUp)
	}
}

func TestSanitizeFeedbackClampsLists(t *testing.T) {
	var raw rawFeedback
	for i := 0; i < 20; i++ {
		raw.Corrections = append(raw.Corrections, struct {
			Original  string `json:"original"`
			Corrected string `json:"corrected"`
			Reason    string `json:"reason"`
		}{Original: "a", Corrected: "b", Reason: "c"})
		raw.InterviewTips = append(raw.InterviewTips, "tip")
	}

	fb := sanitizeFeedback(raw)
	if len(fb.Corrections) != MaxCorrections {
		t.Errorf("corrections = %d, want %d", len(fb.Corrections), MaxCorrections)
	}
	if len(fb.InterviewTips) != MaxInterviewTips {
		t.Errorf("tips = %d, want %d", len(fb.InterviewTips), MaxInterviewTips)
	}
}

func TestSanitizeFeedbackDropsBlankEntries(t *testing.T) {
	var raw rawFeedback
	raw.Corrections = append(raw.Corrections, struct {
		Original  string `json:"original"`
		Corrected string `json:"corrected"`
		Reason    string `json:"reason"`
	}{Original: "  ", Corrected: "b"})
	raw.InterviewTips = []string{" ", "keep answers concrete", ""}

	fb := sanitizeFeedback(raw)
	if len(fb.Corrections) != 0 {
		t.Errorf("expected blank correction dropped, got %+v", fb.Corrections)
	}
	if len(fb.InterviewTips) != 1 || fb.InterviewTips[0] != "keep answers concrete" {
		t.Errorf("tips = %v", fb.InterviewTips)
	}
}

func TestStripFences(t *testing.T) {
	in := "```json\n{\"reply\":\"hi\"}\n```"
	if got := stripFences(in); !strings.HasPrefix(got, "{") || !strings.HasSuffix(got, "}") {
		t.Errorf("stripFences = %q", got)
	}
	if got := stripFences(" {\"a\":1} "); got != "{\"a\":1}" {
		t.Errorf("stripFences plain = %q", got)
	}
}
