package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	vertexgenai "cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/iterator"

	"github.com/yoockh/mockview/internal/models"
)

type VertexGemini struct {
	client *vertexgenai.Client
	model  *vertexgenai.GenerativeModel
}

func NewVertexGemini(ctx context.Context, projectID, location, modelName string) (*VertexGemini, error) {
	c, err := vertexgenai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	m := c.GenerativeModel(modelName)
	return &VertexGemini{client: c, model: m}, nil
}

func (v *VertexGemini) Close() error { return v.client.Close() }

func (v *VertexGemini) generate(ctx context.Context, prompt string) (string, error) {
	it := v.model.GenerateContentStream(ctx, vertexgenai.Text(prompt))

	var b strings.Builder
	for {
		resp, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return "", err
		}
		for _, cand := range resp.Candidates {
			if cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				if t, ok := part.(vertexgenai.Text); ok {
					b.WriteString(string(t))
				}
			}
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("model returned empty response")
	}
	return text, nil
}

// stripFences removes a markdown code fence the model sometimes wraps JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func (v *VertexGemini) InterviewerReply(ctx context.Context, question, answer string) (ReplyOutcome, error) {
	prompt := fmt.Sprintf(`You are a friendly but rigorous mock-interview coach.
The candidate was asked: %q
The candidate answered: %q

Respond with JSON only, no markdown, matching:
{"reply": "<one or two sentences reacting to the answer>", "follow_up_question": "<a single probing follow-up, or empty string if the answer needs none>"}`, question, answer)

	text, err := v.generate(ctx, prompt)
	if err != nil {
		return ReplyOutcome{}, err
	}

	var raw rawReply
	if err := json.Unmarshal([]byte(stripFences(text)), &raw); err != nil {
		// Model ignored the JSON instruction; treat the whole text as the reply.
		raw = rawReply{Reply: text}
	}
	return sanitizeReply(raw)
}

func (v *VertexGemini) FollowUpClose(ctx context.Context, ex Exchange) (string, error) {
	prompt := fmt.Sprintf(`You are a friendly mock-interview coach wrapping up one question.
Question: %q
Answer: %q
Follow-up question: %q
Follow-up answer: %q

Write one short closing acknowledgement (a single sentence, plain text, no JSON). Do not ask any further question.`,
		ex.Question, ex.Answer, ex.FollowUpQuestion, ex.FollowUpAnswer)

	text, err := v.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (v *VertexGemini) Feedback(ctx context.Context, in FeedbackInput) (models.InterviewFeedback, error) {
	payload, err := json.Marshal(struct {
		Timing     models.TimingSummary `json:"timing_summary"`
		Transcript []TranscriptEntry    `json:"transcript"`
	}{in.Timing, in.Transcript})
	if err != nil {
		return models.InterviewFeedback{}, err
	}

	prompt := fmt.Sprintf(`You are a mock-interview coach producing a final report for the session below.

%s

Respond with JSON only, no markdown, matching:
{
  "corrections": [{"original": "...", "corrected": "...", "reason": "..."}],
  "improved_best_answer": {"question": "...", "answer": "..."},
  "interview_tips": ["...", "...", "..."]
}
At most %d corrections and %d tips. Pick the candidate's strongest answer and rewrite it as improved_best_answer.`,
		payload, MaxCorrections, MaxInterviewTips)

	text, err := v.generate(ctx, prompt)
	if err != nil {
		return models.InterviewFeedback{}, err
	}

	var raw rawFeedback
	if err := json.Unmarshal([]byte(stripFences(text)), &raw); err != nil {
		return models.InterviewFeedback{}, fmt.Errorf("parse feedback JSON: %w", err)
	}

	fb := sanitizeFeedback(raw)
	fb.TimingSummary = in.Timing
	return fb, nil
}
