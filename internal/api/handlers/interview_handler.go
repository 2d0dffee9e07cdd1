package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/mockview/internal/providers/tts"
	"github.com/yoockh/mockview/internal/services"
)

type InterviewHandler struct {
	svc    services.InterviewService
	tts    tts.Provider // optional: spoken prompts
	logger *logrus.Logger
}

func NewInterviewHandler(svc services.InterviewService, speech tts.Provider, logger *logrus.Logger) *InterviewHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &InterviewHandler{svc: svc, tts: speech, logger: logger}
}

type StartInterviewRequest struct {
	QuestionCount  *int  `json:"question_count"`
	AllowFollowUps *bool `json:"allow_follow_ups"`
}

type StartInterviewResponse struct {
	SessionID      string `json:"session_id"`
	Status         string `json:"status"`
	TotalQuestions int    `json:"total_questions"`
	FirstQuestion  string `json:"first_question"`
	CreatedAt      string `json:"created_at"`
}

func (h *InterviewHandler) Start(c *gin.Context) {
	var req StartInterviewRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, invalidBody("InterviewHandler.Start", err))
			return
		}
	}

	sess, err := h.svc.Create(c.Request.Context(), services.CreateSessionInput{
		QuestionCount:  req.QuestionCount,
		AllowFollowUps: req.AllowFollowUps,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, StartInterviewResponse{
		SessionID:      sess.SessionID,
		Status:         sess.Status,
		TotalQuestions: len(sess.Questions),
		FirstQuestion:  sess.Questions[0],
		CreatedAt:      sess.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

type PromptResponse struct {
	*services.PromptView
	PromptAudioBase64 string `json:"prompt_audio_base64,omitempty"`
}

func (h *InterviewHandler) Prompt(c *gin.Context) {
	view, err := h.svc.CurrentPrompt(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := PromptResponse{PromptView: view}
	if c.Query("speak") == "1" && h.tts != nil && view.Prompt != nil {
		audio, err := h.tts.Synthesize(c.Request.Context(), *view.Prompt)
		if err != nil {
			// degrade to text-only
			h.logger.WithError(err).Warn("prompt synthesis failed")
		} else {
			resp.PromptAudioBase64 = base64.StdEncoding.EncodeToString(audio)
		}
	}

	c.JSON(http.StatusOK, resp)
}

type SubmitAnswerRequest struct {
	Text             string   `json:"text"`
	AudioBase64      string   `json:"audio_base64"`
	MimeType         string   `json:"mime_type"`
	ResponseDelaySec *float64 `json:"response_delay_sec"`
}

func (h *InterviewHandler) SubmitAnswer(c *gin.Context) {
	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, invalidBody("InterviewHandler.SubmitAnswer", err))
		return
	}

	out, err := h.svc.SubmitAnswer(c.Request.Context(), c.Param("session_id"), services.SubmitAnswerInput{
		Text:             req.Text,
		AudioBase64:      req.AudioBase64,
		MimeType:         req.MimeType,
		ResponseDelaySec: req.ResponseDelaySec,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *InterviewHandler) Result(c *gin.Context) {
	view, err := h.svc.Result(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
