package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/mockview/internal/api/handlers"
	"github.com/yoockh/mockview/internal/api/routes"
	"github.com/yoockh/mockview/internal/models"
	"github.com/yoockh/mockview/internal/services"
	"github.com/yoockh/mockview/internal/utils"
)

// stubService returns canned values; handler tests only exercise transport
// concerns.
type stubService struct {
	prompt *services.PromptView
	err    error
}

func (s *stubService) Create(context.Context, services.CreateSessionInput) (*models.InterviewSession, error) {
	return &models.InterviewSession{
		SessionID: "abc",
		Status:    models.StatusInProgress,
		Questions: []string{"q1", "q2"},
	}, s.err
}

func (s *stubService) CurrentPrompt(context.Context, string) (*services.PromptView, error) {
	return s.prompt, s.err
}

func (s *stubService) SubmitAnswer(context.Context, string, services.SubmitAnswerInput) (*services.SubmitOutcome, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &services.SubmitOutcome{PromptType: models.PromptTypeQuestion}, nil
}

func (s *stubService) Result(context.Context, string) (*services.ResultView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &services.ResultView{SessionID: "abc", Status: models.StatusInProgress}, nil
}

func newRouter(s *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		Interview: handlers.NewInterviewHandler(s, nil, nil),
	})
	return r
}

func TestStartReturnsSession(t *testing.T) {
	r := newRouter(&stubService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/interview/start", strings.NewReader(`{"question_count":2}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp handlers.StartInterviewResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.SessionID != "abc" || resp.FirstQuestion != "q1" || resp.TotalQuestions != 2 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestNotFoundMapsTo404(t *testing.T) {
	r := newRouter(&stubService{err: utils.E(utils.CodeNotFound, "t", "session not found", nil)})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/interview/missing/result", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var apiErr handlers.APIError
	if err := json.Unmarshal(w.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if apiErr.Code != utils.CodeNotFound {
		t.Errorf("code = %q", apiErr.Code)
	}
}

func TestInvalidStateMapsTo409(t *testing.T) {
	r := newRouter(&stubService{err: utils.E(utils.CodeInvalidState, "t", "session is already completed", nil)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/interview/abc/answer", strings.NewReader(`{"text":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}

func TestSubmitAnswerRejectsMalformedBody(t *testing.T) {
	r := newRouter(&stubService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/interview/abc/answer", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
