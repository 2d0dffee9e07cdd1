package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/yoockh/mockview/internal/models"
	"github.com/yoockh/mockview/internal/repositories/memory"
	"github.com/yoockh/mockview/internal/utils"
)

func TestFindMissingReturnsNotFound(t *testing.T) {
	repo := memory.NewInterviewRepo()
	if _, err := repo.FindBySessionID(context.Background(), "nope"); !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSaveRequiresExistingSession(t *testing.T) {
	repo := memory.NewInterviewRepo()
	err := repo.Save(context.Background(), &models.InterviewSession{SessionID: "ghost"})
	if !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestFindReturnsIsolatedCopy(t *testing.T) {
	repo := memory.NewInterviewRepo()
	ctx := context.Background()

	fu := "why?"
	s := &models.InterviewSession{
		SessionID:               "s1",
		Status:                  models.StatusInProgress,
		Questions:               []string{"q1"},
		AwaitingFollowUp:        true,
		PendingFollowUpQuestion: &fu,
		Turns:                   []models.SessionTurn{{Question: "q1", Answer: "a1"}},
	}
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create err: %v", err)
	}

	got, err := repo.FindBySessionID(ctx, "s1")
	if err != nil {
		t.Fatalf("Find err: %v", err)
	}

	got.Turns[0].Answer = "mutated"
	*got.PendingFollowUpQuestion = "mutated"
	got.Questions[0] = "mutated"

	again, _ := repo.FindBySessionID(ctx, "s1")
	if again.Turns[0].Answer != "a1" || *again.PendingFollowUpQuestion != "why?" || again.Questions[0] != "q1" {
		t.Fatalf("stored session was aliased: %+v", again)
	}
}
