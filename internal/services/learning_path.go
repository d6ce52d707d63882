package services

import (
	"context"

	"github.com/google/uuid"
)

// LearningPathService rebuilds a learner's study plan from fresh mastery
// evidence. The implementation lives in the planner service; finalization
// treats it as best-effort and absorbs failures.
type LearningPathService interface {
	RefreshFromSuggestions(ctx context.Context, userID uuid.UUID, suggestionCount int) ([]string, error)
}
