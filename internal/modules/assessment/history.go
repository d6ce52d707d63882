package assessment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	types "github.com/nexlearn/nexlearn-backend/internal/domain"
	"github.com/nexlearn/nexlearn-backend/internal/platform/apierr"
)

// AttemptHistory returns a learner's completed attempts in attempt-number
// order, for dashboard trend views. Pass uuid.Nil as assessmentID for all
// assessments.
func (u Usecases) AttemptHistory(ctx context.Context, userID, assessmentID uuid.UUID) ([]*types.AssessmentAttempt, error) {
	if userID == uuid.Nil {
		return nil, apierr.BadRequest("missing_user_id", nil)
	}
	rows, err := u.deps.Attempts.GetCompletedByUser(ctx, nil, userID, assessmentID)
	if err != nil {
		return nil, apierr.Internal("attempt_history_unavailable", fmt.Errorf("load attempts: %w", err))
	}
	return rows, nil
}

// MasteryTrend returns the most recent mastery events for one skill, newest
// first. The events are written append-only at blend time; this is their
// read side.
func (u Usecases) MasteryTrend(ctx context.Context, userID, skillID uuid.UUID, limit int) ([]*types.MasteryEvent, error) {
	if userID == uuid.Nil || skillID == uuid.Nil {
		return nil, apierr.BadRequest("missing_identifiers", nil)
	}
	rows, err := u.deps.MasteryEvents.GetByUserAndSkill(ctx, nil, userID, skillID, limit)
	if err != nil {
		return nil, apierr.Internal("mastery_trend_unavailable", fmt.Errorf("load mastery events: %w", err))
	}
	return rows, nil
}
