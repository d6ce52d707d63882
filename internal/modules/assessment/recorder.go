package assessment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/nexlearn/nexlearn-backend/internal/domain"
	"github.com/nexlearn/nexlearn-backend/internal/platform/apierr"
)

type RecordResponseInput struct {
	AttemptID uuid.UUID
	Question  LoadedQuestion
	// OptionID is the learner's choice; nil means the question was skipped
	// and is always scored incorrect.
	OptionID *uuid.UUID
	Elapsed  time.Duration
}

// RecordResponse scores and persists one answer. The write is an upsert
// keyed by (attempt, question), so revisiting a question replaces the prior
// answer instead of duplicating it.
func (u Usecases) RecordResponse(ctx context.Context, in RecordResponseInput) (bool, error) {
	if in.AttemptID == uuid.Nil || in.Question.ID == uuid.Nil {
		return false, apierr.BadRequest("missing_identifiers", nil)
	}

	correct := false
	if in.OptionID != nil {
		for _, opt := range in.Question.Options {
			if opt.ID == *in.OptionID {
				correct = opt.Correct
				break
			}
		}
	}

	score := 0.0
	if correct {
		score = in.Question.Weight
	}

	timeSpent := int(in.Elapsed / time.Second)
	if timeSpent < minTimeSpentSec {
		timeSpent = minTimeSpentSec
	}

	row := &types.AttemptResponse{
		AttemptID:    in.AttemptID,
		QuestionID:   in.Question.ID,
		OptionID:     in.OptionID,
		Correct:      correct,
		ScoreValue:   score,
		TimeSpentSec: timeSpent,
	}
	if err := u.deps.Responses.Upsert(ctx, nil, row); err != nil {
		return false, apierr.Internal("response_not_saved", fmt.Errorf("upsert response: %w", err))
	}

	// Progress bookkeeping on the attempt is nice-to-have; a failure here
	// must not lose the answer we just saved.
	if err := u.touchAttempt(ctx, in.AttemptID, in.Question.ID); err != nil {
		u.deps.Log.Warn("attempt touch failed",
			"attempt_id", in.AttemptID,
			"question_id", in.Question.ID,
			"error", err,
		)
	}

	return correct, nil
}

func (u Usecases) touchAttempt(ctx context.Context, attemptID, questionID uuid.UUID) error {
	attempt, err := u.deps.Attempts.GetByID(ctx, nil, attemptID)
	if err != nil {
		return fmt.Errorf("load attempt: %w", err)
	}
	if attempt == nil {
		return fmt.Errorf("attempt %s not found", attemptID)
	}

	meta := map[string]interface{}{}
	if len(attempt.Metadata) > 0 {
		_ = json.Unmarshal(attempt.Metadata, &meta)
	}
	meta["last_question_id"] = questionID.String()
	meta["last_answered_at"] = u.deps.Now().Format(time.RFC3339)

	raw, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	return u.deps.Attempts.UpdateMetadata(ctx, nil, attemptID, datatypes.JSON(raw))
}
