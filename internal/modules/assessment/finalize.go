package assessment

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	types "github.com/nexlearn/nexlearn-backend/internal/domain"
	"github.com/nexlearn/nexlearn-backend/internal/platform/apierr"
)

type FinalizeInput struct {
	UserID    uuid.UUID
	AttemptID uuid.UUID
	Answers   []Answer
	StartedAt time.Time
}

type AssessmentResult struct {
	Score        int
	CorrectCount int
	TotalCount   int
	Strengths    []string
	Weaknesses   []string
	PlanMessages []string
}

// FinalizeAttempt turns a finished answer set into durable outcomes: the
// attempt's terminal score and summary, blended per-skill mastery, lesson
// progress propagation, and a refreshed learning plan. Only the attempt
// completion itself is fatal; every step after it degrades to a log line so
// a telemetry failure never blocks a learner from seeing their result.
func (u Usecases) FinalizeAttempt(ctx context.Context, in FinalizeInput) (*AssessmentResult, error) {
	if in.UserID == uuid.Nil || in.AttemptID == uuid.Nil {
		return nil, apierr.BadRequest("missing_identifiers", nil)
	}
	if len(in.Answers) == 0 {
		return nil, apierr.BadRequest("empty_attempt", ErrEmptyAttempt)
	}

	now := u.deps.Now()
	score, correctCount := aggregateScore(in.Answers)
	strengths, weaknesses := conceptSummary(in.Answers)

	meta := map[string]interface{}{
		"strengths":    strengths,
		"weaknesses":   weaknesses,
		"started_at":   in.StartedAt.UTC().Format(time.RFC3339),
		"completed_at": now.Format(time.RFC3339),
	}
	rawMeta, err := json.Marshal(meta)
	if err != nil {
		return nil, apierr.Internal("finalize_failed", fmt.Errorf("marshal attempt metadata: %w", err))
	}

	// Completion is the causal gate: mastery blending below reads current
	// estimates as its baseline, so a concurrent second finalize must stop
	// here instead of double-blending.
	ok, err := u.deps.Attempts.Complete(ctx, nil, in.AttemptID, float64(score), now, datatypes.JSON(rawMeta))
	if err != nil {
		return nil, apierr.Internal("finalize_failed", fmt.Errorf("complete attempt: %w", err))
	}
	if !ok {
		return nil, apierr.Conflict("attempt_already_completed", ErrAttemptCompleted)
	}

	blended := u.blendSkillMastery(ctx, in, now)
	u.propagateLessonProgress(ctx, in.UserID, blended, now)

	planMessages := u.refreshPlan(ctx, in.UserID)

	if u.deps.Profile != nil {
		if err := u.deps.Profile.MarkDiagnosticCompleted(ctx, in.UserID); err != nil {
			u.deps.Log.Warn("diagnostic profile flag failed", "user_id", in.UserID, "error", err)
		}
	}

	return &AssessmentResult{
		Score:        score,
		CorrectCount: correctCount,
		TotalCount:   len(in.Answers),
		Strengths:    strengths,
		Weaknesses:   weaknesses,
		PlanMessages: planMessages,
	}, nil
}

// blendSkillMastery upserts the blended estimate for every skill the attempt
// touched and appends one mastery event per skill that persisted.
// Best-effort: failures are logged, the surviving skills still propagate.
// Returns the blended percentages keyed by skill id.
func (u Usecases) blendSkillMastery(ctx context.Context, in FinalizeInput, now time.Time) map[uuid.UUID]float64 {
	observations := skillObservations(in.Answers)
	if len(observations) == 0 {
		return nil
	}

	skillIDs := make([]uuid.UUID, 0, len(observations))
	for skillID := range observations {
		skillIDs = append(skillIDs, skillID)
	}

	priorRows, err := u.deps.SkillMastery.GetByUserAndSkillIDs(ctx, nil, in.UserID, skillIDs)
	if err != nil {
		u.deps.Log.Warn("skill mastery baseline read failed, skipping blend",
			"user_id", in.UserID, "attempt_id", in.AttemptID, "error", err)
		return nil
	}
	priors := make(map[uuid.UUID]float64, len(priorRows))
	for _, row := range priorRows {
		priors[row.SkillID] = row.MasteryPct
	}

	// Compute every blend before the fan-out starts; the goroutines below
	// never touch the map, only the failed set.
	blended := make(map[uuid.UUID]float64, len(observations))
	for skillID, observed := range observations {
		blended[skillID] = blendMastery(priors[skillID], observed)
	}

	var (
		mu     sync.Mutex
		failed = make(map[uuid.UUID]struct{})
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for skillID, value := range blended {
		skillID, value := skillID, value
		g.Go(func() error {
			row := &types.SkillMastery{
				UserID:       in.UserID,
				SkillID:      skillID,
				MasteryPct:   value,
				LastEvidence: now,
				Note:         fmt.Sprintf("attempt %s", in.AttemptID),
			}
			if err := u.deps.SkillMastery.Upsert(gctx, nil, row); err != nil {
				u.deps.Log.Warn("skill mastery upsert failed",
					"user_id", in.UserID, "skill_id", skillID, "error", err)
				mu.Lock()
				failed[skillID] = struct{}{}
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	for skillID := range failed {
		delete(blended, skillID)
	}

	// Audit rows only for estimates that actually persisted, so the trend
	// view never replays a value the store refused.
	events := make([]*types.MasteryEvent, 0, len(blended))
	for skillID, value := range blended {
		prior := priors[skillID]
		events = append(events, &types.MasteryEvent{
			UserID:      in.UserID,
			SkillID:     skillID,
			PriorPct:    prior,
			ObservedPct: observations[skillID],
			BlendedPct:  value,
			Delta:       value - prior,
			Source:      "diagnostic_attempt",
			CreatedAt:   now,
		})
	}
	if len(events) > 0 {
		if err := u.deps.MasteryEvents.Create(ctx, nil, events); err != nil {
			u.deps.Log.Warn("mastery event append failed",
				"user_id", in.UserID, "attempt_id", in.AttemptID, "error", err)
		}
	}

	return blended
}

// propagateLessonProgress rolls blended skill mastery up to every lesson
// sharing one of the updated skills. A lesson's target is the maximum
// blended mastery among its skills; the store applies it monotonically.
func (u Usecases) propagateLessonProgress(ctx context.Context, userID uuid.UUID, blended map[uuid.UUID]float64, now time.Time) {
	if len(blended) == 0 {
		return
	}

	skillIDs := make([]uuid.UUID, 0, len(blended))
	for skillID := range blended {
		skillIDs = append(skillIDs, skillID)
	}

	links, err := u.deps.LessonSkills.GetBySkillIDs(ctx, nil, skillIDs)
	if err != nil {
		u.deps.Log.Warn("lesson link read failed, skipping propagation",
			"user_id", userID, "error", err)
		return
	}
	if len(links) == 0 {
		return
	}

	targets := make(map[uuid.UUID]float64)
	for _, link := range links {
		value, ok := blended[link.SkillID]
		if !ok {
			continue
		}
		if value > targets[link.LessonID] {
			targets[link.LessonID] = value
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for lessonID, target := range targets {
		lessonID, target := lessonID, target
		g.Go(func() error {
			row := &types.LessonProgress{
				UserID:         userID,
				LessonID:       lessonID,
				MasteryPct:     target,
				Attempts:       1,
				Status:         types.ProgressInProgress,
				LastActivityAt: now,
			}
			if err := u.deps.LessonProgress.ApplyPropagation(gctx, nil, row); err != nil {
				u.deps.Log.Warn("lesson progress upsert failed",
					"user_id", userID, "lesson_id", lessonID, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (u Usecases) refreshPlan(ctx context.Context, userID uuid.UUID) []string {
	if u.deps.Paths == nil {
		return nil
	}
	messages, err := u.deps.Paths.RefreshFromSuggestions(ctx, userID, planSuggestionCount)
	if err != nil {
		u.deps.Log.Warn("learning path refresh failed", "user_id", userID, "error", err)
		return nil
	}
	return messages
}
