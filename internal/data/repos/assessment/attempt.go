package assessment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/nexlearn/nexlearn-backend/internal/domain"
	"github.com/nexlearn/nexlearn-backend/internal/platform/logger"
)

// AttemptStats summarizes attempt usage of an assessment: how many attempts
// exist, how many finished, and the average score across finished ones.
type AttemptStats struct {
	AttemptCount   int
	CompletedCount int
	AvgScorePct    *float64
}

type AttemptRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AssessmentAttempt, error)
	GetInProgress(ctx context.Context, tx *gorm.DB, userID, assessmentID uuid.UUID) (*types.AssessmentAttempt, error)
	MaxAttemptNumber(ctx context.Context, tx *gorm.DB, userID, assessmentID uuid.UUID) (int, error)
	Create(ctx context.Context, tx *gorm.DB, row *types.AssessmentAttempt) (*types.AssessmentAttempt, error)
	// Complete marks an in_progress attempt completed. Returns false when the
	// attempt was not in_progress anymore, so a second finalize of the same
	// attempt fails cleanly instead of double-applying.
	Complete(ctx context.Context, tx *gorm.DB, id uuid.UUID, scorePct float64, completedAt time.Time, metadata datatypes.JSON) (bool, error)
	UpdateMetadata(ctx context.Context, tx *gorm.DB, id uuid.UUID, metadata datatypes.JSON) error
	GetCompletedByUser(ctx context.Context, tx *gorm.DB, userID, assessmentID uuid.UUID) ([]*types.AssessmentAttempt, error)
	StatsByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) (map[uuid.UUID]AttemptStats, error)
}

type attemptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAttemptRepo(db *gorm.DB, baseLog *logger.Logger) AttemptRepo {
	return &attemptRepo{db: db, log: baseLog.With("repo", "AttemptRepo")}
}

func (r *attemptRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AssessmentAttempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if id == uuid.Nil {
		return nil, nil
	}
	var row types.AssessmentAttempt
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *attemptRepo) GetInProgress(ctx context.Context, tx *gorm.DB, userID, assessmentID uuid.UUID) (*types.AssessmentAttempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == uuid.Nil || assessmentID == uuid.Nil {
		return nil, nil
	}
	var row types.AssessmentAttempt
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND assessment_id = ? AND status = ?", userID, assessmentID, types.AttemptInProgress).
		Order("attempt_number DESC").
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *attemptRepo) MaxAttemptNumber(ctx context.Context, tx *gorm.DB, userID, assessmentID uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var max *int
	if err := transaction.WithContext(ctx).
		Model(&types.AssessmentAttempt{}).
		Select("MAX(attempt_number)").
		Where("user_id = ? AND assessment_id = ?", userID, assessmentID).
		Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *attemptRepo) Create(ctx context.Context, tx *gorm.DB, row *types.AssessmentAttempt) (*types.AssessmentAttempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil, nil
	}
	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *attemptRepo) Complete(ctx context.Context, tx *gorm.DB, id uuid.UUID, scorePct float64, completedAt time.Time, metadata datatypes.JSON) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.AssessmentAttempt{}).
		Where("id = ? AND status = ?", id, types.AttemptInProgress).
		Updates(map[string]interface{}{
			"status":       types.AttemptCompleted,
			"score_pct":    scorePct,
			"completed_at": completedAt,
			"metadata":     metadata,
			"updated_at":   completedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *attemptRepo) UpdateMetadata(ctx context.Context, tx *gorm.DB, id uuid.UUID, metadata datatypes.JSON) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.AssessmentAttempt{}).
		Where("id = ?", id).
		Update("metadata", metadata).Error
}

func (r *attemptRepo) GetCompletedByUser(ctx context.Context, tx *gorm.DB, userID, assessmentID uuid.UUID) ([]*types.AssessmentAttempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.AssessmentAttempt
	if userID == uuid.Nil {
		return results, nil
	}

	q := transaction.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, types.AttemptCompleted)
	if assessmentID != uuid.Nil {
		q = q.Where("assessment_id = ?", assessmentID)
	}
	if err := q.Order("attempt_number ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *attemptRepo) StatsByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) (map[uuid.UUID]AttemptStats, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	out := make(map[uuid.UUID]AttemptStats)
	if len(assessmentIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		AssessmentID uuid.UUID
		Attempts     int
		Completed    int
		AvgScore     *float64
	}
	if err := transaction.WithContext(ctx).
		Model(&types.AssessmentAttempt{}).
		Select(
			"assessment_id",
			"COUNT(*) AS attempts",
			"COUNT(*) FILTER (WHERE status = 'completed') AS completed",
			"AVG(score_pct) FILTER (WHERE status = 'completed') AS avg_score",
		).
		Where("assessment_id IN ?", assessmentIDs).
		Group("assessment_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.AssessmentID] = AttemptStats{
			AttemptCount:   row.Attempts,
			CompletedCount: row.Completed,
			AvgScorePct:    row.AvgScore,
		}
	}
	return out, nil
}
