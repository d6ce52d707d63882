package progress

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/nexlearn/nexlearn-backend/internal/domain"
	"github.com/nexlearn/nexlearn-backend/internal/platform/logger"
)

type LessonSkillRepo interface {
	GetBySkillIDs(ctx context.Context, tx *gorm.DB, skillIDs []uuid.UUID) ([]*types.LessonSkill, error)
	GetByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) ([]*types.LessonSkill, error)
}

type lessonSkillRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonSkillRepo(db *gorm.DB, baseLog *logger.Logger) LessonSkillRepo {
	return &lessonSkillRepo{db: db, log: baseLog.With("repo", "LessonSkillRepo")}
}

func (r *lessonSkillRepo) GetBySkillIDs(ctx context.Context, tx *gorm.DB, skillIDs []uuid.UUID) ([]*types.LessonSkill, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LessonSkill
	if len(skillIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("skill_id IN ?", skillIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *lessonSkillRepo) GetByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) ([]*types.LessonSkill, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LessonSkill
	if len(lessonIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("lesson_id IN ?", lessonIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type LessonProgressRepo interface {
	GetByUserAndLessonIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, lessonIDs []uuid.UUID) ([]*types.LessonProgress, error)
	// ApplyPropagation upserts the row keyed by (user_id, lesson_id) with
	// monotonic semantics resolved inside the conflict clause: mastery only
	// rises, attempts increment, and a completed status never regresses.
	ApplyPropagation(ctx context.Context, tx *gorm.DB, row *types.LessonProgress) error
}

type lessonProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonProgressRepo(db *gorm.DB, baseLog *logger.Logger) LessonProgressRepo {
	return &lessonProgressRepo{db: db, log: baseLog.With("repo", "LessonProgressRepo")}
}

func (r *lessonProgressRepo) GetByUserAndLessonIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, lessonIDs []uuid.UUID) ([]*types.LessonProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LessonProgress
	if userID == uuid.Nil || len(lessonIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *lessonProgressRepo) ApplyPropagation(ctx context.Context, tx *gorm.DB, row *types.LessonProgress) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil || row.UserID == uuid.Nil || row.LessonID == uuid.Nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.UpdatedAt = time.Now().UTC()

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"mastery_pct": gorm.Expr("GREATEST(lesson_progress.mastery_pct, EXCLUDED.mastery_pct)"),
				"attempts":    gorm.Expr("lesson_progress.attempts + 1"),
				"status": gorm.Expr(
					"CASE WHEN lesson_progress.status = ? THEN lesson_progress.status ELSE EXCLUDED.status END",
					types.ProgressCompleted,
				),
				"last_activity_at": row.LastActivityAt,
				"updated_at":       row.UpdatedAt,
			}),
		}).
		Create(row).Error
}
