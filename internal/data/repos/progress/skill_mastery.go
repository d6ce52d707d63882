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

type SkillMasteryRepo interface {
	GetByUserAndSkillIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, skillIDs []uuid.UUID) ([]*types.SkillMastery, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.SkillMastery, error)
	// Upsert writes the blended estimate atomically keyed by (user_id,
	// skill_id); no read-modify-write window.
	Upsert(ctx context.Context, tx *gorm.DB, row *types.SkillMastery) error
}

type skillMasteryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSkillMasteryRepo(db *gorm.DB, baseLog *logger.Logger) SkillMasteryRepo {
	return &skillMasteryRepo{db: db, log: baseLog.With("repo", "SkillMasteryRepo")}
}

func (r *skillMasteryRepo) GetByUserAndSkillIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, skillIDs []uuid.UUID) ([]*types.SkillMastery, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SkillMastery
	if userID == uuid.Nil || len(skillIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND skill_id IN ?", userID, skillIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *skillMasteryRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.SkillMastery, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SkillMastery
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *skillMasteryRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.SkillMastery) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil || row.UserID == uuid.Nil || row.SkillID == uuid.Nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.UpdatedAt = time.Now().UTC()

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "skill_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"mastery_pct",
				"last_evidence",
				"note",
				"updated_at",
			}),
		}).
		Create(row).Error
}
