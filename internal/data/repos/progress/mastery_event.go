package progress

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/nexlearn/nexlearn-backend/internal/domain"
	"github.com/nexlearn/nexlearn-backend/internal/platform/logger"
)

type MasteryEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.MasteryEvent) error
	GetByUserAndSkill(ctx context.Context, tx *gorm.DB, userID, skillID uuid.UUID, limit int) ([]*types.MasteryEvent, error)
}

type masteryEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMasteryEventRepo(db *gorm.DB, baseLog *logger.Logger) MasteryEventRepo {
	return &masteryEventRepo{db: db, log: baseLog.With("repo", "MasteryEventRepo")}
}

func (r *masteryEventRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.MasteryEvent) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&rows).Error
}

func (r *masteryEventRepo) GetByUserAndSkill(ctx context.Context, tx *gorm.DB, userID, skillID uuid.UUID, limit int) ([]*types.MasteryEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.MasteryEvent
	if userID == uuid.Nil || skillID == uuid.Nil {
		return results, nil
	}
	if limit <= 0 {
		limit = 50
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND skill_id = ?", userID, skillID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
