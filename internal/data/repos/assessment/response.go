package assessment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/nexlearn/nexlearn-backend/internal/domain"
	"github.com/nexlearn/nexlearn-backend/internal/platform/logger"
)

type ResponseRepo interface {
	GetByAttemptID(ctx context.Context, tx *gorm.DB, attemptID uuid.UUID) ([]*types.AttemptResponse, error)
	// Upsert writes the response keyed by (attempt_id, question_id); a second
	// answer to the same question overwrites the first in place.
	Upsert(ctx context.Context, tx *gorm.DB, row *types.AttemptResponse) error
}

type responseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResponseRepo(db *gorm.DB, baseLog *logger.Logger) ResponseRepo {
	return &responseRepo{db: db, log: baseLog.With("repo", "ResponseRepo")}
}

func (r *responseRepo) GetByAttemptID(ctx context.Context, tx *gorm.DB, attemptID uuid.UUID) ([]*types.AttemptResponse, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.AttemptResponse
	if attemptID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("attempt_id = ?", attemptID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *responseRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.AttemptResponse) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.UpdatedAt = time.Now().UTC()

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"option_id",
				"correct",
				"score_value",
				"time_spent_sec",
				"updated_at",
			}),
		}).
		Create(row).Error
}
