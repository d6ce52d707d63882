package assessment

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/nexlearn/nexlearn-backend/internal/domain"
	"github.com/nexlearn/nexlearn-backend/internal/platform/logger"
)

type AssessmentRepo interface {
	// PickDiagnostic returns the assessment a learner should take: the most
	// recent diagnostic if one exists, else the most recent baseline, else
	// the most recently created assessment. Returns nil if none exist.
	PickDiagnostic(ctx context.Context, tx *gorm.DB) (*types.Assessment, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Assessment, error)
}

type assessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
	return &assessmentRepo{db: db, log: baseLog.With("repo", "AssessmentRepo")}
}

func (r *assessmentRepo) PickDiagnostic(ctx context.Context, tx *gorm.DB) (*types.Assessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	for _, purpose := range []types.AssessmentPurpose{types.PurposeDiagnostic, types.PurposeBaseline} {
		var rows []*types.Assessment
		if err := transaction.WithContext(ctx).
			Where("purpose = ?", purpose).
			Order("created_at DESC").
			Limit(1).
			Find(&rows).Error; err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			return rows[0], nil
		}
	}

	var rows []*types.Assessment
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *assessmentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Assessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Assessment
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
