package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/nexlearn/nexlearn-backend/internal/domain"
	"github.com/nexlearn/nexlearn-backend/internal/platform/logger"
)

type ModuleRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Module, error)
	// GetPublicSiblings returns publicly visible modules in the same subject,
	// excluding the ids given.
	GetPublicSiblings(ctx context.Context, tx *gorm.DB, subject string, excludeIDs []uuid.UUID) ([]*types.Module, error)
}

type moduleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewModuleRepo(db *gorm.DB, baseLog *logger.Logger) ModuleRepo {
	return &moduleRepo{db: db, log: baseLog.With("repo", "ModuleRepo")}
}

func (r *moduleRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Module, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Module
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

func (r *moduleRepo) GetPublicSiblings(ctx context.Context, tx *gorm.DB, subject string, excludeIDs []uuid.UUID) ([]*types.Module, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Module
	if subject == "" {
		return results, nil
	}

	q := transaction.WithContext(ctx).
		Where("subject = ? AND visibility = ?", subject, types.VisibilityPublic)
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type ModuleStandardRepo interface {
	GetByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) ([]*types.ModuleStandard, error)
}

type moduleStandardRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewModuleStandardRepo(db *gorm.DB, baseLog *logger.Logger) ModuleStandardRepo {
	return &moduleStandardRepo{db: db, log: baseLog.With("repo", "ModuleStandardRepo")}
}

func (r *moduleStandardRepo) GetByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) ([]*types.ModuleStandard, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ModuleStandard
	if len(moduleIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("module_id IN ?", moduleIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type StandardRepo interface {
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Standard, error)
}

type standardRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStandardRepo(db *gorm.DB, baseLog *logger.Logger) StandardRepo {
	return &standardRepo{db: db, log: baseLog.With("repo", "StandardRepo")}
}

func (r *standardRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Standard, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Standard
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

type ModuleAssessmentRepo interface {
	GetByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) ([]*types.ModuleAssessment, error)
}

type moduleAssessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewModuleAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) ModuleAssessmentRepo {
	return &moduleAssessmentRepo{db: db, log: baseLog.With("repo", "ModuleAssessmentRepo")}
}

func (r *moduleAssessmentRepo) GetByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) ([]*types.ModuleAssessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ModuleAssessment
	if len(moduleIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("module_id IN ?", moduleIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
