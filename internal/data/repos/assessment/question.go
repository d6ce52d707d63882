package assessment

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/nexlearn/nexlearn-backend/internal/domain"
	"github.com/nexlearn/nexlearn-backend/internal/platform/logger"
)

type QuestionRepo interface {
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Question, error)
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return &questionRepo{db: db, log: baseLog.With("repo", "QuestionRepo")}
}

func (r *questionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Question
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

type QuestionOptionRepo interface {
	GetByQuestionIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*types.QuestionOption, error)
}

type questionOptionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionOptionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionOptionRepo {
	return &questionOptionRepo{db: db, log: baseLog.With("repo", "QuestionOptionRepo")}
}

func (r *questionOptionRepo) GetByQuestionIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*types.QuestionOption, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.QuestionOption
	if len(questionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("question_id IN ?", questionIDs).
		Order("position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type QuestionSkillRepo interface {
	GetByQuestionIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*types.QuestionSkill, error)
}

type questionSkillRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionSkillRepo(db *gorm.DB, baseLog *logger.Logger) QuestionSkillRepo {
	return &questionSkillRepo{db: db, log: baseLog.With("repo", "QuestionSkillRepo")}
}

func (r *questionSkillRepo) GetByQuestionIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*types.QuestionSkill, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.QuestionSkill
	if len(questionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("question_id IN ?", questionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
