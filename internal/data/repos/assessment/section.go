package assessment

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/nexlearn/nexlearn-backend/internal/domain"
	"github.com/nexlearn/nexlearn-backend/internal/platform/logger"
)

type SectionRepo interface {
	GetByAssessmentID(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) ([]*types.AssessmentSection, error)
}

type sectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSectionRepo(db *gorm.DB, baseLog *logger.Logger) SectionRepo {
	return &sectionRepo{db: db, log: baseLog.With("repo", "SectionRepo")}
}

func (r *sectionRepo) GetByAssessmentID(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) ([]*types.AssessmentSection, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.AssessmentSection
	if assessmentID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Order("position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type SectionQuestionRepo interface {
	GetBySectionIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) ([]*types.SectionQuestion, error)
	CountByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

type sectionQuestionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSectionQuestionRepo(db *gorm.DB, baseLog *logger.Logger) SectionQuestionRepo {
	return &sectionQuestionRepo{db: db, log: baseLog.With("repo", "SectionQuestionRepo")}
}

func (r *sectionQuestionRepo) GetBySectionIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) ([]*types.SectionQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SectionQuestion
	if len(sectionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("section_id IN ?", sectionIDs).
		Order("position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sectionQuestionRepo) CountByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	out := make(map[uuid.UUID]int)
	if len(assessmentIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		AssessmentID uuid.UUID
		N            int
	}
	if err := transaction.WithContext(ctx).
		Model(&types.SectionQuestion{}).
		Select("assessment_sections.assessment_id AS assessment_id, COUNT(*) AS n").
		Joins("JOIN assessment_sections ON assessment_sections.id = section_questions.section_id").
		Where("assessment_sections.assessment_id IN ?", assessmentIDs).
		Group("assessment_sections.assessment_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.AssessmentID] = row.N
	}
	return out, nil
}
