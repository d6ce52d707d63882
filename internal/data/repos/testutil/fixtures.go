package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/nexlearn/nexlearn-backend/internal/domain"
)

func SeedAssessment(tb testing.TB, ctx context.Context, tx *gorm.DB, purpose types.AssessmentPurpose) *types.Assessment {
	tb.Helper()
	a := &types.Assessment{
		ID:       uuid.New(),
		Title:    "assessment",
		Purpose:  purpose,
		Metadata: datatypes.JSON([]byte("{}")),
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed assessment: %v", err)
	}
	return a
}

func SeedSection(tb testing.TB, ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID, position int) *types.AssessmentSection {
	tb.Helper()
	s := &types.AssessmentSection{
		ID:           uuid.New(),
		AssessmentID: assessmentID,
		Title:        "section",
		Position:     position,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed section: %v", err)
	}
	return s
}

func SeedQuestion(tb testing.TB, ctx context.Context, tx *gorm.DB, prompt string) *types.Question {
	tb.Helper()
	q := &types.Question{
		ID:       uuid.New(),
		Prompt:   prompt,
		Kind:     types.QuestionMultipleChoice,
		Tags:     datatypes.JSON([]byte(`[]`)),
		Metadata: datatypes.JSON([]byte(`{}`)),
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed question: %v", err)
	}
	return q
}

func SeedOption(tb testing.TB, ctx context.Context, tx *gorm.DB, questionID uuid.UUID, correct bool, position int) *types.QuestionOption {
	tb.Helper()
	o := &types.QuestionOption{
		ID:         uuid.New(),
		QuestionID: questionID,
		Body:       "option",
		Correct:    correct,
		Position:   position,
	}
	if err := tx.WithContext(ctx).Create(o).Error; err != nil {
		tb.Fatalf("seed option: %v", err)
	}
	return o
}

func SeedLink(tb testing.TB, ctx context.Context, tx *gorm.DB, sectionID, questionID uuid.UUID, weight float64, position int) *types.SectionQuestion {
	tb.Helper()
	l := &types.SectionQuestion{
		ID:         uuid.New(),
		SectionID:  sectionID,
		QuestionID: questionID,
		Weight:     weight,
		Position:   position,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed section question: %v", err)
	}
	return l
}

func SeedAttempt(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, assessmentID uuid.UUID, number int, status types.AttemptStatus) *types.AssessmentAttempt {
	tb.Helper()
	a := &types.AssessmentAttempt{
		ID:            uuid.New(),
		UserID:        userID,
		AssessmentID:  assessmentID,
		AttemptNumber: number,
		Status:        status,
		StartedAt:     time.Now().UTC(),
		Metadata:      datatypes.JSON([]byte("{}")),
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed attempt: %v", err)
	}
	return a
}

func SeedSkill(tb testing.TB, ctx context.Context, tx *gorm.DB, key string) *types.Skill {
	tb.Helper()
	s := &types.Skill{
		ID:   uuid.New(),
		Key:  key,
		Name: key,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed skill: %v", err)
	}
	return s
}

func SeedLesson(tb testing.TB, ctx context.Context, tx *gorm.DB, title string) *types.Lesson {
	tb.Helper()
	l := &types.Lesson{
		ID:    uuid.New(),
		Title: title,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return l
}

func SeedLessonSkill(tb testing.TB, ctx context.Context, tx *gorm.DB, lessonID, skillID uuid.UUID) *types.LessonSkill {
	tb.Helper()
	ls := &types.LessonSkill{
		ID:       uuid.New(),
		LessonID: lessonID,
		SkillID:  skillID,
	}
	if err := tx.WithContext(ctx).Create(ls).Error; err != nil {
		tb.Fatalf("seed lesson skill: %v", err)
	}
	return ls
}

func SeedModule(tb testing.TB, ctx context.Context, tx *gorm.DB, subject, gradeBand, strand string, visibility types.ModuleVisibility) *types.Module {
	tb.Helper()
	m := &types.Module{
		ID:         uuid.New(),
		Title:      "module",
		Slug:       uuid.NewString(),
		Subject:    subject,
		GradeBand:  gradeBand,
		Strand:     strand,
		Visibility: visibility,
		Metadata:   datatypes.JSON([]byte("{}")),
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed module: %v", err)
	}
	return m
}

func PtrFloat(v float64) *float64 { return &v }

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }
