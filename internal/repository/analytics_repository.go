package repository

import (
	"context"

	"github.com/lshigami/lawdesk/internal/model"
	"gorm.io/gorm"
)

type RoleCount struct {
	Role  model.Role
	Count int64
}

type AttemptTotals struct {
	Attempts          int64
	CompletedAttempts int64
	AverageScore      float64
	Passed            int64
}

type TestStat struct {
	TestID            uint
	Title             string
	IsPublished       bool
	PassingScore      float64
	Attempts          int64
	CompletedAttempts int64
	AverageScore      float64
	Passed            int64
}

type AnalyticsRepository interface {
	UsersByRole(ctx context.Context) ([]RoleCount, error)
	TestCounts(ctx context.Context) (total, published int64, err error)
	DocumentCount(ctx context.Context, kind model.DocumentKind) (int64, error)
	AttemptTotals(ctx context.Context) (*AttemptTotals, error)
	TestStats(ctx context.Context) ([]TestStat, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) UsersByRole(ctx context.Context) ([]RoleCount, error) {
	var rows []RoleCount
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error
	return rows, err
}

func (r *analyticsRepository) TestCounts(ctx context.Context) (int64, int64, error) {
	var row struct {
		Total     int64
		Published int64
	}
	err := r.db.WithContext(ctx).Model(&model.Test{}).
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN is_published THEN 1 ELSE 0 END), 0) AS published").
		Scan(&row).Error
	return row.Total, row.Published, err
}

func (r *analyticsRepository) DocumentCount(ctx context.Context, kind model.DocumentKind) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Document{}).Where("kind = ?", kind).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) AttemptTotals(ctx context.Context) (*AttemptTotals, error) {
	var totals AttemptTotals
	err := r.db.WithContext(ctx).Model(&model.TestAttempt{}).
		Joins("JOIN tests ON tests.id = test_attempts.test_id").
		Select(`COUNT(*) AS attempts,
			COALESCE(SUM(CASE WHEN test_attempts.is_completed THEN 1 ELSE 0 END), 0) AS completed_attempts,
			COALESCE(AVG(CASE WHEN test_attempts.is_completed THEN test_attempts.score END), 0) AS average_score,
			COALESCE(SUM(CASE WHEN test_attempts.is_completed AND test_attempts.score >= tests.passing_score THEN 1 ELSE 0 END), 0) AS passed`).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

func (r *analyticsRepository) TestStats(ctx context.Context) ([]TestStat, error) {
	var stats []TestStat
	err := r.db.WithContext(ctx).Model(&model.Test{}).
		Joins("LEFT JOIN test_attempts ON test_attempts.test_id = tests.id").
		Select(`tests.id AS test_id, tests.title, tests.is_published, tests.passing_score,
			COUNT(test_attempts.id) AS attempts,
			COALESCE(SUM(CASE WHEN test_attempts.is_completed THEN 1 ELSE 0 END), 0) AS completed_attempts,
			COALESCE(AVG(CASE WHEN test_attempts.is_completed THEN test_attempts.score END), 0) AS average_score,
			COALESCE(SUM(CASE WHEN test_attempts.is_completed AND test_attempts.score >= tests.passing_score THEN 1 ELSE 0 END), 0) AS passed`).
		Group("tests.id").
		Order("attempts DESC, tests.title ASC").
		Scan(&stats).Error
	return stats, err
}
