package repository

import (
	"context"

	"github.com/lshigami/lawdesk/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TestAttemptRepository interface {
	FindByTestAndUser(ctx context.Context, testID, userID uint) (*model.TestAttempt, error)
	FindCompleted(ctx context.Context, testID, userID uint) (*model.TestAttempt, error)
	FindByUser(ctx context.Context, userID uint) ([]model.TestAttempt, error)

	// StartIfAbsent inserts attempt unless the (test, user) row exists. In
	// both cases attempt is left holding the stored row.
	StartIfAbsent(ctx context.Context, attempt *model.TestAttempt) (created bool, err error)

	// UpsertGraded writes the graded fields in one statement. TimeSpent is
	// only overwritten when keepTimeSpent is false.
	UpsertGraded(ctx context.Context, attempt *model.TestAttempt, keepTimeSpent bool) error
}

var attemptConflictTarget = []clause.Column{{Name: "test_id"}, {Name: "user_id"}}

type testAttemptRepository struct {
	db *gorm.DB
}

func NewTestAttemptRepository(db *gorm.DB) TestAttemptRepository {
	return &testAttemptRepository{db: db}
}

func (r *testAttemptRepository) FindByTestAndUser(ctx context.Context, testID, userID uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.WithContext(ctx).Where("test_id = ? AND user_id = ?", testID, userID).First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindCompleted(ctx context.Context, testID, userID uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.WithContext(ctx).
		Where("test_id = ? AND user_id = ? AND is_completed = ?", testID, userID, true).
		Order("completed_at DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindByUser(ctx context.Context, userID uint) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *testAttemptRepository) StartIfAbsent(ctx context.Context, attempt *model.TestAttempt) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: attemptConflictTarget, DoNothing: true}).
		Create(attempt)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 1 {
		return true, nil
	}

	existing, err := r.FindByTestAndUser(ctx, attempt.TestID, attempt.UserID)
	if err != nil {
		return false, err
	}
	*attempt = *existing
	return false, nil
}

func (r *testAttemptRepository) UpsertGraded(ctx context.Context, attempt *model.TestAttempt, keepTimeSpent bool) error {
	columns := []string{"answers", "score", "correct_count", "total_questions", "is_completed", "completed_at", "updated_at"}
	if !keepTimeSpent {
		columns = append(columns, "time_spent")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: attemptConflictTarget, DoUpdates: clause.AssignmentColumns(columns)}).
		Create(attempt).Error
}
