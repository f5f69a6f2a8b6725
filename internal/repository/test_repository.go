package repository

import (
	"context"

	"github.com/lshigami/lawdesk/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TestRepository interface {
	Create(ctx context.Context, test *model.Test) error
	FindByID(ctx context.Context, id uint) (*model.Test, error)
	FindByIDWithQuestions(ctx context.Context, id uint) (*model.Test, error)
	FindAll(ctx context.Context, publishedOnly bool) ([]model.Test, error)
	Update(ctx context.Context, test *model.Test) error
	SetPublished(ctx context.Context, id uint, published bool) error
	Delete(ctx context.Context, id uint) error

	// Question writes recount Test.TotalQuestions in the same transaction.
	AddQuestion(ctx context.Context, question *model.Question) error
	UpdateQuestion(ctx context.Context, question *model.Question) error
	DeleteQuestion(ctx context.Context, question *model.Question) error
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(ctx context.Context, test *model.Test) error {
	test.TotalQuestions = len(test.Questions)
	return r.db.WithContext(ctx).Create(test).Error
}

func (r *testRepository) FindByID(ctx context.Context, id uint) (*model.Test, error) {
	var test model.Test
	if err := r.db.WithContext(ctx).First(&test, id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindByIDWithQuestions(ctx context.Context, id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.WithContext(ctx).Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.question_number ASC")
	}).First(&test, id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindAll(ctx context.Context, publishedOnly bool) ([]model.Test, error) {
	var tests []model.Test
	query := r.db.WithContext(ctx).Order("tests.created_at DESC")
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if err := query.Find(&tests).Error; err != nil {
		return nil, err
	}
	return tests, nil
}

func (r *testRepository) Update(ctx context.Context, test *model.Test) error {
	res := r.db.WithContext(ctx).Model(test).
		Select("title", "description", "category", "difficulty", "time_limit", "passing_score", "is_published").
		Updates(test)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *testRepository) SetPublished(ctx context.Context, id uint, published bool) error {
	res := r.db.WithContext(ctx).Model(&model.Test{}).Where("id = ?", id).Update("is_published", published)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *testRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Select(clause.Associations).Delete(&model.Test{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *testRepository) AddQuestion(ctx context.Context, question *model.Question) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(question).Error; err != nil {
			return err
		}
		return recountQuestions(tx, question.TestID)
	})
}

func (r *testRepository) UpdateQuestion(ctx context.Context, question *model.Question) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(question).
			Select("question_number", "question_text", "option_a", "option_b", "option_c", "option_d", "correct_answer", "explanation").
			Updates(question).Error
		if err != nil {
			return err
		}
		return recountQuestions(tx, question.TestID)
	})
}

func (r *testRepository) DeleteQuestion(ctx context.Context, question *model.Question) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Question{}, question.ID).Error; err != nil {
			return err
		}
		return recountQuestions(tx, question.TestID)
	})
}

func recountQuestions(tx *gorm.DB, testID uint) error {
	return tx.Model(&model.Test{}).Where("id = ?", testID).
		Update("total_questions", tx.Model(&model.Question{}).Select("COUNT(*)").Where("test_id = ?", testID)).Error
}
