package service

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/lawdesk/internal/apperror"
	"github.com/lshigami/lawdesk/internal/auth"
	"github.com/lshigami/lawdesk/internal/dto"
	"github.com/lshigami/lawdesk/internal/model"
	"github.com/lshigami/lawdesk/internal/repository"
	"github.com/rs/zerolog/log"
)

type AdminTestService interface {
	ListTests(ctx context.Context) ([]dto.AdminTestDTO, error)
	GetTest(ctx context.Context, id uint) (*dto.AdminTestDTO, error)
	CreateTest(ctx context.Context, p *auth.Principal, req dto.TestCreateDTO) (*dto.AdminTestDTO, error)
	UpdateTest(ctx context.Context, p *auth.Principal, id uint, req dto.TestUpdateDTO) (*dto.AdminTestDTO, error)
	SetPublished(ctx context.Context, p *auth.Principal, id uint, published bool) (*dto.AdminTestDTO, error)
	DeleteTest(ctx context.Context, p *auth.Principal, id uint) error

	AddQuestion(ctx context.Context, p *auth.Principal, testID uint, req dto.QuestionCreateDTO) (*dto.AdminQuestionDTO, error)
	UpdateQuestion(ctx context.Context, p *auth.Principal, id uint, req dto.QuestionUpdateDTO) (*dto.AdminQuestionDTO, error)
	DeleteQuestion(ctx context.Context, p *auth.Principal, id uint) error
}

type adminTestService struct {
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
}

func NewAdminTestService(testRepo repository.TestRepository, questionRepo repository.QuestionRepository) AdminTestService {
	return &adminTestService{testRepo: testRepo, questionRepo: questionRepo}
}

func (s *adminTestService) ListTests(ctx context.Context) ([]dto.AdminTestDTO, error) {
	tests, err := s.testRepo.FindAll(ctx, false)
	if err != nil {
		log.Error().Err(err).Msg("Admin ListTests: repository error")
		return nil, apperror.FromStore(err, "Test")
	}
	resp := make([]dto.AdminTestDTO, 0, len(tests))
	if err := copier.Copy(&resp, &tests); err != nil {
		return nil, apperror.Internal(fmt.Errorf("map tests: %w", err))
	}
	return resp, nil
}

func (s *adminTestService) GetTest(ctx context.Context, id uint) (*dto.AdminTestDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(ctx, id)
	if err != nil {
		return nil, apperror.FromStore(err, "Test")
	}
	return toAdminTest(test)
}

func (s *adminTestService) CreateTest(ctx context.Context, p *auth.Principal, req dto.TestCreateDTO) (*dto.AdminTestDTO, error) {
	if err := auth.RequireRole(p, auth.Staff); err != nil {
		return nil, err
	}

	seen := make(map[int]bool, len(req.Questions))
	var fieldErrs []apperror.FieldError
	questions := make([]model.Question, 0, len(req.Questions))
	for i, qDto := range req.Questions {
		if seen[qDto.QuestionNumber] {
			fieldErrs = append(fieldErrs, apperror.FieldError{
				Field: fmt.Sprintf("questions[%d].questionNumber", i),
				Error: fmt.Sprintf("duplicate question number %d", qDto.QuestionNumber),
			})
			continue
		}
		seen[qDto.QuestionNumber] = true

		var q model.Question
		if err := copier.Copy(&q, &qDto); err != nil {
			return nil, apperror.Internal(fmt.Errorf("map question: %w", err))
		}
		questions = append(questions, q)
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.Validation(fieldErrs...)
	}

	creator := p.UserID
	test := model.Test{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Difficulty:   model.Difficulty(req.Difficulty),
		TimeLimit:    req.TimeLimit,
		PassingScore: req.PassingScore,
		IsPublished:  req.IsPublished,
		CreatedByID:  &creator,
		Questions:    questions,
	}
	if err := s.testRepo.Create(ctx, &test); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Admin CreateTest: failed to create test")
		return nil, apperror.FromStore(err, "Test")
	}
	log.Info().Uint("testID", test.ID).Uint("createdBy", creator).Int("questions", len(questions)).Msg("Test created")
	return s.GetTest(ctx, test.ID)
}

func (s *adminTestService) UpdateTest(ctx context.Context, p *auth.Principal, id uint, req dto.TestUpdateDTO) (*dto.AdminTestDTO, error) {
	if err := auth.RequireRole(p, auth.Staff); err != nil {
		return nil, err
	}
	test, err := s.testRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromStore(err, "Test")
	}
	if req.Title != nil {
		test.Title = *req.Title
	}
	if req.Description != nil {
		test.Description = *req.Description
	}
	if req.Category != nil {
		test.Category = *req.Category
	}
	if req.Difficulty != nil {
		test.Difficulty = model.Difficulty(*req.Difficulty)
	}
	if req.TimeLimit != nil {
		test.TimeLimit = *req.TimeLimit
	}
	if req.PassingScore != nil {
		test.PassingScore = *req.PassingScore
	}
	if err := s.testRepo.Update(ctx, test); err != nil {
		log.Error().Err(err).Uint("testID", id).Msg("Admin UpdateTest: repository error")
		return nil, apperror.FromStore(err, "Test")
	}
	return s.GetTest(ctx, id)
}

func (s *adminTestService) SetPublished(ctx context.Context, p *auth.Principal, id uint, published bool) (*dto.AdminTestDTO, error) {
	if err := auth.RequireRole(p, auth.Staff); err != nil {
		return nil, err
	}
	if err := s.testRepo.SetPublished(ctx, id, published); err != nil {
		return nil, apperror.FromStore(err, "Test")
	}
	log.Info().Uint("testID", id).Bool("published", published).Msg("Test publish state changed")
	return s.GetTest(ctx, id)
}

func (s *adminTestService) DeleteTest(ctx context.Context, p *auth.Principal, id uint) error {
	if err := auth.RequireRole(p, auth.Staff); err != nil {
		return err
	}
	if err := s.testRepo.Delete(ctx, id); err != nil {
		return apperror.FromStore(err, "Test")
	}
	log.Info().Uint("testID", id).Msg("Test deleted")
	return nil
}

func (s *adminTestService) AddQuestion(ctx context.Context, p *auth.Principal, testID uint, req dto.QuestionCreateDTO) (*dto.AdminQuestionDTO, error) {
	if err := auth.RequireRole(p, auth.Staff); err != nil {
		return nil, err
	}
	if _, err := s.testRepo.FindByID(ctx, testID); err != nil {
		return nil, apperror.FromStore(err, "Test")
	}
	var q model.Question
	if err := copier.Copy(&q, &req); err != nil {
		return nil, apperror.Internal(fmt.Errorf("map question: %w", err))
	}
	q.TestID = testID
	if err := s.testRepo.AddQuestion(ctx, &q); err != nil {
		return nil, apperror.FromStore(err, "Question")
	}
	return toAdminQuestion(&q), nil
}

func (s *adminTestService) UpdateQuestion(ctx context.Context, p *auth.Principal, id uint, req dto.QuestionUpdateDTO) (*dto.AdminQuestionDTO, error) {
	if err := auth.RequireRole(p, auth.Staff); err != nil {
		return nil, err
	}
	q, err := s.questionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromStore(err, "Question")
	}
	if err := copier.CopyWithOption(q, &req, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, apperror.Internal(fmt.Errorf("map question update: %w", err))
	}
	if err := s.testRepo.UpdateQuestion(ctx, q); err != nil {
		return nil, apperror.FromStore(err, "Question")
	}
	return toAdminQuestion(q), nil
}

func (s *adminTestService) DeleteQuestion(ctx context.Context, p *auth.Principal, id uint) error {
	if err := auth.RequireRole(p, auth.Staff); err != nil {
		return err
	}
	q, err := s.questionRepo.FindByID(ctx, id)
	if err != nil {
		return apperror.FromStore(err, "Question")
	}
	if err := s.testRepo.DeleteQuestion(ctx, q); err != nil {
		return apperror.FromStore(err, "Question")
	}
	return nil
}

func toAdminTest(test *model.Test) (*dto.AdminTestDTO, error) {
	var resp dto.AdminTestDTO
	if err := copier.Copy(&resp, test); err != nil {
		log.Error().Err(err).Msg("Failed to copy Test model to AdminTestDTO")
		return nil, apperror.Internal(err)
	}
	return &resp, nil
}

func toAdminQuestion(q *model.Question) *dto.AdminQuestionDTO {
	var resp dto.AdminQuestionDTO
	_ = copier.Copy(&resp, q)
	return &resp
}
