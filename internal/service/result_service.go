package service

import (
	"context"
	"errors"

	"github.com/lshigami/lawdesk/internal/apperror"
	"github.com/lshigami/lawdesk/internal/auth"
	"github.com/lshigami/lawdesk/internal/dto"
	"github.com/lshigami/lawdesk/internal/model"
	"github.com/lshigami/lawdesk/internal/practice"
	"github.com/lshigami/lawdesk/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ResultService interface {
	GetResult(ctx context.Context, ref practice.TestRef, p *auth.Principal) (*dto.ResultViewDTO, error)
}

type resultService struct {
	testRepo    repository.TestRepository
	attemptRepo repository.TestAttemptRepository
}

func NewResultService(testRepo repository.TestRepository, attemptRepo repository.TestAttemptRepository) ResultService {
	return &resultService{testRepo: testRepo, attemptRepo: attemptRepo}
}

func (s *resultService) GetResult(ctx context.Context, ref practice.TestRef, p *auth.Principal) (*dto.ResultViewDTO, error) {
	if err := auth.RequireRole(p, auth.AnyUser); err != nil {
		return nil, err
	}

	switch r := ref.(type) {
	case practice.PracticeRef:
		return practiceResult(r.Test), nil
	case practice.PersistedRef:
		test, attempt, err := s.completedAttempt(ctx, r.ID, p.UserID)
		if err != nil {
			return nil, err
		}
		return buildResult(test, attempt), nil
	default:
		return nil, apperror.NotFound("Test")
	}
}

// completedAttempt loads the test with questions and the caller's graded
// attempt for it.
func (s *resultService) completedAttempt(ctx context.Context, testID, userID uint) (*model.Test, *model.TestAttempt, error) {
	test, err := s.testRepo.FindByIDWithQuestions(ctx, testID)
	if err != nil {
		return nil, nil, apperror.FromStore(err, "Test")
	}
	attempt, err := s.attemptRepo.FindCompleted(ctx, testID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, apperror.NotFound("TestAttempt")
	}
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Uint("userID", userID).Msg("GetResult: Failed to load attempt")
		return nil, nil, apperror.FromStore(err, "TestAttempt")
	}
	return test, attempt, nil
}

func buildResult(test *model.Test, attempt *model.TestAttempt) *dto.ResultViewDTO {
	sheet := attempt.Sheet()
	view := &dto.ResultViewDTO{
		Attempt: dto.AttemptResultDTO{
			ID:             formatID(attempt.ID),
			Answers:        sheet,
			Score:          RoundScore(attempt.Score),
			CorrectCount:   attempt.CorrectCount,
			TotalQuestions: attempt.TotalQuestions,
			TimeSpent:      attempt.TimeSpent,
			IsCompleted:    attempt.IsCompleted,
			Passed:         attempt.Score >= test.PassingScore,
			CompletedAt:    attempt.CompletedAt,
		},
		Test: dto.ResultTestDTO{
			ID:           formatID(test.ID),
			Title:        test.Title,
			Description:  test.Description,
			PassingScore: test.PassingScore,
		},
		Questions: make([]dto.QuestionResultDTO, len(test.Questions)),
	}
	for i, q := range test.Questions {
		qr := dto.QuestionResultDTO{
			ID:             formatID(q.ID),
			QuestionNumber: q.QuestionNumber,
			QuestionText:   q.QuestionText,
			OptionA:        q.OptionA,
			OptionB:        q.OptionB,
			OptionC:        q.OptionC,
			OptionD:        q.OptionD,
			CorrectAnswer:  q.CorrectAnswer,
			Explanation:    q.Explanation,
		}
		if selected, ok := sheet[qr.ID]; ok {
			qr.SelectedAnswer = &selected
			qr.IsCorrect = selected == q.CorrectAnswer
		}
		view.Questions[i] = qr
	}
	return view
}

func practiceResult(t *practice.Test) *dto.ResultViewDTO {
	view := &dto.ResultViewDTO{
		Attempt: dto.AttemptResultDTO{
			ID:             t.AttemptID(),
			Answers:        map[string]string{},
			TotalQuestions: len(t.Questions),
		},
		Test: dto.ResultTestDTO{
			ID:           t.ID(),
			Title:        t.Title,
			Description:  t.Description,
			PassingScore: t.PassingScore,
		},
		Questions:  make([]dto.QuestionResultDTO, len(t.Questions)),
		IsPractice: true,
	}
	for i, q := range t.Questions {
		view.Questions[i] = dto.QuestionResultDTO{
			ID:             q.ID(),
			QuestionNumber: q.Number,
			QuestionText:   q.Text,
			OptionA:        q.Options["A"],
			OptionB:        q.Options["B"],
			OptionC:        q.Options["C"],
			OptionD:        q.Options["D"],
			CorrectAnswer:  q.CorrectAnswer,
			Explanation:    q.Explanation,
		}
	}
	return view
}
