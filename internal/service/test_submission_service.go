package service

import (
	"context"
	"time"

	"github.com/lshigami/lawdesk/internal/apperror"
	"github.com/lshigami/lawdesk/internal/auth"
	"github.com/lshigami/lawdesk/internal/dto"
	"github.com/lshigami/lawdesk/internal/model"
	"github.com/lshigami/lawdesk/internal/practice"
	"github.com/lshigami/lawdesk/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type TestSubmissionService interface {
	SubmitAttempt(ctx context.Context, ref practice.TestRef, p *auth.Principal, req dto.SubmitAttemptDTO) (*dto.ScoreResultDTO, error)
}

type testSubmissionService struct {
	testRepo    repository.TestRepository
	attemptRepo repository.TestAttemptRepository
	now         func() time.Time
}

func NewTestSubmissionService(testRepo repository.TestRepository, attemptRepo repository.TestAttemptRepository) TestSubmissionService {
	return &testSubmissionService{testRepo: testRepo, attemptRepo: attemptRepo, now: time.Now}
}

func (s *testSubmissionService) SubmitAttempt(ctx context.Context, ref practice.TestRef, p *auth.Principal, req dto.SubmitAttemptDTO) (*dto.ScoreResultDTO, error) {
	if err := auth.RequireRole(p, auth.AnyUser); err != nil {
		return nil, err
	}

	switch r := ref.(type) {
	case practice.PracticeRef:
		return gradePractice(r.Test, req), nil
	case practice.PersistedRef:
		return s.submitPersisted(ctx, r.ID, p, req)
	default:
		return nil, apperror.NotFound("Test")
	}
}

func gradePractice(t *practice.Test, req dto.SubmitAttemptDTO) *dto.ScoreResultDTO {
	g := Grade(practiceGradable(t.Questions), selectedAnswers(req), t.PassingScore)
	return &dto.ScoreResultDTO{
		Score:          RoundScore(g.Score),
		CorrectAnswers: g.CorrectCount,
		TotalQuestions: g.TotalQuestions,
		TestAttemptID:  t.AttemptID(),
		Passed:         g.Passed,
		PassingScore:   t.PassingScore,
	}
}

func (s *testSubmissionService) submitPersisted(ctx context.Context, testID uint, p *auth.Principal, req dto.SubmitAttemptDTO) (*dto.ScoreResultDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(ctx, testID)
	if err != nil {
		return nil, apperror.FromStore(err, "Test")
	}
	if !test.IsPublished {
		return nil, apperror.Forbidden(apperror.CodeTestNotPublished, "Test is not published")
	}

	submitted := selectedAnswers(req)
	sheet := make(model.AnswerSheet, len(submitted))
	for _, q := range test.Questions {
		id := formatID(q.ID)
		if label, ok := submitted[id]; ok {
			sheet[id] = label
		}
	}
	if skipped := len(submitted) - len(sheet); skipped > 0 {
		log.Warn().Uint("testID", testID).Int("skipped", skipped).Msg("SubmitAttempt: Answers for questions not in this test were ignored")
	}

	g := Grade(gradableQuestions(test.Questions), sheet, test.PassingScore)
	completedAt := s.now()
	attempt := &model.TestAttempt{
		TestID:         testID,
		UserID:         p.UserID,
		Answers:        datatypes.NewJSONType(sheet),
		Score:          g.Score,
		CorrectCount:   g.CorrectCount,
		TotalQuestions: g.TotalQuestions,
		IsCompleted:    true,
		CompletedAt:    &completedAt,
	}
	keepTimeSpent := req.TimeSpent == nil
	if !keepTimeSpent {
		attempt.TimeSpent = *req.TimeSpent
	}

	if err := s.attemptRepo.UpsertGraded(ctx, attempt, keepTimeSpent); err != nil {
		log.Error().Err(err).Uint("testID", testID).Uint("userID", p.UserID).Msg("SubmitAttempt: Failed to persist graded attempt")
		return nil, apperror.FromStore(err, "TestAttempt")
	}

	log.Info().
		Uint("testID", testID).
		Uint("userID", p.UserID).
		Uint("attemptID", attempt.ID).
		Int("correct", g.CorrectCount).
		Int("total", g.TotalQuestions).
		Bool("passed", g.Passed).
		Msg("Attempt graded")

	return &dto.ScoreResultDTO{
		Score:          RoundScore(g.Score),
		CorrectAnswers: g.CorrectCount,
		TotalQuestions: g.TotalQuestions,
		TestAttemptID:  formatID(attempt.ID),
		Passed:         g.Passed,
		PassingScore:   test.PassingScore,
	}, nil
}
