package service

import (
	"context"
	"errors"

	"github.com/lshigami/lawdesk/internal/apperror"
	"github.com/lshigami/lawdesk/internal/auth"
	"github.com/lshigami/lawdesk/internal/dto"
	"github.com/lshigami/lawdesk/internal/repository"
	"github.com/rs/zerolog/log"
)

type QuestionService interface {
	DraftExplanation(ctx context.Context, p *auth.Principal, questionID uint, save bool) (*dto.ExplanationDraftDTO, error)
}

type questionService struct {
	questionRepo repository.QuestionRepository
	testRepo     repository.TestRepository
	drafter      ExplanationDrafter
}

func NewQuestionService(questionRepo repository.QuestionRepository, testRepo repository.TestRepository, drafter ExplanationDrafter) QuestionService {
	return &questionService{questionRepo: questionRepo, testRepo: testRepo, drafter: drafter}
}

func (s *questionService) DraftExplanation(ctx context.Context, p *auth.Principal, questionID uint, save bool) (*dto.ExplanationDraftDTO, error) {
	if err := auth.RequireRole(p, auth.Staff); err != nil {
		return nil, err
	}
	q, err := s.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		return nil, apperror.FromStore(err, "Question")
	}
	test, err := s.testRepo.FindByID(ctx, q.TestID)
	if err != nil {
		return nil, apperror.FromStore(err, "Test")
	}

	text, err := s.drafter.Draft(ctx, test, q)
	if errors.Is(err, ErrDrafterUnavailable) {
		return nil, apperror.Unavailable(apperror.CodeAIUnavailable, "Explanation drafting is not configured")
	}
	if err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("DraftExplanation: drafter failed")
		return nil, apperror.Unavailable(apperror.CodeAIUnavailable, "Explanation drafting failed, try again later")
	}

	resp := &dto.ExplanationDraftDTO{QuestionID: questionID, Explanation: text}
	if save {
		if err := s.questionRepo.UpdateExplanation(ctx, questionID, text); err != nil {
			return nil, apperror.FromStore(err, "Question")
		}
		resp.Saved = true
	}
	return resp, nil
}
