package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lshigami/lawdesk/internal/apperror"
	"github.com/lshigami/lawdesk/internal/auth"
	"github.com/lshigami/lawdesk/internal/dto"
	"github.com/lshigami/lawdesk/internal/model"
	"github.com/lshigami/lawdesk/internal/practice"
	"github.com/lshigami/lawdesk/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TestDeliveryService interface {
	ListTests(ctx context.Context, p *auth.Principal) ([]dto.TestSummaryDTO, error)
	GetTestForTaking(ctx context.Context, ref practice.TestRef, p *auth.Principal) (*dto.TestForTakingDTO, error)
	StartAttempt(ctx context.Context, ref practice.TestRef, p *auth.Principal) (*dto.StartAttemptResponseDTO, error)
}

type testDeliveryService struct {
	testRepo    repository.TestRepository
	attemptRepo repository.TestAttemptRepository
	catalog     *practice.Catalog
}

func NewTestDeliveryService(testRepo repository.TestRepository, attemptRepo repository.TestAttemptRepository, catalog *practice.Catalog) TestDeliveryService {
	return &testDeliveryService{testRepo: testRepo, attemptRepo: attemptRepo, catalog: catalog}
}

func (s *testDeliveryService) ListTests(ctx context.Context, p *auth.Principal) ([]dto.TestSummaryDTO, error) {
	if err := auth.RequireRole(p, auth.AnyUser); err != nil {
		return nil, err
	}

	tests, err := s.testRepo.FindAll(ctx, true)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list published tests")
		return nil, apperror.FromStore(err, "Test")
	}
	attempts, err := s.attemptRepo.FindByUser(ctx, p.UserID)
	if err != nil {
		log.Error().Err(err).Uint("userID", p.UserID).Msg("Failed to load attempts for test listing")
		return nil, apperror.FromStore(err, "TestAttempt")
	}
	byTest := make(map[uint]model.TestAttempt, len(attempts))
	for _, a := range attempts {
		byTest[a.TestID] = a
	}

	summaries := make([]dto.TestSummaryDTO, 0, len(tests)+len(s.catalog.All()))
	for i := range tests {
		var summary dto.TestSummaryDTO
		if err := copyWithIDs(&summary, &tests[i]); err != nil {
			return nil, apperror.Internal(fmt.Errorf("map test summary: %w", err))
		}
		if a, ok := byTest[tests[i].ID]; ok {
			summary.Attempted = true
			summary.Completed = a.IsCompleted
			if a.IsCompleted {
				score := RoundScore(a.Score)
				summary.LastScore = &score
			}
		}
		summaries = append(summaries, summary)
	}
	for _, t := range s.catalog.All() {
		summaries = append(summaries, practiceSummary(t))
	}
	return summaries, nil
}

func (s *testDeliveryService) GetTestForTaking(ctx context.Context, ref practice.TestRef, p *auth.Principal) (*dto.TestForTakingDTO, error) {
	if err := auth.RequireRole(p, auth.AnyUser); err != nil {
		return nil, err
	}

	switch r := ref.(type) {
	case practice.PracticeRef:
		return practiceForTaking(r.Test), nil
	case practice.PersistedRef:
		return s.persistedForTaking(ctx, r.ID, p)
	default:
		return nil, apperror.NotFound("Test")
	}
}

func (s *testDeliveryService) persistedForTaking(ctx context.Context, testID uint, p *auth.Principal) (*dto.TestForTakingDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(ctx, testID)
	if err != nil {
		return nil, apperror.FromStore(err, "Test")
	}
	// unpublished tests are reported as missing
	if !test.IsPublished {
		return nil, apperror.NotFound("Test")
	}

	resp, err := toTestForTaking(test)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to map test for taking")
		return nil, apperror.Internal(err)
	}

	attempt, err := s.attemptRepo.FindByTestAndUser(ctx, testID, p.UserID)
	switch {
	case err == nil && !attempt.IsCompleted:
		id := formatID(attempt.ID)
		resp.HasActiveAttempt = true
		resp.AttemptID = &id
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		log.Error().Err(err).Uint("testID", testID).Uint("userID", p.UserID).Msg("Failed to look up active attempt")
		return nil, apperror.FromStore(err, "TestAttempt")
	}
	return resp, nil
}

func (s *testDeliveryService) StartAttempt(ctx context.Context, ref practice.TestRef, p *auth.Principal) (*dto.StartAttemptResponseDTO, error) {
	if err := auth.RequireRole(p, auth.AnyUser); err != nil {
		return nil, err
	}

	switch r := ref.(type) {
	case practice.PracticeRef:
		return &dto.StartAttemptResponseDTO{AttemptID: r.Test.AttemptID(), IsPractice: true}, nil
	case practice.PersistedRef:
		return s.startPersisted(ctx, r.ID, p)
	default:
		return nil, apperror.NotFound("Test")
	}
}

func (s *testDeliveryService) startPersisted(ctx context.Context, testID uint, p *auth.Principal) (*dto.StartAttemptResponseDTO, error) {
	test, err := s.testRepo.FindByID(ctx, testID)
	if err != nil {
		return nil, apperror.FromStore(err, "Test")
	}
	if !test.IsPublished {
		return nil, apperror.NotFound("Test")
	}

	attempt := &model.TestAttempt{
		TestID:         testID,
		UserID:         p.UserID,
		Answers:        datatypes.NewJSONType(model.AnswerSheet{}),
		TotalQuestions: test.TotalQuestions,
	}
	created, err := s.attemptRepo.StartIfAbsent(ctx, attempt)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Uint("userID", p.UserID).Msg("Failed to start attempt")
		return nil, apperror.FromStore(err, "TestAttempt")
	}

	// a completed row is reported as such rather than resumed
	resp := &dto.StartAttemptResponseDTO{
		AttemptID: formatID(attempt.ID),
		Resumed:   !created && !attempt.IsCompleted,
		Completed: attempt.IsCompleted,
	}
	log.Info().Uint("testID", testID).Uint("userID", p.UserID).Uint("attemptID", attempt.ID).
		Bool("resumed", resp.Resumed).Bool("completed", resp.Completed).Msg("Attempt started")
	return resp, nil
}
