package service

import (
	"context"

	"github.com/lshigami/lawdesk/internal/apperror"
	"github.com/lshigami/lawdesk/internal/auth"
	"github.com/lshigami/lawdesk/internal/dto"
	"github.com/lshigami/lawdesk/internal/model"
	"github.com/lshigami/lawdesk/internal/repository"
)

type AnalyticsService interface {
	Overview(ctx context.Context, p *auth.Principal) (*dto.OverviewDTO, error)
	TestStats(ctx context.Context, p *auth.Principal) ([]dto.TestStatDTO, error)
}

type analyticsService struct {
	repo repository.AnalyticsRepository
}

func NewAnalyticsService(repo repository.AnalyticsRepository) AnalyticsService {
	return &analyticsService{repo: repo}
}

func passRate(passed, completed int64) float64 {
	if completed == 0 {
		return 0
	}
	return RoundScore(100 * float64(passed) / float64(completed))
}

func (s *analyticsService) Overview(ctx context.Context, p *auth.Principal) (*dto.OverviewDTO, error) {
	if err := auth.RequireRole(p, auth.Staff); err != nil {
		return nil, err
	}
	roles, err := s.repo.UsersByRole(ctx)
	if err != nil {
		return nil, apperror.FromStore(err, "User")
	}
	total, published, err := s.repo.TestCounts(ctx)
	if err != nil {
		return nil, apperror.FromStore(err, "Test")
	}
	attempts, err := s.repo.AttemptTotals(ctx)
	if err != nil {
		return nil, apperror.FromStore(err, "TestAttempt")
	}
	notes, err := s.repo.DocumentCount(ctx, model.KindNote)
	if err != nil {
		return nil, apperror.FromStore(err, "Note")
	}
	bareActs, err := s.repo.DocumentCount(ctx, model.KindBareAct)
	if err != nil {
		return nil, apperror.FromStore(err, "BareAct")
	}

	out := &dto.OverviewDTO{
		UsersByRole:       make(map[string]int64, len(model.AllRoles)),
		Tests:             total,
		PublishedTests:    published,
		Attempts:          attempts.Attempts,
		CompletedAttempts: attempts.CompletedAttempts,
		AverageScore:      RoundScore(attempts.AverageScore),
		PassRate:          passRate(attempts.Passed, attempts.CompletedAttempts),
		Notes:             notes,
		BareActs:          bareActs,
	}
	for _, r := range model.AllRoles {
		out.UsersByRole[string(r)] = 0
	}
	for _, rc := range roles {
		out.UsersByRole[string(rc.Role)] = rc.Count
		out.TotalUsers += rc.Count
	}
	return out, nil
}

func (s *analyticsService) TestStats(ctx context.Context, p *auth.Principal) ([]dto.TestStatDTO, error) {
	if err := auth.RequireRole(p, auth.Staff); err != nil {
		return nil, err
	}
	stats, err := s.repo.TestStats(ctx)
	if err != nil {
		return nil, apperror.FromStore(err, "Test")
	}
	out := make([]dto.TestStatDTO, len(stats))
	for i, st := range stats {
		out[i] = dto.TestStatDTO{
			TestID:            st.TestID,
			Title:             st.Title,
			IsPublished:       st.IsPublished,
			Attempts:          st.Attempts,
			CompletedAttempts: st.CompletedAttempts,
			AverageScore:      RoundScore(st.AverageScore),
			PassRate:          passRate(st.Passed, st.CompletedAttempts),
		}
	}
	return out, nil
}
