package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/lshigami/lawdesk/internal/apperror"
	"github.com/lshigami/lawdesk/internal/auth"
	"github.com/lshigami/lawdesk/internal/dto"
	"github.com/lshigami/lawdesk/internal/model"
	"github.com/lshigami/lawdesk/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const siteStatusTTL = 30 * time.Second

// SiteService serves the maintenance banner. Reads are cached briefly so the
// banner middleware does not hit the store on every request.
type SiteService interface {
	Status(ctx context.Context) dto.SiteStatusDTO
	SetMaintenance(ctx context.Context, p *auth.Principal, req dto.MaintenanceDTO) (*dto.SiteStatusDTO, error)
}

type siteService struct {
	repo    repository.SettingRepository
	now     func() time.Time
	refresh singleflight.Group

	mu       sync.Mutex
	cached   dto.SiteStatusDTO
	loadedAt time.Time
}

func NewSiteService(repo repository.SettingRepository) SiteService {
	return &siteService{repo: repo, now: time.Now}
}

func (s *siteService) Status(ctx context.Context) dto.SiteStatusDTO {
	if status, fresh := s.cachedStatus(); fresh {
		return status
	}
	// concurrent misses share one store read
	v, _, _ := s.refresh.Do("status", func() (interface{}, error) {
		return s.load(ctx), nil
	})
	return v.(dto.SiteStatusDTO)
}

func (s *siteService) cachedStatus() (dto.SiteStatusDTO, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cached, !s.loadedAt.IsZero() && s.now().Sub(s.loadedAt) < siteStatusTTL
}

func (s *siteService) load(ctx context.Context) dto.SiteStatusDTO {
	if status, fresh := s.cachedStatus(); fresh {
		return status
	}
	values, err := s.repo.Get(ctx, model.SettingMaintenanceEnabled, model.SettingMaintenanceMessage)

	s.mu.Lock()
	defer s.mu.Unlock()
	// a failed read keeps the last known state for a full TTL
	s.loadedAt = s.now()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to refresh site status")
		return s.cached
	}
	enabled, _ := strconv.ParseBool(values[model.SettingMaintenanceEnabled])
	s.cached = dto.SiteStatusDTO{Maintenance: enabled}
	if enabled {
		s.cached.Message = values[model.SettingMaintenanceMessage]
	}
	return s.cached
}

func (s *siteService) SetMaintenance(ctx context.Context, p *auth.Principal, req dto.MaintenanceDTO) (*dto.SiteStatusDTO, error) {
	if err := auth.RequireRole(p, auth.Owners); err != nil {
		return nil, err
	}
	err := s.repo.Set(ctx, map[string]string{
		model.SettingMaintenanceEnabled: strconv.FormatBool(req.Enabled),
		model.SettingMaintenanceMessage: req.Message,
	})
	if err != nil {
		return nil, apperror.FromStore(err, "SiteSetting")
	}

	status := dto.SiteStatusDTO{Maintenance: req.Enabled}
	if req.Enabled {
		status.Message = req.Message
	}
	s.mu.Lock()
	s.cached = status
	s.loadedAt = s.now()
	s.mu.Unlock()

	log.Info().Bool("enabled", req.Enabled).Uint("by", p.UserID).Msg("Maintenance mode updated")
	return &status, nil
}
