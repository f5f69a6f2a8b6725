package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lshigami/lawdesk/internal/apperror"
	"github.com/lshigami/lawdesk/internal/dto"
	"github.com/lshigami/lawdesk/internal/model"
	"github.com/lshigami/lawdesk/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteStatusCaching(t *testing.T) {
	repo := &fakeSettingRepo{values: map[string]string{
		model.SettingMaintenanceEnabled: "true",
		model.SettingMaintenanceMessage: "Back at noon",
	}}
	clock := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	svc := NewSiteService(repo).(*siteService)
	svc.now = func() time.Time { return clock }
	ctx := context.Background()

	status := svc.Status(ctx)
	assert.Equal(t, dto.SiteStatusDTO{Maintenance: true, Message: "Back at noon"}, status)

	repo.values[model.SettingMaintenanceEnabled] = "false"
	clock = clock.Add(10 * time.Second)
	assert.True(t, svc.Status(ctx).Maintenance, "served from cache")
	assert.Equal(t, 1, repo.reads)

	clock = clock.Add(30 * time.Second)
	assert.Equal(t, dto.SiteStatusDTO{}, svc.Status(ctx))
	assert.Equal(t, 2, repo.reads)

	repo.err = errors.New("db down")
	clock = clock.Add(time.Minute)
	assert.Equal(t, dto.SiteStatusDTO{}, svc.Status(ctx), "last known state on store failure")
	assert.Equal(t, 3, repo.reads)

	clock = clock.Add(5 * time.Second)
	svc.Status(ctx)
	svc.Status(ctx)
	assert.Equal(t, 3, repo.reads, "failed read is cached for the ttl")

	repo.err = nil
	repo.values[model.SettingMaintenanceEnabled] = "true"
	clock = clock.Add(siteStatusTTL)
	assert.True(t, svc.Status(ctx).Maintenance, "recovers once the store is back")
	assert.Equal(t, 4, repo.reads)
}

func TestSiteStatusConcurrentMisses(t *testing.T) {
	repo := &fakeSettingRepo{values: map[string]string{model.SettingMaintenanceEnabled: "true"}}
	svc := NewSiteService(repo)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, svc.Status(ctx).Maintenance)
		}()
	}
	wg.Wait()

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Equal(t, 1, repo.reads)
}

func TestSetMaintenance(t *testing.T) {
	repo := &fakeSettingRepo{}
	svc := NewSiteService(repo)
	ctx := context.Background()

	_, err := svc.SetMaintenance(ctx, admin, dto.MaintenanceDTO{Enabled: true})
	assert.Equal(t, apperror.CodeForbidden, codeOf(t, err))

	status, err := svc.SetMaintenance(ctx, owner, dto.MaintenanceDTO{Enabled: true, Message: "Upgrading"})
	require.NoError(t, err)
	assert.Equal(t, "Upgrading", status.Message)
	assert.Equal(t, "true", repo.values[model.SettingMaintenanceEnabled])

	assert.Equal(t, *status, svc.Status(ctx), "write refreshes the cache")
	assert.Equal(t, 0, repo.reads)

	status, err = svc.SetMaintenance(ctx, owner, dto.MaintenanceDTO{Enabled: false, Message: "ignored"})
	require.NoError(t, err)
	assert.Empty(t, status.Message)
}

func TestAnalytics(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		roles:    []repository.RoleCount{{Role: model.RoleUser, Count: 40}, {Role: model.RoleOwner, Count: 1}},
		total:    5,
		publish:  3,
		attempts: repository.AttemptTotals{Attempts: 12, CompletedAttempts: 9, AverageScore: 71.23456, Passed: 6},
		docs:     map[model.DocumentKind]int64{model.KindNote: 4, model.KindBareAct: 2},
		stats: []repository.TestStat{
			{TestID: 1, Title: "Torts", IsPublished: true, Attempts: 3, CompletedAttempts: 3, AverageScore: 80, Passed: 2},
			{TestID: 2, Title: "Evidence", Attempts: 0},
		},
	}
	svc := NewAnalyticsService(repo)
	ctx := context.Background()

	_, err := svc.Overview(ctx, learner)
	assert.Equal(t, apperror.CodeForbidden, codeOf(t, err))
	_, err = svc.TestStats(ctx, nil)
	assert.Equal(t, apperror.CodeAuthRequired, codeOf(t, err))

	overview, err := svc.Overview(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"USER": 40, "ADMIN": 0, "OWNER": 1}, overview.UsersByRole)
	assert.Equal(t, int64(41), overview.TotalUsers)
	assert.Equal(t, 71.23, overview.AverageScore)
	assert.Equal(t, 66.67, overview.PassRate)
	assert.Equal(t, int64(4), overview.Notes)
	assert.Equal(t, int64(2), overview.BareActs)

	stats, err := svc.TestStats(ctx, owner)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, 66.67, stats[0].PassRate)
	assert.Zero(t, stats[1].PassRate, "no completed attempts")
}
