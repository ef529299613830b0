package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/media-planner-api/infrastructure/repository/mocks"
	"github.com/vfg2006/media-planner-api/internal/config"
	"github.com/vfg2006/media-planner-api/internal/domain"
	"github.com/vfg2006/media-planner-api/internal/metrics"
	schedulermocks "github.com/vfg2006/media-planner-api/internal/scheduler/mocks"
)

func stringPtr(s string) *string {
	return &s
}

func TestMetaFactSyncService_run(t *testing.T) {
	now := time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC)
	since := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)

	rows := []domain.FactRow{
		{Date: domain.NewDate(2025, time.March, 8), Platform: domain.ChannelMeta, Cost: 10},
		{Date: domain.NewDate(2025, time.March, 9), Platform: domain.ChannelMeta, Cost: 12},
	}

	tests := []struct {
		name     string
		setup    func(campaignRepo *mocks.MockCampaignRepository, factRepo *mocks.MockFactRowRepository, fetcher *schedulermocks.MockFactFetcher)
		validate func(t *testing.T, s *MetaFactSyncService, m *metrics.Metrics)
	}{
		{
			name: "Sincroniza apenas campanhas com conta vinculada",
			setup: func(campaignRepo *mocks.MockCampaignRepository, factRepo *mocks.MockFactRowRepository, fetcher *schedulermocks.MockFactFetcher) {
				campaignRepo.EXPECT().ListCampaignsWithAdAccount().Return([]*domain.Campaign{
					{ID: "c1", AdAccountID: stringPtr("111")},
					{ID: "c2", AdAccountID: stringPtr("")},
					{ID: "c3", AdAccountID: stringPtr("333")},
				}, nil)

				fetcher.EXPECT().FetchFactRows(gomock.Any(), "111", since, until).Return(rows, nil)
				fetcher.EXPECT().FetchFactRows(gomock.Any(), "333", since, until).Return(nil, nil)
				factRepo.EXPECT().UpsertMetaFactRows(gomock.Any(), "c1", rows).Return(int64(2), nil)
			},
			validate: func(t *testing.T, s *MetaFactSyncService, m *metrics.Metrics) {
				status := s.GetStatus()
				assert.Equal(t, int64(2), status["last_sync_rows"])
				assert.Equal(t, "", status["last_sync_error"])
				assert.Equal(t, false, status["sync_running"])
				assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncRuns.WithLabelValues("ok")))
				assert.Equal(t, 2.0, testutil.ToFloat64(m.SyncRowsSynced))
			},
		},
		{
			name: "Erro em uma campanha não interrompe as demais",
			setup: func(campaignRepo *mocks.MockCampaignRepository, factRepo *mocks.MockFactRowRepository, fetcher *schedulermocks.MockFactFetcher) {
				campaignRepo.EXPECT().ListCampaignsWithAdAccount().Return([]*domain.Campaign{
					{ID: "c1", AdAccountID: stringPtr("111")},
					{ID: "c2", AdAccountID: stringPtr("222")},
				}, nil)

				fetcher.EXPECT().FetchFactRows(gomock.Any(), "111", since, until).Return(nil, errors.New("rate limited"))
				fetcher.EXPECT().FetchFactRows(gomock.Any(), "222", since, until).Return(rows, nil)
				factRepo.EXPECT().UpsertMetaFactRows(gomock.Any(), "c2", rows).Return(int64(2), nil)
			},
			validate: func(t *testing.T, s *MetaFactSyncService, m *metrics.Metrics) {
				status := s.GetStatus()
				assert.Equal(t, int64(2), status["last_sync_rows"])
				assert.Contains(t, status["last_sync_error"], "campanha c1: rate limited")
				assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncRuns.WithLabelValues("error")))
				assert.Equal(t, 0.0, testutil.ToFloat64(m.SyncRowsSynced))
			},
		},
		{
			name: "Falha ao listar campanhas",
			setup: func(campaignRepo *mocks.MockCampaignRepository, factRepo *mocks.MockFactRowRepository, fetcher *schedulermocks.MockFactFetcher) {
				campaignRepo.EXPECT().ListCampaignsWithAdAccount().Return(nil, errors.New("db down"))
			},
			validate: func(t *testing.T, s *MetaFactSyncService, m *metrics.Metrics) {
				status := s.GetStatus()
				assert.Equal(t, "db down", status["last_sync_error"])
				assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncRuns.WithLabelValues("error")))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			campaignRepo := mocks.NewMockCampaignRepository(ctrl)
			factRepo := mocks.NewMockFactRowRepository(ctrl)
			fetcher := schedulermocks.NewMockFactFetcher(ctrl)
			m := metrics.NewMetrics(prometheus.NewRegistry())

			s := NewMetaFactSyncService(campaignRepo, factRepo, fetcher, m, config.FactSync{
				LookbackDays:      3,
				MaxConcurrentJobs: 2,
			})
			s.now = func() time.Time { return now }

			tt.setup(campaignRepo, factRepo, fetcher)

			require.True(t, s.tryStart())
			s.run(context.Background())

			tt.validate(t, s, m)
		})
	}
}

func TestMetaFactSyncService_tryStart(t *testing.T) {
	s := NewMetaFactSyncService(nil, nil, nil, nil, config.FactSync{})

	assert.True(t, s.tryStart())
	assert.False(t, s.tryStart())
	assert.False(t, s.TriggerManualSync(context.Background()))
	assert.Equal(t, true, s.GetStatus()["sync_running"])
}

func TestMetaFactSyncService_window(t *testing.T) {
	s := NewMetaFactSyncService(nil, nil, nil, nil, config.FactSync{LookbackDays: 7})
	s.now = func() time.Time { return time.Date(2025, 1, 2, 23, 59, 0, 0, time.UTC) }

	since, until := s.window()
	assert.Equal(t, time.Date(2024, 12, 26, 0, 0, 0, 0, time.UTC), since)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), until)
}

func TestMetaFactSyncService_StartDisabled(t *testing.T) {
	s := NewMetaFactSyncService(nil, nil, nil, nil, config.FactSync{Enabled: false, CronSchedule: "not a cron"})
	assert.NoError(t, s.Start(context.Background()))
}
