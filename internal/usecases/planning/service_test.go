package planning

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	repoMocks "github.com/vfg2006/media-planner-api/infrastructure/repository/mocks"
	"github.com/vfg2006/media-planner-api/internal/domain"
	"github.com/vfg2006/media-planner-api/internal/metrics"
	"github.com/vfg2006/media-planner-api/internal/usecases/planning/mocks"
)

func staticKey(domain.PlanRequest) (string, error) {
	return "plan:abc", nil
}

func TestService_EstimateCache(t *testing.T) {
	cached := &domain.PlanResponse{Lines: []domain.PlanLine{}, BudgetUSD: 42}

	tests := []struct {
		name     string
		key      KeyFunc
		budget   float64
		setup    func(cache *mocks.MockPlanCache)
		wantErr  bool
		validate func(t *testing.T, resp *domain.PlanResponse, m *metrics.Metrics)
	}{
		{
			name:   "Hit devolve o plano do cache",
			key:    staticKey,
			budget: 1000,
			setup: func(cache *mocks.MockPlanCache) {
				cache.EXPECT().Get(gomock.Any(), "plan:abc").Return(cached, true, nil)
			},
			validate: func(t *testing.T, resp *domain.PlanResponse, m *metrics.Metrics) {
				assert.Same(t, cached, resp)
				assert.Equal(t, 1.0, testutil.ToFloat64(m.PlanCacheHits.WithLabelValues("hit")))
				assert.Equal(t, 0, testutil.CollectAndCount(m.PlanBuilds))
			},
		},
		{
			name:   "Miss calcula e grava",
			key:    staticKey,
			budget: 1000,
			setup: func(cache *mocks.MockPlanCache) {
				gomock.InOrder(
					cache.EXPECT().Get(gomock.Any(), "plan:abc").Return(nil, false, nil),
					cache.EXPECT().Set(gomock.Any(), "plan:abc", gomock.Any()).Return(nil),
				)
			},
			validate: func(t *testing.T, resp *domain.PlanResponse, m *metrics.Metrics) {
				assert.Equal(t, 1000.0, resp.BudgetUSD)
				assert.Equal(t, 1.0, testutil.ToFloat64(m.PlanCacheHits.WithLabelValues("miss")))
				assert.Equal(t, 1.0, testutil.ToFloat64(m.PlanBuilds.WithLabelValues("strategy", "ok")))
			},
		},
		{
			name:   "Erros do cache não chegam ao cliente",
			key:    staticKey,
			budget: 1000,
			setup: func(cache *mocks.MockPlanCache) {
				cache.EXPECT().Get(gomock.Any(), "plan:abc").Return(nil, false, errors.New("redis down"))
				cache.EXPECT().Set(gomock.Any(), "plan:abc", gomock.Any()).Return(errors.New("redis down"))
			},
			validate: func(t *testing.T, resp *domain.PlanResponse, m *metrics.Metrics) {
				assert.Equal(t, 1000.0, resp.BudgetUSD)
			},
		},
		{
			name: "Falha na chave desliga o cache",
			key: func(domain.PlanRequest) (string, error) {
				return "", errors.New("hash")
			},
			budget: 1000,
			setup:  func(cache *mocks.MockPlanCache) {},
			validate: func(t *testing.T, resp *domain.PlanResponse, m *metrics.Metrics) {
				assert.Equal(t, 1000.0, resp.BudgetUSD)
			},
		},
		{
			name:   "Requisição inválida não é gravada",
			key:    staticKey,
			budget: 0,
			setup: func(cache *mocks.MockPlanCache) {
				cache.EXPECT().Get(gomock.Any(), "plan:abc").Return(nil, false, nil)
			},
			wantErr: true,
			validate: func(t *testing.T, resp *domain.PlanResponse, m *metrics.Metrics) {
				assert.Nil(t, resp)
				assert.Equal(t, 1.0, testutil.ToFloat64(m.PlanBuilds.WithLabelValues("strategy", "error")))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			cache := mocks.NewMockPlanCache(ctrl)
			tt.setup(cache)

			m := metrics.NewMetrics(prometheus.NewRegistry())
			service := NewService(NewPlanner(nil), m, nil).WithCache(cache, tt.key)

			req := baseRequest()
			req.Budget = tt.budget
			req.Platforms = []domain.ChannelKey{domain.ChannelMeta}

			resp, err := service.Estimate(context.Background(), req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			tt.validate(t, resp, m)
		})
	}
}

func TestService_SavePlan(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repoMocks.NewMockPlanRepository(ctrl)
	service := NewService(NewPlanner(nil), nil, repo)

	req := baseRequest()
	req.Platforms = []domain.ChannelKey{domain.ChannelMeta}

	repo.EXPECT().SavePlan(gomock.Any()).DoAndReturn(func(plan *domain.SavedPlan) error {
		assert.Equal(t, "c1", plan.CampaignID)
		assert.Equal(t, req, plan.Request)
		plan.ID = 11
		return nil
	})

	saved, err := service.SavePlan(context.Background(), "c1", req)

	require.NoError(t, err)
	assert.Equal(t, int64(11), saved.ID)
	assert.Len(t, saved.Result.Lines, 1)
}

func TestService_SavePlanErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repoMocks.NewMockPlanRepository(ctrl)
	service := NewService(NewPlanner(nil), nil, repo)

	invalid := baseRequest()
	invalid.Budget = 0
	_, err := service.SavePlan(context.Background(), "c1", invalid)
	assert.True(t, errors.Is(err, ErrInvalidBudget))

	repo.EXPECT().SavePlan(gomock.Any()).Return(errors.New("connection refused"))
	_, err = service.SavePlan(context.Background(), "c1", baseRequest())

	var planErr *PlanError
	require.True(t, errors.As(err, &planErr))
	assert.Equal(t, CodeStorage, planErr.Code)
	assert.True(t, errors.Is(err, ErrSavePlan))
}

func TestService_GetPlan(t *testing.T) {
	planID := int64(4)
	stored := &domain.SavedPlan{ID: planID, CampaignID: "c1"}

	tests := []struct {
		name    string
		planID  *int64
		setup   func(repo *repoMocks.MockPlanRepository)
		want    *domain.SavedPlan
		wantErr error
	}{
		{
			name:   "Plano pelo ID",
			planID: &planID,
			setup: func(repo *repoMocks.MockPlanRepository) {
				repo.EXPECT().GetPlan("c1", planID).Return(stored, nil)
			},
			want: stored,
		},
		{
			name: "Mais recente quando sem ID",
			setup: func(repo *repoMocks.MockPlanRepository) {
				repo.EXPECT().GetLatestPlan("c1").Return(stored, nil)
			},
			want: stored,
		},
		{
			name: "Campanha sem planos",
			setup: func(repo *repoMocks.MockPlanRepository) {
				repo.EXPECT().GetLatestPlan("c1").Return(nil, nil)
			},
			wantErr: ErrPlanNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := repoMocks.NewMockPlanRepository(ctrl)
			tt.setup(repo)

			got, err := NewService(NewPlanner(nil), nil, repo).GetPlan("c1", tt.planID)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_RateCards(t *testing.T) {
	service := NewService(NewPlanner(nil), nil, nil)

	assert.Equal(t, DefaultCatalog().Cards(), service.RateCards())
}
