package planning

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/media-planner-api/internal/domain"
)

func ptr[T any](v T) *T {
	return &v
}

func baseRequest() domain.PlanRequest {
	req := domain.DefaultPlanRequest()
	req.Budget = 1000
	return req
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(r *domain.PlanRequest)
		wantErr  error
		wantCode string
		field    string
	}{
		{
			name:   "Requisição válida",
			mutate: func(r *domain.PlanRequest) {},
		},
		{
			name:     "Objetivo desconhecido",
			mutate:   func(r *domain.PlanRequest) { r.Goal = "bogus" },
			wantErr:  ErrUnknownGoal,
			wantCode: CodeValidation,
			field:    "goal",
		},
		{
			name:     "Modo de preço desconhecido",
			mutate:   func(r *domain.PlanRequest) { r.PricingMode = "cpv" },
			wantErr:  ErrUnknownPricingMode,
			wantCode: CodeValidation,
			field:    "pricing_mode",
		},
		{
			name:     "Modo de plano desconhecido",
			mutate:   func(r *domain.PlanRequest) { r.PlanMode = "auto" },
			wantErr:  ErrUnknownPlanMode,
			wantCode: CodeValidation,
			field:    "plan_mode",
		},
		{
			name:     "Estratégia de match desconhecida",
			mutate:   func(r *domain.PlanRequest) { r.MatchStrategy = "creative" },
			wantErr:  ErrUnknownMatchStrategy,
			wantCode: CodeValidation,
			field:    "match_strategy",
		},
		{
			name:   "Estratégia de match vazia usa o padrão",
			mutate: func(r *domain.PlanRequest) { r.MatchStrategy = "" },
		},
		{
			name:     "Orçamento zero",
			mutate:   func(r *domain.PlanRequest) { r.Budget = 0 },
			wantErr:  ErrInvalidBudget,
			wantCode: CodeValidation,
			field:    "budget",
		},
		{
			name:     "Frequência negativa",
			mutate:   func(r *domain.PlanRequest) { r.AvgFrequency = -1 },
			wantErr:  ErrInvalidFrequency,
			wantCode: CodeValidation,
			field:    "avg_frequency",
		},
		{
			name:     "Sazonalidade zero",
			mutate:   func(r *domain.PlanRequest) { r.Seasonality = 0 },
			wantErr:  ErrInvalidSeasonality,
			wantCode: CodeValidation,
			field:    "seasonality",
		},
		{
			name:     "KZT sem câmbio",
			mutate:   func(r *domain.PlanRequest) { r.Currency = domain.CurrencyKZT },
			wantErr:  ErrFXRateRequired,
			wantCode: CodeCurrency,
			field:    "fx_rate",
		},
		{
			name: "KZT com câmbio zero",
			mutate: func(r *domain.PlanRequest) {
				r.Currency = domain.CurrencyKZT
				r.FXRate = ptr(0.0)
			},
			wantErr:  ErrInvalidFXRate,
			wantCode: CodeCurrency,
			field:    "fx_rate",
		},
		{
			name:     "Moeda desconhecida",
			mutate:   func(r *domain.PlanRequest) { r.Currency = "EUR" },
			wantErr:  ErrUnsupportedCurrency,
			wantCode: CodeCurrency,
			field:    "currency",
		},
		{
			name:     "Período zero sem datas",
			mutate:   func(r *domain.PlanRequest) { r.PeriodDays = 0 },
			wantErr:  ErrInvalidPeriod,
			wantCode: CodeValidation,
			field:    "period_days",
		},
		{
			name: "Período zero com datas válidas",
			mutate: func(r *domain.PlanRequest) {
				r.PeriodDays = 0
				r.DateStart = ptr(domain.NewDate(2025, 3, 1))
				r.DateEnd = ptr(domain.NewDate(2025, 3, 15))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)

			err := Validate(req)

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
			assert.True(t, IsValidationError(err))

			var planErr *PlanError
			require.True(t, errors.As(err, &planErr))
			assert.Equal(t, tt.wantCode, planErr.Code)
			assert.Equal(t, tt.field, planErr.Field)
		})
	}
}

func TestEffectivePeriod(t *testing.T) {
	tests := []struct {
		name  string
		start *domain.Date
		end   *domain.Date
		want  int
	}{
		{name: "Sem datas", want: 30},
		{name: "Datas válidas", start: ptr(domain.NewDate(2025, 3, 1)), end: ptr(domain.NewDate(2025, 3, 31)), want: 30},
		{name: "Fim antes do início", start: ptr(domain.NewDate(2025, 3, 10)), end: ptr(domain.NewDate(2025, 3, 1)), want: 30},
		{name: "Mesmo dia", start: ptr(domain.NewDate(2025, 3, 10)), end: ptr(domain.NewDate(2025, 3, 10)), want: 30},
		{name: "Só início", start: ptr(domain.NewDate(2025, 3, 10)), want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			req.DateStart = tt.start
			req.DateEnd = tt.end

			assert.Equal(t, tt.want, EffectivePeriod(req))
		})
	}
}

func TestBudgetUSD(t *testing.T) {
	req := baseRequest()
	req.Budget = 100000
	req.Currency = domain.CurrencyKZT
	req.FXRate = ptr(500.0)

	assert.Equal(t, 200.0, BudgetUSD(req))

	req.Currency = domain.CurrencyUSD
	assert.Equal(t, 100000.0, BudgetUSD(req))
}

func TestPlanner_Build(t *testing.T) {
	planner := NewPlanner(nil)

	tests := []struct {
		name     string
		mutate   func(r *domain.PlanRequest)
		validate func(t *testing.T, resp *domain.PlanResponse)
	}{
		{
			name: "Shares padrão somam 1",
			mutate: func(r *domain.PlanRequest) {
				r.Platforms = []domain.ChannelKey{domain.ChannelMeta, domain.ChannelGoogleSearch, domain.ChannelTikTok}
			},
			validate: func(t *testing.T, resp *domain.PlanResponse) {
				require.Len(t, resp.Lines, 3)

				var shares float64
				for _, line := range resp.Lines {
					shares += line.Share
					assert.Greater(t, line.Share, 0.0)
				}
				assert.InDelta(t, 1.0, shares, 1e-9)
				assert.InDelta(t, resp.BudgetUSD, resp.Totals.Budget, 1e-6)
			},
		},
		{
			name: "Split manual renormalizado exclui canais sem peso",
			mutate: func(r *domain.PlanRequest) {
				r.Platforms = []domain.ChannelKey{domain.ChannelMeta, domain.ChannelGoogleSearch, domain.ChannelTikTok}
				r.BudgetSplit = map[domain.ChannelKey]float64{
					domain.ChannelMeta:         3,
					domain.ChannelGoogleSearch: 1,
				}
			},
			validate: func(t *testing.T, resp *domain.PlanResponse) {
				require.Len(t, resp.Lines, 2)
				assert.Equal(t, domain.ChannelMeta, resp.Lines[0].Key)
				assert.InDelta(t, 750.0, resp.Lines[0].Budget, 1e-9)
				assert.Equal(t, domain.ChannelGoogleSearch, resp.Lines[1].Key)
				assert.InDelta(t, 250.0, resp.Lines[1].Budget, 1e-9)
			},
		},
		{
			name: "Pesos negativos ficam fora do plano",
			mutate: func(r *domain.PlanRequest) {
				r.Platforms = []domain.ChannelKey{domain.ChannelMeta, domain.ChannelGoogleSearch}
				r.BudgetSplit = map[domain.ChannelKey]float64{
					domain.ChannelMeta:         2,
					domain.ChannelGoogleSearch: -1,
				}
			},
			validate: func(t *testing.T, resp *domain.PlanResponse) {
				require.Len(t, resp.Lines, 1)
				assert.Equal(t, domain.ChannelMeta, resp.Lines[0].Key)
				assert.InDelta(t, 1.0, resp.Lines[0].Share, 1e-9)
				assert.InDelta(t, 1000.0, resp.Lines[0].Budget, 1e-9)
				assert.Greater(t, resp.Lines[0].Impressions, 0.0)
			},
		},
		{
			name: "Split com soma zero volta ao padrão",
			mutate: func(r *domain.PlanRequest) {
				r.Platforms = []domain.ChannelKey{domain.ChannelMeta, domain.ChannelGoogleSearch}
				r.BudgetSplit = map[domain.ChannelKey]float64{domain.ChannelMeta: 0}
			},
			validate: func(t *testing.T, resp *domain.PlanResponse) {
				assert.Len(t, resp.Lines, 2)
				assert.InDelta(t, 1000.0, resp.Totals.Budget, 1e-6)
			},
		},
		{
			name: "Meta expandida por posicionamento",
			mutate: func(r *domain.PlanRequest) {
				r.Platforms = []domain.ChannelKey{domain.ChannelMeta}
				r.Placements = []string{"fb_feed", "desconhecido", "ig_reels"}
				r.BudgetSplit = map[domain.ChannelKey]float64{domain.ChannelMeta: 1}
			},
			validate: func(t *testing.T, resp *domain.PlanResponse) {
				require.Len(t, resp.Lines, 2)
				assert.Equal(t, "Meta · Feed", resp.Lines[0].Name)
				assert.Equal(t, "fb_feed", resp.Lines[0].Placement)
				assert.Equal(t, "Meta · IG Reels", resp.Lines[1].Name)
				for _, line := range resp.Lines {
					assert.Equal(t, domain.ChannelMeta, line.Key)
					assert.InDelta(t, 0.5, line.Share, 1e-9)
				}
			},
		},
		{
			name: "Canais desconhecidos geram plano vazio",
			mutate: func(r *domain.PlanRequest) {
				r.Platforms = []domain.ChannelKey{"radio"}
			},
			validate: func(t *testing.T, resp *domain.PlanResponse) {
				assert.NotNil(t, resp.Lines)
				assert.Empty(t, resp.Lines)
				assert.Equal(t, domain.PlanTotals{}, resp.Totals)
				assert.Nil(t, resp.PlannedKPI)
			},
		},
		{
			name: "Sem plataformas usa o catálogo inteiro",
			mutate: func(r *domain.PlanRequest) {
				r.Platforms = nil
			},
			validate: func(t *testing.T, resp *domain.PlanResponse) {
				assert.Len(t, resp.Lines, len(DefaultCatalog().Keys()))
			},
		},
		{
			name: "Modo smart usa o mix do objetivo",
			mutate: func(r *domain.PlanRequest) {
				r.PlanMode = domain.PlanModeSmart
				r.Goal = domain.GoalTraffic
				r.Platforms = []domain.ChannelKey{domain.ChannelYouTube}
			},
			validate: func(t *testing.T, resp *domain.PlanResponse) {
				require.Len(t, resp.Lines, 2)
				assert.Equal(t, domain.ChannelMeta, resp.Lines[0].Key)
				assert.InDelta(t, 600.0, resp.Lines[0].Budget, 1e-9)
				assert.Equal(t, "Cheap reach and clicks", resp.Lines[0].Rationale)
				assert.Equal(t, domain.ChannelTelegradChannels, resp.Lines[1].Key)
				assert.InDelta(t, 400.0, resp.Lines[1].Budget, 1e-9)
			},
		},
		{
			name: "Orçamento em KZT convertido",
			mutate: func(r *domain.PlanRequest) {
				r.Budget = 100000
				r.Currency = domain.CurrencyKZT
				r.FXRate = ptr(500.0)
				r.Platforms = []domain.ChannelKey{domain.ChannelMeta}
			},
			validate: func(t *testing.T, resp *domain.PlanResponse) {
				assert.Equal(t, 200.0, resp.BudgetUSD)
				assert.InDelta(t, 200.0, resp.Totals.Budget, 1e-9)
			},
		},
		{
			name: "audience_size limita alcance",
			mutate: func(r *domain.PlanRequest) {
				r.Platforms = []domain.ChannelKey{domain.ChannelMeta}
				r.AudienceSize = ptr(1000.0)
			},
			validate: func(t *testing.T, resp *domain.PlanResponse) {
				require.Len(t, resp.Lines, 1)
				assert.LessOrEqual(t, resp.Lines[0].Reach, 1000.0)
				assert.LessOrEqual(t, resp.Lines[0].Impressions, 1000*1.6*capHeadroom+1e-6)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)

			resp, err := planner.Build(req)

			require.NoError(t, err)
			tt.validate(t, resp)
		})
	}
}

func TestPlanner_BuildIsIdempotent(t *testing.T) {
	planner := NewPlanner(nil)
	req := baseRequest()
	req.Platforms = []domain.ChannelKey{domain.ChannelMeta, domain.ChannelGoogleSearch, domain.ChannelTelegradUsers}
	req.KPIType = domain.KPICostPerLead
	req.KPITarget = ptr(5.0)

	first, err := planner.Build(req)
	require.NoError(t, err)
	second, err := planner.Build(req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPlanner_BuildRejectsInvalid(t *testing.T) {
	req := baseRequest()
	req.Budget = -10

	resp, err := NewPlanner(nil).Build(req)

	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, ErrInvalidBudget))
}

func TestPlannedKPI(t *testing.T) {
	totals := domain.PlanTotals{Budget: 100, Impressions: 50000, Clicks: 200, Leads: 0, Conversions: 4}

	tests := []struct {
		name string
		kpi  domain.KPIType
		want *float64
	}{
		{name: "CPM", kpi: domain.KPICostPerMille, want: ptr(2.0)},
		{name: "CPC", kpi: domain.KPICostPerClick, want: ptr(0.5)},
		{name: "CPA", kpi: domain.KPICostPerAcquisition, want: ptr(25.0)},
		{name: "CPL sem leads", kpi: domain.KPICostPerLead, want: nil},
		{name: "Tipo desconhecido", kpi: "roas", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlannedKPI(tt.kpi, totals)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestPlanner_Scenarios(t *testing.T) {
	req := baseRequest()
	req.Platforms = []domain.ChannelKey{domain.ChannelMeta}
	req.BudgetScenarios = map[string]float64{
		"b_high": 1.5,
		"a_low":  0.5,
		"skip":   0,
	}

	results, err := NewPlanner(nil).Scenarios(req)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a_low", results[0].Name)
	assert.Equal(t, 500.0, results[0].BudgetUSD)
	assert.Equal(t, "b_high", results[1].Name)
	assert.Equal(t, 1500.0, results[1].BudgetUSD)
	assert.InDelta(t, 1500.0, results[1].Totals.Budget, 1e-6)
}

func TestPlanner_Summary(t *testing.T) {
	req := baseRequest()
	req.Platforms = []domain.ChannelKey{domain.ChannelMeta}
	req.AgencyFeePercent = 10
	req.VATPercent = 12
	req.KPIType = domain.KPICostPerClick
	req.KPITarget = ptr(0.5)

	resp, err := NewPlanner(nil).Build(req)
	require.NoError(t, err)
	require.NotNil(t, resp.Summary)

	summary := resp.Summary
	assert.Equal(t, 1000.0, summary.BudgetNet)
	assert.Equal(t, 220.0, summary.Overhead)
	assert.Equal(t, 1220.0, summary.BudgetGross)
	assert.Empty(t, summary.Warnings)

	require.NotNil(t, summary.KPI)
	require.NotNil(t, resp.PlannedKPI)
	assert.InDelta(t, *resp.PlannedKPI/0.5-1, summary.KPI.Deviation, 1e-9)

	require.NotNil(t, summary.CPM)
	assert.InDelta(t, resp.Totals.Budget/resp.Totals.Impressions*1000, *summary.CPM, 1e-9)

	req.Budget = 100
	resp, err = NewPlanner(nil).Build(req)
	require.NoError(t, err)
	require.Len(t, resp.Summary.Warnings, 1)
	assert.Contains(t, resp.Summary.Warnings[0], "below the recommended minimum")
}
