package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/media-planner-api/internal/domain"
)

func TestBuildFlight(t *testing.T) {
	lines := []domain.PlanLine{{Key: domain.ChannelMeta, Name: "Meta", Budget: 1000}}

	tests := []struct {
		name     string
		monthly  [][]domain.ChannelKey
		period   int
		validate func(t *testing.T, flight *domain.FlightPlan)
	}{
		{
			name:   "Sem calendário mensal",
			period: 60,
			validate: func(t *testing.T, flight *domain.FlightPlan) {
				assert.Equal(t, 2, flight.Months)
				assert.Equal(t, 9, flight.Weeks)
				require.Len(t, flight.Lines, 1)
				assert.Equal(t, []float64{500, 500}, flight.Lines[0].Monthly)
				assert.Equal(t, []float64{100, 100, 100, 100, 100, 125, 125, 125, 125}, flight.Lines[0].Weekly)
			},
		},
		{
			name:    "Canal desligado no segundo mês",
			monthly: [][]domain.ChannelKey{{domain.ChannelMeta}, {domain.ChannelTikTok}},
			period:  60,
			validate: func(t *testing.T, flight *domain.FlightPlan) {
				assert.Equal(t, []float64{1000, 0}, flight.Lines[0].Monthly)
				assert.Equal(t, 200.0, flight.Lines[0].Weekly[0])
				assert.Equal(t, 0.0, flight.Lines[0].Weekly[8])
			},
		},
		{
			name:    "Canal desligado em todos os meses",
			monthly: [][]domain.ChannelKey{{}, {}},
			period:  60,
			validate: func(t *testing.T, flight *domain.FlightPlan) {
				assert.Equal(t, []float64{500, 500}, flight.Lines[0].Monthly)
			},
		},
		{
			name:   "Período curto",
			period: 10,
			validate: func(t *testing.T, flight *domain.FlightPlan) {
				assert.Equal(t, 1, flight.Months)
				assert.Equal(t, 2, flight.Weeks)
				assert.Equal(t, []float64{500, 500}, flight.Lines[0].Weekly)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			req.MonthlyPlatforms = tt.monthly

			flight := BuildFlight(req, lines, tt.period)

			require.NotNil(t, flight)
			tt.validate(t, flight)
		})
	}
}

func TestBuildFlight_Empty(t *testing.T) {
	assert.Nil(t, BuildFlight(baseRequest(), nil, 30))
	assert.Nil(t, BuildFlight(baseRequest(), []domain.PlanLine{{Key: domain.ChannelMeta, Budget: 1}}, 0))
}
