package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/media-planner-api/internal/domain"
)

func TestScoreForGoal(t *testing.T) {
	card := domain.RateCard{CPM: 4, CPC: 2, CVR: 0.1, PostClick: 0.5}

	assert.Equal(t, 0.25, ScoreForGoal(domain.GoalReach, card))
	assert.Equal(t, 0.5, ScoreForGoal(domain.GoalTraffic, card))
	assert.Equal(t, 0.05, ScoreForGoal(domain.GoalLeads, card))
	assert.Equal(t, 0.025, ScoreForGoal(domain.GoalConversions, card))

	cheap := domain.RateCard{CPM: 0.12, CPC: 0.3}
	assert.Equal(t, 1.0, ScoreForGoal(domain.GoalReach, cheap))
	assert.Equal(t, 1.0, ScoreForGoal(domain.GoalTraffic, cheap))
}

func TestDefaultShares(t *testing.T) {
	cards := []domain.RateCard{{CPM: 2}, {CPM: 4}}

	shares := DefaultShares(domain.GoalReach, cards)
	require.Len(t, shares, 2)
	assert.InDelta(t, 2.0/3.0, shares[0], 1e-9)
	assert.InDelta(t, 1.0/3.0, shares[1], 1e-9)

	zero := DefaultShares(domain.GoalLeads, []domain.RateCard{{CPC: 1}, {CPC: 2}, {CPC: 3}})
	for _, s := range zero {
		assert.InDelta(t, 1.0/3.0, s, 1e-9)
	}

	assert.Empty(t, DefaultShares(domain.GoalLeads, nil))
}

func TestNormalizeSplit(t *testing.T) {
	assert.Nil(t, NormalizeSplit(nil))
	assert.Nil(t, NormalizeSplit(map[domain.ChannelKey]float64{domain.ChannelMeta: 0}))

	got := NormalizeSplit(map[domain.ChannelKey]float64{
		domain.ChannelMeta:   2,
		domain.ChannelTikTok: 6,
	})
	assert.Equal(t, 0.25, got[domain.ChannelMeta])
	assert.Equal(t, 0.75, got[domain.ChannelTikTok])
	assert.Nil(t, NormalizeSplit(map[domain.ChannelKey]float64{domain.ChannelMeta: -2}))

	got = NormalizeSplit(map[domain.ChannelKey]float64{
		domain.ChannelMeta:         2,
		domain.ChannelGoogleSearch: -1,
	})
	assert.Equal(t, map[domain.ChannelKey]float64{domain.ChannelMeta: 1}, got)
}

func TestSmartMediaMix(t *testing.T) {
	tests := []struct {
		name         string
		goal         domain.Goal
		business     domain.BusinessType
		wantChannels []domain.ChannelKey
		metaRational string
	}{
		{
			name:         "Conversões ecom",
			goal:         domain.GoalConversions,
			business:     domain.BusinessEcom,
			wantChannels: []domain.ChannelKey{domain.ChannelMeta, domain.ChannelGoogleSearch, domain.ChannelGoogleDisplayCPC},
			metaRational: "Traffic + warm-up",
		},
		{
			name:         "Conversões serviços",
			goal:         domain.GoalConversions,
			business:     domain.BusinessServices,
			wantChannels: []domain.ChannelKey{domain.ChannelMeta, domain.ChannelGoogleSearch},
			metaRational: "Demand generation",
		},
		{
			name:         "Tráfego",
			goal:         domain.GoalTraffic,
			business:     domain.BusinessB2B,
			wantChannels: []domain.ChannelKey{domain.ChannelMeta, domain.ChannelTelegradChannels},
			metaRational: "Cheap reach and clicks",
		},
		{
			name:         "Leads B2B",
			goal:         domain.GoalLeads,
			business:     domain.BusinessB2B,
			wantChannels: []domain.ChannelKey{domain.ChannelMeta, domain.ChannelGoogleSearch},
			metaRational: "Narrow audience + engagement",
		},
		{
			name:         "Leads sem tipo de negócio",
			goal:         domain.GoalLeads,
			wantChannels: []domain.ChannelKey{domain.ChannelMeta, domain.ChannelGoogleSearch},
			metaRational: "Lead generation",
		},
		{
			name:         "Alcance para conteúdo",
			goal:         domain.GoalReach,
			business:     domain.BusinessContent,
			wantChannels: []domain.ChannelKey{domain.ChannelMeta, domain.ChannelGoogleSearch},
			metaRational: "Demand generation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mix := SmartMediaMix(tt.goal, tt.business)

			assert.Equal(t, tt.wantChannels, mix.Channels)
			assert.Equal(t, tt.metaRational, mix.Rationale[domain.ChannelMeta])

			var total float64
			for _, key := range mix.Channels {
				total += mix.Split[key]
			}
			assert.InDelta(t, 1.0, total, 1e-9)
		})
	}
}

func TestMetaPlacements(t *testing.T) {
	got := MetaPlacements([]string{"ig_stories", "tv", "fb_feed"})

	assert.Equal(t, []string{"ig_stories", "fb_feed"}, got)
	assert.Empty(t, MetaPlacements(nil))
}
