package planning

import (
	"math"

	"github.com/vfg2006/media-planner-api/internal/domain"
)

const (
	minCost         = 1e-6
	minCTR          = 0.001
	minReachFreq    = 1.05
	capHeadroom     = 1.3
	impressionsUnit = 1000
)

// Projection é o funil projetado de um canal
type Projection struct {
	Budget      float64
	Impressions float64
	Reach       float64
	Clicks      float64
	Leads       float64
	Conversions float64
}

// EffectiveBasis resolve a base de preço: o modo pedido, ou a do cartão quando "auto"
func EffectiveBasis(mode domain.PricingMode, card domain.RateCard) domain.PricingBasis {
	switch mode {
	case domain.PricingModeCPM:
		return domain.PricingCPM
	case domain.PricingModeCPC:
		return domain.PricingCPC
	default:
		return card.Pricing
	}
}

// ComputeMetrics projeta impressões, alcance, cliques, leads e conversões
// para o orçamento do canal. audienceCap <= 0 desliga o limite de audiência.
func ComputeMetrics(goal domain.Goal, budget float64, card domain.RateCard, avgFrequency float64, mode domain.PricingMode, audienceCap float64) Projection {
	basis := EffectiveBasis(mode, card)

	fromBudget := budget / math.Max(card.CPM, minCost) * impressionsUnit
	clicksFromBudget := budget / math.Max(card.CPC, minCost)
	fromClicks := clicksFromBudget / math.Max(card.CTR, minCTR)

	var impressions float64
	switch basis {
	case domain.PricingCPM:
		impressions = fromBudget
	case domain.PricingCPC:
		impressions = fromClicks
	default:
		if goal == domain.GoalReach {
			impressions = fromBudget
		} else {
			impressions = math.Max(fromBudget, fromClicks)
		}
	}

	var clicks float64
	switch {
	case basis == domain.PricingCPC:
		clicks = clicksFromBudget
	case basis == domain.PricingCPM && goal == domain.GoalTraffic:
		clicks = impressions * card.CTR
	default:
		clicks = math.Max(clicksFromBudget, impressions*card.CTR)
	}

	reach := impressions / math.Max(avgFrequency, minReachFreq)

	if audienceCap > 0 {
		maxImpressions := audienceCap * math.Max(avgFrequency, 1) * capHeadroom
		impressions = math.Min(impressions, maxImpressions)
		reach = math.Min(reach, audienceCap)
		if card.CTR > 0 {
			clicks = math.Min(clicks, impressions*card.CTR)
		}
	}

	leads := clicks * card.CVR

	return Projection{
		Budget:      budget,
		Impressions: impressions,
		Reach:       reach,
		Clicks:      clicks,
		Leads:       leads,
		Conversions: leads * card.PostClick,
	}
}

var countryPopulation = map[domain.Country]float64{
	domain.CountryKZ: 10_000_000,
	domain.CountryUZ: 18_000_000,
}

const (
	defaultPopulation   = 35_000_000
	defaultAgeMin       = 18
	defaultAgeMax       = 55
	ageSpan             = 52
	cityShare           = 0.18
	interestFactor      = 0.75
	defaultChannelReach = 0.6
	minAgeFactor        = 0.1
	minCityFactor       = 0.25
)

var channelReachPotential = map[domain.ChannelKey]float64{
	domain.ChannelMeta:             0.65,
	domain.ChannelGoogleDisplayCPM: 0.7,
	domain.ChannelGoogleDisplayCPC: 0.7,
	domain.ChannelGoogleSearch:     0.55,
	domain.ChannelGoogleShopping:   0.35,
	domain.ChannelYouTube:          0.7,
	domain.ChannelTikTok:           0.6,
}

// EstimateAudienceSize é uma estimativa aproximada da audiência alcançável
// de um canal, usada só quando não há um tamanho informado.
func EstimateAudienceSize(req domain.PlanRequest, key domain.ChannelKey) float64 {
	population, ok := countryPopulation[req.Country]
	if !ok {
		population = defaultPopulation
	}

	ageMin, ageMax := defaultAgeMin, defaultAgeMax
	if req.AgeMin != nil && *req.AgeMin > 0 {
		ageMin = *req.AgeMin
	}
	if req.AgeMax != nil && *req.AgeMax > 0 {
		ageMax = *req.AgeMax
	}
	ageFactor := clamp(float64(ageMax-ageMin)/ageSpan, minAgeFactor, 1)

	cityFactor := 1.0
	if len(req.Cities) > 0 {
		cityFactor = clamp(cityShare*float64(len(req.Cities)), minCityFactor, 1)
	}

	interests := 1.0
	if len(req.Interests) > 0 {
		interests = interestFactor
	}

	potential, ok := channelReachPotential[key]
	if !ok {
		potential = defaultChannelReach
	}

	return population * ageFactor * cityFactor * interests * potential
}

// resolveAudienceCap devolve o audience_size informado ou a estimativa do canal
func resolveAudienceCap(req domain.PlanRequest, key domain.ChannelKey) float64 {
	if req.AudienceSize != nil && *req.AudienceSize > 0 {
		return *req.AudienceSize
	}
	return EstimateAudienceSize(req, key)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
