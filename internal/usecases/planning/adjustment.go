package planning

import (
	"math"

	"github.com/vfg2006/media-planner-api/internal/domain"
)

const (
	// MaxCVR limita a taxa de conversão depois de multiplicadores encadeados
	MaxCVR = 0.35

	richMediaUplift = 1.5
)

// grupos aceitos em channel_inputs
const (
	InputGroupMeta         = "meta"
	InputGroupGoogleSearch = "google_search"
	InputGroupTelegram     = "telegram"
)

func isRichMediaEligible(key domain.ChannelKey) bool {
	return key == domain.ChannelTelegradChannels || key == domain.ChannelTelegradUsers
}

// AdjustRate aplica uplift de rich media, profundidade de segmentação,
// sazonalidade e país ao cartão, devolvendo uma cópia.
func (c *Catalog) AdjustRate(card domain.RateCard, depth domain.TargetingDepth, seasonality float64, country domain.Country, richMedia bool) domain.RateCard {
	adj := c.Targeting(depth)
	factor := adj.Cost * seasonality * c.CountryFactor(country)

	cpm := card.CPM
	if richMedia && isRichMediaEligible(card.Key) {
		cpm *= richMediaUplift
	}

	return card.
		WithCosts(cpm*factor, card.CPC*factor, card.CPV*factor).
		WithRates(card.CTR*adj.CTR, math.Min(card.CVR*adj.CVR, MaxCVR))
}

// ApplyIndustry aplica o ajuste do setor com o mesmo formato do AdjustRate
func (c *Catalog) ApplyIndustry(card domain.RateCard, industry domain.Industry) domain.RateCard {
	return applyAdjustment(card, c.Industry(industry))
}

func applyAdjustment(card domain.RateCard, adj domain.Adjustment) domain.RateCard {
	return card.
		WithCosts(card.CPM*adj.Cost, card.CPC*adj.Cost, card.CPV*adj.Cost).
		WithRates(card.CTR*adj.CTR, math.Min(card.CVR*adj.CVR, MaxCVR))
}

// inputGroup devolve o grupo de channel_inputs do canal, ou "" quando não há
func inputGroup(key domain.ChannelKey) string {
	switch key {
	case domain.ChannelMeta:
		return InputGroupMeta
	case domain.ChannelGoogleSearch:
		return InputGroupGoogleSearch
	case domain.ChannelTelegradChannels, domain.ChannelTelegradUsers,
		domain.ChannelTelegradBots, domain.ChannelTelegradSearch:
		return InputGroupTelegram
	default:
		return ""
	}
}

// ApplyChannelOverrides substitui cpm, cpc, ctr e cvr pelos valores manuais
// positivos do grupo do canal. Zeros e negativos são ignorados.
func ApplyChannelOverrides(card domain.RateCard, inputs map[string]domain.ChannelInput) domain.RateCard {
	if len(inputs) == 0 {
		return card
	}

	group := inputGroup(card.Key)
	if group == "" {
		return card
	}

	in, ok := inputs[group]
	if !ok {
		return card
	}

	if in.CPM > 0 {
		card = card.WithCPM(in.CPM)
	}
	if in.CPC > 0 {
		card = card.WithCPC(in.CPC)
	}
	if in.CTR > 0 {
		card = card.WithCTR(in.CTR)
	}
	if in.CVR > 0 {
		card = card.WithCVR(in.CVR)
	}

	return card
}

// adjustCard executa o pipeline completo na ordem:
// rich media, segmentação/país/sazonalidade, setor, overrides.
func (c *Catalog) adjustCard(card domain.RateCard, req domain.PlanRequest) domain.RateCard {
	card = c.AdjustRate(card, req.TargetingDepth, req.Seasonality, req.Country, req.RichMediaEnabled())
	card = c.ApplyIndustry(card, req.Industry)
	return ApplyChannelOverrides(card, req.ChannelInputs)
}
