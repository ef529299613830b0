package planning

import (
	"github.com/vfg2006/media-planner-api/internal/domain"
)

// Catalog reúne os rate cards e as tabelas de ajuste usadas pelo planner.
// É montado uma vez na inicialização e nunca alterado depois.
type Catalog struct {
	cards      []domain.RateCard
	index      map[domain.ChannelKey]int
	targeting  map[domain.TargetingDepth]domain.Adjustment
	countries  map[domain.Country]float64
	industries map[domain.Industry]domain.Adjustment
	minBudgets map[domain.ChannelKey]float64
}

// CatalogOption altera uma tabela durante a construção do catálogo
type CatalogOption func(*Catalog)

func WithTargeting(t map[domain.TargetingDepth]domain.Adjustment) CatalogOption {
	return func(c *Catalog) {
		for k, v := range t {
			c.targeting[k] = v
		}
	}
}

func WithCountries(t map[domain.Country]float64) CatalogOption {
	return func(c *Catalog) {
		for k, v := range t {
			c.countries[k] = v
		}
	}
}

func WithIndustries(t map[domain.Industry]domain.Adjustment) CatalogOption {
	return func(c *Catalog) {
		for k, v := range t {
			c.industries[k] = v
		}
	}
}

func WithMinBudgets(t map[domain.ChannelKey]float64) CatalogOption {
	return func(c *Catalog) {
		for k, v := range t {
			c.minBudgets[k] = v
		}
	}
}

// NewCatalog cria um catálogo com os cards na ordem informada e as tabelas padrão.
// Um card repetido substitui o anterior mantendo a posição original.
func NewCatalog(cards []domain.RateCard, opts ...CatalogOption) *Catalog {
	c := &Catalog{
		cards:      make([]domain.RateCard, 0, len(cards)),
		index:      make(map[domain.ChannelKey]int, len(cards)),
		targeting:  copyMap(defaultTargeting),
		countries:  copyMap(defaultCountries),
		industries: copyMap(defaultIndustries),
		minBudgets: copyMap(defaultMinBudgets),
	}

	for _, card := range cards {
		if pos, ok := c.index[card.Key]; ok {
			c.cards[pos] = card
			continue
		}
		c.index[card.Key] = len(c.cards)
		c.cards = append(c.cards, card)
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// DefaultCatalog devolve o catálogo embutido
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultRateCards)
}

// Card busca um rate card pela chave
func (c *Catalog) Card(key domain.ChannelKey) (domain.RateCard, bool) {
	pos, ok := c.index[key]
	if !ok {
		return domain.RateCard{}, false
	}
	return c.cards[pos], true
}

// Cards devolve uma cópia dos cards na ordem do catálogo
func (c *Catalog) Cards() []domain.RateCard {
	out := make([]domain.RateCard, len(c.cards))
	copy(out, c.cards)
	return out
}

func (c *Catalog) Keys() []domain.ChannelKey {
	keys := make([]domain.ChannelKey, len(c.cards))
	for i, card := range c.cards {
		keys[i] = card.Key
	}
	return keys
}

// Targeting devolve o ajuste de profundidade; valores desconhecidos caem em "balanced"
func (c *Catalog) Targeting(depth domain.TargetingDepth) domain.Adjustment {
	if adj, ok := c.targeting[depth]; ok {
		return adj
	}
	if adj, ok := c.targeting[domain.TargetingBalanced]; ok {
		return adj
	}
	return domain.NeutralAdjustment
}

// CountryFactor devolve o multiplicador do país; desconhecido vale 1.0
func (c *Catalog) CountryFactor(country domain.Country) float64 {
	if f, ok := c.countries[country]; ok {
		return f
	}
	return 1.0
}

// Industry devolve o ajuste do setor; desconhecido cai em "other"
func (c *Catalog) Industry(industry domain.Industry) domain.Adjustment {
	if adj, ok := c.industries[industry]; ok {
		return adj
	}
	if adj, ok := c.industries[domain.IndustryOther]; ok {
		return adj
	}
	return domain.NeutralAdjustment
}

// MinBudget devolve o orçamento mínimo recomendado do canal (0 quando não há)
func (c *Catalog) MinBudget(key domain.ChannelKey) float64 {
	return c.minBudgets[key]
}

func copyMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

var defaultTargeting = map[domain.TargetingDepth]domain.Adjustment{
	domain.TargetingBroad:    {Cost: 0.94, CTR: 0.92, CVR: 0.9},
	domain.TargetingBalanced: {Cost: 1.0, CTR: 1.0, CVR: 1.0},
	domain.TargetingFocused:  {Cost: 1.12, CTR: 1.06, CVR: 1.12},
}

var defaultCountries = map[domain.Country]float64{
	domain.CountryKZ: 1.0,
	domain.CountryUZ: 0.9,
	domain.CountryRU: 1.15,
}

var defaultIndustries = map[domain.Industry]domain.Adjustment{
	domain.IndustryFMCG:       {Cost: 0.97, CTR: 1.02, CVR: 0.98},
	domain.IndustryPharma:     {Cost: 1.12, CTR: 0.95, CVR: 0.92},
	domain.IndustryFinance:    {Cost: 1.25, CTR: 0.93, CVR: 1.05},
	domain.IndustryTravel:     {Cost: 1.05, CTR: 1.0, CVR: 1.02},
	domain.IndustryEcommerce:  {Cost: 1.0, CTR: 1.0, CVR: 1.02},
	domain.IndustryAuto:       {Cost: 1.15, CTR: 0.94, CVR: 1.03},
	domain.IndustryRealEstate: {Cost: 1.18, CTR: 0.92, CVR: 1.04},
	domain.IndustryEducation:  {Cost: 1.08, CTR: 0.98, CVR: 1.05},
	domain.IndustryOther:      {Cost: 1.0, CTR: 1.0, CVR: 1.0},
}

var defaultMinBudgets = map[domain.ChannelKey]float64{
	domain.ChannelMeta:             300,
	domain.ChannelGoogleDisplayCPM: 400,
	domain.ChannelGoogleDisplayCPC: 400,
	domain.ChannelGoogleSearch:     500,
	domain.ChannelGoogleShopping:   400,
	domain.ChannelYouTube:          300,
	domain.ChannelYouTube6s:        250,
	domain.ChannelYouTube15s:       300,
	domain.ChannelYouTube30s:       350,
	domain.ChannelTikTok:           250,
	domain.ChannelTelegradChannels: 250,
	domain.ChannelTelegradUsers:    250,
	domain.ChannelTelegradBots:     200,
	domain.ChannelTelegradSearch:   200,
	domain.ChannelYandexSearch:     400,
	domain.ChannelYandexDisplay:    350,
}

var defaultRateCards = []domain.RateCard{
	{
		Key: domain.ChannelMeta, Name: "Meta (FB/IG)", Tagline: "Lead forms, reach, CPC/CPM",
		CPM: 2.1, CPC: 0.35, CPV: 0.02, CTR: 0.013, CVR: 0.016, PostClick: 0.42,
		Strengths: []string{"Social", "Lead forms", "Retarget"}, Pricing: domain.PricingMixed, Format: "Feed/Reels",
	},
	{
		Key: domain.ChannelGoogleDisplayCPM, Name: "Google Display · CPM", Tagline: "Display network (impressions)",
		CPM: 2.8, CPC: 0.45, CPV: 0.03, CTR: 0.008, CVR: 0.012, PostClick: 0.32,
		Strengths: []string{"Awareness", "GDN", "Brand"}, Pricing: domain.PricingCPM, Format: "Display",
	},
	{
		Key: domain.ChannelGoogleDisplayCPC, Name: "Google Display · CPC", Tagline: "Display network (clicks)",
		CPM: 3.1, CPC: 0.28, CPV: 0.03, CTR: 0.015, CVR: 0.014, PostClick: 0.34,
		Strengths: []string{"Traffic", "Banner CPC", "Smart Display"}, Pricing: domain.PricingCPC, Format: "Display",
	},
	{
		Key: domain.ChannelGoogleSearch, Name: "Google Search", Tagline: "Intent-driven search",
		CPM: 4.2, CPC: 0.55, CPV: 0.04, CTR: 0.025, CVR: 0.028, PostClick: 0.5,
		Strengths: []string{"High intent", "Text ads", "Performance"}, Pricing: domain.PricingCPC, Format: "Search",
	},
	{
		Key: domain.ChannelGoogleShopping, Name: "Google Shopping", Tagline: "Product campaigns",
		CPM: 3.6, CPC: 0.42, CPV: 0.04, CTR: 0.022, CVR: 0.032, PostClick: 0.44,
		Strengths: []string{"Feed", "Ecom", "PLA"}, Pricing: domain.PricingCPC, Format: "Shopping",
	},
	{
		Key: domain.ChannelYouTube, Name: "YouTube (Generic)", Tagline: "Video and brand",
		CPM: 2.4, CPC: 0.48, CPV: 0.015, CTR: 0.009, CVR: 0.011, PostClick: 0.35,
		Strengths: []string{"Video", "Awareness", "Masthead"}, Pricing: domain.PricingCPM, Format: "Video",
	},
	{
		Key: domain.ChannelYouTube6s, Name: "YouTube 6s Bumper", Tagline: "Short video (6s)",
		CPM: 2.0, CPC: 0.52, CPV: 0.011, CTR: 0.007, CVR: 0.008, PostClick: 0.28,
		Strengths: []string{"Bumper", "Reach", "Awareness"}, Pricing: domain.PricingCPM, Format: "Video",
	},
	{
		Key: domain.ChannelYouTube15s, Name: "YouTube 15s", Tagline: "Mid-length video (15s)",
		CPM: 2.3, CPC: 0.5, CPV: 0.013, CTR: 0.0085, CVR: 0.01, PostClick: 0.32,
		Strengths: []string{"Mid video", "Reach/Traffic", "Skippable"}, Pricing: domain.PricingCPM, Format: "Video",
	},
	{
		Key: domain.ChannelYouTube30s, Name: "YouTube 30s", Tagline: "Long video (30s)",
		CPM: 2.6, CPC: 0.46, CPV: 0.017, CTR: 0.0095, CVR: 0.012, PostClick: 0.36,
		Strengths: []string{"Story", "Brand", "Skippable"}, Pricing: domain.PricingCPM, Format: "Video",
	},
	{
		Key: domain.ChannelTikTok, Name: "TikTok", Tagline: "UGC and engagement",
		CPM: 1.9, CPC: 0.3, CPV: 0.01, CTR: 0.017, CVR: 0.013, PostClick: 0.33,
		Strengths: []string{"UGC", "Video", "Broad audience"}, Pricing: domain.PricingMixed, Format: "Video",
	},
	{
		Key: domain.ChannelTelegradChannels, Name: "Telegrad · Channels", Tagline: "Channel placements",
		CPM: 0.12, CPC: 0.32, CPV: 0.0, CTR: 0.014, CVR: 0.011, PostClick: 0.31,
		Strengths: []string{"Channels", "Messenger", "Feed"}, Pricing: domain.PricingMixed, Format: "Feed",
	},
	{
		Key: domain.ChannelTelegradUsers, Name: "Telegrad · Users", Tagline: "Per-user placements",
		CPM: 0.12, CPC: 0.32, CPV: 0.0, CTR: 0.014, CVR: 0.011, PostClick: 0.31,
		Strengths: []string{"User ads", "Messenger"}, Pricing: domain.PricingMixed, Format: "Dialogs",
	},
	{
		Key: domain.ChannelTelegradBots, Name: "Telegrad · Bots", Tagline: "Bots / CPA-like",
		CPM: 0.10, CPC: 0.3, CPV: 0.0, CTR: 0.012, CVR: 0.01, PostClick: 0.28,
		Strengths: []string{"Bots", "Automation"}, Pricing: domain.PricingMixed, Format: "Bots",
	},
	{
		Key: domain.ChannelTelegradSearch, Name: "Telegrad · Search", Tagline: "Messenger search",
		CPM: 0.08, CPC: 0.28, CPV: 0.0, CTR: 0.011, CVR: 0.009, PostClick: 0.25,
		Strengths: []string{"Search", "Intent"}, Pricing: domain.PricingCPC, Format: "Search",
	},
	{
		Key: domain.ChannelYandexSearch, Name: "Yandex Search", Tagline: "Search and YAN context",
		CPM: 3.9, CPC: 0.5, CPV: 0.0, CTR: 0.022, CVR: 0.026, PostClick: 0.48,
		Strengths: []string{"High intent", "Search", "CPC"}, Pricing: domain.PricingCPC, Format: "Search",
	},
	{
		Key: domain.ChannelYandexDisplay, Name: "Yandex Direct · YAN", Tagline: "Banners / smart banners",
		CPM: 2.6, CPC: 0.36, CPV: 0.0, CTR: 0.012, CVR: 0.013, PostClick: 0.3,
		Strengths: []string{"Display", "Smart-banner", "Awareness"}, Pricing: domain.PricingMixed, Format: "Display",
	},
}
