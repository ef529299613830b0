package domain

// ChannelKey identifica um canal de mídia do catálogo
type ChannelKey string

const (
	ChannelMeta             ChannelKey = "meta"
	ChannelGoogleDisplayCPM ChannelKey = "google_display_cpm"
	ChannelGoogleDisplayCPC ChannelKey = "google_display_cpc"
	ChannelGoogleSearch     ChannelKey = "google_search"
	ChannelGoogleShopping   ChannelKey = "google_shopping"
	ChannelYouTube          ChannelKey = "youtube"
	ChannelYouTube6s        ChannelKey = "youtube_6s"
	ChannelYouTube15s       ChannelKey = "youtube_15s"
	ChannelYouTube30s       ChannelKey = "youtube_30s"
	ChannelTikTok           ChannelKey = "tiktok"
	ChannelTelegradChannels ChannelKey = "telegrad_channels"
	ChannelTelegradUsers    ChannelKey = "telegrad_users"
	ChannelTelegradBots     ChannelKey = "telegrad_bots"
	ChannelTelegradSearch   ChannelKey = "telegrad_search"
	ChannelYandexSearch     ChannelKey = "yandex_search"
	ChannelYandexDisplay    ChannelKey = "yandex_display"
)

var knownChannels = map[ChannelKey]struct{}{
	ChannelMeta: {}, ChannelGoogleDisplayCPM: {}, ChannelGoogleDisplayCPC: {}, ChannelGoogleSearch: {},
	ChannelGoogleShopping: {}, ChannelYouTube: {}, ChannelYouTube6s: {}, ChannelYouTube15s: {},
	ChannelYouTube30s: {}, ChannelTikTok: {}, ChannelTelegradChannels: {}, ChannelTelegradUsers: {},
	ChannelTelegradBots: {}, ChannelTelegradSearch: {}, ChannelYandexSearch: {}, ChannelYandexDisplay: {},
}

// Valid indica se a chave pertence ao conjunto de canais suportados
func (k ChannelKey) Valid() bool {
	_, ok := knownChannels[k]
	return ok
}

// PricingBasis indica qual custo do canal determina o volume
type PricingBasis string

const (
	PricingCPM   PricingBasis = "cpm"
	PricingCPC   PricingBasis = "cpc"
	PricingMixed PricingBasis = "mixed"
)

// RateCard é o benchmark estático de custo e resposta de um canal.
// É tratado como valor: cada etapa de ajuste devolve uma cópia nova.
type RateCard struct {
	Key       ChannelKey   `json:"key" yaml:"key"`
	Name      string       `json:"name" yaml:"name"`
	Tagline   string       `json:"tagline" yaml:"tagline"`
	CPM       float64      `json:"cpm" yaml:"cpm"`
	CPC       float64      `json:"cpc" yaml:"cpc"`
	CPV       float64      `json:"cpv" yaml:"cpv"`
	CTR       float64      `json:"ctr" yaml:"ctr"`
	CVR       float64      `json:"cvr" yaml:"cvr"`
	PostClick float64      `json:"post_click" yaml:"post_click"`
	Strengths []string     `json:"strengths" yaml:"strengths"`
	Pricing   PricingBasis `json:"pricing" yaml:"pricing"`
	Format    string       `json:"format,omitempty" yaml:"format"`
}

// Adjustment agrupa multiplicadores de custo, CTR e CVR
type Adjustment struct {
	Cost float64 `json:"cost" yaml:"cost"`
	CTR  float64 `json:"ctr" yaml:"ctr"`
	CVR  float64 `json:"cvr" yaml:"cvr"`
}

// NeutralAdjustment não altera o cartão
var NeutralAdjustment = Adjustment{Cost: 1, CTR: 1, CVR: 1}

func (c RateCard) WithName(name string) RateCard {
	c.Name = name
	return c
}

func (c RateCard) WithCosts(cpm, cpc, cpv float64) RateCard {
	c.CPM = cpm
	c.CPC = cpc
	c.CPV = cpv
	return c
}

func (c RateCard) WithRates(ctr, cvr float64) RateCard {
	c.CTR = ctr
	c.CVR = cvr
	return c
}

func (c RateCard) WithCPM(cpm float64) RateCard {
	c.CPM = cpm
	return c
}

func (c RateCard) WithCPC(cpc float64) RateCard {
	c.CPC = cpc
	return c
}

func (c RateCard) WithCTR(ctr float64) RateCard {
	c.CTR = ctr
	return c
}

func (c RateCard) WithCVR(cvr float64) RateCard {
	c.CVR = cvr
	return c
}
