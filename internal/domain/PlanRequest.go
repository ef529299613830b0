package domain

import (
	"encoding/json"
	"time"
)

type Goal string

const (
	GoalReach       Goal = "reach"
	GoalTraffic     Goal = "traffic"
	GoalLeads       Goal = "leads"
	GoalConversions Goal = "conversions"
)

func (g Goal) Valid() bool {
	switch g {
	case GoalReach, GoalTraffic, GoalLeads, GoalConversions:
		return true
	}
	return false
}

type PricingMode string

const (
	PricingModeAuto PricingMode = "auto"
	PricingModeCPM  PricingMode = "cpm"
	PricingModeCPC  PricingMode = "cpc"
)

func (m PricingMode) Valid() bool {
	return m == PricingModeAuto || m == PricingModeCPM || m == PricingModeCPC
}

type TargetingDepth string

const (
	TargetingBroad    TargetingDepth = "broad"
	TargetingBalanced TargetingDepth = "balanced"
	TargetingFocused  TargetingDepth = "focused"
)

type Country string

const (
	CountryKZ Country = "kz"
	CountryUZ Country = "uz"
	CountryRU Country = "ru"
)

type Industry string

const (
	IndustryFMCG       Industry = "fmcg"
	IndustryPharma     Industry = "pharma"
	IndustryFinance    Industry = "finance"
	IndustryTravel     Industry = "travel"
	IndustryEcommerce  Industry = "ecommerce"
	IndustryAuto       Industry = "auto"
	IndustryRealEstate Industry = "real_estate"
	IndustryEducation  Industry = "education"
	IndustryOther      Industry = "other"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyKZT Currency = "KZT"
)

type PlanMode string

const (
	PlanModeStrategy PlanMode = "strategy"
	PlanModeSmart    PlanMode = "smart"
)

func (m PlanMode) Valid() bool {
	return m == PlanModeStrategy || m == PlanModeSmart
}

type BusinessType string

const (
	BusinessServices BusinessType = "services"
	BusinessEcom     BusinessType = "ecom"
	BusinessB2B      BusinessType = "b2b"
	BusinessLocal    BusinessType = "local"
	BusinessContent  BusinessType = "content"
)

// MatchStrategy define como linhas de fato se agrupam contra o plano
type MatchStrategy string

const (
	MatchByAccount  MatchStrategy = "account"
	MatchByCampaign MatchStrategy = "campaign"
	MatchByPlatform MatchStrategy = "platform"
)

// Valid aceita vazio, tratado como account pelos relatórios
func (s MatchStrategy) Valid() bool {
	switch s {
	case "", MatchByAccount, MatchByCampaign, MatchByPlatform:
		return true
	}
	return false
}

type KPIType string

const (
	KPICostPerLead        KPIType = "cpl"
	KPICostPerAcquisition KPIType = "cpa"
	KPICostPerClick       KPIType = "cpc"
	KPICostPerMille       KPIType = "cpm"
)

// Date é uma data de calendário serializada como AAAA-MM-DD
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ChannelInput contém valores manuais para um grupo de canais
type ChannelInput struct {
	CPM float64 `json:"cpm,omitempty"`
	CPC float64 `json:"cpc,omitempty"`
	CTR float64 `json:"ctr,omitempty"`
	CVR float64 `json:"cvr,omitempty"`
}

// PlanRequest é a configuração de um plano de mídia enviada pelo cliente
type PlanRequest struct {
	ClientName string `json:"client_name,omitempty"`
	Brand      string `json:"brand,omitempty"`
	Product    string `json:"product,omitempty"`
	Author     string `json:"author,omitempty"`

	PlanMode     PlanMode     `json:"plan_mode"`
	BusinessType BusinessType `json:"business_type,omitempty"`

	Budget   float64  `json:"budget"`
	Currency Currency `json:"currency"`
	FXRate   *float64 `json:"fx_rate,omitempty"`

	DateStart  *Date `json:"date_start,omitempty"`
	DateEnd    *Date `json:"date_end,omitempty"`
	PeriodDays int   `json:"period_days"`

	Goal           Goal           `json:"goal"`
	AvgFrequency   float64        `json:"avg_frequency"`
	TargetingDepth TargetingDepth `json:"targeting_depth"`
	Seasonality    float64        `json:"seasonality"`
	Country        Country        `json:"country"`
	Industry       Industry       `json:"industry"`
	PricingMode    PricingMode    `json:"pricing_mode"`

	Platforms        []ChannelKey            `json:"platforms,omitempty"`
	Placements       []string                `json:"placements,omitempty"`
	BudgetSplit      map[ChannelKey]float64  `json:"budget_split,omitempty"`
	ChannelInputs    map[string]ChannelInput `json:"channel_inputs,omitempty"`
	MonthlyPlatforms [][]ChannelKey          `json:"monthly_platforms,omitempty"`
	BudgetScenarios  map[string]float64      `json:"budget_scenarios,omitempty"`
	FunnelSplit      map[string]float64      `json:"funnel_split,omitempty"`
	Assumptions      map[string]string       `json:"assumptions,omitempty"`

	Cities       []string `json:"cities,omitempty"`
	Interests    []string `json:"interests,omitempty"`
	AgeMin       *int     `json:"age_min,omitempty"`
	AgeMax       *int     `json:"age_max,omitempty"`
	AudienceSize *float64 `json:"audience_size,omitempty"`

	KPIType          KPIType  `json:"kpi_type,omitempty"`
	KPITarget        *float64 `json:"kpi_target,omitempty"`
	AgencyFeePercent float64  `json:"agency_fee_percent,omitempty"`
	VATPercent       float64  `json:"vat_percent,omitempty"`

	MatchStrategy     MatchStrategy `json:"match_strategy"`
	TelegradRichMedia *bool         `json:"telegrad_rich_media,omitempty"`
}

// DefaultPlanRequest devolve uma requisição com os valores padrão.
// O JSON recebido é decodificado por cima dela, assim campos ausentes
// mantêm o padrão e zeros explícitos chegam à validação.
func DefaultPlanRequest() PlanRequest {
	return PlanRequest{
		PlanMode:       PlanModeStrategy,
		Currency:       CurrencyUSD,
		PeriodDays:     30,
		Goal:           GoalLeads,
		AvgFrequency:   1.6,
		TargetingDepth: TargetingBalanced,
		Seasonality:    1.0,
		Country:        CountryKZ,
		Industry:       IndustryOther,
		PricingMode:    PricingModeAuto,
		MatchStrategy:  MatchByAccount,
	}
}

// RichMediaEnabled retorna true quando o uplift de rich media deve ser aplicado
func (r PlanRequest) RichMediaEnabled() bool {
	return r.TelegradRichMedia == nil || *r.TelegradRichMedia
}

// WithBudget devolve uma cópia com outro orçamento
func (r PlanRequest) WithBudget(budget float64) PlanRequest {
	r.Budget = budget
	return r
}
