package domain

// FactRow representa um dia observado de desempenho de uma plataforma
type FactRow struct {
	Date         Date       `json:"date"`
	Platform     ChannelKey `json:"platform"`
	AdAccountID  string     `json:"ad_account_id,omitempty"`
	CampaignName string     `json:"campaign_name,omitempty"`
	Impressions  float64    `json:"impressions"`
	Clicks       float64    `json:"clicks"`
	Cost         float64    `json:"cost"`
	Leads        float64    `json:"leads"`
	Conversions  float64    `json:"conversions"`
	Views        float64    `json:"views"`
}

// PlanMetrics é a fatia do plano correspondente a um período
type PlanMetrics struct {
	Budget      float64 `json:"budget"`
	Impressions float64 `json:"impressions"`
	Reach       float64 `json:"reach"`
	Clicks      float64 `json:"clicks"`
	Leads       float64 `json:"leads"`
	Conversions float64 `json:"conversions"`
}

func (m PlanMetrics) Scale(factor float64) PlanMetrics {
	return PlanMetrics{
		Budget:      m.Budget * factor,
		Impressions: m.Impressions * factor,
		Reach:       m.Reach * factor,
		Clicks:      m.Clicks * factor,
		Leads:       m.Leads * factor,
		Conversions: m.Conversions * factor,
	}
}

func (m PlanMetrics) Plus(o PlanMetrics) PlanMetrics {
	return PlanMetrics{
		Budget:      m.Budget + o.Budget,
		Impressions: m.Impressions + o.Impressions,
		Reach:       m.Reach + o.Reach,
		Clicks:      m.Clicks + o.Clicks,
		Leads:       m.Leads + o.Leads,
		Conversions: m.Conversions + o.Conversions,
	}
}

// FactMetrics soma as métricas observadas de um bucket
type FactMetrics struct {
	Cost        float64 `json:"cost"`
	Impressions float64 `json:"impressions"`
	Clicks      float64 `json:"clicks"`
	Leads       float64 `json:"leads"`
	Conversions float64 `json:"conversions"`
	Views       float64 `json:"views"`
}

func (m FactMetrics) Add(row FactRow) FactMetrics {
	m.Cost += row.Cost
	m.Impressions += row.Impressions
	m.Clicks += row.Clicks
	m.Leads += row.Leads
	m.Conversions += row.Conversions
	m.Views += row.Views
	return m
}

// WeeklyFact compara plano e fato de uma semana ISO para uma chave de match
type WeeklyFact struct {
	Year     int         `json:"year"`
	Week     int         `json:"week"`
	Key      string      `json:"key"`
	Platform ChannelKey  `json:"platform"`
	Days     int         `json:"days"`
	Plan     PlanMetrics `json:"plan"`
	Fact     FactMetrics `json:"fact"`
}

// WeeklyReport é a resposta da reconciliação semanal
type WeeklyReport struct {
	Weekly     []WeeklyFact `json:"weekly"`
	Unmatched  []FactRow    `json:"unmatched"`
	Dropped    int          `json:"dropped"`
	PlanBudget float64      `json:"plan_budget"`
	PeriodDays int          `json:"period_days"`
}
