package domain

// PlanLine é a alocação resolvida de um canal
type PlanLine struct {
	Key         ChannelKey `json:"key"`
	Name        string     `json:"name"`
	Placement   string     `json:"placement,omitempty"`
	Rationale   string     `json:"rationale,omitempty"`
	Share       float64    `json:"share"`
	Budget      float64    `json:"budget"`
	Impressions float64    `json:"impressions"`
	Reach       float64    `json:"reach"`
	Clicks      float64    `json:"clicks"`
	Leads       float64    `json:"leads"`
	Conversions float64    `json:"conversions"`
	CPM         float64    `json:"cpm"`
	CPC         float64    `json:"cpc"`
	CPV         float64    `json:"cpv"`
	CVR         float64    `json:"cvr"`
}

// PlanTotals soma os campos de todas as linhas do plano
type PlanTotals struct {
	Budget      float64 `json:"budget"`
	Impressions float64 `json:"impressions"`
	Reach       float64 `json:"reach"`
	Clicks      float64 `json:"clicks"`
	Leads       float64 `json:"leads"`
	Conversions float64 `json:"conversions"`
}

func (t PlanTotals) Add(line PlanLine) PlanTotals {
	t.Budget += line.Budget
	t.Impressions += line.Impressions
	t.Reach += line.Reach
	t.Clicks += line.Clicks
	t.Leads += line.Leads
	t.Conversions += line.Conversions
	return t
}

// KPIComparison compara o KPI planejado com a meta informada
type KPIComparison struct {
	Type      KPIType `json:"type"`
	Target    float64 `json:"target"`
	Planned   float64 `json:"planned"`
	Deviation float64 `json:"deviation"`
}

// PlanSummary traz os indicadores derivados do plano
type PlanSummary struct {
	BudgetNet   float64        `json:"budget_net"`
	Overhead    float64        `json:"overhead"`
	BudgetGross float64        `json:"budget_gross"`
	CPM         *float64       `json:"cpm"`
	CPC         *float64       `json:"cpc"`
	CPL         *float64       `json:"cpl"`
	CPA         *float64       `json:"cpa"`
	Frequency   *float64       `json:"frequency"`
	KPI         *KPIComparison `json:"kpi,omitempty"`
	Warnings    []string       `json:"warnings,omitempty"`
}

// FlightLine distribui o orçamento de uma linha por mês e semana
type FlightLine struct {
	Key     ChannelKey `json:"key"`
	Name    string     `json:"name"`
	Monthly []float64  `json:"monthly"`
	Weekly  []float64  `json:"weekly"`
}

type FlightPlan struct {
	Months int          `json:"months"`
	Weeks  int          `json:"weeks"`
	Lines  []FlightLine `json:"lines"`
}

// PlanResponse é o resultado completo de um cálculo de plano
type PlanResponse struct {
	Lines         []PlanLine   `json:"lines"`
	Totals        PlanTotals   `json:"totals"`
	BudgetUSD     float64      `json:"budget_usd"`
	PeriodDays    int          `json:"period_days"`
	PlannedKPI    *float64     `json:"planned_kpi"`
	Summary       *PlanSummary `json:"summary,omitempty"`
	Flight        *FlightPlan  `json:"flight,omitempty"`
	FactWeekly    []WeeklyFact `json:"fact_weekly,omitempty"`
	FactRaw       []FactRow    `json:"fact_raw,omitempty"`
	UnmatchedFact []FactRow    `json:"unmatched_fact,omitempty"`
}

// ScenarioResult é o plano recalculado para um multiplicador de orçamento
type ScenarioResult struct {
	Name       string     `json:"name"`
	Multiplier float64    `json:"multiplier"`
	BudgetUSD  float64    `json:"budget_usd"`
	Totals     PlanTotals `json:"totals"`
	PlannedKPI *float64   `json:"planned_kpi"`
}
