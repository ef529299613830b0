package planning

import (
	"math"
	"sort"

	"github.com/vfg2006/media-planner-api/internal/domain"
)

// Planner monta planos de mídia sobre um catálogo imutável.
// Não guarda estado entre chamadas e pode ser usado por várias goroutines.
type Planner struct {
	catalog *Catalog
}

func NewPlanner(catalog *Catalog) *Planner {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Planner{catalog: catalog}
}

func (p *Planner) Catalog() *Catalog {
	return p.catalog
}

// Build valida a requisição e calcula o plano completo
func (p *Planner) Build(req domain.PlanRequest) (*domain.PlanResponse, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	resp := &domain.PlanResponse{
		Lines:      []domain.PlanLine{},
		BudgetUSD:  BudgetUSD(req),
		PeriodDays: EffectivePeriod(req),
	}

	keys := req.Platforms
	var split map[domain.ChannelKey]float64
	var rationale map[domain.ChannelKey]string

	if req.PlanMode == domain.PlanModeSmart {
		mix := SmartMediaMix(req.Goal, req.BusinessType)
		keys, split, rationale = mix.Channels, mix.Split, mix.Rationale
	} else {
		if len(keys) == 0 {
			keys = p.catalog.Keys()
		}
		split = NormalizeSplit(req.BudgetSplit)
	}

	active, metaExpansion := p.catalog.resolveActive(keys, MetaPlacements(req.Placements))
	if len(active) == 0 {
		return resp, nil
	}

	adjusted := make([]domain.RateCard, len(active))
	for i, a := range active {
		adjusted[i] = p.catalog.adjustCard(a.card, req)
	}

	var shares []float64
	if split == nil {
		shares = DefaultShares(req.Goal, adjusted)
	} else {
		shares = make([]float64, len(adjusted))
		for i, card := range adjusted {
			if card.Key == domain.ChannelMeta {
				shares[i] = split[domain.ChannelMeta] / math.Max(float64(metaExpansion), 1)
				continue
			}
			shares[i] = split[card.Key]
		}
	}

	for i, card := range adjusted {
		share := shares[i]
		if split != nil && share == 0 {
			continue
		}

		proj := ComputeMetrics(
			req.Goal,
			resp.BudgetUSD*share,
			card,
			req.AvgFrequency,
			req.PricingMode,
			resolveAudienceCap(req, card.Key),
		)

		line := domain.PlanLine{
			Key:         card.Key,
			Name:        card.Name,
			Placement:   active[i].placement,
			Rationale:   rationale[card.Key],
			Share:       share,
			Budget:      proj.Budget,
			Impressions: proj.Impressions,
			Reach:       proj.Reach,
			Clicks:      proj.Clicks,
			Leads:       proj.Leads,
			Conversions: proj.Conversions,
			CPM:         card.CPM,
			CPC:         card.CPC,
			CPV:         card.CPV,
			CVR:         card.CVR,
		}

		resp.Lines = append(resp.Lines, line)
		resp.Totals = resp.Totals.Add(line)
	}

	resp.PlannedKPI = PlannedKPI(req.KPIType, resp.Totals)
	resp.Summary = p.summarize(req, resp)
	resp.Flight = BuildFlight(req, resp.Lines, resp.PeriodDays)

	return resp, nil
}

// PlannedKPI calcula o KPI planejado; nil quando o tipo é desconhecido ou o denominador é zero
func PlannedKPI(kpi domain.KPIType, totals domain.PlanTotals) *float64 {
	var value float64
	switch kpi {
	case domain.KPICostPerLead:
		if totals.Leads <= 0 {
			return nil
		}
		value = totals.Budget / totals.Leads
	case domain.KPICostPerAcquisition:
		if totals.Conversions <= 0 {
			return nil
		}
		value = totals.Budget / totals.Conversions
	case domain.KPICostPerClick:
		if totals.Clicks <= 0 {
			return nil
		}
		value = totals.Budget / totals.Clicks
	case domain.KPICostPerMille:
		if totals.Impressions <= 0 {
			return nil
		}
		value = totals.Budget / totals.Impressions * impressionsUnit
	default:
		return nil
	}
	return &value
}

// Scenarios recalcula o plano para cada multiplicador positivo de budget_scenarios,
// ordenado pelo nome do cenário.
func (p *Planner) Scenarios(req domain.PlanRequest) ([]domain.ScenarioResult, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(req.BudgetScenarios))
	for name, multiplier := range req.BudgetScenarios {
		if multiplier > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	results := make([]domain.ScenarioResult, 0, len(names))
	for _, name := range names {
		multiplier := req.BudgetScenarios[name]

		resp, err := p.Build(req.WithBudget(req.Budget * multiplier))
		if err != nil {
			return nil, err
		}

		results = append(results, domain.ScenarioResult{
			Name:       name,
			Multiplier: multiplier,
			BudgetUSD:  resp.BudgetUSD,
			Totals:     resp.Totals,
			PlannedKPI: resp.PlannedKPI,
		})
	}

	return results, nil
}
