package reconciling

import (
	"slices"
	"sort"
	"strings"

	"github.com/vfg2006/media-planner-api/internal/domain"
)

type bucketKey struct {
	year      int
	week      int
	component string
}

type dayPlatform struct {
	day      string
	platform domain.ChannelKey
}

type bucket struct {
	platforms []domain.ChannelKey
	days      map[string]struct{}
	fact      domain.FactMetrics
}

// DailyPlan divide as métricas de cada canal do plano por period_days.
// Linhas com a mesma chave (posicionamentos Meta) são somadas.
func DailyPlan(plan *domain.PlanResponse) map[domain.ChannelKey]domain.PlanMetrics {
	daily := make(map[domain.ChannelKey]domain.PlanMetrics, len(plan.Lines))
	if plan.PeriodDays <= 0 {
		return daily
	}

	period := float64(plan.PeriodDays)
	for _, line := range plan.Lines {
		d := daily[line.Key]
		d.Budget += line.Budget / period
		d.Impressions += line.Impressions / period
		d.Reach += line.Reach / period
		d.Clicks += line.Clicks / period
		d.Leads += line.Leads / period
		d.Conversions += line.Conversions / period
		daily[line.Key] = d
	}

	return daily
}

// MatchComponent devolve o componente de agrupamento da linha para a estratégia
func MatchComponent(row domain.FactRow, strategy domain.MatchStrategy) string {
	switch {
	case strategy == domain.MatchByAccount && row.AdAccountID != "":
		return row.AdAccountID
	case strategy == domain.MatchByCampaign && strings.TrimSpace(row.CampaignName) != "":
		return strings.ToLower(strings.TrimSpace(row.CampaignName))
	default:
		return string(row.Platform)
	}
}

// AggregateWeekly agrupa as linhas de fato por semana ISO e componente de match e
// compara cada grupo com o ritmo diário do plano vezes os dias observados.
// Num dia em que vários componentes têm linhas da mesma plataforma, o ritmo
// diário dela é dividido entre eles, então o plano não é contado duas vezes.
// Linhas de plataformas fora do plano voltam em unmatched.
func AggregateWeekly(plan *domain.PlanResponse, rows []domain.FactRow, strategy domain.MatchStrategy) (weekly []domain.WeeklyFact, unmatched []domain.FactRow) {
	weekly = []domain.WeeklyFact{}
	unmatched = []domain.FactRow{}

	if plan == nil || plan.PeriodDays <= 0 {
		return weekly, unmatched
	}

	daily := DailyPlan(plan)
	buckets := make(map[bucketKey]*bucket)
	components := make(map[dayPlatform]map[string]struct{})

	for _, row := range rows {
		if _, ok := daily[row.Platform]; !ok {
			unmatched = append(unmatched, row)
			continue
		}

		year, week := row.Date.ISOWeek()
		component := MatchComponent(row, strategy)
		key := bucketKey{year: year, week: week, component: component}

		b, ok := buckets[key]
		if !ok {
			b = &bucket{days: make(map[string]struct{})}
			buckets[key] = b
		}

		dp := dayPlatform{day: row.Date.String(), platform: row.Platform}
		if components[dp] == nil {
			components[dp] = make(map[string]struct{})
		}
		components[dp][component] = struct{}{}

		if !slices.Contains(b.platforms, row.Platform) {
			b.platforms = append(b.platforms, row.Platform)
		}
		b.days[dp.day] = struct{}{}
		b.fact = b.fact.Add(row)
	}

	for key, b := range buckets {
		var planned domain.PlanMetrics
		for _, platform := range b.platforms {
			for day := range b.days {
				planned = planned.Plus(daily[platform].Scale(1 / float64(sharing(components, day, platform, key.component))))
			}
		}

		weekly = append(weekly, domain.WeeklyFact{
			Year:     key.year,
			Week:     key.week,
			Key:      key.component,
			Platform: b.platforms[0],
			Days:     len(b.days),
			Plan:     planned,
			Fact:     b.fact,
		})
	}

	sort.Slice(weekly, func(i, j int) bool {
		if weekly[i].Year != weekly[j].Year {
			return weekly[i].Year < weekly[j].Year
		}
		if weekly[i].Week != weekly[j].Week {
			return weekly[i].Week < weekly[j].Week
		}
		return weekly[i].Key < weekly[j].Key
	})

	return weekly, unmatched
}

// sharing conta os componentes que dividem o ritmo da plataforma no dia, incluindo o próprio
func sharing(components map[dayPlatform]map[string]struct{}, day string, platform domain.ChannelKey, component string) int {
	seen := components[dayPlatform{day: day, platform: platform}]
	if _, ok := seen[component]; ok {
		return len(seen)
	}
	return len(seen) + 1
}
