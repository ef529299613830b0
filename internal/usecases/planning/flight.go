package planning

import (
	"math"
	"slices"

	"github.com/vfg2006/media-planner-api/internal/domain"
	"github.com/vfg2006/media-planner-api/pkg/utils"
)

const (
	daysPerMonth = 30
	daysPerWeek  = 7
)

// BuildFlight distribui o orçamento de cada linha por mês e por semana.
// monthly_platforms[i] liga o canal no mês i; meses sem entrada ficam ligados.
// Um canal desligado em todos os meses é distribuído igualmente.
func BuildFlight(req domain.PlanRequest, lines []domain.PlanLine, periodDays int) *domain.FlightPlan {
	if periodDays <= 0 || len(lines) == 0 {
		return nil
	}

	months := int(math.Ceil(float64(periodDays) / daysPerMonth))
	weeks := int(math.Ceil(float64(periodDays) / daysPerWeek))

	weekMonth := make([]int, weeks)
	weeksInMonth := make([]int, months)
	for w := range weekMonth {
		weekMonth[w] = min(months-1, daysPerWeek*w/daysPerMonth)
		weeksInMonth[weekMonth[w]]++
	}

	flight := &domain.FlightPlan{
		Months: months,
		Weeks:  weeks,
		Lines:  make([]domain.FlightLine, 0, len(lines)),
	}

	for _, line := range lines {
		weights := monthWeights(req.MonthlyPlatforms, line.Key, months)

		monthly := make([]float64, months)
		for m, w := range weights {
			monthly[m] = line.Budget * w
		}

		weekly := make([]float64, weeks)
		for w, m := range weekMonth {
			weekly[w] = utils.RoundWithTwoDecimalPlace(monthly[m] / float64(weeksInMonth[m]))
		}

		for m := range monthly {
			monthly[m] = utils.RoundWithTwoDecimalPlace(monthly[m])
		}

		flight.Lines = append(flight.Lines, domain.FlightLine{
			Key:     line.Key,
			Name:    line.Name,
			Monthly: monthly,
			Weekly:  weekly,
		})
	}

	return flight
}

func monthWeights(monthly [][]domain.ChannelKey, key domain.ChannelKey, months int) []float64 {
	weights := make([]float64, months)
	var total float64
	for m := range weights {
		if m >= len(monthly) || slices.Contains(monthly[m], key) {
			weights[m] = 1
			total++
		}
	}

	for m := range weights {
		if total == 0 {
			weights[m] = 1 / float64(months)
		} else {
			weights[m] /= total
		}
	}

	return weights
}
