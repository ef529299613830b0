package planning

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vfg2006/media-planner-api/internal/domain"
)

// Validate rejeita requisições que não podem ser calculadas
func Validate(req domain.PlanRequest) error {
	if !req.PlanMode.Valid() {
		return NewPlanError(ErrUnknownPlanMode, CodeValidation, "plan_mode", string(req.PlanMode))
	}

	if !req.Goal.Valid() {
		return NewPlanError(ErrUnknownGoal, CodeValidation, "goal", string(req.Goal))
	}

	if !req.PricingMode.Valid() {
		return NewPlanError(ErrUnknownPricingMode, CodeValidation, "pricing_mode", string(req.PricingMode))
	}

	if !req.MatchStrategy.Valid() {
		return NewPlanError(ErrUnknownMatchStrategy, CodeValidation, "match_strategy", string(req.MatchStrategy))
	}

	if req.Budget <= 0 {
		return NewPlanError(ErrInvalidBudget, CodeValidation, "budget", fmt.Sprintf("got %v", req.Budget))
	}

	if req.AvgFrequency <= 0 {
		return NewPlanError(ErrInvalidFrequency, CodeValidation, "avg_frequency", fmt.Sprintf("got %v", req.AvgFrequency))
	}

	if req.Seasonality <= 0 {
		return NewPlanError(ErrInvalidSeasonality, CodeValidation, "seasonality", fmt.Sprintf("got %v", req.Seasonality))
	}

	switch req.Currency {
	case domain.CurrencyUSD:
	case domain.CurrencyKZT:
		if req.FXRate == nil {
			return NewPlanError(ErrFXRateRequired, CodeCurrency, "fx_rate", "")
		}
		if *req.FXRate <= 0 {
			return NewPlanError(ErrInvalidFXRate, CodeCurrency, "fx_rate", fmt.Sprintf("got %v", *req.FXRate))
		}
	default:
		return NewPlanError(ErrUnsupportedCurrency, CodeCurrency, "currency", string(req.Currency))
	}

	if EffectivePeriod(req) <= 0 {
		return NewPlanError(ErrInvalidPeriod, CodeValidation, "period_days", fmt.Sprintf("got %d", req.PeriodDays))
	}

	return nil
}

// BudgetUSD converte o orçamento para USD. Assume uma requisição já validada.
func BudgetUSD(req domain.PlanRequest) float64 {
	if req.Currency != domain.CurrencyKZT || req.FXRate == nil || *req.FXRate <= 0 {
		return req.Budget
	}

	return decimal.NewFromFloat(req.Budget).
		Div(decimal.NewFromFloat(*req.FXRate)).
		InexactFloat64()
}

// EffectivePeriod usa a diferença entre as datas quando ambas existem,
// o fim não é anterior ao início e a diferença não é zero.
func EffectivePeriod(req domain.PlanRequest) int {
	if req.DateStart == nil || req.DateEnd == nil {
		return req.PeriodDays
	}

	if req.DateEnd.Before(req.DateStart.Time) {
		return req.PeriodDays
	}

	days := int(req.DateEnd.Sub(req.DateStart.Time).Hours() / 24)
	if days == 0 {
		return req.PeriodDays
	}

	return days
}
