package planning

import (
	"errors"
	"fmt"

	"github.com/vfg2006/media-planner-api/pkg/apiErrors"
)

// Erros de validação do plano
var (
	ErrInvalidBudget        = errors.New("budget must be greater than zero")
	ErrInvalidFrequency     = errors.New("avg_frequency must be greater than zero")
	ErrFXRateRequired       = errors.New("fx_rate is required when currency=KZT")
	ErrInvalidFXRate        = errors.New("fx_rate must be greater than zero")
	ErrUnsupportedCurrency  = errors.New("unsupported currency")
	ErrInvalidPeriod        = errors.New("period_days must be greater than zero")
	ErrInvalidSeasonality   = errors.New("seasonality must be greater than zero")
	ErrUnknownGoal          = errors.New("goal must be one of reach, traffic, leads, conversions")
	ErrUnknownPricingMode   = errors.New("pricing_mode must be one of auto, cpm, cpc")
	ErrUnknownPlanMode      = errors.New("plan_mode must be one of strategy, smart")
	ErrUnknownMatchStrategy = errors.New("match_strategy must be one of account, campaign, platform")
)

// Erros de catálogo e persistência
var (
	ErrCatalogLoad    = errors.New("error loading rate catalog")
	ErrCardWithoutKey = errors.New("rate card without key")
	ErrPlanNotFound   = errors.New("plan not found")
	ErrSavePlan       = errors.New("error saving plan")
)

// Códigos devolvidos para a API
const (
	CodeValidation = apiErrors.ErrInvalidPlanRequest
	CodeCurrency   = apiErrors.ErrInvalidCurrency
	CodeNotFound   = apiErrors.ErrPlanNotFound
	CodeStorage    = apiErrors.ErrDatabaseOperation
)

// PlanError é um erro com contexto adicional sobre o campo rejeitado
type PlanError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Field   string // Campo da requisição (quando aplicável)
	Details string // Detalhes adicionais
}

func (e *PlanError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *PlanError) Unwrap() error {
	return e.Err
}

// NewPlanError cria um PlanError para o campo informado
func NewPlanError(err error, code, field, details string) *PlanError {
	return &PlanError{
		Err:     err,
		Code:    code,
		Field:   field,
		Details: details,
	}
}

// IsValidationError indica se o erro rejeita a requisição antes do cálculo
func IsValidationError(err error) bool {
	var planErr *PlanError
	if errors.As(err, &planErr) {
		return planErr.Code == CodeValidation || planErr.Code == CodeCurrency
	}
	return false
}
