package planning

import (
	"context"

	"github.com/vfg2006/media-planner-api/internal/domain"
)

// PlanService é a interface usada pela camada HTTP
type PlanService interface {
	// Estimate calcula o plano, consultando o cache quando habilitado
	Estimate(ctx context.Context, req domain.PlanRequest) (*domain.PlanResponse, error)

	// Scenarios recalcula o plano para cada multiplicador de orçamento
	Scenarios(ctx context.Context, req domain.PlanRequest) ([]domain.ScenarioResult, error)

	// RateCards lista o catálogo na ordem configurada
	RateCards() []domain.RateCard

	// SavePlan calcula e persiste o par requisição/resposta de uma campanha
	SavePlan(ctx context.Context, campaignID string, req domain.PlanRequest) (*domain.SavedPlan, error)

	// GetPlan busca um plano salvo; planID nil devolve o mais recente
	GetPlan(campaignID string, planID *int64) (*domain.SavedPlan, error)
}

// PlanCache é o cache de estimativas; o Redis implementa esta interface
type PlanCache interface {
	Get(ctx context.Context, key string) (*domain.PlanResponse, bool, error)
	Set(ctx context.Context, key string, resp *domain.PlanResponse) error
}

// KeyFunc deriva a chave de cache de uma requisição
type KeyFunc func(req domain.PlanRequest) (string, error)
