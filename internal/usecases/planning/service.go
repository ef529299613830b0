package planning

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/media-planner-api/infrastructure/repository"
	"github.com/vfg2006/media-planner-api/internal/domain"
	"github.com/vfg2006/media-planner-api/internal/metrics"
)

// Service implementa PlanService sobre o Planner puro
type Service struct {
	planner  *Planner
	metrics  *metrics.Metrics
	planRepo repository.PlanRepository
	cache    PlanCache
	cacheKey KeyFunc
}

func NewService(planner *Planner, m *metrics.Metrics, planRepo repository.PlanRepository) *Service {
	return &Service{
		planner:  planner,
		metrics:  m,
		planRepo: planRepo,
	}
}

// WithCache habilita o cache de estimativas
func (s *Service) WithCache(cache PlanCache, key KeyFunc) *Service {
	s.cache = cache
	s.cacheKey = key
	return s
}

func (s *Service) RateCards() []domain.RateCard {
	return s.planner.Catalog().Cards()
}

func (s *Service) Estimate(ctx context.Context, req domain.PlanRequest) (*domain.PlanResponse, error) {
	key := s.lookupKey(req)
	if key != "" {
		if resp := s.fromCache(ctx, key); resp != nil {
			return resp, nil
		}
	}

	resp, err := s.build(req)
	if err != nil {
		return nil, err
	}

	if key != "" {
		if err := s.cache.Set(ctx, key, resp); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("Erro ao gravar plano no cache")
		}
	}

	return resp, nil
}

func (s *Service) Scenarios(ctx context.Context, req domain.PlanRequest) ([]domain.ScenarioResult, error) {
	started := time.Now()
	results, err := s.planner.Scenarios(req)
	s.metrics.ObservePlan("scenarios", started, err)
	return results, err
}

func (s *Service) SavePlan(ctx context.Context, campaignID string, req domain.PlanRequest) (*domain.SavedPlan, error) {
	resp, err := s.build(req)
	if err != nil {
		return nil, err
	}

	plan := &domain.SavedPlan{
		CampaignID: campaignID,
		Request:    req,
		Result:     *resp,
	}

	if err := s.planRepo.SavePlan(plan); err != nil {
		return nil, NewPlanError(ErrSavePlan, CodeStorage, "", errors.Wrapf(err, "campaign %s", campaignID).Error())
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaignID,
		"plan_id":     plan.ID,
		"lines":       len(resp.Lines),
	}).Info("Plano salvo")

	return plan, nil
}

func (s *Service) GetPlan(campaignID string, planID *int64) (*domain.SavedPlan, error) {
	var (
		plan *domain.SavedPlan
		err  error
	)

	if planID != nil {
		plan, err = s.planRepo.GetPlan(campaignID, *planID)
	} else {
		plan, err = s.planRepo.GetLatestPlan(campaignID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar plano")
	}

	if plan == nil {
		return nil, NewPlanError(ErrPlanNotFound, CodeNotFound, "plan_id", fmt.Sprintf("campaign %s", campaignID))
	}

	return plan, nil
}

func (s *Service) build(req domain.PlanRequest) (*domain.PlanResponse, error) {
	started := time.Now()
	resp, err := s.planner.Build(req)
	s.metrics.ObservePlan(string(req.PlanMode), started, err)
	return resp, err
}

func (s *Service) lookupKey(req domain.PlanRequest) string {
	if s.cache == nil || s.cacheKey == nil {
		return ""
	}

	key, err := s.cacheKey(req)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao gerar chave de cache")
		return ""
	}

	return key
}

// fromCache devolve nil em miss ou erro; erros do cache nunca chegam ao cliente
func (s *Service) fromCache(ctx context.Context, key string) *domain.PlanResponse {
	resp, found, err := s.cache.Get(ctx, key)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Erro ao ler plano do cache")
		return nil
	}

	s.metrics.ObserveCache(found)
	if !found {
		return nil
	}

	return resp
}

var _ PlanService = (*Service)(nil)
