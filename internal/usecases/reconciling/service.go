package reconciling

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/media-planner-api/infrastructure/repository"
	"github.com/vfg2006/media-planner-api/internal/domain"
	"github.com/vfg2006/media-planner-api/internal/metrics"
	"github.com/vfg2006/media-planner-api/internal/usecases/planning"
)

type Service struct {
	planService planning.PlanService
	factRepo    repository.FactRowRepository
	metrics     *metrics.Metrics
}

func NewService(planService planning.PlanService, factRepo repository.FactRowRepository, m *metrics.Metrics) *Service {
	return &Service{
		planService: planService,
		factRepo:    factRepo,
		metrics:     m,
	}
}

func (s *Service) WeeklyFromUpload(ctx context.Context, req domain.PlanRequest, csv io.Reader) (*domain.WeeklyReport, error) {
	plan, rows, dropped, err := s.planAndFacts(ctx, req, csv)
	if err != nil {
		return nil, err
	}

	report := s.report(plan, rows, dropped, req.MatchStrategy)
	s.metrics.ObserveFacts(len(rows), dropped, len(report.Unmatched))

	return report, nil
}

func (s *Service) PlanVsFact(ctx context.Context, req domain.PlanRequest, csv io.Reader) (*domain.PlanResponse, error) {
	plan, rows, dropped, err := s.planAndFacts(ctx, req, csv)
	if err != nil {
		return nil, err
	}

	report := s.report(plan, rows, dropped, req.MatchStrategy)
	s.metrics.ObserveFacts(len(rows), dropped, len(report.Unmatched))

	// cópia para não alterar uma resposta que pode ter vindo do cache
	out := *plan
	out.FactWeekly = report.Weekly
	out.FactRaw = rows
	out.UnmatchedFact = report.Unmatched

	return &out, nil
}

func (s *Service) ImportCSV(ctx context.Context, campaignID string, csv io.Reader) (*domain.FactImportResult, error) {
	rows, dropped, err := ParseFactCSV(csv)
	if err != nil {
		return nil, err
	}

	if _, err := s.factRepo.InsertFactRows(ctx, campaignID, domain.FactSourceUpload, rows); err != nil {
		return nil, errors.Wrapf(ErrImportFacts, "campaign %s: %v", campaignID, err)
	}

	s.metrics.ObserveFacts(len(rows), dropped, 0)

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaignID,
		"rows":        len(rows),
		"dropped":     dropped,
	}).Info("Linhas de fato importadas")

	return &domain.FactImportResult{
		CampaignID: campaignID,
		Rows:       len(rows),
		Dropped:    dropped,
	}, nil
}

func (s *Service) ListFacts(campaignID string, from, to *time.Time) ([]*domain.FactRowEntry, error) {
	entries, err := s.factRepo.ListFactRows(campaignID, from, to)
	if err != nil {
		return nil, errors.Wrapf(ErrListFacts, "campaign %s: %v", campaignID, err)
	}

	if entries == nil {
		entries = []*domain.FactRowEntry{}
	}

	return entries, nil
}

func (s *Service) WeeklyReport(campaignID string, planID *int64) (*domain.WeeklyReport, error) {
	saved, err := s.planService.GetPlan(campaignID, planID)
	if err != nil {
		return nil, err
	}

	entries, err := s.factRepo.ListFactRows(campaignID, nil, nil)
	if err != nil {
		return nil, errors.Wrapf(ErrListFacts, "campaign %s: %v", campaignID, err)
	}

	rows := make([]domain.FactRow, len(entries))
	for i, entry := range entries {
		rows[i] = entry.FactRow
	}

	strategy := saved.Request.MatchStrategy
	if strategy == "" {
		strategy = domain.MatchByAccount
	}

	return s.report(&saved.Result, rows, 0, strategy), nil
}

func (s *Service) planAndFacts(ctx context.Context, req domain.PlanRequest, csv io.Reader) (*domain.PlanResponse, []domain.FactRow, int, error) {
	rows, dropped, err := ParseFactCSV(csv)
	if err != nil {
		return nil, nil, 0, err
	}

	plan, err := s.planService.Estimate(ctx, req)
	if err != nil {
		return nil, nil, 0, err
	}

	return plan, rows, dropped, nil
}

func (s *Service) report(plan *domain.PlanResponse, rows []domain.FactRow, dropped int, strategy domain.MatchStrategy) *domain.WeeklyReport {
	weekly, unmatched := AggregateWeekly(plan, rows, strategy)

	return &domain.WeeklyReport{
		Weekly:     weekly,
		Unmatched:  unmatched,
		Dropped:    dropped,
		PlanBudget: plan.BudgetUSD,
		PeriodDays: plan.PeriodDays,
	}
}

var _ Reconciler = (*Service)(nil)
