package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/media-planner-api/infrastructure/repository"
	"github.com/vfg2006/media-planner-api/internal/config"
	"github.com/vfg2006/media-planner-api/internal/domain"
	"github.com/vfg2006/media-planner-api/internal/metrics"
)

// FactFetcher busca as linhas de fato diárias de uma conta de anúncios
type FactFetcher interface {
	FetchFactRows(ctx context.Context, accountID string, since, until time.Time) ([]domain.FactRow, error)
}

// MetaFactSyncService agenda a importação diária dos fatos do Meta
// para as campanhas com conta de anúncios vinculada
type MetaFactSyncService struct {
	scheduler    *gocron.Scheduler
	config       config.FactSync
	campaignRepo repository.CampaignRepository
	factRepo     repository.FactRowRepository
	fetcher      FactFetcher
	metrics      *metrics.Metrics
	now          func() time.Time

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncRows        int64
	lastSyncError       string
}

func NewMetaFactSyncService(
	campaignRepo repository.CampaignRepository,
	factRepo repository.FactRowRepository,
	fetcher FactFetcher,
	m *metrics.Metrics,
	cfg config.FactSync,
) *MetaFactSyncService {
	if cfg.MaxConcurrentJobs <= 0 {
		cfg.MaxConcurrentJobs = 1
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = 1
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       cfg.CronSchedule,
		"lookback_days":       cfg.LookbackDays,
		"max_concurrent_jobs": cfg.MaxConcurrentJobs,
		"sync_enabled":        cfg.Enabled,
	}).Info("Configuração do agendador de fatos do Meta carregada")

	return &MetaFactSyncService{
		scheduler:    gocron.NewScheduler(time.UTC),
		config:       cfg,
		campaignRepo: campaignRepo,
		factRepo:     factRepo,
		fetcher:      fetcher,
		metrics:      m,
		now:          time.Now,
	}
}

// Start agenda a sincronização e para o agendador quando ctx é cancelado
func (s *MetaFactSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Sincronização de fatos do Meta desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de fatos do Meta")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if s.tryStart() {
			s.run(ctx)
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de fatos do Meta: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de fatos do Meta")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara uma sincronização em background.
// Devolve false quando já existe uma em andamento.
func (s *MetaFactSyncService) TriggerManualSync(ctx context.Context) bool {
	if !s.tryStart() {
		logrus.Info("Sincronização de fatos do Meta já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando sincronização manual de fatos do Meta")
	go s.run(context.WithoutCancel(ctx))
	return true
}

func (s *MetaFactSyncService) tryStart() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	return true
}

// run executa uma sincronização; o chamador precisa ter obtido tryStart
func (s *MetaFactSyncService) run(ctx context.Context) {
	rows, err := s.syncAll(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = s.now()
	s.lastSyncRows = rows
	s.lastSyncError = ""
	if err != nil {
		s.lastSyncError = err.Error()
	}
	s.syncMutex.Unlock()

	s.metrics.ObserveSync(int(rows), err)
}

// syncAll importa a janela [hoje-lookback, ontem] de cada campanha vinculada
func (s *MetaFactSyncService) syncAll(ctx context.Context) (int64, error) {
	startTime := s.now()

	campaigns, err := s.campaignRepo.ListCampaignsWithAdAccount()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar campanhas para sincronização de fatos do Meta")
		return 0, err
	}

	if len(campaigns) == 0 {
		logrus.Info("Nenhuma campanha com conta de anúncios para sincronizar")
		return 0, nil
	}

	since, until := s.window()
	logrus.WithFields(logrus.Fields{
		"campaigns":  len(campaigns),
		"start_date": since.Format(time.DateOnly),
		"end_date":   until.Format(time.DateOnly),
	}).Info("Período para sincronização de fatos do Meta")

	var (
		total     atomic.Int64
		errsMutex sync.Mutex
		errs      []error
		wg        sync.WaitGroup
	)
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)

	for _, campaign := range campaigns {
		if campaign.AdAccountID == nil || *campaign.AdAccountID == "" {
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(c *domain.Campaign) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			n, err := s.syncCampaign(ctx, c, since, until)
			if err != nil {
				errsMutex.Lock()
				errs = append(errs, err)
				errsMutex.Unlock()
				return
			}
			total.Add(n)
		}(campaign)
	}

	wg.Wait()

	logrus.WithFields(logrus.Fields{
		"duration":  s.now().Sub(startTime).String(),
		"campaigns": len(campaigns),
		"rows":      total.Load(),
		"errors":    len(errs),
	}).Info("Sincronização de fatos do Meta concluída")

	return total.Load(), errors.Join(errs...)
}

func (s *MetaFactSyncService) syncCampaign(ctx context.Context, c *domain.Campaign, since, until time.Time) (int64, error) {
	logger := logrus.WithFields(logrus.Fields{
		"campaign_id":   c.ID,
		"ad_account_id": *c.AdAccountID,
	})

	rows, err := s.fetcher.FetchFactRows(ctx, *c.AdAccountID, since, until)
	if err != nil {
		logger.WithError(err).Error("Erro ao obter fatos do Meta para campanha")
		return 0, fmt.Errorf("campanha %s: %w", c.ID, err)
	}

	if len(rows) == 0 {
		logger.Debug("Nenhum fato do Meta no período")
		return 0, nil
	}

	n, err := s.factRepo.UpsertMetaFactRows(ctx, c.ID, rows)
	if err != nil {
		logger.WithError(err).Error("Erro ao salvar fatos do Meta no banco de dados")
		return 0, fmt.Errorf("campanha %s: %w", c.ID, err)
	}

	logger.WithField("rows", n).Info("Fatos do Meta salvos com sucesso")
	return n, nil
}

func (s *MetaFactSyncService) window() (since, until time.Time) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -s.config.LookbackDays), today.AddDate(0, 0, -1)
}

// GetStatus retorna o status atual do agendador
func (s *MetaFactSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_rows":         s.lastSyncRows,
		"last_sync_error":        s.lastSyncError,
	}
}
