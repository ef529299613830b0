package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/media-planner-api/infrastructure/cache"
	"github.com/vfg2006/media-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/media-planner-api/infrastructure/integrator/meta"
	"github.com/vfg2006/media-planner-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/media-planner-api/infrastructure/migration"
	"github.com/vfg2006/media-planner-api/infrastructure/repository"
	"github.com/vfg2006/media-planner-api/internal/api"
	"github.com/vfg2006/media-planner-api/internal/config"
	"github.com/vfg2006/media-planner-api/internal/metrics"
	"github.com/vfg2006/media-planner-api/internal/scheduler"
	"github.com/vfg2006/media-planner-api/internal/usecases/authenticating"
	"github.com/vfg2006/media-planner-api/internal/usecases/campaign"
	"github.com/vfg2006/media-planner-api/internal/usecases/planning"
	"github.com/vfg2006/media-planner-api/internal/usecases/reconciling"
	"github.com/vfg2006/media-planner-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	catalog, err := planning.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar catálogo de canais")
	}
	logrus.WithField("rate_cards", len(catalog.Keys())).Info("Catálogo de canais carregado")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(reg)

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.Migrate(pgConn); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar schema do banco de dados")
		}
		logrus.Info("Schema do banco de dados aplicado")
	}

	campaignRepo := repository.NewCampaignRepository(pgConn)
	planRepo := repository.NewPlanRepository(pgConn)
	factRowRepo := repository.NewFactRowRepository(pgConn)

	planService := planning.NewService(planning.NewPlanner(catalog), m, planRepo)
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logrus.WithError(err).Warn("Redis indisponível, cache de estimativas desabilitado")
		} else {
			defer redisClient.Close()
			planService.WithCache(cache.NewPlanCache(redisClient, cfg.Redis.TTL), cache.Key)
			logrus.WithField("ttl", cfg.Redis.TTL.String()).Info("Cache de estimativas habilitado")
		}
	}

	reconciler := reconciling.NewService(planService, factRowRepo, m)
	campaignService := campaign.NewService(campaignRepo)
	authenticator := authenticating.NewService(cfg.Auth)

	metaIntegrator := meta.New(metaclient.NewClient(cfg.Meta))
	factSyncService := scheduler.NewMetaFactSyncService(campaignRepo, factRowRepo, metaIntegrator, m, cfg.FactSync)

	if err := factSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de fatos do Meta")
	} else {
		logrus.Info("Agendador de sincronização de fatos do Meta iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		planService,
		reconciler,
		campaignService,
		authenticator,
		m,
		factSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
