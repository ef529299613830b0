package handler

import (
	"net/http"

	"github.com/vfg2006/media-planner-api/internal/api/handler/router"
	"github.com/vfg2006/media-planner-api/internal/usecases/planning"
	"github.com/vfg2006/media-planner-api/internal/usecases/reconciling"
	"github.com/vfg2006/media-planner-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics(metricsHandler http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metricsHandler,
		},
	}
}

func Plans(service planning.PlanService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/rate-cards",
			Method:  http.MethodGet,
			Handler: ListRateCards(service),
		},
		{
			Path:    "/v1/plans/estimate",
			Method:  http.MethodPost,
			Handler: EstimatePlan(service),
		},
		{
			Path:    "/v1/plans/scenarios",
			Method:  http.MethodPost,
			Handler: PlanScenarios(service),
		},
	}
}

func Facts(service reconciling.Reconciler) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/fact/weekly",
			Method:  http.MethodPost,
			Handler: FactWeekly(service),
		},
		{
			Path:    "/v1/fact/plan-vs-fact",
			Method:  http.MethodPost,
			Handler: PlanVsFact(service),
		},
	}
}

func Campaigns(services CampaignServices) []router.Route {
	allRoles := []func(http.Handler) http.Handler{middleware.AllRoles()}

	return []router.Route{
		{
			Path:        "/v1/campaigns",
			Method:      http.MethodPost,
			Handler:     CreateCampaign(services.Campaigns),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/campaigns",
			Method:      http.MethodGet,
			Handler:     ListCampaigns(services.Campaigns),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/campaigns/:id/plans",
			Method:      http.MethodPost,
			Handler:     SaveCampaignPlan(services),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/campaigns/:id/plans",
			Method:      http.MethodGet,
			Handler:     GetCampaignPlan(services),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/campaigns/:id/facts",
			Method:      http.MethodPost,
			Handler:     ImportCampaignFacts(services),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/campaigns/:id/facts",
			Method:      http.MethodGet,
			Handler:     ListCampaignFacts(services),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/campaigns/:id/reports/weekly",
			Method:      http.MethodGet,
			Handler:     CampaignWeeklyReport(services),
			Middlewares: allRoles,
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/run/:type",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
