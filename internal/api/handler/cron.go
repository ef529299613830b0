package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/media-planner-api/internal/scheduler"
	"github.com/vfg2006/media-planner-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeMetaFacts = "meta-facts"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	MetaFactSyncService *scheduler.MetaFactSyncService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeMetaFacts:
			if services.MetaFactSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização do Meta não disponível", nil)
				return
			}

			if !services.MetaFactSyncService.TriggerManualSync(r.Context()) {
				writeJSON(w, http.StatusConflict, map[string]any{
					"message": "Sincronização já em andamento",
					"type":    cronType,
				})
				return
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: meta-facts", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	})
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.MetaFactSyncService != nil {
			status[CronJobTypeMetaFacts] = services.MetaFactSyncService.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	})
}
