package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/media-planner-api/internal/usecases/campaign"
	"github.com/vfg2006/media-planner-api/internal/usecases/planning"
	"github.com/vfg2006/media-planner-api/internal/usecases/reconciling"
	"github.com/vfg2006/media-planner-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// writeJSON codifica antes de escrever o status, para que uma falha vire 500
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logrus.WithError(err).Error("Erro ao codificar resposta")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write(append(body, '\n')); err != nil {
		logrus.WithError(err).Error("Erro ao escrever resposta")
	}
}

// writeServiceError traduz os erros dos casos de uso para o formato da API
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var planErr *planning.PlanError
	if errors.As(err, &planErr) {
		var details any
		if planErr.Field != "" {
			details = map[string]string{"field": planErr.Field}
		}
		apiErrors.WriteError(w, planErr.Code, planErr.Error(), details)
		return
	}

	var campaignErr *campaign.CampaignError
	if errors.As(err, &campaignErr) {
		apiErrors.WriteError(w, campaignErr.Code, campaignErr.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, reconciling.ErrInvalidCSV):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFactFile, err.Error(), nil)
	case errors.Is(err, reconciling.ErrImportFacts), errors.Is(err, reconciling.ErrListFacts):
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, fallback, nil)
	default:
		logrus.WithError(err).Error(fallback)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
	}
}
