package handler

import (
	"io"
	"net/http"

	"github.com/vfg2006/media-planner-api/internal/domain"
	"github.com/vfg2006/media-planner-api/internal/usecases/planning"
	"github.com/vfg2006/media-planner-api/pkg/apiErrors"
)

// limite do corpo JSON de um plano
const maxPlanBodyBytes = 1 << 20

// decodePlanRequest decodifica o JSON por cima dos valores padrão
func decodePlanRequest(body io.Reader) (domain.PlanRequest, error) {
	req := domain.DefaultPlanRequest()
	if err := json.NewDecoder(io.LimitReader(body, maxPlanBodyBytes)).Decode(&req); err != nil {
		return domain.PlanRequest{}, err
	}
	return req, nil
}

func ListRateCards(service planning.PlanService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.RateCards())
	})
}

func EstimatePlan(service planning.PlanService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := decodePlanRequest(r.Body)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		resp, err := service.Estimate(r.Context(), req)
		if err != nil {
			writeServiceError(w, err, "Erro ao calcular plano")
			return
		}

		writeJSON(w, http.StatusOK, resp)
	})
}

func PlanScenarios(service planning.PlanService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := decodePlanRequest(r.Body)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		results, err := service.Scenarios(r.Context(), req)
		if err != nil {
			writeServiceError(w, err, "Erro ao calcular cenários")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"scenarios": results})
	})
}
