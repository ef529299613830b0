package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/media-planner-api/internal/domain"
	"github.com/vfg2006/media-planner-api/internal/usecases/campaign"
	"github.com/vfg2006/media-planner-api/internal/usecases/planning"
	"github.com/vfg2006/media-planner-api/internal/usecases/reconciling"
	"github.com/vfg2006/media-planner-api/pkg/apiErrors"
	"github.com/vfg2006/media-planner-api/pkg/middleware"
	"github.com/vfg2006/media-planner-api/pkg/utils"
)

// CampaignServices reúne os casos de uso expostos em /v1/campaigns
type CampaignServices struct {
	Campaigns  campaign.CampaignService
	Plans      planning.PlanService
	Reconciler reconciling.Reconciler
}

func CreateCampaign(service campaign.CampaignService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.UserFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var request domain.CreateCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		created, err := service.CreateCampaign(claims, &request)
		if err != nil {
			writeServiceError(w, err, "Erro ao criar campanha")
			return
		}

		writeJSON(w, http.StatusCreated, created)
	})
}

func ListCampaigns(service campaign.CampaignService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.UserFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		campaigns, err := service.ListCampaigns(claims)
		if err != nil {
			writeServiceError(w, err, "Erro ao listar campanhas")
			return
		}

		if campaigns == nil {
			campaigns = []*domain.Campaign{}
		}

		writeJSON(w, http.StatusOK, campaigns)
	})
}

// ownedCampaign resolve a campanha da URL e confere o dono; escreve o erro e devolve nil em falha
func ownedCampaign(w http.ResponseWriter, r *http.Request, service campaign.CampaignService) *domain.Campaign {
	claims, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return nil
	}

	id := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if id == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha é obrigatório", nil)
		return nil
	}

	c, err := service.GetCampaign(claims, id)
	if err != nil {
		writeServiceError(w, err, "Erro ao buscar campanha")
		return nil
	}

	return c
}

func SaveCampaignPlan(services CampaignServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := ownedCampaign(w, r, services.Campaigns)
		if c == nil {
			return
		}

		req, err := decodePlanRequest(r.Body)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		saved, err := services.Plans.SavePlan(r.Context(), c.ID, req)
		if err != nil {
			writeServiceError(w, err, "Erro ao salvar plano")
			return
		}

		writeJSON(w, http.StatusCreated, saved)
	})
}

func GetCampaignPlan(services CampaignServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := ownedCampaign(w, r, services.Campaigns)
		if c == nil {
			return
		}

		planID, ok := parsePlanID(w, r)
		if !ok {
			return
		}

		saved, err := services.Plans.GetPlan(c.ID, planID)
		if err != nil {
			writeServiceError(w, err, "Erro ao buscar plano")
			return
		}

		writeJSON(w, http.StatusOK, saved)
	})
}

func ImportCampaignFacts(services CampaignServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := ownedCampaign(w, r, services.Campaigns)
		if c == nil {
			return
		}

		body, err := readCSVBody(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Arquivo inválido: "+err.Error(), nil)
			return
		}

		result, err := services.Reconciler.ImportCSV(r.Context(), c.ID, body)
		if err != nil {
			writeServiceError(w, err, "Erro ao importar linhas de fato")
			return
		}

		logrus.WithFields(logrus.Fields{
			"campaign_id": c.ID,
			"rows":        result.Rows,
		}).Debug("Importação de fatos concluída")

		writeJSON(w, http.StatusOK, result)
	})
}

func ListCampaignFacts(services CampaignServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := ownedCampaign(w, r, services.Campaigns)
		if c == nil {
			return
		}

		from, err := utils.ParseDate(r.URL.Query().Get("from"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "from deve estar no formato AAAA-MM-DD", nil)
			return
		}

		to, err := utils.ParseDate(r.URL.Query().Get("to"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "to deve estar no formato AAAA-MM-DD", nil)
			return
		}

		entries, err := services.Reconciler.ListFacts(c.ID, from, to)
		if err != nil {
			writeServiceError(w, err, "Erro ao listar linhas de fato")
			return
		}

		writeJSON(w, http.StatusOK, entries)
	})
}

func CampaignWeeklyReport(services CampaignServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := ownedCampaign(w, r, services.Campaigns)
		if c == nil {
			return
		}

		planID, ok := parsePlanID(w, r)
		if !ok {
			return
		}

		report, err := services.Reconciler.WeeklyReport(c.ID, planID)
		if err != nil {
			writeServiceError(w, err, "Erro ao gerar relatório semanal")
			return
		}

		writeJSON(w, http.StatusOK, report)
	})
}

// parsePlanID lê ?plan_id=; ausente devolve nil (plano mais recente)
func parsePlanID(w http.ResponseWriter, r *http.Request) (*int64, bool) {
	raw := r.URL.Query().Get("plan_id")
	if raw == "" {
		return nil, true
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "plan_id deve ser um inteiro positivo", nil)
		return nil, false
	}

	return &id, true
}
