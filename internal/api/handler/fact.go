package handler

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/vfg2006/media-planner-api/internal/domain"
	"github.com/vfg2006/media-planner-api/internal/usecases/reconciling"
	"github.com/vfg2006/media-planner-api/pkg/apiErrors"
)

const (
	maxUploadBytes = 32 << 20

	formFieldPlan = "plan"
	formFieldFile = "file"
)

// parsePlanUpload lê o plano e o CSV de um formulário multipart
func parsePlanUpload(r *http.Request) (domain.PlanRequest, multipart.File, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return domain.PlanRequest{}, nil, err
	}

	req, err := decodePlanRequest(strings.NewReader(r.FormValue(formFieldPlan)))
	if err != nil {
		return domain.PlanRequest{}, nil, err
	}

	file, _, err := r.FormFile(formFieldFile)
	if err != nil {
		return domain.PlanRequest{}, nil, err
	}

	return req, file, nil
}

func FactWeekly(service reconciling.Reconciler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, file, err := parsePlanUpload(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formulário inválido: "+err.Error(), nil)
			return
		}
		defer file.Close()

		report, err := service.WeeklyFromUpload(r.Context(), req, file)
		if err != nil {
			writeServiceError(w, err, "Erro ao comparar plano e fato")
			return
		}

		writeJSON(w, http.StatusOK, report)
	})
}

func PlanVsFact(service reconciling.Reconciler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, file, err := parsePlanUpload(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formulário inválido: "+err.Error(), nil)
			return
		}
		defer file.Close()

		resp, err := service.PlanVsFact(r.Context(), req, file)
		if err != nil {
			writeServiceError(w, err, "Erro ao comparar plano e fato")
			return
		}

		writeJSON(w, http.StatusOK, resp)
	})
}

// readCSVBody aceita multipart com o campo "file" ou o CSV direto no corpo
func readCSVBody(r *http.Request) (io.Reader, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, err
		}
		file, _, err := r.FormFile(formFieldFile)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}

	return io.LimitReader(r.Body, maxUploadBytes), nil
}
