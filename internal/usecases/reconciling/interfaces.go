package reconciling

import (
	"context"
	"io"
	"time"

	"github.com/vfg2006/media-planner-api/internal/domain"
)

// Reconciler compara fatos observados com o plano
type Reconciler interface {
	// WeeklyFromUpload calcula o plano da requisição e o compara com o CSV enviado
	WeeklyFromUpload(ctx context.Context, req domain.PlanRequest, csv io.Reader) (*domain.WeeklyReport, error)

	// PlanVsFact devolve o plano completo com fact_weekly, fact_raw e unmatched_fact preenchidos
	PlanVsFact(ctx context.Context, req domain.PlanRequest, csv io.Reader) (*domain.PlanResponse, error)

	// ImportCSV acrescenta as linhas do CSV à campanha; repetidas são somadas nos relatórios
	ImportCSV(ctx context.Context, campaignID string, csv io.Reader) (*domain.FactImportResult, error)

	// ListFacts lista as linhas gravadas da campanha; datas nil não limitam o intervalo
	ListFacts(campaignID string, from, to *time.Time) ([]*domain.FactRowEntry, error)

	// WeeklyReport compara um plano salvo com as linhas de fato da campanha
	WeeklyReport(campaignID string, planID *int64) (*domain.WeeklyReport, error)
}
