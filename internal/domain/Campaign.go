package domain

import (
	"time"
)

// Campaign agrupa planos salvos e linhas de fato de um cliente
type Campaign struct {
	ID          string    `json:"id"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"name"`
	Currency    Currency  `json:"currency"`
	AdAccountID *string   `json:"ad_account_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateCampaignRequest struct {
	Name        string   `json:"name"`
	Currency    Currency `json:"currency"`
	AdAccountID *string  `json:"ad_account_id"`
}

// SavedPlan guarda o par requisição/resposta exatamente como foi calculado
type SavedPlan struct {
	ID         int64        `json:"id"`
	CampaignID string       `json:"campaign_id"`
	Request    PlanRequest  `json:"payload"`
	Result     PlanResponse `json:"result"`
	CreatedAt  time.Time    `json:"created_at"`
}

// FactSource indica a origem de uma linha de fato armazenada
type FactSource string

const (
	FactSourceUpload FactSource = "upload"
	FactSourceMeta   FactSource = "meta"
)

// FactRowEntry é uma linha de fato persistida para uma campanha
type FactRowEntry struct {
	ID         int64      `json:"id"`
	CampaignID string     `json:"campaign_id"`
	Source     FactSource `json:"source"`
	FactRow
	CreatedAt time.Time `json:"created_at"`
}

// FactImportResult resume uma importação de CSV
type FactImportResult struct {
	CampaignID string `json:"campaign_id"`
	Rows       int    `json:"rows"`
	Dropped    int    `json:"dropped"`
}
