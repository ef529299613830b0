package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"

	"github.com/vfg2006/media-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/media-planner-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	plansTable   = "plans p"
	plansColumns = "p.id, p.campaign_id, p.payload, p.result, p.created_at"
)

// PlanRepository guarda requisição e resposta como blobs JSON, sem reinterpretar campos
type PlanRepository interface {
	SavePlan(plan *domain.SavedPlan) error
	GetPlan(campaignID string, planID int64) (*domain.SavedPlan, error)
	GetLatestPlan(campaignID string) (*domain.SavedPlan, error)
}

type planRepository struct {
	conn *postgres.Connection
}

func NewPlanRepository(conn *postgres.Connection) PlanRepository {
	return &planRepository{
		conn: conn,
	}
}

func (r *planRepository) SavePlan(plan *domain.SavedPlan) error {
	payload, err := json.Marshal(plan.Request)
	if err != nil {
		return fmt.Errorf("erro ao serializar payload: %w", err)
	}

	result, err := json.Marshal(plan.Result)
	if err != nil {
		return fmt.Errorf("erro ao serializar resultado: %w", err)
	}

	query, args, err := squirrel.
		Insert("plans").
		Columns("campaign_id", "payload", "result").
		Values(plan.CampaignID, payload, result).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(query, args...).Scan(&plan.ID, &plan.CreatedAt); err != nil {
		return fmt.Errorf("erro ao inserir plano: %w", err)
	}

	return nil
}

func (r *planRepository) GetPlan(campaignID string, planID int64) (*domain.SavedPlan, error) {
	return r.getPlan(squirrel.
		Select(plansColumns).
		From(plansTable).
		Where(squirrel.Eq{"p.campaign_id": campaignID, "p.id": planID}))
}

func (r *planRepository) GetLatestPlan(campaignID string) (*domain.SavedPlan, error) {
	return r.getPlan(squirrel.
		Select(plansColumns).
		From(plansTable).
		Where(squirrel.Eq{"p.campaign_id": campaignID}).
		OrderBy("p.id DESC").
		Limit(1))
}

func (r *planRepository) getPlan(builder squirrel.SelectBuilder) (*domain.SavedPlan, error) {
	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	plan := &domain.SavedPlan{}
	var payload, result []byte

	err = r.conn.QueryRow(query, args...).Scan(
		&plan.ID,
		&plan.CampaignID,
		&payload,
		&result,
		&plan.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear plano: %w", err)
	}

	if err := json.Unmarshal(payload, &plan.Request); err != nil {
		return nil, fmt.Errorf("erro ao deserializar JSON de payload: %w", err)
	}

	if err := json.Unmarshal(result, &plan.Result); err != nil {
		return nil, fmt.Errorf("erro ao deserializar JSON de result: %w", err)
	}

	return plan, nil
}
