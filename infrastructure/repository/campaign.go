package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/vfg2006/media-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/media-planner-api/internal/domain"
)

const (
	campaignsTable   = "campaigns c"
	campaignsColumns = "c.id, c.user_id, c.name, c.currency, c.ad_account_id, c.created_at"
)

type CampaignRepository interface {
	CreateCampaign(campaign *domain.Campaign) error
	GetCampaignByID(campaignID string) (*domain.Campaign, error)
	ListCampaignsByUser(userID int) ([]*domain.Campaign, error)
	ListCampaignsWithAdAccount() ([]*domain.Campaign, error)
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) CreateCampaign(campaign *domain.Campaign) error {
	query, args, err := squirrel.
		Insert("campaigns").
		Columns("id", "user_id", "name", "currency", "ad_account_id").
		Values(campaign.ID, campaign.UserID, campaign.Name, campaign.Currency, campaign.AdAccountID).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(query, args...).Scan(&campaign.CreatedAt); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao inserir campanha: %w", err)
	}

	return nil
}

func (r *campaignRepository) GetCampaignByID(campaignID string) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Select(campaignsColumns).
		From(campaignsTable).
		Where(squirrel.Eq{"c.id": campaignID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	campaign, err := scanCampaign(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
	}

	return campaign, nil
}

func (r *campaignRepository) ListCampaignsByUser(userID int) ([]*domain.Campaign, error) {
	return r.listCampaigns(squirrel.Eq{"c.user_id": userID})
}

func (r *campaignRepository) ListCampaignsWithAdAccount() ([]*domain.Campaign, error) {
	return r.listCampaigns(squirrel.And{
		squirrel.NotEq{"c.ad_account_id": nil},
		squirrel.NotEq{"c.ad_account_id": ""},
	})
}

func (r *campaignRepository) listCampaigns(where squirrel.Sqlizer) ([]*domain.Campaign, error) {
	query, args, err := squirrel.
		Select(campaignsColumns).
		From(campaignsTable).
		Where(where).
		OrderBy("c.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar campanhas: %w", err)
	}

	return campaigns, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (*domain.Campaign, error) {
	campaign := &domain.Campaign{}
	var adAccountID sql.NullString

	if err := row.Scan(
		&campaign.ID,
		&campaign.UserID,
		&campaign.Name,
		&campaign.Currency,
		&adAccountID,
		&campaign.CreatedAt,
	); err != nil {
		return nil, err
	}

	if adAccountID.Valid && adAccountID.String != "" {
		campaign.AdAccountID = &adAccountID.String
	}

	return campaign, nil
}
