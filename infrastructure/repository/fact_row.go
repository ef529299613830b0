package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/vfg2006/media-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/media-planner-api/internal/domain"
)

const (
	factRowsTable   = "fact_rows f"
	factRowsColumns = "f.id, f.campaign_id, f.source, f.date, f.platform, f.ad_account_id, f.campaign_name, " +
		"f.impressions, f.clicks, f.cost, f.leads, f.conversions, f.views, f.created_at"

	// limite de linhas por INSERT para não estourar o número de parâmetros do postgres
	factRowsBatchSize = 500
)

type FactRowRepository interface {
	InsertFactRows(ctx context.Context, campaignID string, source domain.FactSource, rows []domain.FactRow) (int64, error)
	UpsertMetaFactRows(ctx context.Context, campaignID string, rows []domain.FactRow) (int64, error)
	ListFactRows(campaignID string, startDate, endDate *time.Time) ([]*domain.FactRowEntry, error)
}

type factRowRepository struct {
	conn *postgres.Connection
}

func NewFactRowRepository(conn *postgres.Connection) FactRowRepository {
	return &factRowRepository{
		conn: conn,
	}
}

// factRowKey identifica uma linha do Meta no índice único parcial
type factRowKey struct {
	date         string
	platform     domain.ChannelKey
	adAccountID  string
	campaignName string
}

// InsertFactRows acrescenta as linhas sem deduplicar; linhas repetidas são
// somadas na agregação semanal.
func (r *factRowRepository) InsertFactRows(ctx context.Context, campaignID string, source domain.FactSource, rows []domain.FactRow) (int64, error) {
	return r.writeBatches(ctx, rows, func(tx *sql.Tx, batch []domain.FactRow) (int64, error) {
		return r.execBatch(tx, campaignID, source, batch, "")
	})
}

// UpsertMetaFactRows sobrescreve as linhas do Meta com a mesma chave
// (campanha, data, plataforma, conta, nome). Chaves repetidas no lote são somadas antes.
func (r *factRowRepository) UpsertMetaFactRows(ctx context.Context, campaignID string, rows []domain.FactRow) (int64, error) {
	return r.writeBatches(ctx, MergeFactRows(rows), func(tx *sql.Tx, batch []domain.FactRow) (int64, error) {
		return r.execBatch(tx, campaignID, domain.FactSourceMeta, batch, `
			ON CONFLICT (campaign_id, date, platform, ad_account_id, campaign_name) WHERE source = 'meta' DO UPDATE SET
				impressions = EXCLUDED.impressions,
				clicks = EXCLUDED.clicks,
				cost = EXCLUDED.cost,
				leads = EXCLUDED.leads,
				conversions = EXCLUDED.conversions,
				views = EXCLUDED.views,
				updated_at = NOW()
		`)
	})
}

// MergeFactRows soma as métricas de linhas com a mesma chave, mantendo a ordem da primeira ocorrência
func MergeFactRows(rows []domain.FactRow) []domain.FactRow {
	index := make(map[factRowKey]int, len(rows))
	merged := make([]domain.FactRow, 0, len(rows))

	for _, row := range rows {
		key := factRowKey{
			date:         row.Date.String(),
			platform:     row.Platform,
			adAccountID:  row.AdAccountID,
			campaignName: row.CampaignName,
		}

		i, ok := index[key]
		if !ok {
			index[key] = len(merged)
			merged = append(merged, row)
			continue
		}

		m := &merged[i]
		m.Impressions += row.Impressions
		m.Clicks += row.Clicks
		m.Cost += row.Cost
		m.Leads += row.Leads
		m.Conversions += row.Conversions
		m.Views += row.Views
	}

	return merged
}

func (r *factRowRepository) writeBatches(ctx context.Context, rows []domain.FactRow, write func(*sql.Tx, []domain.FactRow) (int64, error)) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	var affected int64
	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for start := 0; start < len(rows); start += factRowsBatchSize {
			end := min(start+factRowsBatchSize, len(rows))

			n, err := write(tx, rows[start:end])
			if err != nil {
				return err
			}
			affected += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return affected, nil
}

func (r *factRowRepository) execBatch(tx *sql.Tx, campaignID string, source domain.FactSource, rows []domain.FactRow, suffix string) (int64, error) {
	builder := squirrel.
		Insert("fact_rows").
		Columns("campaign_id", "source", "date", "platform", "ad_account_id", "campaign_name",
			"impressions", "clicks", "cost", "leads", "conversions", "views").
		PlaceholderFormat(squirrel.Dollar)

	for _, row := range rows {
		builder = builder.Values(
			campaignID,
			source,
			row.Date.String(),
			row.Platform,
			row.AdAccountID,
			row.CampaignName,
			row.Impressions,
			row.Clicks,
			row.Cost,
			row.Leads,
			row.Conversions,
			row.Views,
		)
	}

	if suffix != "" {
		builder = builder.Suffix(suffix)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := tx.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return n, nil
}

func (r *factRowRepository) ListFactRows(campaignID string, startDate, endDate *time.Time) ([]*domain.FactRowEntry, error) {
	builder := squirrel.
		Select(factRowsColumns).
		From(factRowsTable).
		Where(squirrel.Eq{"f.campaign_id": campaignID}).
		OrderBy("f.date ASC", "f.platform ASC", "f.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if startDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"f.date": startDate.Format(time.DateOnly)})
	}
	if endDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"f.date": endDate.Format(time.DateOnly)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.FactRowEntry, 0)
	for rows.Next() {
		entry, err := scanFactRow(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear linha de fato: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar linhas de fato: %w", err)
	}

	return entries, nil
}

func scanFactRow(row rowScanner) (*domain.FactRowEntry, error) {
	entry := &domain.FactRowEntry{}
	var date time.Time

	if err := row.Scan(
		&entry.ID,
		&entry.CampaignID,
		&entry.Source,
		&date,
		&entry.Platform,
		&entry.AdAccountID,
		&entry.CampaignName,
		&entry.Impressions,
		&entry.Clicks,
		&entry.Cost,
		&entry.Leads,
		&entry.Conversions,
		&entry.Views,
		&entry.CreatedAt,
	); err != nil {
		return nil, err
	}

	entry.Date = domain.NewDate(date.Year(), date.Month(), date.Day())

	return entry, nil
}
