package meta

import (
	"context"
	"slices"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	metadomain "github.com/vfg2006/media-planner-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/media-planner-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/media-planner-api/internal/domain"
)

type MetaIntegrator struct {
	Client metaclient.Client
}

func New(client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		Client: client,
	}
}

// FetchFactRows converte os insights diários da conta em linhas de fato da plataforma meta.
// Linhas com data ilegível são descartadas.
func (s *MetaIntegrator) FetchFactRows(ctx context.Context, accountID string, since, until time.Time) ([]domain.FactRow, error) {
	insights, err := s.Client.GetDailyInsights(ctx, accountID, since, until)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("insights: failed to get daily insights from API")
		return nil, err
	}

	rows := make([]domain.FactRow, 0, len(insights))
	for i := range insights {
		row, ok := FactoryFactRow(&insights[i])
		if !ok {
			continue
		}
		if row.AdAccountID == "" {
			row.AdAccountID = accountID
		}
		rows = append(rows, row)
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"insights":   len(insights),
		"rows":       len(rows),
	}).Debug("insights: daily insights converted")

	return rows, nil
}

func FactoryFactRow(insight *metadomain.DailyInsight) (domain.FactRow, bool) {
	date, err := domain.ParseDate(insight.DateStart)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"date_start": insight.DateStart,
			"error":      err.Error(),
		}).Warn("insights: invalid date on daily insight")
		return domain.FactRow{}, false
	}

	return domain.FactRow{
		Date:         date,
		Platform:     domain.ChannelMeta,
		AdAccountID:  insight.AccountID,
		CampaignName: insight.CampaignName,
		Impressions:  parseMetric("impressions", insight.Impressions),
		Clicks:       parseMetric("clicks", insight.Clicks),
		Cost:         parseMetric("spend", insight.Spend),
		Leads:        pickAction(insight.Actions, metadomain.LeadActionTypes),
		Conversions:  pickAction(insight.Actions, metadomain.ConversionActionTypes),
		Views:        pickAction(insight.Actions, metadomain.ViewActionTypes),
	}, true
}

// pickAction devolve o primeiro tipo presente na ordem de prioridade.
// O Meta reporta o mesmo lead em mais de um tipo, então os valores não são somados.
func pickAction(actions []metadomain.Action, types []string) float64 {
	for _, actionType := range types {
		idx := slices.IndexFunc(actions, func(a metadomain.Action) bool { return a.ActionType == actionType })
		if idx >= 0 {
			return parseMetric(actionType, actions[idx].Value)
		}
	}
	return 0
}

func parseMetric(field, value string) float64 {
	if value == "" {
		return 0
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"field": field,
			"value": value,
			"error": err.Error(),
		}).Warn("insights: error converting metric to float")
		return 0
	}

	return v
}
