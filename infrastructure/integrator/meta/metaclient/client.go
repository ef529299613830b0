package metaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	metadomain "github.com/vfg2006/media-planner-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/media-planner-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	insightFields   = "account_id,campaign_id,campaign_name,impressions,clicks,spend,actions"
	insightPageSize = 500
	maxPages        = 50
)

type Client interface {
	GetDailyInsights(ctx context.Context, accountID string, since, until time.Time) ([]metadomain.DailyInsight, error)
}

type MetaClient struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	limiter     *rate.Limiter
}

func NewClient(cfg config.Meta) Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &MetaClient{
		baseURL:     graphURL(cfg),
		accessToken: cfg.AccessToken,
		httpClient:  &http.Client{Timeout: timeout},
		limiter:     rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// graphURL aceita META_URL completo ou monta a partir de base e versão
func graphURL(cfg config.Meta) string {
	if cfg.URL != "" {
		return strings.TrimRight(cfg.URL, "/")
	}
	return strings.TrimRight(cfg.BaseURL, "/") + "/" + cfg.Version
}

// GetDailyInsights busca uma linha por campanha e dia, seguindo paging.next
func (c *MetaClient) GetDailyInsights(ctx context.Context, accountID string, since, until time.Time) ([]metadomain.DailyInsight, error) {
	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", since.Format(time.DateOnly), until.Format(time.DateOnly))

	params := url.Values{}
	params.Add("fields", insightFields)
	params.Add("level", "campaign")
	params.Add("time_increment", "1")
	params.Add("time_range", timeRange)
	params.Add("limit", fmt.Sprint(insightPageSize))
	params.Add("access_token", c.accessToken)

	next := fmt.Sprintf("%s/act_%s/insights?%s", c.baseURL, strings.TrimPrefix(accountID, "act_"), params.Encode())

	var insights []metadomain.DailyInsight
	for page := 0; next != "" && page < maxPages; page++ {
		var resp metadomain.InsightsPage
		if err := c.get(ctx, next, &resp); err != nil {
			return nil, err
		}

		insights = append(insights, resp.Data...)
		next = resp.Paging.Next
	}

	if next != "" {
		logrus.WithField("account_id", accountID).Warn("meta: limite de páginas atingido, resultado truncado")
	}

	return insights, nil
}

func (c *MetaClient) get(ctx context.Context, requestURL string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição")
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return parseError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return err
	}

	return nil
}

func parseError(status int, body []byte) error {
	var errorResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil || errorResp.Error.Message == "" {
		return &metadomain.APIError{
			StatusCode: status,
			Details:    metadomain.ErrorDetails{Message: string(body)},
		}
	}

	if errorResp.IsTokenExpired() {
		logrus.Warnf("Token expirado detectado pela API Meta. Código: %d, Subcódigo: %d",
			errorResp.Error.Code, errorResp.Error.ErrorSubcode)
	}

	return &metadomain.APIError{StatusCode: status, Details: errorResp.Error}
}
