package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/media-planner-api/infrastructure/repository/mocks"
	"github.com/vfg2006/media-planner-api/internal/api/handler/router"
	"github.com/vfg2006/media-planner-api/internal/config"
	"github.com/vfg2006/media-planner-api/internal/domain"
	"github.com/vfg2006/media-planner-api/internal/scheduler"
	"github.com/vfg2006/media-planner-api/pkg/apiErrors"
	"github.com/vfg2006/media-planner-api/pkg/middleware"
)

func newCronRouter(services CronJobServices, claims *domain.Claims) http.Handler {
	rt := router.New(router.WithRoutes(CronJobs(services)...))
	return middleware.AuthMiddleware(stubValidator{claims: claims})(rt)
}

func cronRequest(method, path string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer valid")
	return req
}

func TestRunCronJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	campaigns := mocks.NewMockCampaignRepository(ctrl)
	campaigns.EXPECT().ListCampaignsWithAdAccount().Return(nil, nil)

	sync := scheduler.NewMetaFactSyncService(campaigns, mocks.NewMockFactRowRepository(ctrl), nil, nil, config.FactSync{})
	admin := &domain.Claims{UserID: 1, UserRoleID: domain.RoleAdmin}
	rt := newCronRouter(CronJobServices{MetaFactSyncService: sync}, admin)

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, cronRequest(http.MethodPost, "/v1/cron/run/meta-facts"))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Eventually(t, func() bool {
		status := sync.GetStatus()
		return status["sync_running"] == false && !status["last_sync_completed_at"].(time.Time).IsZero()
	}, time.Second, 10*time.Millisecond)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, cronRequest(http.MethodGet, "/v1/cron/status"))

	assert.Equal(t, http.StatusOK, rec.Code)
	var status map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, float64(0), status[CronJobTypeMetaFacts]["last_sync_rows"])
	assert.Equal(t, "", status[CronJobTypeMetaFacts]["last_sync_error"])
}

func TestRunCronJob_Errors(t *testing.T) {
	admin := &domain.Claims{UserID: 1, UserRoleID: domain.RoleAdmin}

	tests := []struct {
		name       string
		services   CronJobServices
		claims     *domain.Claims
		path       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "Tipo desconhecido",
			claims:     admin,
			path:       "/v1/cron/run/ranking",
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidRequest,
		},
		{
			name:       "Serviço indisponível",
			claims:     admin,
			path:       "/v1/cron/run/meta-facts",
			wantStatus: http.StatusInternalServerError,
			wantCode:   apiErrors.ErrInternalServer,
		},
		{
			name:       "Cliente não pode disparar",
			claims:     &domain.Claims{UserID: 2, UserRoleID: domain.RoleClient},
			path:       "/v1/cron/run/meta-facts",
			wantStatus: http.StatusForbidden,
			wantCode:   apiErrors.ErrInsufficientPrivilege,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			newCronRouter(tt.services, tt.claims).ServeHTTP(rec, cronRequest(http.MethodPost, tt.path))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeAPIError(t, rec).Code)
		})
	}
}
