package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/psds-microservice/marketplace-service/internal/handler"
	"github.com/psds-microservice/marketplace-service/internal/handler/mocks"
	"github.com/psds-microservice/marketplace-service/internal/middleware"
	"github.com/psds-microservice/marketplace-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const secret = "router-secret"

type fakeHub struct{ called bool }

func (h *fakeHub) ServeWS(w http.ResponseWriter, _ *http.Request, _ uint64) {
	h.called = true
	w.WriteHeader(http.StatusSwitchingProtocols)
}

func newTestRouter(t *testing.T) (http.Handler, *mocks.MockServiceRequestServicer, *mocks.MockDisputeServicer) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	requests := mocks.NewMockServiceRequestServicer(ctrl)
	disputes := mocks.NewMockDisputeServicer(ctrl)
	h := New(Deps{
		JWTSecret:       secret,
		CORSOrigins:     []string{"https://app.example.com"},
		ServiceRequests: handler.NewServiceRequestHandler(requests, mocks.NewMockPaymentServicer(ctrl)),
		Estimates:       handler.NewEstimateHandler(mocks.NewMockEstimateServicer(ctrl)),
		Disputes:        handler.NewDisputeHandler(disputes),
		Messages:        handler.NewMessageHandler(mocks.NewMockMessageServicer(ctrl)),
		Devices:         handler.NewDeviceHandler(mocks.NewMockDeviceServicer(ctrl)),
		Realtime:        handler.NewRealtimeHandler(&fakeHub{}),
	})
	return h, requests, disputes
}

func request(t *testing.T, h http.Handler, method, path string, role model.Role, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if role.Valid() {
		token, err := middleware.GenerateToken(secret, 10, role, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestPublicRoutes(t *testing.T) {
	h, _, _ := newTestRouter(t)

	w := request(t, h, http.MethodGet, "/health", 0, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	assert.Equal(t, http.StatusOK, request(t, h, http.MethodGet, "/ready", 0, "").Code)

	w = request(t, h, http.MethodGet, "/swagger/openapi.json", 0, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"openapi"`)

	w = request(t, h, http.MethodGet, "/nope", 0, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"route not found"}`, w.Body.String())
}

func TestAPIRequiresToken(t *testing.T) {
	h, _, _ := newTestRouter(t)
	w := request(t, h, http.MethodGet, "/api/service-requests", 0, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleGates(t *testing.T) {
	h, requests, disputes := newTestRouter(t)

	assert.Equal(t, http.StatusForbidden,
		request(t, h, http.MethodPost, "/api/admin/disputes/42/resolve", model.RoleClient, `{"resolution":"x"}`).Code)
	assert.Equal(t, http.StatusForbidden,
		request(t, h, http.MethodPost, "/api/service-requests/accept", model.RoleClient, `{"service_request_id":42}`).Code)
	assert.Equal(t, http.StatusForbidden,
		request(t, h, http.MethodPost, "/api/client/billing-estimates/respond", model.RoleProfessional, `{"estimate_id":1,"action":"accept"}`).Code)

	disputes.EXPECT().Resolve(gomock.Any(), model.Actor{UserID: 10, Role: model.RoleAdmin}, uint64(42), "x").
		Return(&model.ServiceRequest{ID: 42, Status: model.RequestStatusResolved}, nil)
	assert.Equal(t, http.StatusOK,
		request(t, h, http.MethodPost, "/api/admin/disputes/42/resolve", model.RoleAdmin, `{"resolution":"x"}`).Code)

	requests.EXPECT().ListAvailable(gomock.Any(), model.Actor{UserID: 10, Role: model.RoleProfessional}, gomock.Any()).
		Return(nil, int64(0), nil)
	assert.Equal(t, http.StatusOK,
		request(t, h, http.MethodGet, "/api/service-requests/available", model.RoleProfessional, "").Code)
}

func TestCORSPreflight(t *testing.T) {
	h, _, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/service-requests", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
