package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/psds-microservice/marketplace-service/internal/errs"
	"github.com/psds-microservice/marketplace-service/internal/handler/mocks"
	"github.com/psds-microservice/marketplace-service/internal/middleware"
	"github.com/psds-microservice/marketplace-service/internal/model"
	"github.com/psds-microservice/marketplace-service/internal/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var (
	admin   = model.Actor{UserID: 1, Role: model.RoleAdmin}
	artisan = model.Actor{UserID: 7, Role: model.RoleProfessional}
	client  = model.Actor{UserID: 3, Role: model.RoleClient}
)

// newEngine подставляет актора так, как это делает middleware.Auth.
func newEngine(actor *model.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if actor != nil {
			middleware.SetActor(c, *actor)
		}
		c.Next()
	})
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"not found", errs.ErrServiceRequestNotFound, http.StatusNotFound, `{"error":"service request not found"}`},
		{"unavailable", errs.ErrRequestUnavailable, http.StatusNotFound, `{"error":"service request not found or already assigned"}`},
		{"forbidden", errs.ErrForbidden, http.StatusForbidden, `{"error":"forbidden"}`},
		{"cannot start", errs.ErrCannotStart, http.StatusBadRequest, `{"error":"service request cannot be started in its current state"}`},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(nil)
			r.GET("/", func(c *gin.Context) { writeError(c, tt.err) })
			w := do(r, http.MethodGet, "/", "")
			assert.Equal(t, tt.code, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestServiceRequestHandler_Accept(t *testing.T) {
	t.Run("missing body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mocks.NewMockServiceRequestServicer(ctrl)
		h := NewServiceRequestHandler(svc, nil)
		r := newEngine(&artisan)
		r.POST("/api/service-requests/accept", h.Accept)

		w := do(r, http.MethodPost, "/api/service-requests/accept", "{")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("already assigned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mocks.NewMockServiceRequestServicer(ctrl)
		h := NewServiceRequestHandler(svc, nil)
		r := newEngine(&artisan)
		r.POST("/api/service-requests/accept", h.Accept)

		svc.EXPECT().Accept(gomock.Any(), artisan, uint64(42)).Return(nil, errs.ErrRequestUnavailable)
		w := do(r, http.MethodPost, "/api/service-requests/accept", `{"service_request_id":42}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"service request not found or already assigned"}`, w.Body.String())
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mocks.NewMockServiceRequestServicer(ctrl)
		h := NewServiceRequestHandler(svc, nil)
		r := newEngine(&artisan)
		r.POST("/api/service-requests/accept", h.Accept)

		artisanID := artisan.UserID
		svc.EXPECT().Accept(gomock.Any(), artisan, uint64(42)).Return(&model.ServiceRequest{
			ID: 42, ClientID: 3, AssignedArtisanID: &artisanID, Status: model.RequestStatusInProgress,
		}, nil)
		w := do(r, http.MethodPost, "/api/service-requests/accept", `{"service_request_id":42}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"in_progress"`)
	})

	t.Run("no actor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := NewServiceRequestHandler(mocks.NewMockServiceRequestServicer(ctrl), nil)
		r := newEngine(nil)
		r.POST("/api/service-requests/accept", h.Accept)

		w := do(r, http.MethodPost, "/api/service-requests/accept", `{"service_request_id":42}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestServiceRequestHandler_Start(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockServiceRequestServicer(ctrl)
	h := NewServiceRequestHandler(svc, nil)
	r := newEngine(&artisan)
	r.POST("/api/service-requests/:id/start", h.Start)

	svc.EXPECT().Start(gomock.Any(), artisan, uint64(42)).Return(nil, errs.ErrCannotStart)
	w := do(r, http.MethodPost, "/api/service-requests/42/start", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"service request cannot be started in its current state"}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/service-requests/abc/start", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid id"}`, w.Body.String())
}

func TestServiceRequestHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockServiceRequestServicer(ctrl)
	h := NewServiceRequestHandler(svc, nil)
	r := newEngine(&client)
	r.POST("/api/service-requests", h.Create)

	w := do(r, http.MethodPost, "/api/service-requests", `{"service_type":"plumbing"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	in := service.CreateServiceRequestInput{ServiceType: "plumbing", Description: "leak", Location: "Paris"}
	svc.EXPECT().Create(gomock.Any(), client, in).Return(&model.ServiceRequest{
		ID: 1, ClientID: 3, Status: model.RequestStatusAwaitingEstimate, ServiceType: "plumbing",
	}, nil)
	w = do(r, http.MethodPost, "/api/service-requests", `{"service_type":"plumbing","description":"leak","location":"Paris"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"awaiting_estimate"`)
}

func TestServiceRequestHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockServiceRequestServicer(ctrl)
	h := NewServiceRequestHandler(svc, nil)
	r := newEngine(&admin)
	r.GET("/api/service-requests", h.List)

	w := do(r, http.MethodGet, "/api/service-requests?status=bogus", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	filter := service.ServiceRequestFilter{Status: model.RequestStatusDisputedByBoth, ClientID: 3}
	svc.EXPECT().List(gomock.Any(), admin, filter, service.Page{Limit: 10}).Return([]model.ServiceRequest{{ID: 9}}, int64(1), nil)
	w = do(r, http.MethodGet, "/api/service-requests?status=disputed_by_both&client_id=3&limit=10", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestServiceRequestHandler_DownPayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	payments := mocks.NewMockPaymentServicer(ctrl)
	h := NewServiceRequestHandler(mocks.NewMockServiceRequestServicer(ctrl), payments)
	r := newEngine(&client)
	r.POST("/api/service-requests/:id/down-payment", h.DownPayment)

	payments.EXPECT().ConfirmDownPayment(gomock.Any(), client, uint64(5), "123").Return(nil, errs.ErrDownPaymentPaid)
	w := do(r, http.MethodPost, "/api/service-requests/5/down-payment", `{"provider_payment_id":"123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEstimateHandler_Respond(t *testing.T) {
	t.Run("invalid action", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := NewEstimateHandler(mocks.NewMockEstimateServicer(ctrl))
		r := newEngine(&client)
		r.POST("/api/client/billing-estimates/respond", h.Respond)

		w := do(r, http.MethodPost, "/api/client/billing-estimates/respond", `{"estimate_id":5,"action":"maybe"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"action must be accept or reject"}`, w.Body.String())
	})

	t.Run("not pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mocks.NewMockEstimateServicer(ctrl)
		h := NewEstimateHandler(svc)
		r := newEngine(&client)
		r.POST("/api/client/billing-estimates/respond", h.Respond)

		svc.EXPECT().Respond(gomock.Any(), client, service.RespondEstimateInput{EstimateID: 5, Accept: true}).
			Return(nil, errs.ErrEstimateNotPending)
		w := do(r, http.MethodPost, "/api/client/billing-estimates/respond", `{"estimate_id":5,"action":"accept"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("reject", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mocks.NewMockEstimateServicer(ctrl)
		h := NewEstimateHandler(svc)
		r := newEngine(&client)
		r.POST("/api/client/billing-estimates/respond", h.Respond)

		svc.EXPECT().Respond(gomock.Any(), client, service.RespondEstimateInput{EstimateID: 5, Response: "too expensive"}).
			Return(&model.BillingEstimate{ID: 5, Status: model.EstimateStatusRejected}, nil)
		w := do(r, http.MethodPost, "/api/client/billing-estimates/respond", `{"estimate_id":5,"action":"reject","response":"too expensive"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"rejected"`)
	})
}

func TestEstimateHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockEstimateServicer(ctrl)
	h := NewEstimateHandler(svc)
	r := newEngine(&admin)
	r.POST("/api/admin/billing-estimates", h.Create)

	w := do(r, http.MethodPost, "/api/admin/billing-estimates", `{"service_request_id":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	validUntil := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.EXPECT().Create(gomock.Any(), admin, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ model.Actor, in service.CreateEstimateInput) (*model.BillingEstimate, error) {
			assert.Equal(t, uint64(1), in.ServiceRequestID)
			assert.Equal(t, 150.5, in.EstimatedPrice)
			assert.JSONEq(t, `{"labour":100}`, string(in.Breakdown))
			if assert.NotNil(t, in.ValidUntil) {
				assert.True(t, validUntil.Equal(*in.ValidUntil))
			}
			return &model.BillingEstimate{ID: 5, ServiceRequestID: 1, Status: model.EstimateStatusPending}, nil
		})
	w = do(r, http.MethodPost, "/api/admin/billing-estimates",
		`{"service_request_id":1,"estimated_price":150.5,"breakdown":{"labour":100},"valid_until":"2030-01-01T00:00:00Z"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestEstimateHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockEstimateServicer(ctrl)
	h := NewEstimateHandler(svc)
	r := newEngine(&admin)
	r.GET("/api/admin/billing-estimates/:id", h.Get)

	svc.EXPECT().Get(gomock.Any(), uint64(99)).Return(nil, errs.ErrEstimateNotFound)
	w := do(r, http.MethodGet, "/api/admin/billing-estimates/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDisputeHandler_Resolve(t *testing.T) {
	t.Run("resolution required", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := NewDisputeHandler(mocks.NewMockDisputeServicer(ctrl))
		r := newEngine(&admin)
		r.POST("/api/admin/disputes/:id/resolve", h.Resolve)

		w := do(r, http.MethodPost, "/api/admin/disputes/42/resolve", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not disputed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mocks.NewMockDisputeServicer(ctrl)
		h := NewDisputeHandler(svc)
		r := newEngine(&admin)
		r.POST("/api/admin/disputes/:id/resolve", h.Resolve)

		svc.EXPECT().Resolve(gomock.Any(), admin, uint64(42), "refund half").Return(nil, errs.ErrNotDisputed)
		w := do(r, http.MethodPost, "/api/admin/disputes/42/resolve", `{"resolution":"refund half"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("resolved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mocks.NewMockDisputeServicer(ctrl)
		h := NewDisputeHandler(svc)
		r := newEngine(&admin)
		r.POST("/api/admin/disputes/:id/resolve", h.Resolve)

		svc.EXPECT().Resolve(gomock.Any(), admin, uint64(42), "refund half").
			Return(&model.ServiceRequest{ID: 42, Status: model.RequestStatusResolved}, nil)
		w := do(r, http.MethodPost, "/api/admin/disputes/42/resolve", `{"resolution":"refund half"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"resolved"`)
	})
}

func TestDisputeHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockDisputeServicer(ctrl)
	h := NewDisputeHandler(svc)
	r := newEngine(&admin)
	r.GET("/api/admin/disputes", h.List)

	w := do(r, http.MethodGet, "/api/admin/disputes?status=closed", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.EXPECT().List(gomock.Any(), model.DisputeStatusOpen, service.Page{Limit: 20}).Return(nil, int64(0), nil)
	w = do(r, http.MethodGet, "/api/admin/disputes?status=open", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMessageAndDeviceHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	messages := mocks.NewMockMessageServicer(ctrl)
	devices := mocks.NewMockDeviceServicer(ctrl)
	mh := NewMessageHandler(messages)
	dh := NewDeviceHandler(devices)
	r := newEngine(&client)
	r.POST("/api/service-requests/:id/messages", mh.Send)
	r.GET("/api/service-requests/:id/messages", mh.List)
	r.POST("/api/devices", dh.Register)

	messages.EXPECT().Send(gomock.Any(), client, uint64(4), "hello", "").Return(&model.Message{ID: 1, Body: "hello"}, nil)
	w := do(r, http.MethodPost, "/api/service-requests/4/messages", `{"body":"hello"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	messages.EXPECT().List(gomock.Any(), client, uint64(4), uint64(10), 0).Return(nil, errs.ErrForbidden)
	w = do(r, http.MethodGet, "/api/service-requests/4/messages?after_id=10", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	devices.EXPECT().Register(gomock.Any(), client, "fcm-token", "android").Return(nil)
	w = do(r, http.MethodPost, "/api/devices", `{"token":"fcm-token","platform":"android"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestReady(t *testing.T) {
	r := newEngine(nil)
	r.GET("/ready", Ready(stubPinger{}))
	r.GET("/ready-down", Ready(stubPinger{err: errors.New("down")}))

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ready", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(r, http.MethodGet, "/ready-down", "").Code)
}
