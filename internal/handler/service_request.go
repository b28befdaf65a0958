package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/psds-microservice/marketplace-service/internal/model"
	"github.com/psds-microservice/marketplace-service/internal/service"
)

type ServiceRequestHandler struct {
	svc      service.ServiceRequestServicer
	payments service.PaymentServicer
}

func NewServiceRequestHandler(svc service.ServiceRequestServicer, payments service.PaymentServicer) *ServiceRequestHandler {
	return &ServiceRequestHandler{svc: svc, payments: payments}
}

type createServiceRequestRequest struct {
	ServiceType string `json:"service_type" binding:"required"`
	Description string `json:"description" binding:"required"`
	Location    string `json:"location" binding:"required"`
}

// serviceRequestIDRequest: тело accept/refuse: {"service_request_id": 1, "reason": "..."}.
type serviceRequestIDRequest struct {
	ServiceRequestID uint64 `json:"service_request_id" binding:"required"`
	Reason           string `json:"reason"`
}

type disputeRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type downPaymentRequest struct {
	ProviderPaymentID string `json:"provider_payment_id" binding:"required"`
}

type listResponse struct {
	Items  interface{} `json:"items"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// Create POST /api/service-requests
func (h *ServiceRequestHandler) Create(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req createServiceRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "service_type, description and location are required")
		return
	}
	sr, err := h.svc.Create(c.Request.Context(), actor, service.CreateServiceRequestInput{
		ServiceType: req.ServiceType,
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sr)
}

// List GET /api/service-requests?status=&service_type=&client_id=&artisan_id=
func (h *ServiceRequestHandler) List(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	filter := service.ServiceRequestFilter{ServiceType: strings.TrimSpace(c.Query("service_type"))}
	if s := c.Query("status"); s != "" {
		filter.Status = model.RequestStatus(s)
		if !filter.Status.Valid() {
			badRequest(c, "invalid status")
			return
		}
	}
	if filter.ClientID, ok = queryUint(c, "client_id"); !ok {
		return
	}
	if filter.ArtisanID, ok = queryUint(c, "artisan_id"); !ok {
		return
	}
	page := pageFromQuery(c)
	items, total, err := h.svc.List(c.Request.Context(), actor, filter, page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset})
}

// Available GET /api/service-requests/available
func (h *ServiceRequestHandler) Available(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	page := pageFromQuery(c)
	items, total, err := h.svc.ListAvailable(c.Request.Context(), actor, page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset})
}

// Get GET /api/service-requests/:id
func (h *ServiceRequestHandler) Get(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	sr, err := h.svc.Get(c.Request.Context(), actor, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sr)
}

// History GET /api/service-requests/:id/history
func (h *ServiceRequestHandler) History(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	items, err := h.svc.History(c.Request.Context(), actor, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Accept POST /api/service-requests/accept
func (h *ServiceRequestHandler) Accept(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req serviceRequestIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "service_request_id is required")
		return
	}
	sr, err := h.svc.Accept(c.Request.Context(), actor, req.ServiceRequestID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sr)
}

// Refuse POST /api/service-requests/refuse
func (h *ServiceRequestHandler) Refuse(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req serviceRequestIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "service_request_id is required")
		return
	}
	if err := h.svc.Refuse(c.Request.Context(), actor, req.ServiceRequestID, req.Reason); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "refused", "service_request_id": req.ServiceRequestID})
}

// Start POST /api/service-requests/:id/start
func (h *ServiceRequestHandler) Start(c *gin.Context) {
	h.simpleTransition(c, h.svc.Start)
}

// Validate POST /api/service-requests/:id/validate
func (h *ServiceRequestHandler) Validate(c *gin.Context) {
	h.simpleTransition(c, h.svc.Validate)
}

// Confirm POST /api/service-requests/:id/confirm
func (h *ServiceRequestHandler) Confirm(c *gin.Context) {
	h.simpleTransition(c, h.svc.Confirm)
}

// Dispute POST /api/service-requests/:id/dispute
func (h *ServiceRequestHandler) Dispute(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req disputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "reason is required")
		return
	}
	sr, err := h.svc.Dispute(c.Request.Context(), actor, id, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sr)
}

// DownPayment POST /api/service-requests/:id/down-payment
func (h *ServiceRequestHandler) DownPayment(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req downPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "provider_payment_id is required")
		return
	}
	p, err := h.payments.ConfirmDownPayment(c.Request.Context(), actor, id, req.ProviderPaymentID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type transitionFunc func(ctx context.Context, actor model.Actor, id uint64) (*model.ServiceRequest, error)

func (h *ServiceRequestHandler) simpleTransition(c *gin.Context, fn transitionFunc) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	sr, err := fn(c.Request.Context(), actor, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sr)
}
