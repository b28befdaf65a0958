package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/psds-microservice/marketplace-service/internal/model"
	"github.com/psds-microservice/marketplace-service/internal/service"
)

type EstimateHandler struct {
	svc service.EstimateServicer
}

func NewEstimateHandler(svc service.EstimateServicer) *EstimateHandler {
	return &EstimateHandler{svc: svc}
}

type createEstimateRequest struct {
	ServiceRequestID uint64          `json:"service_request_id" binding:"required"`
	EstimatedPrice   float64         `json:"estimated_price" binding:"required"`
	Description      string          `json:"description"`
	Breakdown        json.RawMessage `json:"breakdown"`
	ValidUntil       *time.Time      `json:"valid_until"`
}

type respondEstimateRequest struct {
	EstimateID uint64 `json:"estimate_id" binding:"required"`
	Action     string `json:"action" binding:"required"`
	Response   string `json:"response"`
}

// accepted разбирает action: accept/accepted или reject/rejected.
func (r respondEstimateRequest) accepted() (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(r.Action)) {
	case "accept", "accepted":
		return true, true
	case "reject", "rejected":
		return false, true
	}
	return false, false
}

func estimateStatusQuery(c *gin.Context) (model.EstimateStatus, bool) {
	s := model.EstimateStatus(c.Query("status"))
	if s != "" && !s.Valid() {
		badRequest(c, "invalid status")
		return "", false
	}
	return s, true
}

// Create POST /api/admin/billing-estimates
func (h *EstimateHandler) Create(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req createEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "service_request_id and estimated_price are required")
		return
	}
	if len(req.Breakdown) > 0 && !json.Valid(req.Breakdown) {
		badRequest(c, "breakdown must be valid JSON")
		return
	}
	est, err := h.svc.Create(c.Request.Context(), actor, service.CreateEstimateInput{
		ServiceRequestID: req.ServiceRequestID,
		EstimatedPrice:   req.EstimatedPrice,
		Description:      req.Description,
		Breakdown:        model.JSON(req.Breakdown),
		ValidUntil:       req.ValidUntil,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, est)
}

// List GET /api/admin/billing-estimates?status=&service_request_id=
func (h *EstimateHandler) List(c *gin.Context) {
	status, ok := estimateStatusQuery(c)
	if !ok {
		return
	}
	requestID, ok := queryUint(c, "service_request_id")
	if !ok {
		return
	}
	page := pageFromQuery(c)
	items, total, err := h.svc.List(c.Request.Context(), service.EstimateFilter{Status: status, ServiceRequestID: requestID}, page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset})
}

// Get GET /api/admin/billing-estimates/:id
func (h *EstimateHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	est, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, est)
}

// ListForClient GET /api/client/billing-estimates?status=
func (h *EstimateHandler) ListForClient(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	status, ok := estimateStatusQuery(c)
	if !ok {
		return
	}
	page := pageFromQuery(c)
	items, total, err := h.svc.ListForClient(c.Request.Context(), actor, status, page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset})
}

// Respond POST /api/client/billing-estimates/respond
func (h *EstimateHandler) Respond(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req respondEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "estimate_id and action are required")
		return
	}
	accept, valid := req.accepted()
	if !valid {
		badRequest(c, "action must be accept or reject")
		return
	}
	est, err := h.svc.Respond(c.Request.Context(), actor, service.RespondEstimateInput{
		EstimateID: req.EstimateID,
		Accept:     accept,
		Response:   req.Response,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, est)
}
