package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/psds-microservice/marketplace-service/internal/model"
	"github.com/psds-microservice/marketplace-service/internal/service"
)

type DisputeHandler struct {
	svc service.DisputeServicer
}

func NewDisputeHandler(svc service.DisputeServicer) *DisputeHandler {
	return &DisputeHandler{svc: svc}
}

type resolveDisputeRequest struct {
	Resolution string `json:"resolution" binding:"required"`
}

// List GET /api/admin/disputes?status=open|resolved
func (h *DisputeHandler) List(c *gin.Context) {
	status := model.DisputeStatus(c.Query("status"))
	switch status {
	case "", model.DisputeStatusOpen, model.DisputeStatusResolved:
	default:
		badRequest(c, "invalid status")
		return
	}
	page := pageFromQuery(c)
	items, total, err := h.svc.List(c.Request.Context(), status, page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset})
}

// Resolve POST /api/admin/disputes/:id/resolve, где :id это заявка в одном из статусов disputed_*.
func (h *DisputeHandler) Resolve(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req resolveDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "resolution is required")
		return
	}
	sr, err := h.svc.Resolve(c.Request.Context(), actor, id, req.Resolution)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sr)
}
