package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/psds-microservice/marketplace-service/internal/service"
)

type DeviceHandler struct {
	svc service.DeviceServicer
}

func NewDeviceHandler(svc service.DeviceServicer) *DeviceHandler {
	return &DeviceHandler{svc: svc}
}

type registerDeviceRequest struct {
	Token    string `json:"token" binding:"required"`
	Platform string `json:"platform"`
}

// Register POST /api/devices
func (h *DeviceHandler) Register(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req registerDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "token is required")
		return
	}
	if err := h.svc.Register(c.Request.Context(), actor, req.Token, req.Platform); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
