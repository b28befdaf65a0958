package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/psds-microservice/marketplace-service/internal/service"
)

type MessageHandler struct {
	svc service.MessageServicer
}

func NewMessageHandler(svc service.MessageServicer) *MessageHandler {
	return &MessageHandler{svc: svc}
}

type sendMessageRequest struct {
	Body            string `json:"body" binding:"required"`
	ClientMessageID string `json:"client_message_id"`
}

// Send POST /api/service-requests/:id/messages
func (h *MessageHandler) Send(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "body is required")
		return
	}
	msg, err := h.svc.Send(c.Request.Context(), actor, id, req.Body, req.ClientMessageID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// List GET /api/service-requests/:id/messages?after_id=&limit=
func (h *MessageHandler) List(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	afterID, ok := queryUint(c, "after_id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := h.svc.List(c.Request.Context(), actor, id, afterID, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
