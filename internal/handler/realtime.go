package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// WSServer: реестр realtime-соединений (realtime.Hub).
type WSServer interface {
	ServeWS(w http.ResponseWriter, r *http.Request, userID uint64)
}

type RealtimeHandler struct {
	hub WSServer
}

func NewRealtimeHandler(hub WSServer) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

// Connect GET /api/ws: апгрейд до websocket под user id из токена.
func (h *RealtimeHandler) Connect(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	h.hub.ServeWS(c.Writer, c.Request, actor.UserID)
}
