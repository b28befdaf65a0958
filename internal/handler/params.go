package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/psds-microservice/marketplace-service/internal/middleware"
	"github.com/psds-microservice/marketplace-service/internal/model"
	"github.com/psds-microservice/marketplace-service/internal/service"
)

func actorOrAbort(c *gin.Context) (model.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok || !actor.Role.Valid() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return model.Actor{}, false
	}
	return actor, true
}

func pathID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

func queryUint(c *gin.Context, key string) (uint64, bool) {
	v := c.Query(key)
	if v == "" {
		return 0, true
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		badRequest(c, "invalid "+key)
		return 0, false
	}
	return n, true
}

func pageFromQuery(c *gin.Context) service.Page {
	var p service.Page
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			p.Limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			p.Offset = parsed
		}
	}
	return p.Normalize()
}
