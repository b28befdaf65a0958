package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/psds-microservice/marketplace-service/internal/errs"
	"github.com/psds-microservice/marketplace-service/internal/logger"
)

// writeError отвечает {"error": ...} с кодом по доменной ошибке. Неизвестные ошибки логируются, клиенту 500.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrRequestUnavailable):
		c.JSON(http.StatusNotFound, gin.H{"error": errs.ErrRequestUnavailable.Error()})
	case errors.Is(err, errs.ErrServiceRequestNotFound),
		errors.Is(err, errs.ErrEstimateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrInvalidStatus),
		errors.Is(err, errs.ErrCannotStart),
		errors.Is(err, errs.ErrNotDisputed),
		errors.Is(err, errs.ErrEstimateNotPending),
		errors.Is(err, errs.ErrEstimateNotAccepted),
		errors.Is(err, errs.ErrEstimateExpired),
		errors.Is(err, errs.ErrAlreadyRefused),
		errors.Is(err, errs.ErrDownPaymentPaid),
		errors.Is(err, errs.ErrPaymentNotApproved),
		errors.Is(err, errs.ErrPaymentAlreadyLinked):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		logger.Error(c.Request.Context(), "unhandled error", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
