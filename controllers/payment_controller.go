package controllers

import (
	"errors"
	"net/http"

	"loanlink-backend/services"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

// CreatePaymentSession opens a checkout session for an application's fee and
// returns the redirect URL along with the session id.
func (pc *PaymentController) CreatePaymentSession(c *gin.Context) {
	var req struct {
		ApplicationID string `json:"applicationId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := pc.payments.Initiate(c.Request.Context(), req.ApplicationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionId": sess.ID, "url": sess.URL})
}

// VerifyPayment pulls the session's status and marks the application's fee
// paid when the provider reports payment.
func (pc *PaymentController) VerifyPayment(c *gin.Context) {
	var req struct {
		SessionID     string `json:"sessionId" binding:"required"`
		ApplicationID string `json:"applicationId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := pc.payments.Verify(c.Request.Context(), req.SessionID, req.ApplicationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func respondServiceError(c *gin.Context, err error) {
	var svcErr *services.ServiceError
	if errors.As(err, &svcErr) {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
