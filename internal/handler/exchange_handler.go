package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"crossgate/internal/middleware"
	"crossgate/internal/service"
)

// ExchangeHandler handles the cross-app token exchange endpoint.
type ExchangeHandler struct {
	exchangeService service.ExchangeService
	logger          *zap.Logger
}

// NewExchangeHandler creates a new ExchangeHandler.
func NewExchangeHandler(exchangeService service.ExchangeService, logger *zap.Logger) *ExchangeHandler {
	return &ExchangeHandler{exchangeService: exchangeService, logger: logger}
}

type exchangeRequest struct {
	IDToken   string `json:"idToken"`
	TargetApp string `json:"targetApp"`
}

// CustomToken handles POST /api/auth/custom-token. The wire shapes are
// part of the cross-application contract: error bodies stay generic
// and never carry the underlying verifier or minter failure.
func (h *ExchangeHandler) CustomToken(c *gin.Context) {
	requestID := middleware.GetRequestID(c)

	var req exchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IDToken == "" {
		h.logger.Info("custom token request rejected",
			zap.String("request_id", requestID),
			zap.Bool("id_token_present", req.IDToken != ""),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "idToken is required."})
		return
	}

	h.logger.Info("custom token requested",
		zap.String("request_id", requestID),
		zap.String("target_app", req.TargetApp),
	)

	out, err := h.exchangeService.Exchange(c.Request.Context(), service.ExchangeInput{
		IDToken:   req.IDToken,
		TargetApp: req.TargetApp,
		RequestID: requestID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to generate custom token."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"customToken": out.CustomToken})
}
