package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/isuraem/shopify-best-sellers-app/internal/service"
)

// HandleBestsellers handles GET /v1/bestsellers?months=N&top=N
func HandleBestsellers(bestsellers *service.BestsellerService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		months := 3
		if m := c.Query("months"); m != "" {
			if n, err := strconv.Atoi(m); err == nil && n >= 1 && n <= 24 {
				months = n
			}
		}
		top := 0
		if t := c.Query("top"); t != "" {
			if n, err := strconv.Atoi(t); err == nil && n >= 1 {
				top = n
			}
		}

		ranks, err := bestsellers.Rank(c.Request.Context(), months, top)
		if err != nil {
			logger.Error("Best-seller ranking failed", zap.Int("months", months), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"months": months,
			"count":  len(ranks),
			"ranks":  ranks,
		})
	}
}
