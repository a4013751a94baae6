package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/isuraem/shopify-best-sellers-app/internal/domain"
	"github.com/isuraem/shopify-best-sellers-app/internal/service"
	"github.com/isuraem/shopify-best-sellers-app/pkg/errors"
)

type scanRequest struct {
	KeyField string `json:"key_field" binding:"required"`
}

// HandleScan handles POST /v1/scans (full collect + classify for one key field)
func HandleScan(scans *service.ScanService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req scanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "key_field is required (sku or barcode)"})
			return
		}

		keyField := domain.KeyField(req.KeyField)
		if !keyField.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "key_field must be sku or barcode"})
			return
		}

		result, err := scans.Scan(c.Request.Context(), keyField)
		if err != nil {
			logger.Error("Scan failed", zap.String("key_field", req.KeyField), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// HandleCSVCompare handles POST /v1/scans/csv (multipart upload under "file",
// or raw CSV body)
func HandleCSVCompare(scans *service.ScanService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		upload := c.Request.Body
		if file, _, err := c.Request.FormFile("file"); err == nil {
			defer file.Close()
			upload = file
		}

		result, err := scans.CompareCSV(c.Request.Context(), upload)
		if err != nil {
			if _, isParse := err.(*errors.ErrParse); isParse {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			logger.Error("CSV comparison failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// HandleScanHistory handles GET /v1/scans/history. The route answers 404
// when no scan-history database is configured.
func HandleScanHistory(scans *service.ScanService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !scans.HistoryEnabled() {
			c.JSON(http.StatusNotFound, gin.H{"error": "scan history is not configured"})
			return
		}

		limit := 50
		if l := c.Query("limit"); l != "" {
			if n, err := strconv.Atoi(l); err == nil && n >= 1 && n <= 500 {
				limit = n
			}
		}

		runs, err := scans.History(c.Request.Context(), limit)
		if err != nil {
			logger.Error("Failed to list scan history", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if runs == nil {
			runs = []*domain.ScanRun{}
		}

		c.JSON(http.StatusOK, gin.H{"runs": runs, "count": len(runs)})
	}
}
