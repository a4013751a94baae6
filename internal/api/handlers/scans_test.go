package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/isuraem/shopify-best-sellers-app/internal/config"
	"github.com/isuraem/shopify-best-sellers-app/internal/service"
)

func TestScanHistoryWithoutDatabaseReturns404(t *testing.T) {
	gin.SetMode(gin.TestMode)

	scans := service.NewScanService(config.ScanConfig{}, nil, nil, zap.NewNop())

	router := gin.New()
	router.GET("/v1/scans/history", HandleScanHistory(scans, zap.NewNop()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/scans/history", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not configured")
}
