package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/isuraem/shopify-best-sellers-app/internal/service"
)

type addTagsRequest struct {
	ProductIDs []string `json:"product_ids" binding:"required"`
	Tags       []string `json:"tags" binding:"required"`
}

// HandleAddTags handles POST /v1/products/tags
func HandleAddTags(tagging *service.TaggingService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addTagsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_ids and tags are required"})
			return
		}
		if len(req.ProductIDs) == 0 || len(req.Tags) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_ids and tags must be non-empty"})
			return
		}

		result, err := tagging.AddTags(c.Request.Context(), req.ProductIDs, req.Tags)
		if err != nil {
			logger.Error("Add tags failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

type addToCollectionRequest struct {
	CollectionID string   `json:"collection_id" binding:"required"`
	ProductIDs   []string `json:"product_ids" binding:"required"`
}

// HandleAddToCollection handles POST /v1/collections/add
func HandleAddToCollection(tagging *service.TaggingService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addToCollectionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "collection_id and product_ids are required"})
			return
		}

		if err := tagging.AddToCollection(c.Request.Context(), req.CollectionID, req.ProductIDs); err != nil {
			logger.Error("Add to collection failed", zap.String("collection_id", req.CollectionID), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"collection_id": req.CollectionID, "added": len(req.ProductIDs)})
	}
}
