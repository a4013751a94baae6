package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/isuraem/shopify-best-sellers-app/internal/domain"
	"github.com/isuraem/shopify-best-sellers-app/internal/planner"
	"github.com/isuraem/shopify-best-sellers-app/internal/service"
)

type stageActionRequest struct {
	KeyField  string                 `json:"key_field" binding:"required"`
	Action    string                 `json:"action" binding:"required"`
	Selection []domain.VariantRecord `json:"selection" binding:"required"`
}

// HandleStageAction handles POST /v1/actions. It stages a selection and
// returns a confirmation token; nothing is written until the operator
// confirms.
func HandleStageAction(registry *planner.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req stageActionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "key_field, action and selection are required"})
			return
		}

		keyField := domain.KeyField(req.KeyField)
		if !keyField.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "key_field must be sku or barcode"})
			return
		}
		action := domain.BulkAction(req.Action)
		if !action.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "action must be CLEAR_FIELD, REASSIGN_FIELD or DELETE_VARIANT"})
			return
		}
		if len(req.Selection) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "selection is empty"})
			return
		}

		op := registry.Stage(keyField, req.Selection, action)

		parents := make(map[string]struct{})
		for _, rec := range req.Selection {
			parents[rec.ParentID] = struct{}{}
		}

		logger.Info("Staged bulk action",
			zap.String("token", op.Token.String()),
			zap.String("action", string(action)),
			zap.Int("variants", len(req.Selection)),
			zap.Int("parents", len(parents)),
		)

		c.JSON(http.StatusOK, gin.H{
			"token":     op.Token.String(),
			"state":     op.State(),
			"key_field": op.KeyField,
			"action":    action,
			"variants":  len(req.Selection),
			"parents":   len(parents),
		})
	}
}

// HandleConfirmAction handles POST /v1/actions/:token/confirm. It moves the
// staged operation to Executing, runs the per-parent batches against the key
// field fixed at stage time, and reports the aggregate. On failure the
// selection is preserved for retry.
func HandleConfirmAction(registry *planner.Registry, actions *service.ActionService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := uuid.Parse(c.Param("token"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token"})
			return
		}

		op, ok := registry.Get(token)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no staged operation for token"})
			return
		}

		if err := op.BeginExecute(); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}

		result, err := actions.ExecuteBulkAction(c.Request.Context(), op.KeyField, op.Selection, op.Action)
		op.Finish(result, err)
		if err != nil {
			logger.Error("Bulk action failed", zap.String("token", token.String()), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "state": op.State()})
			return
		}

		registry.Remove(token)
		c.JSON(http.StatusOK, result)
	}
}

// HandleGetAction handles GET /v1/actions/:token (staged operation status)
func HandleGetAction(registry *planner.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := uuid.Parse(c.Param("token"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token"})
			return
		}

		op, ok := registry.Get(token)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no staged operation for token"})
			return
		}

		resp := gin.H{
			"token":     op.Token.String(),
			"state":     op.State(),
			"key_field": op.KeyField,
			"action":    op.Action,
			"variants":  len(op.Selection),
		}
		if op.Result != nil {
			resp["result"] = op.Result
		}
		if op.Err != "" {
			resp["error"] = op.Err
		}
		c.JSON(http.StatusOK, resp)
	}
}
