package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerpipe/ledgerpipe/internal/api/dto"
	"github.com/ledgerpipe/ledgerpipe/internal/infrastructure/storage"
)

// RulesHandler serves the stored classification rule set.
type RulesHandler struct {
	repo storage.Repository
}

// NewRulesHandler creates a new rules handler.
func NewRulesHandler(repo storage.Repository) *RulesHandler {
	return &RulesHandler{repo: repo}
}

// List handles GET /api/rules?user_id=...
func (h *RulesHandler) List(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("user_id is required"))
		return
	}

	ruleSet, err := h.repo.ListRules(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, dto.RuleListResponse{
		Rules: ruleSet,
		Count: len(ruleSet),
	})
}

// Save handles POST /api/rules
func (h *RulesHandler) Save(c *gin.Context) {
	var req dto.SaveRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}
	if req.Rule.ID == "" {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("rule id is required"))
		return
	}

	if err := h.repo.SaveRule(req.UserID, req.Rule, req.Position); err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, req.Rule)
}

// Delete handles DELETE /api/rules/:id
func (h *RulesHandler) Delete(c *gin.Context) {
	if err := h.repo.DeleteRule(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.Status(http.StatusNoContent)
}
