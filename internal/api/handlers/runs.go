package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ledgerpipe/ledgerpipe/internal/api/dto"
	"github.com/ledgerpipe/ledgerpipe/internal/infrastructure/storage"
)

// RunsHandler serves the import audit trail.
type RunsHandler struct {
	repo storage.Repository
}

// NewRunsHandler creates a new runs handler.
func NewRunsHandler(repo storage.Repository) *RunsHandler {
	return &RunsHandler{repo: repo}
}

// List handles GET /api/runs
func (h *RunsHandler) List(c *gin.Context) {
	limit := queryInt(c, "limit", 20)

	runs, err := h.repo.ListImportRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, dto.ImportRunListResponse{
		Runs:  runs,
		Count: len(runs),
	})
}

// Get handles GET /api/runs/:id
func (h *RunsHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("invalid run ID"))
		return
	}

	run, err := h.repo.GetImportRun(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, dto.NotFoundError("import run"))
		return
	}

	c.JSON(http.StatusOK, run)
}
