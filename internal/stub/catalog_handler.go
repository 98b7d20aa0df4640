package stub

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/udusdev/biovote/internal/domain/election"
	"github.com/udusdev/biovote/internal/logger"
	"github.com/udusdev/biovote/internal/response"
	"github.com/udusdev/biovote/internal/validation"
)

// CatalogHandler serves the position and candidate endpoints.
type CatalogHandler struct {
	catalog *CatalogRepository
	log     *log.Logger
}

func NewCatalogHandler(catalog *CatalogRepository) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		log:     logger.Handler("catalog"),
	}
}

// ListPositions handles GET /position/list
func (h *CatalogHandler) ListPositions(c *gin.Context) {
	positions, err := h.catalog.ListPositions()
	if err != nil {
		h.log.Error("Failed to list positions", "error", err)
		response.InternalServerError(c, "could not load positions")
		return
	}
	if positions == nil {
		positions = []election.Position{}
	}
	response.OK(c, http.StatusOK, "", gin.H{"positions": positions})
}

type addPositionRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddPosition handles POST /position/add
func (h *CatalogHandler) AddPosition(c *gin.Context) {
	var req addPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "name is required")
		return
	}
	if err := validation.ValidatePositionName(req.Name); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	position, err := h.catalog.CreatePosition(req.Name)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			response.ConflictError(c, "position already exists")
			return
		}
		h.log.Error("Failed to create position", "error", err)
		response.InternalServerError(c, "could not create position")
		return
	}

	h.log.Info("Position added", "position_id", position.ID, "name", position.Name)
	response.OK(c, http.StatusCreated, "position added", gin.H{"position": position})
}

// ListCandidates handles GET /candidate/list
func (h *CatalogHandler) ListCandidates(c *gin.Context) {
	candidates, err := h.catalog.ListCandidates()
	if err != nil {
		h.log.Error("Failed to list candidates", "error", err)
		response.InternalServerError(c, "could not load candidates")
		return
	}
	if candidates == nil {
		candidates = []election.Candidate{}
	}
	response.OK(c, http.StatusOK, "", gin.H{"candidates": candidates})
}

type addCandidateRequest struct {
	Name       string `json:"name" binding:"required"`
	Department string `json:"department" binding:"required"`
	PositionID string `json:"positionId" binding:"required"`
}

// AddCandidate handles POST /candidate/add
func (h *CatalogHandler) AddCandidate(c *gin.Context) {
	var req addCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "name, department and positionId are required")
		return
	}
	if err := validation.ValidateCandidateName(req.Name); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	if err := validation.ValidateRequired(req.Department, "department"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	position, err := h.catalog.GetPosition(req.PositionID)
	if err != nil {
		h.log.Error("Failed to look up position", "error", err)
		response.InternalServerError(c, "could not create candidate")
		return
	}
	if position == nil {
		response.BadRequestError(c, "position not found")
		return
	}

	candidate, err := h.catalog.CreateCandidate(req.Name, req.Department, req.PositionID)
	if err != nil {
		h.log.Error("Failed to create candidate", "error", err)
		response.InternalServerError(c, "could not create candidate")
		return
	}

	h.log.Info("Candidate added", "candidate_id", candidate.ID, "position", position.Name)
	response.OK(c, http.StatusCreated, "candidate added", gin.H{"candidate": candidate})
}

// ClearCandidates handles DELETE /candidate/clear
func (h *CatalogHandler) ClearCandidates(c *gin.Context) {
	if err := h.catalog.ClearCandidates(); err != nil {
		h.log.Error("Failed to clear candidates", "error", err)
		response.InternalServerError(c, "could not clear candidates")
		return
	}
	h.log.Info("Candidates cleared")
	response.OK(c, http.StatusOK, "candidates cleared", nil)
}
