package stub

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/udusdev/biovote/internal/logger"
	"github.com/udusdev/biovote/internal/response"
	"github.com/udusdev/biovote/internal/validation"
)

// SessionHandler serves the voting-session lifecycle endpoints.
type SessionHandler struct {
	sessions *SessionRepository
	log      *log.Logger
}

func NewSessionHandler(sessions *SessionRepository) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		log:      logger.Handler("session"),
	}
}

type startSessionRequest struct {
	Name string `json:"name" binding:"required"`
}

// StartSession handles POST /session/start
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "name is required")
		return
	}
	if err := validation.ValidateRequired(req.Name, "name"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	_, active, err := h.sessions.ActiveSession()
	if err != nil {
		h.log.Error("Failed to check active session", "error", err)
		response.InternalServerError(c, "could not start session")
		return
	}
	if active {
		response.ConflictError(c, "a voting session is already active")
		return
	}

	if err := h.sessions.StartSession(req.Name); err != nil {
		h.log.Error("Failed to start session", "error", err)
		response.InternalServerError(c, "could not start session")
		return
	}

	h.log.Info("Voting session started", "name", req.Name)
	response.OK(c, http.StatusCreated, "session started", nil)
}

// EndSession handles POST /session/end
func (h *SessionHandler) EndSession(c *gin.Context) {
	ended, err := h.sessions.EndSession()
	if err != nil {
		h.log.Error("Failed to end session", "error", err)
		response.InternalServerError(c, "could not end session")
		return
	}
	if !ended {
		response.ConflictError(c, "no active voting session")
		return
	}

	h.log.Info("Voting session ended")
	response.OK(c, http.StatusOK, "session ended", nil)
}

// ActiveSession handles GET /session/active
func (h *SessionHandler) ActiveSession(c *gin.Context) {
	name, active, err := h.sessions.ActiveSession()
	if err != nil {
		h.log.Error("Failed to read active session", "error", err)
		response.InternalServerError(c, "could not read session state")
		return
	}
	response.OK(c, http.StatusOK, "", gin.H{"active": active, "name": name})
}
