package stub

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/udusdev/biovote/internal/domain/election"
	"github.com/udusdev/biovote/internal/logger"
	"github.com/udusdev/biovote/internal/response"
)

// VoteHandler serves the one endpoint the voter flow hits directly.
type VoteHandler struct {
	votes    *VoteRepository
	sessions *SessionRepository
	log      *log.Logger
}

func NewVoteHandler(votes *VoteRepository, sessions *SessionRepository) *VoteHandler {
	return &VoteHandler{
		votes:    votes,
		sessions: sessions,
		log:      logger.Handler("vote"),
	}
}

// CastMultiple handles POST /vote/cast-multiple
func (h *VoteHandler) CastMultiple(c *gin.Context) {
	var record election.VoteRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		response.BadRequestError(c, "userId and votes are required")
		return
	}
	if strings.TrimSpace(record.UserID) == "" {
		response.BadRequestError(c, "userId is required")
		return
	}
	if len(record.Votes) == 0 {
		response.BadRequestError(c, "votes must not be empty")
		return
	}

	_, active, err := h.sessions.ActiveSession()
	if err != nil {
		h.log.Error("Failed to check session", "error", err)
		response.InternalServerError(c, "could not record votes")
		return
	}
	if !active {
		response.ConflictError(c, "no active voting session")
		return
	}

	if err := h.votes.CastMultiple(record.UserID, record.Votes); err != nil {
		if errors.Is(err, ErrVoterAlreadyVoted) {
			h.log.Warn("Repeat voter refused", "user_id", record.UserID)
			response.ConflictError(c, ErrVoterAlreadyVoted.Error())
			return
		}
		if strings.Contains(err.Error(), "not found") {
			response.BadRequestError(c, err.Error())
			return
		}
		h.log.Error("Failed to record votes", "user_id", record.UserID, "error", err)
		response.InternalServerError(c, "could not record votes")
		return
	}

	h.log.Info("Votes recorded", "user_id", record.UserID, "positions", len(record.Votes))
	response.OK(c, http.StatusOK, "votes recorded", nil)
}
