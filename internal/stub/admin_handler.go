package stub

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/udusdev/biovote/internal/logger"
	"github.com/udusdev/biovote/internal/response"
)

// AdminHandler serves the admin login endpoint.
type AdminHandler struct {
	auth *Authenticator
	log  *log.Logger
}

func NewAdminHandler(auth *Authenticator) *AdminHandler {
	return &AdminHandler{
		auth: auth,
		log:  logger.Handler("admin"),
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "username and password are required")
		return
	}

	token, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		h.log.Warn("Admin login refused", "username", req.Username)
		response.UnauthorizedError(c, "invalid username or password")
		return
	}

	h.log.Info("Admin logged in", "username", req.Username)
	response.OK(c, http.StatusOK, "", gin.H{"token": token})
}
