package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/directory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
)

type MeHandler struct {
	users directory.Users
}

func NewMeHandler(users directory.Users) *MeHandler {
	return &MeHandler{users: users}
}

// GetMe echoes the caller as the scheduler sees it: the normalized role
// plus the directory profile.
func (h *MeHandler) GetMe(c *gin.Context) {
	who, ok := currentActor(c)
	if !ok {
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), who.ID)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"id":   who.ID,
		"role": who.Role,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}
