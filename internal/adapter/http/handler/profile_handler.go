package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	. "ziluri/internal/adapter/http/helper"
	"ziluri/internal/core/domain"
	"ziluri/internal/core/port"
)

type ProfileHandler struct {
	users port.UserService
}

func NewProfileHandler(users port.UserService) *ProfileHandler {
	return &ProfileHandler{users: users}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.users.Profile(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			SendNotFoundError(c, "No user yet, start a session first")
			return
		}
		SendInternalError(c, "Error loading profile")
		return
	}

	SendSuccess(c, http.StatusOK, toProfileResponse(profile))
}
