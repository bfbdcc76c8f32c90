package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	. "ziluri/internal/adapter/http/helper"
	"ziluri/internal/core/model/response"
	"ziluri/internal/core/port"
	. "ziluri/pkg/tracing"
)

type SessionHandler struct {
	auth  port.AuthService
	users port.UserService
}

func NewSessionHandler(auth port.AuthService, users port.UserService) *SessionHandler {
	return &SessionHandler{
		auth:  auth,
		users: users,
	}
}

// StartSession issues the installation's guest session, creating the guest
// user on first call.
func (h *SessionHandler) StartSession(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.session.StartSession", []attribute.KeyValue{
		attribute.String("handler.operation", "StartSession"),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	_, token, err := h.auth.StartGuestSession(ctx)
	if err != nil {
		AddSpanError(span, err)
		SendInternalError(c, "Error starting session")
		return
	}

	profile, err := h.users.Profile(ctx)
	if err != nil {
		AddSpanError(span, err)
		SendInternalError(c, "Error loading profile")
		return
	}

	SendSuccess(c, http.StatusCreated, response.SessionResponse{
		Token: token,
		User:  toProfileResponse(profile),
	})
}

// EndSession logs the guest out and wipes the local user state.
func (h *SessionHandler) EndSession(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.users.Logout(ctx); err != nil {
		SendInternalError(c, "Error ending session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session ended",
	})
}
