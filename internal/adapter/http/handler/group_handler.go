package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	. "ziluri/internal/adapter/http/helper"
	. "ziluri/internal/adapter/http/validation"
	"ziluri/internal/core/domain"
	"ziluri/internal/core/model/request"
	"ziluri/internal/core/model/response"
	"ziluri/internal/core/port"
	"ziluri/internal/core/util"
)

type GroupHandler struct {
	svc port.TodoService
}

func NewGroupHandler(svc port.TodoService) *GroupHandler {
	return &GroupHandler{svc: svc}
}

func (h *GroupHandler) ListGroups(c *gin.Context) {
	groups, err := h.svc.ListGroups(c.Request.Context())
	if err != nil {
		SendInternalError(c, "Error listing groups")
		return
	}

	responses := make([]response.GroupResponse, 0, len(groups))
	for _, group := range groups {
		responses = append(responses, toGroupResponse(group))
	}

	SendSuccess(c, http.StatusOK, responses)
}

func (h *GroupHandler) CreateGroup(c *gin.Context) {
	params, err := util.ParamsToMap[request.GroupRequest](c)
	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	group, err := h.svc.CreateGroup(c.Request.Context(), params.Name)
	if err != nil {
		SendBadRequestError(c, "creation", err.Error())
		return
	}

	SendSuccess(c, http.StatusCreated, toGroupResponse(group))
}

func (h *GroupHandler) RenameGroup(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		SendBadRequestError(c, "id", "Invalid group id")
		return
	}

	params, err := util.ParamsToMap[request.GroupRequest](c)
	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	group, err := h.svc.RenameGroup(c.Request.Context(), id, params.Name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			SendNotFoundError(c, "Group not found")
			return
		}
		SendBadRequestError(c, "update", err.Error())
		return
	}

	SendSuccess(c, http.StatusOK, toGroupResponse(group))
}

func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		SendBadRequestError(c, "id", "Invalid group id")
		return
	}

	if err := h.svc.DeleteGroup(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			SendNotFoundError(c, "Group not found")
			return
		}
		SendInternalError(c, "Error deleting group")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Group deleted successfully",
	})
}
