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
	"ziluri/internal/core/port"
	"ziluri/internal/core/util"
)

type MemoHandler struct {
	svc port.MemoService
}

func NewMemoHandler(svc port.MemoService) *MemoHandler {
	return &MemoHandler{svc: svc}
}

// ListMemos returns all memos, or a cursor page when limit or cursor is
// present in the query.
func (h *MemoHandler) ListMemos(c *gin.Context) {
	ctx := c.Request.Context()

	cursorToken := c.Query("cursor")
	limitRaw := c.Query("limit")

	if cursorToken == "" && limitRaw == "" {
		memos, err := h.svc.List(ctx)
		if err != nil {
			SendInternalError(c, "Error listing memos")
			return
		}

		SendSuccess(c, http.StatusOK, toMemoResponses(memos))
		return
	}

	limit, _ := strconv.Atoi(limitRaw)

	memos, nextCursor, hasNext, err := h.svc.ListPage(ctx, limit, cursorToken)
	if err != nil {
		SendBadRequestError(c, "cursor", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": toMemoResponses(memos),
		"pagination": gin.H{
			"has_next":    hasNext,
			"next_cursor": nextCursor,
		},
	})
}

func (h *MemoHandler) GetMemo(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		SendBadRequestError(c, "id", "Invalid memo id")
		return
	}

	memo, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			SendNotFoundError(c, "Memo not found")
			return
		}
		SendInternalError(c, "Error getting memo")
		return
	}

	SendSuccess(c, http.StatusOK, toMemoResponse(memo))
}

func (h *MemoHandler) CreateMemo(c *gin.Context) {
	params, err := util.ParamsToMap[request.MemoRequest](c)
	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	memo, err := h.svc.Create(c.Request.Context(), memoFromRequest(params))
	if err != nil {
		SendBadRequestError(c, "creation", err.Error())
		return
	}

	SendSuccess(c, http.StatusCreated, toMemoResponse(memo))
}

func (h *MemoHandler) UpdateMemo(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		SendBadRequestError(c, "id", "Invalid memo id")
		return
	}

	params, err := util.ParamsToMap[request.MemoRequest](c)
	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	memo := memoFromRequest(params)
	memo.ID = id

	memo, err = h.svc.Update(c.Request.Context(), memo)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			SendNotFoundError(c, "Memo not found")
			return
		}
		SendBadRequestError(c, "update", err.Error())
		return
	}

	SendSuccess(c, http.StatusOK, toMemoResponse(memo))
}

func (h *MemoHandler) DeleteMemo(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		SendBadRequestError(c, "id", "Invalid memo id")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			SendNotFoundError(c, "Memo not found")
			return
		}
		SendInternalError(c, "Error deleting memo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Memo deleted successfully",
	})
}

func (h *MemoHandler) SearchMemos(c *gin.Context) {
	memos, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		SendInternalError(c, "Error searching memos")
		return
	}

	SendSuccess(c, http.StatusOK, toMemoResponses(memos))
}

func memoFromRequest(params request.MemoRequest) domain.Memo {
	checkItems := make([]domain.MemoCheckItem, 0, len(params.CheckItems))
	for _, item := range params.CheckItems {
		checkItems = append(checkItems, domain.MemoCheckItem{
			ID:      item.ID,
			Content: item.Content,
			Checked: item.Checked,
		})
	}

	return domain.Memo{
		Title:      params.Title,
		Content:    params.Content,
		Color:      params.Color,
		Pinned:     params.Pinned,
		Images:     params.Images,
		CheckItems: checkItems,
	}
}
