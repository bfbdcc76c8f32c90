package handler

import (
	"ziluri/internal/core/domain"
	"ziluri/internal/core/model/response"
	"ziluri/internal/core/port"
)

func toGroupResponse(group domain.TodoGroup) response.GroupResponse {
	return response.GroupResponse{
		ID:        group.ID,
		Name:      group.Name,
		Order:     group.Order,
		CreatedAt: group.CreatedAt.UnixMilli(),
		UpdatedAt: group.UpdatedAt.UnixMilli(),
	}
}

func toTodoResponse(item domain.TodoItem) response.TodoResponse {
	resp := response.TodoResponse{
		ID:                  item.ID,
		GroupID:             item.GroupID,
		Content:             item.Content,
		Completed:           item.Completed,
		Priority:            item.PriorityOrFallback(),
		Date:                item.Date.UnixMilli(),
		MultiDay:            item.IsMultiDay(),
		RequiredCompletions: item.RequiredCompletions,
		CurrentCompletions:  item.CurrentCompletions,
		Order:               item.Order,
		CreatedAt:           item.CreatedAt.UnixMilli(),
		UpdatedAt:           item.UpdatedAt.UnixMilli(),
	}

	if item.StartDate != nil {
		millis := item.StartDate.UnixMilli()
		resp.StartDate = &millis
	}
	if item.EndDate != nil {
		millis := item.EndDate.UnixMilli()
		resp.EndDate = &millis
	}
	if item.CompletedAt != nil {
		millis := item.CompletedAt.UnixMilli()
		resp.CompletedAt = &millis
	}

	return resp
}

func toTodoResponses(items []domain.TodoItem) []response.TodoResponse {
	responses := make([]response.TodoResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toTodoResponse(item))
	}
	return responses
}

func toMemoResponse(memo domain.Memo) response.MemoResponse {
	checkItems := make([]response.MemoCheckItemResponse, 0, len(memo.CheckItems))
	for _, item := range memo.CheckItems {
		checkItems = append(checkItems, response.MemoCheckItemResponse{
			ID:      item.ID,
			Content: item.Content,
			Checked: item.Checked,
		})
	}

	images := memo.Images
	if images == nil {
		images = []string{}
	}

	return response.MemoResponse{
		ID:         memo.ID,
		Title:      memo.Title,
		Content:    memo.Content,
		Color:      memo.Color,
		Pinned:     memo.Pinned,
		Images:     images,
		CheckItems: checkItems,
		CreatedAt:  memo.CreatedAt.UnixMilli(),
		UpdatedAt:  memo.UpdatedAt.UnixMilli(),
	}
}

func toMemoResponses(memos []domain.Memo) []response.MemoResponse {
	responses := make([]response.MemoResponse, 0, len(memos))
	for _, memo := range memos {
		responses = append(responses, toMemoResponse(memo))
	}
	return responses
}

func toCalendarDayResponse(day domain.CalendarDay) response.CalendarDayResponse {
	return response.CalendarDayResponse{
		Date:               day.Date.UnixMilli(),
		DayOfMonth:         day.DayOfMonth,
		IsCurrentMonth:     day.IsCurrentMonth,
		IsToday:            day.IsToday,
		IsSelected:         day.IsSelected,
		IsWeekend:          day.IsWeekend,
		HasTodos:           day.HasTodos,
		HasInProgressTodos: day.HasInProgressTodos,
		AllCompleted:       day.AllCompleted,
	}
}

func toCalendarDayResponses(days []domain.CalendarDay) []response.CalendarDayResponse {
	responses := make([]response.CalendarDayResponse, 0, len(days))
	for _, day := range days {
		responses = append(responses, toCalendarDayResponse(day))
	}
	return responses
}

func toProfileResponse(profile port.Profile) response.ProfileResponse {
	user := profile.User

	return response.ProfileResponse{
		ID:             user.ID,
		Nickname:       user.Nickname,
		Avatar:         user.Avatar,
		LoginType:      string(user.LoginType),
		Level:          user.Level,
		LevelTitle:     profile.LevelTitle,
		LevelProgress:  profile.LevelProgress,
		Exp:            user.Exp,
		ExpForLevel:    profile.ExpForLevel,
		ExpToNextLevel: profile.ExpToNextLevel,
		TotalCompleted: user.TotalCompleted,
		ContinuousDays: user.ContinuousDays,
		CreatedAt:      user.CreatedAt.UnixMilli(),
	}
}
