package domain

import "time"

type LoginType string

const (
	LoginGuest  LoginType = "guest"
	LoginQQ     LoginType = "qq"
	LoginWechat LoginType = "wechat"
)

// User is the single progression aggregate of an installation. At most one
// row is consumed as "current"; completion events mutate it through the
// progression engine, never in place.
type User struct {
	ID             string `validate:"required"`
	Nickname       string `validate:"required,max=100"`
	Avatar         *string
	LoginType      LoginType
	Level          int `validate:"min=1"`
	Exp            int `validate:"min=0"`
	TotalCompleted int `validate:"min=0"`
	ContinuousDays int `validate:"min=0"`
	LastActiveDate time.Time
	CreatedAt      time.Time
}

func (u *User) ToMap() map[string]interface{} {
	var avatar interface{}
	if u.Avatar != nil {
		avatar = *u.Avatar
	}

	return map[string]interface{}{
		"id":               u.ID,
		"nickname":         u.Nickname,
		"avatar":           avatar,
		"login_type":       string(u.LoginType),
		"level":            u.Level,
		"exp":              u.Exp,
		"total_completed":  u.TotalCompleted,
		"continuous_days":  u.ContinuousDays,
		"last_active_date": u.LastActiveDate.UnixMilli(),
		"created_at":       u.CreatedAt.UnixMilli(),
	}
}
