package entity

import "time"

// SessionUser - копия данных пользователя, снятая при входе.
// Не обновляется при изменении записи в users до повторного входа
type SessionUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	FullName string `json:"full_name"`
}

type Session struct {
	Token     string      `json:"-"`
	User      SessionUser `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
	CreatedAt time.Time   `json:"created_at"`
}
