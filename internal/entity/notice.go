package entity

import "time"

type Notice struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	PostedBy    int       `json:"posted_by"`
	IsImportant bool      `json:"is_important"`
	CreatedAt   time.Time `json:"created_at"`

	// Имя автора для отображения, заполняется через JOIN.
	// Пустое, если учитель уже удален
	PostedByName string `json:"posted_by_name,omitempty"`
}
