package repository

import "errors"

// Мягкие ошибки уровня данных. Обработчики переводят их
// в редиректы с кодом в query-параметре
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrSelfDelete         = errors.New("cannot delete own account")
	ErrNotFoundOrNotOwned = errors.New("notice not found or not owned")
	ErrEmptyField         = errors.New("title and content are required")
)
