package handler

import "noticeboard/internal/entity"

// Интерфейсы хранилищ со стороны обработчиков.
// Реализуются репозиториями из internal/repository

type UserStore interface {
	ListAll() ([]*entity.User, error)
	ListTeachers() ([]*entity.User, error)
	Create(username, password string, role entity.Role, fullName string) (*entity.User, error)
	Delete(userID, actingUserID int) error
	Login(username, password string, role entity.Role) (*entity.User, error)
}

type NoticeStore interface {
	ListAll() ([]*entity.Notice, error)
	ListLatest(n int) ([]*entity.Notice, error)
	ListByOwner(ownerID int) ([]*entity.Notice, error)
	ListLatestByOwner(ownerID, n int) ([]*entity.Notice, error)
	GetOwned(noticeID, ownerID int) (*entity.Notice, error)
	Create(title, content string, ownerID int, isImportant bool) (*entity.Notice, error)
	Update(noticeID, ownerID int, title, content string, isImportant bool) error
	Delete(noticeID, ownerID int) error
	DeleteAny(noticeID int) error
}

type SessionStore interface {
	Create(user *entity.User) (string, error)
	Destroy(token string) error
}
