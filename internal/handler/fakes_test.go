package handler

import (
	"time"

	"noticeboard/internal/entity"
	"noticeboard/internal/repository"
)

// Хранилища в памяти с той же семантикой ошибок, что и репозитории

type fakeResolver struct {
	sessions map[string]*entity.Session
}

func (f *fakeResolver) Resolve(token string) (*entity.Session, error) {
	return f.sessions[token], nil
}

type fakeUserStore struct {
	users  []*entity.User
	nextID int
}

func (f *fakeUserStore) ListAll() ([]*entity.User, error) {
	return f.users, nil
}

func (f *fakeUserStore) ListTeachers() ([]*entity.User, error) {
	var teachers []*entity.User
	for _, u := range f.users {
		if u.Role == entity.RoleTeacher {
			teachers = append(teachers, u)
		}
	}
	return teachers, nil
}

func (f *fakeUserStore) get(username string) *entity.User {
	for _, u := range f.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

func (f *fakeUserStore) Create(username, password string, role entity.Role, fullName string) (*entity.User, error) {
	if f.get(username) != nil {
		return nil, repository.ErrDuplicateUsername
	}
	f.nextID++
	u := &entity.User{
		ID:           f.nextID,
		Username:     username,
		PasswordHash: password,
		Role:         role,
		FullName:     fullName,
		CreatedAt:    time.Now(),
	}
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUserStore) Delete(userID, actingUserID int) error {
	if userID == actingUserID {
		return repository.ErrSelfDelete
	}
	for i, u := range f.users {
		if u.ID == userID {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeUserStore) Login(username, password string, role entity.Role) (*entity.User, error) {
	u := f.get(username)
	if u == nil || u.Role != role || u.PasswordHash != password {
		return nil, repository.ErrInvalidCredentials
	}
	return u, nil
}

type fakeSessionStore struct {
	created   []*entity.User
	destroyed []string
}

func (f *fakeSessionStore) Create(user *entity.User) (string, error) {
	f.created = append(f.created, user)
	return "new-token", nil
}

func (f *fakeSessionStore) Destroy(token string) error {
	f.destroyed = append(f.destroyed, token)
	return nil
}

type fakeNoticeStore struct {
	notices []*entity.Notice
	nextID  int
}

func (f *fakeNoticeStore) ListAll() ([]*entity.Notice, error) {
	return f.notices, nil
}

func (f *fakeNoticeStore) ListLatest(n int) ([]*entity.Notice, error) {
	if len(f.notices) > n {
		return f.notices[:n], nil
	}
	return f.notices, nil
}

func (f *fakeNoticeStore) ListByOwner(ownerID int) ([]*entity.Notice, error) {
	var owned []*entity.Notice
	for _, n := range f.notices {
		if n.PostedBy == ownerID {
			owned = append(owned, n)
		}
	}
	return owned, nil
}

func (f *fakeNoticeStore) ListLatestByOwner(ownerID, n int) ([]*entity.Notice, error) {
	owned, _ := f.ListByOwner(ownerID)
	if len(owned) > n {
		return owned[:n], nil
	}
	return owned, nil
}

func (f *fakeNoticeStore) GetOwned(noticeID, ownerID int) (*entity.Notice, error) {
	for _, n := range f.notices {
		if n.ID == noticeID && n.PostedBy == ownerID {
			return n, nil
		}
	}
	return nil, nil
}

func (f *fakeNoticeStore) Create(title, content string, ownerID int, isImportant bool) (*entity.Notice, error) {
	if title == "" || content == "" {
		return nil, repository.ErrEmptyField
	}
	f.nextID++
	n := &entity.Notice{
		ID:          f.nextID,
		Title:       title,
		Content:     content,
		PostedBy:    ownerID,
		IsImportant: isImportant,
		CreatedAt:   time.Now(),
	}
	f.notices = append(f.notices, n)
	return n, nil
}

func (f *fakeNoticeStore) Update(noticeID, ownerID int, title, content string, isImportant bool) error {
	for _, n := range f.notices {
		if n.ID == noticeID && n.PostedBy == ownerID {
			n.Title = title
			n.Content = content
			n.IsImportant = isImportant
			return nil
		}
	}
	return repository.ErrNotFoundOrNotOwned
}

func (f *fakeNoticeStore) Delete(noticeID, ownerID int) error {
	for i, n := range f.notices {
		if n.ID == noticeID && n.PostedBy == ownerID {
			f.notices = append(f.notices[:i], f.notices[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFoundOrNotOwned
}

func (f *fakeNoticeStore) DeleteAny(noticeID int) error {
	for i, n := range f.notices {
		if n.ID == noticeID {
			f.notices = append(f.notices[:i], f.notices[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFoundOrNotOwned
}
