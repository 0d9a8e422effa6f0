package handler

import (
	"net/url"
	"testing"

	"noticeboard/internal/entity"
)

func TestAdminAddUser(t *testing.T) {
	users := seededUsers()
	h := &AdminHandler{users: users, notices: &fakeNoticeStore{}}

	form := url.Values{
		"username":  {"sidorova"},
		"password":  {"pass"},
		"full_name": {"Сидорова С.С."},
		"role":      {"teacher"},
	}
	w := serveAs(t, sessionFor(1, entity.RoleAdmin), h.AddUser,
		postForm("/admin/add-user", form))

	if loc := w.Header().Get("Location"); loc != "/admin" {
		t.Fatalf("expected redirect to /admin, got %s", loc)
	}
	created := users.get("sidorova")
	if created == nil || created.Role != entity.RoleTeacher {
		t.Fatalf("expected teacher sidorova to be created")
	}
}

func TestAdminAddDuplicateUser(t *testing.T) {
	users := seededUsers()
	h := &AdminHandler{users: users, notices: &fakeNoticeStore{}}

	form := url.Values{
		"username":  {"ivanova"},
		"password":  {"other"},
		"full_name": {"Другая"},
		"role":      {"teacher"},
	}
	w := serveAs(t, sessionFor(1, entity.RoleAdmin), h.AddUser,
		postForm("/admin/add-user", form))

	if loc := w.Header().Get("Location"); loc != "/admin?error=user-exists" {
		t.Fatalf("expected user-exists redirect, got %s", loc)
	}
	// Существующая запись не тронута
	existing := users.get("ivanova")
	if existing.FullName != "Иванова И.И." || existing.PasswordHash != "teachpass" {
		t.Fatalf("existing user must stay unchanged: %+v", existing)
	}
	if len(users.users) != 3 {
		t.Fatalf("no new user must appear, got %d", len(users.users))
	}
}

func TestAdminAddUserInvalidRole(t *testing.T) {
	users := seededUsers()
	h := &AdminHandler{users: users, notices: &fakeNoticeStore{}}

	form := url.Values{
		"username": {"newuser"},
		"password": {"pass"},
		"role":     {"director"},
	}
	w := serveAs(t, sessionFor(1, entity.RoleAdmin), h.AddUser,
		postForm("/admin/add-user", form))

	if loc := w.Header().Get("Location"); loc != "/admin?error=server-error" {
		t.Fatalf("expected server-error redirect, got %s", loc)
	}
	if len(users.users) != 3 {
		t.Fatalf("unknown role must not create a user")
	}
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	users := seededUsers()
	h := &AdminHandler{users: users, notices: &fakeNoticeStore{}}

	// root с id=1 пытается удалить id=1
	form := url.Values{"user_id": {"1"}}
	w := serveAs(t, sessionFor(1, entity.RoleAdmin), h.DeleteUser,
		postForm("/admin/delete-user", form))

	if loc := w.Header().Get("Location"); loc != "/admin?error=cannot-delete-self" {
		t.Fatalf("expected cannot-delete-self redirect, got %s", loc)
	}
	if len(users.users) != 3 {
		t.Fatalf("user table must stay unchanged, got %d users", len(users.users))
	}
}

func TestAdminDeleteOtherUser(t *testing.T) {
	users := seededUsers()
	h := &AdminHandler{users: users, notices: &fakeNoticeStore{}}

	form := url.Values{"user_id": {"20"}}
	w := serveAs(t, sessionFor(1, entity.RoleAdmin), h.DeleteUser,
		postForm("/admin/delete-user", form))

	if loc := w.Header().Get("Location"); loc != "/admin" {
		t.Fatalf("expected redirect to /admin, got %s", loc)
	}
	if users.get("petrov") != nil {
		t.Fatalf("expected petrov to be deleted")
	}
}

func TestAdminDeleteAnyNotice(t *testing.T) {
	notices := &fakeNoticeStore{
		notices: []*entity.Notice{{ID: 7, Title: "Чужая заметка", Content: "Текст", PostedBy: 10}},
		nextID:  7,
	}
	h := &AdminHandler{users: seededUsers(), notices: notices}

	// Администратор не автор, но удалять может любую заметку
	form := url.Values{"notice_id": {"7"}}
	w := serveAs(t, sessionFor(1, entity.RoleAdmin), h.DeleteNotice,
		postForm("/admin/delete-notice", form))

	if loc := w.Header().Get("Location"); loc != "/admin" {
		t.Fatalf("expected redirect to /admin, got %s", loc)
	}
	if len(notices.notices) != 0 {
		t.Fatalf("expected notice deleted by admin")
	}
}

func TestAdminDeleteMissingNoticeLooksLikeSuccess(t *testing.T) {
	notices := &fakeNoticeStore{}
	h := &AdminHandler{users: seededUsers(), notices: notices}

	form := url.Values{"notice_id": {"404"}}
	w := serveAs(t, sessionFor(1, entity.RoleAdmin), h.DeleteNotice,
		postForm("/admin/delete-notice", form))

	if loc := w.Header().Get("Location"); loc != "/admin" {
		t.Fatalf("expected redirect to /admin, got %s", loc)
	}
}
