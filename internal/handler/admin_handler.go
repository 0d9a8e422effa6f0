package handler

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"noticeboard/internal/entity"
	middleware "noticeboard/internal/midlleware"
	"noticeboard/internal/repository"
)

type AdminHandler struct {
	users   UserStore
	notices NoticeStore
	tmpl    *template.Template
}

func NewAdminHandler(users UserStore, notices NoticeStore) *AdminHandler {
	tmpl := template.Must(template.ParseFiles("internal/templates/admin.html"))
	return &AdminHandler{
		users:   users,
		notices: notices,
		tmpl:    tmpl,
	}
}

// Home - панель администратора: пользователи и все заметки
func (h *AdminHandler) Home(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFrom(r)

	users, err := h.users.ListAll()
	if err != nil {
		fmt.Printf("Ошибка получения пользователей: %v\n", err)
		http.Redirect(w, r, "/?error=server-error", http.StatusSeeOther)
		return
	}

	notices, err := h.notices.ListAll()
	if err != nil {
		fmt.Printf("Ошибка получения заметок: %v\n", err)
		http.Redirect(w, r, "/?error=server-error", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"Title":   "Панель администратора",
		"User":    session.User,
		"Users":   users,
		"Notices": notices,
		"Error":   r.URL.Query().Get("error"),
	}

	h.tmpl.Execute(w, data)
}

// AddUser создает пользователя. Повторное имя дает user-exists,
// гонку двух одинаковых имен решает ограничение в БД
func (h *AdminHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin?error=server-error", http.StatusSeeOther)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	fullName := r.FormValue("full_name")

	role, ok := entity.ParseRole(r.FormValue("role"))
	if !ok {
		http.Redirect(w, r, "/admin?error=server-error", http.StatusSeeOther)
		return
	}

	_, err := h.users.Create(username, password, role, fullName)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			http.Redirect(w, r, "/admin?error=user-exists", http.StatusSeeOther)
			return
		}
		if !errors.Is(err, repository.ErrEmptyField) {
			fmt.Printf("Ошибка создания пользователя %s: %v\n", username, err)
		}
		http.Redirect(w, r, "/admin?error=server-error", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// DeleteUser удаляет пользователя. Самого себя удалить нельзя
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	session := middleware.SessionFrom(r)

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin?error=server-error", http.StatusSeeOther)
		return
	}

	userID, err := strconv.Atoi(r.FormValue("user_id"))
	if err != nil {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	if err := h.users.Delete(userID, session.User.ID); err != nil {
		if errors.Is(err, repository.ErrSelfDelete) {
			http.Redirect(w, r, "/admin?error=cannot-delete-self", http.StatusSeeOther)
			return
		}
		fmt.Printf("Ошибка удаления пользователя %d: %v\n", userID, err)
		http.Redirect(w, r, "/admin?error=server-error", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// DeleteNotice удаляет любую заметку без проверки автора
func (h *AdminHandler) DeleteNotice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin?error=server-error", http.StatusSeeOther)
		return
	}

	noticeID, err := strconv.Atoi(r.FormValue("notice_id"))
	if err != nil {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	err = h.notices.DeleteAny(noticeID)
	if err != nil && !errors.Is(err, repository.ErrNotFoundOrNotOwned) {
		fmt.Printf("Ошибка удаления заметки %d: %v\n", noticeID, err)
		http.Redirect(w, r, "/admin?error=server-error", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
