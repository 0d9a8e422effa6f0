package handler

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	middleware "noticeboard/internal/midlleware"
	"noticeboard/internal/repository"
)

const dashboardNoticeCount = 3

type TeacherHandler struct {
	notices NoticeStore
	tmpl    *template.Template
}

func NewTeacherHandler(notices NoticeStore) *TeacherHandler {
	tmpl := template.Must(template.ParseFiles(
		"internal/templates/teacher_dashboard.html",
		"internal/templates/teacher_notices.html",
		"internal/templates/teacher_post.html",
		"internal/templates/teacher_edit.html"))

	return &TeacherHandler{
		notices: notices,
		tmpl:    tmpl,
	}
}

// Dashboard - кабинет учителя с тремя последними его заметками
func (h *TeacherHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFrom(r)

	notices, err := h.notices.ListLatestByOwner(session.User.ID, dashboardNoticeCount)
	if err != nil {
		fmt.Printf("Ошибка получения заметок учителя %d: %v\n", session.User.ID, err)
		http.Redirect(w, r, "/?error=server-error", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"Title":   "Кабинет учителя",
		"User":    session.User,
		"Notices": notices,
		"Error":   r.URL.Query().Get("error"),
	}

	h.tmpl.ExecuteTemplate(w, "teacher_dashboard.html", data)
}

// Notices - все заметки учителя
func (h *TeacherHandler) Notices(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFrom(r)

	notices, err := h.notices.ListByOwner(session.User.ID)
	if err != nil {
		fmt.Printf("Ошибка получения заметок учителя %d: %v\n", session.User.ID, err)
		http.Redirect(w, r, "/?error=server-error", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"Title":   "Мои объявления",
		"User":    session.User,
		"Notices": notices,
		"Error":   r.URL.Query().Get("error"),
	}

	h.tmpl.ExecuteTemplate(w, "teacher_notices.html", data)
}

// PostForm - форма новой заметки
func (h *TeacherHandler) PostForm(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFrom(r)

	data := map[string]interface{}{
		"Title": "Новое объявление",
		"User":  session.User,
		"Error": r.URL.Query().Get("error"),
	}

	h.tmpl.ExecuteTemplate(w, "teacher_post.html", data)
}

// CreateNotice создает заметку от имени вошедшего учителя.
// posted_by всегда берется из сессии, а не из формы
func (h *TeacherHandler) CreateNotice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/teacher/post", http.StatusSeeOther)
		return
	}

	session := middleware.SessionFrom(r)

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/teacher/post?error=server-error", http.StatusSeeOther)
		return
	}

	title := r.FormValue("title")
	content := r.FormValue("content")
	isImportant := r.FormValue("is_important") != ""

	_, err := h.notices.Create(title, content, session.User.ID, isImportant)
	if err != nil {
		if !errors.Is(err, repository.ErrEmptyField) {
			fmt.Printf("Ошибка создания заметки: %v\n", err)
		}
		http.Redirect(w, r, "/teacher/post?error=server-error", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/teacher/notices", http.StatusSeeOther)
}

// EditForm - форма правки своей заметки, id берется из пути
func (h *TeacherHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFrom(r)

	idStr := strings.TrimPrefix(r.URL.Path, "/teacher/edit-notice/")
	noticeID, err := strconv.Atoi(idStr)
	if err != nil {
		http.Redirect(w, r, "/teacher/notices", http.StatusSeeOther)
		return
	}

	notice, err := h.notices.GetOwned(noticeID, session.User.ID)
	if err != nil {
		fmt.Printf("Ошибка получения заметки %d: %v\n", noticeID, err)
		http.Redirect(w, r, "/teacher/notices?error=server-error", http.StatusSeeOther)
		return
	}
	if notice == nil {
		// Чужая или несуществующая заметка
		http.Redirect(w, r, "/teacher/notices", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"Title":  "Правка объявления",
		"User":   session.User,
		"Notice": notice,
		"Error":  r.URL.Query().Get("error"),
	}

	h.tmpl.ExecuteTemplate(w, "teacher_edit.html", data)
}

// UpdateNotice меняет заметку только если она принадлежит учителю.
// Чужая заметка дает ноль затронутых строк, что для пользователя
// неотличимо от успеха - редирект одинаковый
func (h *TeacherHandler) UpdateNotice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/teacher/notices", http.StatusSeeOther)
		return
	}

	session := middleware.SessionFrom(r)

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/teacher/notices?error=server-error", http.StatusSeeOther)
		return
	}

	noticeID, err := strconv.Atoi(r.FormValue("notice_id"))
	if err != nil {
		http.Redirect(w, r, "/teacher/notices", http.StatusSeeOther)
		return
	}

	title := r.FormValue("title")
	content := r.FormValue("content")
	isImportant := r.FormValue("is_important") != ""

	err = h.notices.Update(noticeID, session.User.ID, title, content, isImportant)
	if err != nil && !errors.Is(err, repository.ErrNotFoundOrNotOwned) {
		if !errors.Is(err, repository.ErrEmptyField) {
			fmt.Printf("Ошибка обновления заметки %d: %v\n", noticeID, err)
		}
		http.Redirect(w, r, "/teacher/notices?error=server-error", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/teacher/notices", http.StatusSeeOther)
}

// DeleteNotice удаляет только свою заметку, та же политика что и Update
func (h *TeacherHandler) DeleteNotice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/teacher/notices", http.StatusSeeOther)
		return
	}

	session := middleware.SessionFrom(r)

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/teacher/notices?error=server-error", http.StatusSeeOther)
		return
	}

	noticeID, err := strconv.Atoi(r.FormValue("notice_id"))
	if err != nil {
		http.Redirect(w, r, "/teacher/notices", http.StatusSeeOther)
		return
	}

	err = h.notices.Delete(noticeID, session.User.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFoundOrNotOwned) {
		fmt.Printf("Ошибка удаления заметки %d: %v\n", noticeID, err)
		http.Redirect(w, r, "/teacher/notices?error=server-error", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/teacher/notices", http.StatusSeeOther)
}
