package handler

import (
	"fmt"
	"html/template"
	"net/http"

	middleware "noticeboard/internal/midlleware"
)

type StudentHandler struct {
	users   UserStore
	notices NoticeStore
	tmpl    *template.Template
}

func NewStudentHandler(users UserStore, notices NoticeStore) *StudentHandler {
	tmpl := template.Must(template.ParseFiles("internal/templates/student.html"))
	return &StudentHandler{
		users:   users,
		notices: notices,
		tmpl:    tmpl,
	}
}

// Home - страница ученика: список учителей и все заметки
func (h *StudentHandler) Home(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFrom(r)

	teachers, err := h.users.ListTeachers()
	if err != nil {
		fmt.Printf("Ошибка получения учителей: %v\n", err)
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
		"Title":    "Доска объявлений",
		"User":     session.User,
		"Teachers": teachers,
		"Notices":  notices,
	}

	h.tmpl.Execute(w, data)
}
