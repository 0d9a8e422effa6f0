package handler

import (
	"fmt"
	"html/template"
	"net/http"

	"noticeboard/internal/entity"
	middleware "noticeboard/internal/midlleware"
)

const landingNoticeCount = 5

type IndexHandler struct {
	notices NoticeStore
	tmpl    *template.Template
}

func NewIndexHandler(notices NoticeStore) *IndexHandler {
	tmpl := template.Must(template.ParseFiles("internal/templates/index.html"))
	return &IndexHandler{notices: notices, tmpl: tmpl}
}

// Index - публичная главная с формой входа и последними заметками.
// Вошедших пользователей сразу отправляет в их раздел
func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if session := middleware.SessionFrom(r); session != nil {
		switch session.User.Role {
		case entity.RoleStudent:
			http.Redirect(w, r, "/student", http.StatusSeeOther)
			return
		case entity.RoleTeacher:
			http.Redirect(w, r, "/teacher", http.StatusSeeOther)
			return
		case entity.RoleAdmin:
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
	}

	notices, err := h.notices.ListLatest(landingNoticeCount)
	if err != nil {
		fmt.Printf("Ошибка получения заметок для главной: %v\n", err)
		notices = nil
	}

	data := map[string]interface{}{
		"Title":   "Доска объявлений",
		"Error":   r.URL.Query().Get("error"),
		"Notices": notices,
	}

	h.tmpl.Execute(w, data)
}
