package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"noticeboard/internal/entity"
	middleware "noticeboard/internal/midlleware"
	"noticeboard/internal/repository"
)

type LoginHandler struct {
	users    UserStore
	sessions SessionStore
	lifetime time.Duration
}

func NewLoginHandler(users UserStore, sessions SessionStore, lifetime time.Duration) *LoginHandler {
	if lifetime <= 0 {
		lifetime = repository.DefaultSessionLifetime
	}
	return &LoginHandler{
		users:    users,
		sessions: sessions,
		lifetime: lifetime,
	}
}

// Login - вход для всех ролей. Форма присылает имя, пароль и роль;
// любое несовпадение дает один и тот же код invalid-credentials
func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/?error=server-error", http.StatusSeeOther)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	role, ok := entity.ParseRole(r.FormValue("role"))

	if username == "" || password == "" || !ok {
		http.Redirect(w, r, "/?error=invalid-credentials", http.StatusSeeOther)
		return
	}

	user, err := h.users.Login(username, password, role)
	if err != nil {
		if !errors.Is(err, repository.ErrInvalidCredentials) {
			fmt.Printf("Ошибка входа для пользователя %s: %v\n", username, err)
			http.Redirect(w, r, "/?error=server-error", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/?error=invalid-credentials", http.StatusSeeOther)
		return
	}

	token, err := h.sessions.Create(user)
	if err != nil {
		fmt.Printf("Ошибка создания сессии для пользователя %d: %v\n", user.ID, err)
		http.Redirect(w, r, "/?error=server-error", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.lifetime),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if target := middleware.PopRedirect(w, r, user.Role); target != "" {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	switch user.Role {
	case entity.RoleStudent:
		http.Redirect(w, r, "/student", http.StatusSeeOther)
	case entity.RoleTeacher:
		http.Redirect(w, r, "/teacher", http.StatusSeeOther)
	case entity.RoleAdmin:
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// Logout гасит сессию на сервере и в cookie
func (h *LoginHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookie)
	if err == nil && cookie.Value != "" {
		if err := h.sessions.Destroy(cookie.Value); err != nil {
			fmt.Printf("Ошибка удаления сессии: %v\n", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
