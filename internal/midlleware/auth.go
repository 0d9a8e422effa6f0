package middleware

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/sessions"

	"noticeboard/internal/entity"
)

// SessionCookie - cookie с токеном сессии. Внутри только сам
// непрозрачный токен, никаких данных пользователя
const SessionCookie = "session_token"

var store = sessions.NewCookieStore([]byte(cookieKey()))

func cookieKey() string {
	if key := os.Getenv("SESSION_KEY"); key != "" {
		return key
	}
	return "a-very-secret-key"
}

// SessionResolver достает сессию по токену из хранилища
type SessionResolver interface {
	Resolve(token string) (*entity.Session, error)
}

type contextKey string

const sessionContextKey contextKey = "session"

// WithSession читает cookie, находит сессию в хранилище и кладет ее
// в контекст запроса. Отсутствие или истечение сессии - не ошибка,
// запрос идет дальше как анонимный
func WithSession(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err == nil && cookie.Value != "" {
				session, err := resolver.Resolve(cookie.Value)
				if err != nil {
					fmt.Printf("Ошибка чтения сессии: %v\n", err)
				} else if session != nil {
					ctx := context.WithValue(r.Context(), sessionContextKey, session)
					r = r.WithContext(ctx)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SessionFrom возвращает сессию текущего запроса или nil
func SessionFrom(r *http.Request) *entity.Session {
	session, _ := r.Context().Value(sessionContextKey).(*entity.Session)
	return session
}

// RequireAuth пускает только аутентифицированных. Отказ - это
// редирект на главную, без 403
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if SessionFrom(r) == nil {
			stashRedirect(w, r)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		next(w, r)
	}
}

// RequireRole пускает только указанную роль. Несовпадение роли
// молча отправляет на главную
func RequireRole(role entity.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := SessionFrom(r)
		if session == nil {
			stashRedirect(w, r)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		if session.User.Role != role {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		next(w, r)
	}
}

// Запоминаем, куда шел неаутентифицированный пользователь,
// чтобы вернуть его туда после входа
func stashRedirect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		return
	}

	session, _ := store.Get(r, "app-session")
	session.Values["redirect_after_login"] = r.URL.Path
	if err := session.Save(r, w); err != nil {
		fmt.Printf("Ошибка сохранения cookie-сессии: %v\n", err)
	}
}

// PopRedirect забирает сохраненный путь и сразу очищает его.
// Путь отдается, только если он лежит в зоне роли пользователя
func PopRedirect(w http.ResponseWriter, r *http.Request, role entity.Role) string {
	session, _ := store.Get(r, "app-session")

	path, ok := session.Values["redirect_after_login"].(string)
	if !ok || path == "" {
		return ""
	}

	delete(session.Values, "redirect_after_login")
	if err := session.Save(r, w); err != nil {
		fmt.Printf("Ошибка сохранения cookie-сессии: %v\n", err)
	}

	if !strings.HasPrefix(path, "/"+string(role)) {
		return ""
	}
	return path
}
