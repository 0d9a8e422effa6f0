package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"noticeboard/internal/entity"
)

const DefaultSessionLifetime = 7 * 24 * time.Hour

// SessionRepository хранит сессии в таблице sessions вместе с копией
// данных пользователя, снятой при входе
type SessionRepository struct {
	db       *sql.DB
	lifetime time.Duration
}

func NewSessionRepository(db *sql.DB, lifetime time.Duration) *SessionRepository {
	if lifetime <= 0 {
		lifetime = DefaultSessionLifetime
	}
	return &SessionRepository{db: db, lifetime: lifetime}
}

// Create выдает непредсказуемый токен и сохраняет сессию.
// Один пользователь может держать несколько сессий с разных устройств
func (r *SessionRepository) Create(user *entity.User) (string, error) {
	token := uuid.NewString()
	now := time.Now()

	_, err := r.db.Exec(`
		INSERT INTO sessions (token, user_id, username, role, fullname, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, token, user.ID, user.Username, user.Role, user.FullName, now.Add(r.lifetime), now)

	if err != nil {
		return "", fmt.Errorf("ошибка создания сессии: %w", err)
	}
	return token, nil
}

// Resolve возвращает nil без ошибки, если сессии нет или она истекла
func (r *SessionRepository) Resolve(token string) (*entity.Session, error) {
	var s entity.Session
	err := r.db.QueryRow(`
		SELECT token, user_id, username, role, fullname, expires_at, created_at
		FROM sessions
		WHERE token = $1 AND expires_at > $2
	`, token, time.Now()).Scan(&s.Token, &s.User.ID, &s.User.Username,
		&s.User.Role, &s.User.FullName, &s.ExpiresAt, &s.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения сессии: %w", err)
	}
	return &s, nil
}

// Destroy идемпотентен: удаление отсутствующей сессии - не ошибка
func (r *SessionRepository) Destroy(token string) error {
	_, err := r.db.Exec(`DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("ошибка удаления сессии: %w", err)
	}
	return nil
}

// DeleteExpired подчищает истекшие сессии, вызывается по таймеру
func (r *SessionRepository) DeleteExpired() (int64, error) {
	res, err := r.db.Exec(`DELETE FROM sessions WHERE expires_at <= $1`, time.Now())
	if err != nil {
		return 0, fmt.Errorf("ошибка очистки сессий: %w", err)
	}
	return res.RowsAffected()
}
