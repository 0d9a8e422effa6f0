package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"noticeboard/internal/crypto"
	"noticeboard/internal/entity"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Все пользователи в порядке создания
func (r *UserRepository) ListAll() ([]*entity.User, error) {
	rows, err := r.db.Query(`
		SELECT id, username, role, fullname, created_at
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения пользователей: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Role, &u.FullName, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}

	return users, rows.Err()
}

// Список учителей для страницы ученика
func (r *UserRepository) ListTeachers() ([]*entity.User, error) {
	rows, err := r.db.Query(`
		SELECT id, username, role, fullname, created_at
		FROM users
		WHERE role = $1
		ORDER BY fullname
	`, entity.RoleTeacher)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения учителей: %w", err)
	}
	defer rows.Close()

	var teachers []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Role, &u.FullName, &u.CreatedAt); err != nil {
			return nil, err
		}
		teachers = append(teachers, &u)
	}

	return teachers, rows.Err()
}

// GetByUsername возвращает nil без ошибки, если пользователя нет
func (r *UserRepository) GetByUsername(username string) (*entity.User, error) {
	var u entity.User
	err := r.db.QueryRow(`
		SELECT id, username, password_hash, role, fullname, created_at
		FROM users
		WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.FullName, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create хеширует пароль и создает пользователя. Уникальность имени
// обеспечивает ограничение в БД, а не предварительная проверка,
// чтобы параллельные запросы не могли ее обойти
func (r *UserRepository) Create(username, password string, role entity.Role, fullName string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || !role.Valid() {
		return nil, ErrEmptyField
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	u := entity.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		FullName:     fullName,
	}

	err = r.db.QueryRow(`
		INSERT INTO users (username, password_hash, role, fullname)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, u.Username, u.PasswordHash, u.Role, u.FullName).Scan(&u.ID, &u.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	return &u, nil
}

// Delete удаляет пользователя. Удалить самого себя нельзя -
// проверка идет до любой записи в БД. Заметки удаленного учителя
// остаются с осиротевшим posted_by
func (r *UserRepository) Delete(userID, actingUserID int) error {
	if userID == actingUserID {
		return ErrSelfDelete
	}

	_, err := r.db.Exec(`DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("ошибка удаления пользователя: %w", err)
	}
	return nil
}

// Login проверяет имя, роль и пароль. Любое несовпадение дает одну
// и ту же ошибку, чтобы нельзя было перебирать имена пользователей
func (r *UserRepository) Login(username, password string, role entity.Role) (*entity.User, error) {
	u, err := r.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if err := authenticate(u, password, role); err != nil {
		return nil, err
	}
	return u, nil
}

func authenticate(u *entity.User, password string, role entity.Role) error {
	if u == nil {
		return ErrInvalidCredentials
	}
	if u.Role != role {
		return ErrInvalidCredentials
	}
	if err := crypto.CheckPassword(u.PasswordHash, password); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
