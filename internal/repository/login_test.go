package repository

import (
	"errors"
	"testing"

	"noticeboard/internal/crypto"
	"noticeboard/internal/entity"
)

func TestAuthenticate(t *testing.T) {
	hash, err := crypto.HashPassword("secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	teacher := &entity.User{
		ID:           10,
		Username:     "ivanova",
		PasswordHash: hash,
		Role:         entity.RoleTeacher,
	}

	if err := authenticate(teacher, "secret", entity.RoleTeacher); err != nil {
		t.Fatalf("expected login to succeed: %v", err)
	}

	if err := authenticate(teacher, "wrong", entity.RoleTeacher); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}

	// Правильный пароль, но роль в форме не совпадает с ролью в БД
	if err := authenticate(teacher, "secret", entity.RoleStudent); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for role mismatch, got %v", err)
	}
	if err := authenticate(teacher, "secret", entity.RoleAdmin); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for role mismatch, got %v", err)
	}

	// Несуществующий пользователь неотличим от неверного пароля
	if err := authenticate(nil, "secret", entity.RoleTeacher); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}
