package crypto

import "golang.org/x/crypto/bcrypt"

// HashPassword хеширует пароль перед записью в БД
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword сравнивает пароль с хешем. Несовпадение - обычная ошибка,
// а не сбой; сравнение всегда идет до конца хеша
func CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
