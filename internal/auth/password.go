package auth

import "golang.org/x/crypto/bcrypt"

// bcrypt отказывает на входе длиннее 72 байт, проверяем заранее.
const maxPasswordLength = 72

var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// HashPassword хэширует пароль через bcrypt со стандартной стоимостью.
func HashPassword(password string) (string, error) {
	if len(password) > maxPasswordLength {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// ComparePassword сравнивает хэш с паролем через bcrypt.
func ComparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
