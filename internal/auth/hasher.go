package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost は旧システムと同じコスト係数です。
const bcryptCost = 10

// BcryptHasher は bcrypt による PasswordHasher 実装です。
// ソルトは bcrypt が呼び出しごとに生成します。
type BcryptHasher struct{}

// Hash は平文パスワードからソルト付きダイジェストを生成します。
func (BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Compare は平文パスワードとダイジェストを照合します。
func (BcryptHasher) Compare(password, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}
