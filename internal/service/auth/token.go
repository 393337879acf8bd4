package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenManager signs and verifies the HS256 bearer tokens. Claims carry the
// user id and an expiry; nothing else is encoded.
type tokenManager struct {
	secret []byte
	ttl    time.Duration
}

func newTokenManager(secret []byte, ttl time.Duration) *tokenManager {
	return &tokenManager{secret: secret, ttl: ttl}
}

func (m *tokenManager) Issue(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(m.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *tokenManager) Verify(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	// encoding/json decodes numbers into float64
	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return 0, ErrInvalidToken
	}
	return int64(userID), nil
}
