package session

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// sessionClaims is the payload of a signed session handle.
type sessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// issueToken signs a handle whose expiry mirrors the session's initial
// activity window.
func (m *Manager) issueToken(s *Session) (string, error) {
	now := m.now()
	claims := &sessionClaims{
		SessionID: s.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.timeout)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("session: sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks a handle's signature and expiry and returns the
// session ID it names. The session itself may still have been destroyed;
// callers that need the session go through Get.
func (m *Manager) VerifyToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", errors.New("session: token is empty")
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return "", fmt.Errorf("session: parse token: %w", err)
	}
	if !token.Valid || claims.SessionID == "" {
		return "", errors.New("session: token is not valid")
	}
	return claims.SessionID, nil
}
