package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"careercompass/internal/model"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

const tokenLifetime = 30 * 24 * time.Hour

// AuthService issues and validates participant tokens. Participant
// identity itself comes from the transport collaborator; the token
// just pins it for the lifetime of an assessment.
type AuthService struct {
	jwtSecret []byte
}

// NewAuthService creates an auth service with the given signing
// secret.
func NewAuthService(secret string) *AuthService {
	return &AuthService{jwtSecret: []byte(secret)}
}

// IssueToken signs a participant token.
func (s *AuthService) IssueToken(participantID string) (string, error) {
	claims := &model.ParticipantClaims{
		ParticipantID: participantID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken parses and verifies a participant token.
func (s *AuthService) ValidateToken(tokenStr string) (*model.ParticipantClaims, error) {
	claims := &model.ParticipantClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid || claims.ParticipantID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
