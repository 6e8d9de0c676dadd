package model

import "github.com/golang-jwt/jwt/v5"

// ParticipantClaims are the JWT claims identifying a participant.
type ParticipantClaims struct {
	ParticipantID string `json:"participantId"`
	jwt.RegisteredClaims
}
