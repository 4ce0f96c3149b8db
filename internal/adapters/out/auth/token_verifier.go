// Package auth verifies signed tokens presented at the realtime handshake.
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"craftorders/internal/core/domain/model/conversation"
	"craftorders/internal/core/ports"
)

// ErrInvalidToken is the sentinel wrapped by every verification failure, so
// callers can treat all of them as a single rejection class.
var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	jwt.RegisteredClaims
}

// JWTTokenVerifier implements ports.TokenVerifier using HMAC-signed JWTs.
// The subject claim carries the user id, display_name the presentation name
// and role which side of the negotiation the user acts for.
type JWTTokenVerifier struct {
	secret []byte
}

func NewJWTTokenVerifier(secret string) *JWTTokenVerifier {
	return &JWTTokenVerifier{secret: []byte(secret)}
}

// Verify decodes and validates the token and returns the identity it
// certifies. Errors wrap ErrInvalidToken.
func (v *JWTTokenVerifier) Verify(token string) (ports.Identity, error) {
	var parsed claims

	_, err := jwt.ParseWithClaims(token, &parsed, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return v.secret, nil
	})
	if err != nil {
		return ports.Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if parsed.Subject == "" {
		return ports.Identity{}, fmt.Errorf("%w: subject claim is missing", ErrInvalidToken)
	}

	role, err := conversation.SenderFromString(parsed.Role)
	if err != nil {
		return ports.Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	displayName := parsed.DisplayName
	if displayName == "" {
		displayName = parsed.Subject
	}

	return ports.Identity{
		ID:          parsed.Subject,
		DisplayName: displayName,
		Role:        role,
	}, nil
}
