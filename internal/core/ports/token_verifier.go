package ports

import (
	"craftorders/internal/core/domain/model/conversation"
)

// Identity is a connected user's verified claims: who they are and which side
// of the negotiation they act for.
type Identity struct {
	ID          string
	DisplayName string
	Role        conversation.Sender
}

// TokenVerifier checks a signed token presented at realtime handshake and
// returns the identity it certifies. Token issuance is an external
// collaborator; the core trusts the decoded claims.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}
