package commands

import (
	"errors"
	"time"

	"craftorders/internal/pkg/errs"
	"craftorders/internal/pkg/guard"
)

var ErrArchiveIdleConversationsCommandIsNotConstructed = errors.New(
	"ArchiveIdleConversationsCommand must be created via NewArchiveIdleConversationsCommand constructor",
)

// ArchiveIdleConversationsCommand archives active conversations that have had
// no activity for at least the given duration.
type ArchiveIdleConversationsCommand struct { //nolint:recvcheck //using for validation
	idleFor time.Duration

	guard guard.ConstructorGuard
}

// NewArchiveIdleConversationsCommand creates a command for the archival sweep.
func NewArchiveIdleConversationsCommand(idleFor time.Duration) (ArchiveIdleConversationsCommand, error) {
	if idleFor <= 0 {
		return ArchiveIdleConversationsCommand{},
			errs.NewValueIsInvalidErrorWithCause("idleFor", errors.New("must be positive"))
	}

	return ArchiveIdleConversationsCommand{
		idleFor: idleFor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ArchiveIdleConversationsCommand) Validate() error {
	return c.guard.Validate(ErrArchiveIdleConversationsCommandIsNotConstructed)
}

// IdleFor returns the inactivity window after which a conversation is archived.
func (c ArchiveIdleConversationsCommand) IdleFor() time.Duration {
	return c.idleFor
}
