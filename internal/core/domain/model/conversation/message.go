package conversation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/pkg/errs"
)

// MaxMessageContentLength is the longest message content accepted, in characters.
const MaxMessageContentLength = 2000

// ErrMessageIsNotConstructed is returned when a Message was not created
// through the aggregate or RestoreMessage.
var ErrMessageIsNotConstructed = errors.New("Message must be created via Conversation.PostMessage or RestoreMessage")

// Sender identifies which side of the negotiation wrote a message.
type Sender int

const (
	// SenderUnknown represents an invalid or undefined sender.
	SenderUnknown Sender = iota

	// SenderStaff marks messages written by the business side.
	SenderStaff

	// SenderCustomer marks messages written by the ordering customer.
	SenderCustomer
)

// String returns the wire name of the sender side.
func (s Sender) String() string {
	switch s {
	case SenderStaff:
		return "staff"
	case SenderCustomer:
		return "customer"
	default:
		return "unknown"
	}
}

// Validate checks that the sender is one of the two known sides.
func (s Sender) Validate() error {
	if s != SenderStaff && s != SenderCustomer {
		return errs.NewValueIsInvalidErrorWithCause("sender", fmt.Errorf("%d is not a valid sender", s))
	}
	return nil
}

// Other returns the opposite side of the conversation.
func (s Sender) Other() Sender {
	switch s {
	case SenderStaff:
		return SenderCustomer
	case SenderCustomer:
		return SenderStaff
	default:
		return SenderUnknown
	}
}

// SenderFromString parses a wire name ("staff" or "customer") into a Sender.
func SenderFromString(s string) (Sender, error) {
	switch s {
	case "staff":
		return SenderStaff, nil
	case "customer":
		return SenderCustomer, nil
	default:
		return SenderUnknown, errs.NewValueIsInvalidErrorWithCause("sender",
			fmt.Errorf("%q is not a valid sender", s))
	}
}

// Message is one entry of a conversation's append-only log. A message is never
// mutated after posting except for the isRead flip.
//
// The isRead flag is tracked relative to the other side: a staff-sent
// message's flag reflects whether the customer has read it, and vice versa.
type Message struct {
	id          kernel.UUID
	sender      Sender
	content     string
	isQuote     bool
	quoteAmount *float64
	isRead      bool
	sentAt      time.Time

	isConstructed bool
}

// newMessage validates and builds a message. Only the aggregate calls this.
func newMessage(id kernel.UUID, sender Sender, content string, isQuote bool, quoteAmount *float64, sentAt time.Time) (Message, error) {
	if err := id.Validate(); err != nil {
		return Message{}, err
	}
	if err := sender.Validate(); err != nil {
		return Message{}, err
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return Message{}, errs.NewValueIsRequiredError("content")
	}
	if len([]rune(trimmed)) > MaxMessageContentLength {
		return Message{}, errs.NewValueIsOutOfRangeError("content", len([]rune(trimmed)), 1, MaxMessageContentLength)
	}

	if isQuote {
		if quoteAmount == nil || *quoteAmount <= 0 {
			return Message{}, errs.NewValueIsInvalidErrorWithCause("quoteAmount",
				errors.New("quote messages require a positive amount"))
		}
	} else if quoteAmount != nil {
		return Message{}, errs.NewValueIsInvalidErrorWithCause("quoteAmount",
			errors.New("only quote messages carry an amount"))
	}

	return Message{
		id:            id,
		sender:        sender,
		content:       trimmed,
		isQuote:       isQuote,
		quoteAmount:   copyAmount(quoteAmount),
		sentAt:        sentAt,
		isConstructed: true,
	}, nil
}

// RestoreMessage reconstructs a message from persistence.
// Used by repository adapters only.
func RestoreMessage(
	id kernel.UUID,
	sender Sender,
	content string,
	isQuote bool,
	quoteAmount *float64,
	isRead bool,
	sentAt time.Time,
) (Message, error) {
	m, err := newMessage(id, sender, content, isQuote, quoteAmount, sentAt)
	if err != nil {
		return Message{}, err
	}
	m.isRead = isRead
	return m, nil
}

// Validate ensures the message came from newMessage or RestoreMessage.
func (m Message) Validate() error {
	if !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}

// ID returns the message's unique identifier.
func (m Message) ID() kernel.UUID {
	return m.id
}

// Sender returns which side wrote the message.
func (m Message) Sender() Sender {
	return m.sender
}

// Content returns the trimmed message text.
func (m Message) Content() string {
	return m.content
}

// IsQuote reports whether the message carries a staff-proposed total.
func (m Message) IsQuote() bool {
	return m.isQuote
}

// QuoteAmount returns the proposed total for quote messages, nil otherwise.
func (m Message) QuoteAmount() *float64 {
	return copyAmount(m.quoteAmount)
}

// IsRead reports whether the other side has read the message.
func (m Message) IsRead() bool {
	return m.isRead
}

// SentAt returns the posting timestamp.
func (m Message) SentAt() time.Time {
	return m.sentAt
}

func copyAmount(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
