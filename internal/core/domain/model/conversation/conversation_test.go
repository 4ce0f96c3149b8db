package conversation_test

import (
	"strings"
	"testing"

	"craftorders/internal/core/domain/model/conversation"
	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConversation(t *testing.T) *conversation.Conversation {
	t.Helper()
	c, err := conversation.NewConversation(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	return c
}

func TestNewConversation(t *testing.T) {
	c := newConversation(t)

	assert.True(t, c.IsActive())
	assert.Empty(t, c.Messages())
	assert.True(t, c.LastMessageAt().IsZero())
	assert.False(t, c.CreatedAt().IsZero())
}

func TestNewConversation_InvalidIDs(t *testing.T) {
	_, err := conversation.NewConversation(kernel.UUID{}, kernel.NewUUID())
	require.Error(t, err)

	_, err = conversation.NewConversation(kernel.NewUUID(), kernel.UUID{})
	require.Error(t, err)
}

func TestConversation_PostMessage(t *testing.T) {
	c := newConversation(t)

	m, err := c.PostMessage(conversation.SenderCustomer, "  Can you engrave initials?  ")
	require.NoError(t, err)

	assert.Equal(t, "Can you engrave initials?", m.Content())
	assert.Equal(t, conversation.SenderCustomer, m.Sender())
	assert.False(t, m.IsQuote())
	assert.Nil(t, m.QuoteAmount())
	assert.False(t, m.IsRead())

	require.Len(t, c.Messages(), 1)
	assert.Equal(t, m.SentAt(), c.LastMessageAt())
}

func TestConversation_PostMessage_EmptyContent(t *testing.T) {
	c := newConversation(t)

	_, err := c.PostMessage(conversation.SenderStaff, "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Empty(t, c.Messages())
}

func TestConversation_PostMessage_ContentTooLong(t *testing.T) {
	c := newConversation(t)

	_, err := c.PostMessage(conversation.SenderStaff, strings.Repeat("x", conversation.MaxMessageContentLength+1))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = c.PostMessage(conversation.SenderStaff, strings.Repeat("x", conversation.MaxMessageContentLength))
	require.NoError(t, err)
}

func TestConversation_PostMessage_InvalidSender(t *testing.T) {
	c := newConversation(t)

	_, err := c.PostMessage(conversation.SenderUnknown, "hello")
	require.Error(t, err)
}

func TestConversation_PostQuote(t *testing.T) {
	c := newConversation(t)

	m, err := c.PostQuote(conversation.SenderStaff, "Quote for your sign: 150", 150)
	require.NoError(t, err)

	assert.True(t, m.IsQuote())
	require.NotNil(t, m.QuoteAmount())
	assert.InDelta(t, 150.0, *m.QuoteAmount(), 0.001)
}

func TestConversation_PostQuote_NonPositiveAmount(t *testing.T) {
	c := newConversation(t)

	_, err := c.PostQuote(conversation.SenderStaff, "Quote", 0)
	require.Error(t, err)
	assert.Empty(t, c.Messages())
}

func TestConversation_PostMessage_ReactivatesArchived(t *testing.T) {
	c := newConversation(t)
	c.Archive()
	require.False(t, c.IsActive())

	_, err := c.PostMessage(conversation.SenderCustomer, "still there?")
	require.NoError(t, err)
	assert.True(t, c.IsActive())
}

func TestConversation_MarkMessageRead(t *testing.T) {
	c := newConversation(t)
	m, err := c.PostMessage(conversation.SenderStaff, "your quote is ready")
	require.NoError(t, err)

	updated, err := c.MarkMessageRead(m.ID(), conversation.SenderCustomer)
	require.NoError(t, err)
	assert.True(t, updated.IsRead())
	assert.True(t, c.Messages()[0].IsRead())
}

// A reader cannot mark its own messages as read; the flag tracks the other side.
func TestConversation_MarkMessageRead_OwnMessageIgnored(t *testing.T) {
	c := newConversation(t)
	m, err := c.PostMessage(conversation.SenderStaff, "your quote is ready")
	require.NoError(t, err)

	updated, err := c.MarkMessageRead(m.ID(), conversation.SenderStaff)
	require.NoError(t, err)
	assert.False(t, updated.IsRead())
	assert.False(t, c.Messages()[0].IsRead())
}

func TestConversation_MarkMessageRead_NotFound(t *testing.T) {
	c := newConversation(t)

	_, err := c.MarkMessageRead(kernel.NewUUID(), conversation.SenderCustomer)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestConversation_UnreadCountFor(t *testing.T) {
	c := newConversation(t)

	first, err := c.PostMessage(conversation.SenderStaff, "first")
	require.NoError(t, err)
	_, err = c.PostMessage(conversation.SenderStaff, "second")
	require.NoError(t, err)
	_, err = c.PostMessage(conversation.SenderCustomer, "reply")
	require.NoError(t, err)

	assert.Equal(t, 2, c.UnreadCountFor(conversation.SenderCustomer))
	assert.Equal(t, 1, c.UnreadCountFor(conversation.SenderStaff))

	_, err = c.MarkMessageRead(first.ID(), conversation.SenderCustomer)
	require.NoError(t, err)
	assert.Equal(t, 1, c.UnreadCountFor(conversation.SenderCustomer))
}

func TestConversation_ArchiveAndReactivate(t *testing.T) {
	c := newConversation(t)

	c.Archive()
	assert.False(t, c.IsActive())
	c.Archive()
	assert.False(t, c.IsActive())

	c.Reactivate()
	assert.True(t, c.IsActive())
}

func TestRestoreConversation(t *testing.T) {
	c := newConversation(t)
	m, err := c.PostMessage(conversation.SenderCustomer, "hello")
	require.NoError(t, err)

	restored, err := conversation.RestoreConversation(
		c.ID(), c.OrderID(), c.Messages(), false, c.LastMessageAt(), c.CreatedAt(),
	)
	require.NoError(t, err)

	assert.False(t, restored.IsActive())
	require.Len(t, restored.Messages(), 1)
	assert.True(t, restored.Messages()[0].ID().IsEqual(m.ID()))
}

func TestRestoreMessage_RoundTrip(t *testing.T) {
	c := newConversation(t)
	m, err := c.PostQuote(conversation.SenderStaff, "Quote: 99", 99)
	require.NoError(t, err)

	restored, err := conversation.RestoreMessage(
		m.ID(), m.Sender(), m.Content(), m.IsQuote(), m.QuoteAmount(), true, m.SentAt(),
	)
	require.NoError(t, err)
	assert.True(t, restored.IsRead())
	assert.True(t, restored.IsQuote())
}

func TestSender(t *testing.T) {
	assert.Equal(t, "staff", conversation.SenderStaff.String())
	assert.Equal(t, "customer", conversation.SenderCustomer.String())
	assert.Equal(t, conversation.SenderCustomer, conversation.SenderStaff.Other())
	assert.Equal(t, conversation.SenderStaff, conversation.SenderCustomer.Other())

	s, err := conversation.SenderFromString("staff")
	require.NoError(t, err)
	assert.Equal(t, conversation.SenderStaff, s)

	_, err = conversation.SenderFromString("bot")
	require.Error(t, err)
}

func TestConversation_Validate_ZeroValue(t *testing.T) {
	var c *conversation.Conversation
	require.Error(t, c.Validate())
	require.Error(t, (&conversation.Conversation{}).Validate())
}
