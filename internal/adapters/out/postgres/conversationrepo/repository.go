package conversationrepo

import (
	"context"
	"errors"
	"time"

	"craftorders/internal/core/domain/model/conversation"
	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormConversationRepository implements ConversationRepository using GORM.
type GormConversationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormConversationRepository creates a new GORM conversation repository.
func NewGormConversationRepository(db *gorm.DB, tracker aggregateTracker) *GormConversationRepository {
	return &GormConversationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new conversation and its messages to the database.
func (r *GormConversationRepository) Add(ctx context.Context, aggregate *conversation.Conversation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing conversation. The message log is append-only with
// read-flag flips, so message rows are upserted rather than rewritten.
func (r *GormConversationRepository) Update(ctx context.Context, aggregate *conversation.Conversation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ConversationDTO{}).Where("id = ?", dto.ID).
		Select("IsActive", "LastMessageAt").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if len(dto.Messages) > 0 {
		err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_read"}),
		}).Create(&dto.Messages).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a conversation and its messages by ID.
func (r *GormConversationRepository) Get(ctx context.Context, id kernel.UUID) (*conversation.Conversation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ConversationDTO
	err := r.messagesInOrder(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("conversation", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderID retrieves the conversation attached to an order.
func (r *GormConversationRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*conversation.Conversation, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto ConversationDTO
	err := r.messagesInOrder(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("conversation for order", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveIdleSince retrieves all active conversations whose last activity
// is older than the cutoff. Conversations that never received a message fall
// back to their creation time.
func (r *GormConversationRepository) GetActiveIdleSince(ctx context.Context, cutoff time.Time) ([]*conversation.Conversation, error) {
	var dtos []ConversationDTO
	err := r.messagesInOrder(ctx).
		Where("is_active = ? AND GREATEST(last_message_at, created_at) < ?", true, cutoff).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	conversations := make([]*conversation.Conversation, 0, len(dtos))
	for _, dto := range dtos {
		conv, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		conversations = append(conversations, conv)
	}

	return conversations, nil
}

func (r *GormConversationRepository) messagesInOrder(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order("sent_at, id") })
}
