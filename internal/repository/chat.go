package repository

import (
	"context"
	"errors"

	"gamehaven/internal/models"

	"gorm.io/gorm"
)

// ChatRepository defines persistence operations for direct-message
// conversations.
type ChatRepository interface {
	CreateConversation(ctx context.Context, createdBy uint, participantIDs []uint) (*models.Conversation, error)
	GetConversation(ctx context.Context, id uint) (*models.Conversation, error)
	ListConversations(ctx context.Context, userID uint, limit, offset int) ([]*models.Conversation, error)
	IsParticipant(ctx context.Context, conversationID, userID uint) (bool, error)
	CreateMessage(ctx context.Context, message *models.Message) error
	ListMessages(ctx context.Context, conversationID uint, limit, offset int) ([]*models.Message, error)
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// CreateConversation inserts the conversation and all participant rows in one
// transaction. The creator is always a participant.
func (r *chatRepository) CreateConversation(ctx context.Context, createdBy uint, participantIDs []uint) (*models.Conversation, error) {
	conv := models.Conversation{CreatedBy: createdBy}

	ids := map[uint]bool{createdBy: true}
	for _, id := range participantIDs {
		ids[id] = true
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&conv).Error; err != nil {
			return err
		}
		for id := range ids {
			participant := models.ConversationParticipant{
				ConversationID: conv.ID,
				UserID:         id,
			}
			if err := tx.Create(&participant).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return r.GetConversation(ctx, conv.ID)
}

func (r *chatRepository) GetConversation(ctx context.Context, id uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.WithContext(ctx).
		Preload("Participants.User").
		First(&conv, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Conversation", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &conv, nil
}

func (r *chatRepository) ListConversations(ctx context.Context, userID uint, limit, offset int) ([]*models.Conversation, error) {
	var convs []*models.Conversation
	err := r.db.WithContext(ctx).
		Preload("Participants.User").
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id").
		Where("cp.user_id = ?", userID).
		Order("conversations.updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&convs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	// Attach the most recent message so conversation lists can show a preview.
	for _, conv := range convs {
		var msg models.Message
		err := r.db.WithContext(ctx).
			Preload("User").
			Where("conversation_id = ?", conv.ID).
			Order("created_at DESC").
			First(&msg).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, models.NewInternalError(err)
		}
		conv.LastMessage = &msg
	}

	return convs, nil
}

func (r *chatRepository) IsParticipant(ctx context.Context, conversationID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *chatRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		// Bump the conversation so it sorts to the top of listings.
		return tx.Model(&models.Conversation{}).
			Where("id = ?", message.ConversationID).
			Update("updated_at", message.CreatedAt).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *chatRepository) ListMessages(ctx context.Context, conversationID uint, limit, offset int) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}
