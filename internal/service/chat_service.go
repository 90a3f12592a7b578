package service

import (
	"context"
	"strings"

	"gamehaven/internal/events"
	"gamehaven/internal/models"
	"gamehaven/internal/repository"
)

const maxMessageLength = 4000

// ChatService handles direct-message conversations between users.
type ChatService struct {
	chatRepo  repository.ChatRepository
	userRepo  repository.UserRepository
	publisher *events.Publisher
}

// NewChatService creates a new chat service
func NewChatService(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	publisher *events.Publisher,
) *ChatService {
	return &ChatService{
		chatRepo:  chatRepo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// StartConversation opens a conversation between the caller and the given
// participants.
func (s *ChatService) StartConversation(ctx context.Context, createdBy uint, participantIDs []uint) (*models.Conversation, error) {
	if len(participantIDs) == 0 {
		return nil, models.NewValidationError("At least one participant is required")
	}

	for _, id := range participantIDs {
		if id == createdBy {
			continue
		}
		if _, err := s.userRepo.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}

	return s.chatRepo.CreateConversation(ctx, createdBy, participantIDs)
}

// ListConversations returns the caller's conversations, most recently active
// first.
func (s *ChatService) ListConversations(ctx context.Context, userID uint, limit, offset int) ([]*models.Conversation, error) {
	return s.chatRepo.ListConversations(ctx, userID, limit, offset)
}

// GetConversation returns a conversation the caller participates in.
func (s *ChatService) GetConversation(ctx context.Context, conversationID, userID uint) (*models.Conversation, error) {
	ok, err := s.chatRepo.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewNotFoundError("Conversation", conversationID)
	}
	return s.chatRepo.GetConversation(ctx, conversationID)
}

// SendMessage posts a message into a conversation the caller participates
// in and notifies the other participants.
func (s *ChatService) SendMessage(ctx context.Context, conversationID, userID uint, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Message cannot be empty")
	}
	if len(content) > maxMessageLength {
		return nil, models.NewValidationError("Message is too long")
	}

	ok, err := s.chatRepo.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewNotFoundError("Conversation", conversationID)
	}

	message := &models.Message{
		ConversationID: conversationID,
		UserID:         userID,
		Content:        content,
	}
	if err := s.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	conv, err := s.chatRepo.GetConversation(ctx, conversationID)
	if err == nil {
		for _, p := range conv.Participants {
			if p.UserID == userID {
				continue
			}
			s.publisher.PublishUser(ctx, p.UserID, events.Event{
				Type:     events.TypeMessageCreated,
				EntityID: message.ID,
			})
		}
	}

	return message, nil
}

// ListMessages returns messages in a conversation the caller participates
// in, newest first.
func (s *ChatService) ListMessages(ctx context.Context, conversationID, userID uint, limit, offset int) ([]*models.Message, error) {
	ok, err := s.chatRepo.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewNotFoundError("Conversation", conversationID)
	}
	return s.chatRepo.ListMessages(ctx, conversationID, limit, offset)
}
