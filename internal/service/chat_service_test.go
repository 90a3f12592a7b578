package service

import (
	"context"
	"strings"
	"testing"

	"gamehaven/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chatRepoStub is a stub for repository.ChatRepository.
type chatRepoStub struct {
	createConversationFn func(context.Context, uint, []uint) (*models.Conversation, error)
	getConversationFn    func(context.Context, uint) (*models.Conversation, error)
	listConversationsFn  func(context.Context, uint, int, int) ([]*models.Conversation, error)
	isParticipantFn      func(context.Context, uint, uint) (bool, error)
	createMessageFn      func(context.Context, *models.Message) error
	listMessagesFn       func(context.Context, uint, int, int) ([]*models.Message, error)
}

func (s *chatRepoStub) CreateConversation(ctx context.Context, createdBy uint, participantIDs []uint) (*models.Conversation, error) {
	return s.createConversationFn(ctx, createdBy, participantIDs)
}
func (s *chatRepoStub) GetConversation(ctx context.Context, id uint) (*models.Conversation, error) {
	return s.getConversationFn(ctx, id)
}
func (s *chatRepoStub) ListConversations(ctx context.Context, userID uint, limit, offset int) ([]*models.Conversation, error) {
	return s.listConversationsFn(ctx, userID, limit, offset)
}
func (s *chatRepoStub) IsParticipant(ctx context.Context, conversationID, userID uint) (bool, error) {
	return s.isParticipantFn(ctx, conversationID, userID)
}
func (s *chatRepoStub) CreateMessage(ctx context.Context, message *models.Message) error {
	return s.createMessageFn(ctx, message)
}
func (s *chatRepoStub) ListMessages(ctx context.Context, conversationID uint, limit, offset int) ([]*models.Message, error) {
	return s.listMessagesFn(ctx, conversationID, limit, offset)
}

func noopChatRepo() *chatRepoStub {
	return &chatRepoStub{
		createConversationFn: func(_ context.Context, createdBy uint, _ []uint) (*models.Conversation, error) {
			return &models.Conversation{ID: 1, CreatedBy: createdBy}, nil
		},
		getConversationFn: func(_ context.Context, id uint) (*models.Conversation, error) {
			return &models.Conversation{ID: id}, nil
		},
		listConversationsFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Conversation, error) {
			return nil, nil
		},
		isParticipantFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		createMessageFn: func(_ context.Context, _ *models.Message) error { return nil },
		listMessagesFn:  func(_ context.Context, _ uint, _, _ int) ([]*models.Message, error) { return nil, nil },
	}
}

func TestStartConversation_NoParticipants(t *testing.T) {
	svc := NewChatService(noopChatRepo(), noopUserRepo(), noopPublisher())

	_, err := svc.StartConversation(context.Background(), 1, nil)
	assertValidationError(t, err)
}

func TestStartConversation_UnknownParticipant(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}
	svc := NewChatService(noopChatRepo(), users, noopPublisher())

	_, err := svc.StartConversation(context.Background(), 1, []uint{99})
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestStartConversation_Success(t *testing.T) {
	chats := noopChatRepo()
	var gotParticipants []uint
	chats.createConversationFn = func(_ context.Context, createdBy uint, participantIDs []uint) (*models.Conversation, error) {
		gotParticipants = participantIDs
		return &models.Conversation{ID: 1, CreatedBy: createdBy}, nil
	}
	svc := NewChatService(chats, noopUserRepo(), noopPublisher())

	conv, err := svc.StartConversation(context.Background(), 1, []uint{2, 3})
	require.NoError(t, err)
	assert.Equal(t, uint(1), conv.CreatedBy)
	assert.Equal(t, []uint{2, 3}, gotParticipants)
}

func TestSendMessage_NonParticipant(t *testing.T) {
	chats := noopChatRepo()
	chats.isParticipantFn = func(_ context.Context, _, _ uint) (bool, error) { return false, nil }
	svc := NewChatService(chats, noopUserRepo(), noopPublisher())

	// Outsiders get the same answer as for a conversation that does not exist.
	_, err := svc.SendMessage(context.Background(), 1, 99, "hi")
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestSendMessage_Validation(t *testing.T) {
	svc := NewChatService(noopChatRepo(), noopUserRepo(), noopPublisher())

	_, err := svc.SendMessage(context.Background(), 1, 2, "   ")
	assertValidationError(t, err)

	_, err = svc.SendMessage(context.Background(), 1, 2, strings.Repeat("a", maxMessageLength+1))
	assertValidationError(t, err)
}

func TestSendMessage_Success(t *testing.T) {
	chats := noopChatRepo()
	chats.createMessageFn = func(_ context.Context, m *models.Message) error {
		m.ID = 7
		return nil
	}
	svc := NewChatService(chats, noopUserRepo(), noopPublisher())

	message, err := svc.SendMessage(context.Background(), 1, 2, "good game last night")
	require.NoError(t, err)
	assert.Equal(t, uint(7), message.ID)
	assert.Equal(t, uint(1), message.ConversationID)
	assert.Equal(t, uint(2), message.UserID)
}

func TestListMessages_NonParticipant(t *testing.T) {
	chats := noopChatRepo()
	chats.isParticipantFn = func(_ context.Context, _, _ uint) (bool, error) { return false, nil }
	svc := NewChatService(chats, noopUserRepo(), noopPublisher())

	_, err := svc.ListMessages(context.Background(), 1, 99, 20, 0)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
