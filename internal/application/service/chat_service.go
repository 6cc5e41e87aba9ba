package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/repository"
	"github.com/vialtrack/vialtrack-api/pkg/agent"
	"github.com/vialtrack/vialtrack-api/pkg/apperror"
)

const chatHistoryLimit = 50

// ChatService runs the AI assistant conversation: it persists both sides of
// the exchange and turns transport failures into friendly assistant replies
// instead of surfacing raw errors.
type ChatService struct {
	chatRepo repository.ChatMessageRepository
	client   *agent.Client
	log      *logrus.Entry
}

// NewChatService creates a new chat service
func NewChatService(chatRepo repository.ChatMessageRepository, client *agent.Client) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
		client:   client,
		log:      logrus.WithField("component", "chat"),
	}
}

// ChatReply is the assistant's answer to one message
type ChatReply struct {
	Message        *entity.ChatMessage `json:"message"`
	ConversationID *uuid.UUID          `json:"conversation_id,omitempty"`
	// Failed is true when the reply is an error explanation rather than a
	// real answer
	Failed        bool   `json:"failed"`
	ErrorCategory string `json:"error_category,omitempty"`
}

// SendMessage stores the user's message, forwards it to the assistant and
// stores the reply. The user turn is kept even when the assistant is
// unreachable so history reflects what was asked.
func (s *ChatService) SendMessage(ctx context.Context, userID uuid.UUID, conversationID *uuid.UUID, content string) (*ChatReply, error) {
	if content == "" {
		return nil, apperror.NewBadRequestError("Message cannot be empty")
	}

	userMsg := &entity.ChatMessage{
		UserID:         userID,
		ConversationID: conversationID,
		Role:           "user",
		Content:        content,
	}
	if err := s.chatRepo.Create(ctx, userMsg); err != nil {
		return nil, err
	}

	resp, err := s.client.Send(ctx, &agent.ChatRequest{
		Message:        content,
		ConversationID: conversationID,
	})
	if err != nil {
		category := agent.Categorize(err)
		s.log.WithError(err).WithField("category", category).Warn("assistant unreachable")

		failMsg := &entity.ChatMessage{
			UserID:         userID,
			ConversationID: conversationID,
			Role:           "assistant",
			Content:        agent.FriendlyMessage(category),
		}
		if err := s.chatRepo.Create(ctx, failMsg); err != nil {
			return nil, err
		}
		return &ChatReply{
			Message:        failMsg,
			ConversationID: conversationID,
			Failed:         true,
			ErrorCategory:  string(category),
		}, nil
	}

	replyConversation := conversationID
	if replyConversation == nil {
		replyConversation = &resp.ConversationID
	}

	assistantMsg := &entity.ChatMessage{
		UserID:         userID,
		ConversationID: replyConversation,
		Role:           "assistant",
		Content:        resp.Reply,
	}
	if err := s.chatRepo.Create(ctx, assistantMsg); err != nil {
		return nil, err
	}

	return &ChatReply{
		Message:        assistantMsg,
		ConversationID: replyConversation,
	}, nil
}

// GetHistory returns the user's recent chat history in chronological order
func (s *ChatService) GetHistory(ctx context.Context, userID uuid.UUID) ([]entity.ChatMessage, error) {
	return s.chatRepo.ListByUser(ctx, userID, chatHistoryLimit)
}

// ClearHistory deletes the user's chat history
func (s *ChatService) ClearHistory(ctx context.Context, userID uuid.UUID) error {
	return s.chatRepo.DeleteByUser(ctx, userID)
}
