package chat

import (
	"context"
	"fmt"
	"sync"

	"docchat-backend/internal/llm"
	"docchat-backend/pkg/api"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// MapRole converts a client role to the model vocabulary: "user" stays
// "user", every other role is attributed to the model.
func MapRole(role string) string {
	if role == RoleUser {
		return RoleUser
	}
	return RoleModel
}

func messageType(role string) llms.ChatMessageType {
	if MapRole(role) == RoleUser {
		return llms.ChatMessageTypeHuman
	}
	return llms.ChatMessageTypeAI
}

// BuildHistory formats every message except the last as conversation history.
func BuildHistory(messages []api.Message) []llms.MessageContent {
	if len(messages) <= 1 {
		return nil
	}

	history := make([]llms.MessageContent, 0, len(messages)-1)
	for _, msg := range messages[:len(messages)-1] {
		history = append(history, llms.TextParts(messageType(msg.Role), msg.Content))
	}
	return history
}

// Session is a stateful chat wrapper that conditions every new turn on the
// turns before it.
type Session struct {
	mu      sync.Mutex
	id      uuid.UUID
	model   llm.Model
	history []llms.MessageContent
	logger  *zap.Logger
}

func NewSession(model llm.Model, history []llms.MessageContent, logger *zap.Logger) *Session {
	id := uuid.New()
	return &Session{
		id:      id,
		model:   model,
		history: append([]llms.MessageContent(nil), history...),
		logger:  logger.With(zap.String("session_id", id.String())),
	}
}

func (session *Session) ID() uuid.UUID {
	return session.id
}

func (session *Session) History() []llms.MessageContent {
	session.mu.Lock()
	defer session.mu.Unlock()

	return append([]llms.MessageContent(nil), session.history...)
}

// SendMessage submits text as the next user turn. An empty reply is an error.
// The turn is only recorded in the history when the model answers.
func (session *Session) SendMessage(ctx context.Context, text string) (string, error) {
	session.mu.Lock()
	defer session.mu.Unlock()

	turn := llms.TextParts(llms.ChatMessageTypeHuman, text)
	messages := append(append(make([]llms.MessageContent, 0, len(session.history)+1), session.history...), turn)

	session.logger.Debug("sending chat turn", zap.Int("history_length", len(session.history)))

	resp, err := session.model.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("chat session %s: %w", session.id, err)
	}

	reply, err := llm.ResponseText(resp)
	if err != nil {
		return "", fmt.Errorf("chat session %s: %w", session.id, err)
	}
	if reply == "" {
		return "", fmt.Errorf("chat session %s: %w", session.id, llm.ErrEmptyResponse)
	}

	session.history = append(session.history, turn, llms.TextParts(llms.ChatMessageTypeAI, reply))

	return reply, nil
}
