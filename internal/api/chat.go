package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"docchat-backend/internal/chat"
	"docchat-backend/internal/llm"
	"docchat-backend/pkg/api"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var (
	errInvalidMessages = CodedErrorf(http.StatusBadRequest, "Invalid messages format")
	errNoMessages      = errors.New("no messages to send")
)

type ChatService struct {
	model  llm.Model
	policy ErrorPolicy
	logger *zap.Logger
}

func NewChatService(model llm.Model, policy ErrorPolicy, logger *zap.Logger) *ChatService {
	return &ChatService{model: model, policy: policy, logger: logger}
}

func (s *ChatService) AddRoutes(r chi.Router) {
	r.Post("/chat", RestHandler(s.policy, s.Chat))
}

func (s *ChatService) Chat(r *http.Request) (any, error) {
	req, err := ParseRequest[api.ChatRequest](r)
	if err != nil {
		return nil, errInvalidMessages
	}

	messages, ok := decodeMessages(req.Messages)
	if !ok {
		return nil, errInvalidMessages
	}

	if len(messages) == 0 {
		return nil, CodedErrorMessage(http.StatusInternalServerError, errNoMessages.Error(), errNoMessages)
	}

	session := chat.NewSession(s.model, chat.BuildHistory(messages), s.logger)

	reply, err := session.SendMessage(r.Context(), messages[len(messages)-1].Content)
	if err != nil {
		return nil, CodedErrorMessage(http.StatusInternalServerError, rootCause(err).Error(), err)
	}

	return api.ChatResponse{Content: reply}, nil
}

// decodeMessages accepts any JSON array. A missing, null or non-array value
// is rejected; elements are decoded best effort and a field that is not a
// string is left empty, so bad content fails at the model rather than here.
func decodeMessages(raw json.RawMessage) ([]api.Message, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, false
	}

	messages := make([]api.Message, 0, len(elements))
	for _, element := range elements {
		messages = append(messages, decodeMessage(element))
	}
	return messages, true
}

func decodeMessage(raw json.RawMessage) api.Message {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return api.Message{}
	}

	var msg api.Message
	_ = json.Unmarshal(fields["role"], &msg.Role)
	_ = json.Unmarshal(fields["content"], &msg.Content)
	return msg
}
