package api

import "encoding/json"

type Message struct {
	Role    string `json:"role"` // "user", "assistant", anything else is treated as the model
	Content string `json:"content"`
}

// ChatRequest keeps messages raw so that a missing or non-array value can be
// told apart from an empty list.
type ChatRequest struct {
	Messages json.RawMessage `json:"messages"`
}

type ChatResponse struct {
	Content string `json:"content"`
}
