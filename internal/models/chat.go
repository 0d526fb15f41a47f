// ABOUTME: Chat message types shared by the LLM clients and the HTTP API
// ABOUTME: Mirrors the role/content shape used by Ollama and OpenAI chat APIs
package models

// Chat roles understood by both backends.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single exchange in a chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
