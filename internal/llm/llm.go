package llm

import (
	"context"
	"time"
)

// Role is the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the conversation sent to the model.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Request is a single gateway call.
type Request struct {
	System   string
	Messages []Message
}

// Response carries the model's final text.
type Response struct {
	Text string
}

// Gateway is the capability every vendor adapter implements.
type Gateway interface {
	Name() string
	Call(ctx context.Context, req Request) (Response, error)
}

// Settings are the runtime parameters shared by all adapters.
type Settings struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// UserMessage is shorthand for a single user turn.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}
