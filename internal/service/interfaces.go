package service

import "context"

// ChatRequest is one turn sent to the model: the composed prompt as the system
// message and the raw user query as the user message.
type ChatRequest struct {
	SystemPrompt string
	UserMessage  string
}

// ChatClient streams a completion, handing each text fragment to onDelta as it
// arrives, and returns the full text.
type ChatClient interface {
	StreamChat(ctx context.Context, req ChatRequest, onDelta func(string)) (string, error)
}
