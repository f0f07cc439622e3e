package ai

const (
	maxTokens = 512

	// contentPath locates the text fragment inside a stream frame payload.
	contentPath = "choices.0.delta.content"
)

// chatRequest is the body sent to the OpenAI-compatible completion endpoint.
type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Stream         bool          `json:"stream"`
	MaxTokens      int           `json:"max_tokens"`
	EnableThinking bool          `json:"enable_thinking"`
}

// chatMessage is a single message in the chat format.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func newChatRequest(model, description string) chatRequest {
	return chatRequest{
		Model:          model,
		Messages:       buildMessages(description),
		Stream:         true,
		MaxTokens:      maxTokens,
		EnableThinking: false,
	}
}
