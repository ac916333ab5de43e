package llm

import "context"

// Message roles follow the chat-completions convention.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

// Context is one reasoning request: the prompt stack plus sampling knobs.
type Context struct {
	Messages    []Message
	Temperature float64
	TopP        float64
	MaxTokens   int
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

type Response struct {
	Text         string
	Model        string
	Usage        Usage
	FinishReason string
}

// LLMAdapter is the provider-agnostic reasoning interface. Adapters map
// Context to their wire format and back.
type LLMAdapter interface {
	Generate(ctx context.Context, input Context) (Response, error)
	Stream(ctx context.Context, input Context) (<-chan string, error)
	Name() string
}

// System prepends a system message to a message list.
func System(content string, rest ...Message) []Message {
	out := make([]Message, 0, 1+len(rest))
	out = append(out, Message{Role: RoleSystem, Content: content})
	out = append(out, rest...)
	return out
}

// User builds a user message.
func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}
