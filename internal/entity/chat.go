package entity

// Role is the author of a chat message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// IsValid reports whether the role is one the gateway accepts
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	default:
		return false
	}
}

const DefaultMaxTokens = 1000

type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /chat.
// MaxTokens is a pointer so an absent field can be told apart from an explicit zero.
type ChatRequest struct {
	Messages  []ChatMessage `json:"messages"`
	Objective string        `json:"objective"`
	MaxTokens *int          `json:"max_tokens,omitempty"`
}

// TokenBudget returns max_tokens or the default when the field was omitted
func (r *ChatRequest) TokenBudget() int {
	if r.MaxTokens == nil {
		return DefaultMaxTokens
	}
	return *r.MaxTokens
}

type DocumentReference struct {
	Title    string  `json:"title"`
	Snippet  string  `json:"snippet"`
	Filename string  `json:"filename"`
	Distance float64 `json:"distance"`
}

type ChatResponse struct {
	Response   string              `json:"response"`
	References []DocumentReference `json:"references"`
}
