package main

const chatHistoryLimit = 10

// ChatMessage is a single line of the in-game conversation with the AI
// opponent. Role follows the chat-completions convention: "system", "user",
// or "assistant".
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatManager keeps the rolling conversation shown in the chat panel and sent
// to the provider. Only the newest chatHistoryLimit messages are retained so
// prompts stay bounded.
type ChatManager struct {
	messages []ChatMessage
}

func NewChatManager() *ChatManager {
	return &ChatManager{}
}

func (c *ChatManager) Add(role, content string) {
	c.messages = append(c.messages, ChatMessage{Role: role, Content: content})
	if len(c.messages) > chatHistoryLimit {
		c.messages = c.messages[len(c.messages)-chatHistoryLimit:]
	}
}

func (c *ChatManager) Messages() []ChatMessage {
	out := make([]ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// LastUserMessage returns the newest user-authored line, so a request like
// "go easy on me" can ride along with the next move prompt.
func (c *ChatManager) LastUserMessage() string {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == "user" {
			return c.messages[i].Content
		}
	}
	return ""
}

func (c *ChatManager) Clear() {
	c.messages = nil
}

func (c *ChatManager) Size() int {
	return len(c.messages)
}
