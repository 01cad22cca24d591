package chat

import "github.com/ai-discovery/discovery-backend/internal/entity"

const systemInstructionPrefix = "You are a product-discovery assistant for objective: "

// SystemInstruction embeds the objective verbatim
func SystemInstruction(objective string) string {
	return systemInstructionPrefix + objective
}

// buildMessages puts the system instruction first, then the caller's messages in order
func buildMessages(objective string, messages []entity.ChatMessage) []entity.CompletionMessage {
	out := make([]entity.CompletionMessage, 0, len(messages)+1)
	out = append(out, entity.CompletionMessage{
		Role:    entity.RoleSystem,
		Content: SystemInstruction(objective),
	})

	for _, msg := range messages {
		out = append(out, entity.CompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	return out
}
