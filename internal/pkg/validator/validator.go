package validator

import (
	"fmt"
	"math"
	"strings"

	"github.com/ai-discovery/discovery-backend/internal/entity"
)

// Validator checks request shapes before they reach the usecase
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateChat validates ChatRequest
func (v *Validator) ValidateChat(req *entity.ChatRequest) error {
	if strings.TrimSpace(req.Objective) == "" {
		return fmt.Errorf("%w: objective", entity.ErrMissingField)
	}

	if req.Messages == nil {
		return fmt.Errorf("%w: messages", entity.ErrMissingField)
	}

	if req.MaxTokens != nil && *req.MaxTokens < 1 {
		return fmt.Errorf("%w: max_tokens must be positive, got %d", entity.ErrInvalidParameter, *req.MaxTokens)
	}

	// Providers take the budget as int32.
	if req.MaxTokens != nil && *req.MaxTokens > math.MaxInt32 {
		return fmt.Errorf("%w: max_tokens must not exceed %d, got %d", entity.ErrInvalidParameter, math.MaxInt32, *req.MaxTokens)
	}

	for i, msg := range req.Messages {
		if msg.Role == "" {
			return fmt.Errorf("%w: messages[%d].role", entity.ErrMissingField, i)
		}
		if !msg.Role.IsValid() {
			return fmt.Errorf("%w: messages[%d].role %q (expected user, assistant or system)", entity.ErrInvalidRole, i, msg.Role)
		}
	}

	return nil
}
