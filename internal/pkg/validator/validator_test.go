package validator

import (
	"testing"

	"github.com/ai-discovery/discovery-backend/internal/entity"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestValidateChat(t *testing.T) {
	tests := []struct {
		name    string
		req     entity.ChatRequest
		wantErr error
	}{
		{
			name: "valid with messages",
			req: entity.ChatRequest{
				Messages:  []entity.ChatMessage{{Role: entity.RoleUser, Content: "Hello"}},
				Objective: "onboarding",
				MaxTokens: intPtr(500),
			},
		},
		{
			name: "valid without messages and default budget",
			req:  entity.ChatRequest{Messages: []entity.ChatMessage{}, Objective: "onboarding"},
		},
		{
			name:    "missing messages",
			req:     entity.ChatRequest{Objective: "onboarding"},
			wantErr: entity.ErrMissingField,
		},
		{
			name: "empty content is allowed",
			req: entity.ChatRequest{
				Messages:  []entity.ChatMessage{{Role: entity.RoleAssistant}},
				Objective: "onboarding",
			},
		},
		{
			name:    "missing objective",
			req:     entity.ChatRequest{},
			wantErr: entity.ErrMissingField,
		},
		{
			name:    "blank objective",
			req:     entity.ChatRequest{Objective: "   "},
			wantErr: entity.ErrMissingField,
		},
		{
			name:    "zero max tokens",
			req:     entity.ChatRequest{Messages: []entity.ChatMessage{}, Objective: "x", MaxTokens: intPtr(0)},
			wantErr: entity.ErrInvalidParameter,
		},
		{
			name:    "max tokens above int32",
			req:     entity.ChatRequest{Messages: []entity.ChatMessage{}, Objective: "x", MaxTokens: intPtr(3_000_000_000)},
			wantErr: entity.ErrInvalidParameter,
		},
		{
			name: "largest accepted max tokens",
			req:  entity.ChatRequest{Messages: []entity.ChatMessage{}, Objective: "x", MaxTokens: intPtr(2_147_483_647)},
		},
		{
			name: "missing role",
			req: entity.ChatRequest{
				Objective: "x",
				Messages:  []entity.ChatMessage{{Content: "hi"}},
			},
			wantErr: entity.ErrMissingField,
		},
		{
			name: "unknown role",
			req: entity.ChatRequest{
				Objective: "x",
				Messages:  []entity.ChatMessage{{Role: "user"}, {Role: "tool", Content: "hi"}},
			},
			wantErr: entity.ErrInvalidRole,
		},
	}

	v := NewValidator()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateChat(&tc.req)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
