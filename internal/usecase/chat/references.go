package chat

import "github.com/ai-discovery/discovery-backend/internal/entity"

// StaticReferences returns the placeholder references attached to every answer.
// They are not retrieved from any corpus. A fresh slice is returned on each call.
func StaticReferences() []entity.DocumentReference {
	return []entity.DocumentReference{
		{
			Title:    "Pesquisa de Usuários",
			Snippet:  "Os usuários indicaram preferência por interfaces personalizadas...",
			Filename: "pesquisa_usuarios.pdf",
			Distance: 0.23,
		},
		{
			Title:    "Análise de Mercado",
			Snippet:  "Concorrentes têm adotado abordagens de personalização...",
			Filename: "analise_mercado.pdf",
			Distance: 0.35,
		},
	}
}
