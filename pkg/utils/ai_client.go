package utils

import (
	"context"

	"github.com/pgvector/pgvector-go"
)

// AIClientInterface is the generative collaborator used by the planner and
// reviewer services. Implementations must return bare JSON from GenerateJSON,
// no markdown fences or prose.
type AIClientInterface interface {
	GenerateJSON(ctx context.Context, instructions string, prompt string) (string, error)
	GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
}
