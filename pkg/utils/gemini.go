package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/pgvector/pgvector-go"
	"google.golang.org/api/option"
)

const hashEmbeddingDim = 1536

// GeminiClient implements AIClientInterface on the Gemini free tier.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (AIClientInterface, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) GenerateJSON(ctx context.Context, instructions string, prompt string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	// Force JSON-only output so callers never have to strip markdown fences.
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.1)
	m.SetTopP(0.5)
	m.SetTopK(20)
	if instructions != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(instructions)}}
	}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no content")
	}

	content := strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("gemini: response is not valid json")
	}
	return content, nil
}

// GetEmbedding falls back to a deterministic hash projection: the free tier
// has no dedicated embedding endpoint, and the POI search only needs stable,
// roughly similarity-preserving vectors.
func (c *GeminiClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	return HashEmbedding(text), nil
}

// HashEmbedding maps word tokens onto a fixed-size vector via FNV hashing and
// L2-normalizes the result. Identical texts always produce identical vectors.
func HashEmbedding(text string) pgvector.Vector {
	vec := make([]float32, hashEmbeddingDim)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(word))
		idx := int(h.Sum32()) % hashEmbeddingDim
		if idx < 0 {
			idx += hashEmbeddingDim
		}
		vec[idx] += 1.0
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1.0 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return pgvector.NewVector(vec)
}
