// Package llm wraps the Gemini API access used by the narrative layer: a
// provider abstraction for structured JSON generation, error classification,
// and the retry policy for rate-limited calls.
package llm

import (
	"context"

	"google.golang.org/genai"
)

// Request describes one structured generation call.
type Request struct {
	Model  string
	Prompt string
	// Schema constrains the response shape when the backend supports it.
	// May be nil for free-form JSON.
	Schema *genai.Schema
}

// Provider is the interface narrative generation talks to. Implementations
// must return the raw model output; callers handle decoding and repair.
type Provider interface {
	GenerateJSON(ctx context.Context, req Request) (string, error)
}
