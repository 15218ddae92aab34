package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	gemini "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// FlashClient is a lightweight client for the small auxiliary calls (ICD code
// descriptions) that do not need structured output mode. It uses the legacy
// SDK, which keeps a long-lived client instead of dialing per request.
type FlashClient struct {
	modelName string
	client    *gemini.Client
}

// NewFlashClient dials the Gemini API with the key from the environment.
func NewFlashClient(ctx context.Context, modelName string) (*FlashClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := gemini.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	return &FlashClient{modelName: modelName, client: client}, nil
}

// Close releases the underlying connection.
func (c *FlashClient) Close() error {
	return c.client.Close()
}

// Generate runs a single prompt and concatenates the text parts of the first
// candidate.
func (c *FlashClient) Generate(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.modelName)
	model.SetTemperature(0.1)

	resp, err := model.GenerateContent(ctx, gemini.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from %s", c.modelName)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(gemini.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String(), nil
}
