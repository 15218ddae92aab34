package narrative

import (
	"context"
	"fmt"
	"log"
	"strings"

	"clinic_analytics/pkg/core/llm"
	"clinic_analytics/pkg/core/utils"
)

// TextGenerator is the minimal surface the description fetch needs. Satisfied
// by llm.FlashClient.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// FetchDescriptions asks a lightweight model to describe the given ICD-10
// codes and returns code -> description. This is best effort: every failure
// path yields an empty map so cluster labeling falls back to the source data.
func FetchDescriptions(ctx context.Context, gen TextGenerator, codes []string, maxAttempts int) map[string]string {
	if len(codes) == 0 {
		return map[string]string{}
	}

	prompt := fmt.Sprintf("Provide the full clinical description for these ICD-10 codes: %s. "+
		"Return a JSON object where keys are the codes and values are the short descriptions.",
		strings.Join(codes, ", "))

	raw, err := llm.CallWithRetry(ctx, maxAttempts, func(ctx context.Context) (string, error) {
		return gen.Generate(ctx, prompt)
	})
	if err != nil {
		log.Printf("[AI] ICD description fetch failed: %v", err)
		return map[string]string{}
	}

	descriptions := make(map[string]string)
	if _, err := utils.SmartParse(raw, &descriptions); err != nil {
		log.Printf("[AI] ICD description decode failed: %v", err)
		return map[string]string{}
	}
	return descriptions
}
