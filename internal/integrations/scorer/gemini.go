package scorer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.0-flash-lite"

// geminiBackend implements backend over the Gemini API with JSON-mode
// responses.
type geminiBackend struct {
	client *genai.Client
	model  string
	retry  RetryConfig
}

func newGeminiBackend(apiKey, model string) (*geminiBackend, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if model == "" {
		model = defaultGeminiModel
	}

	return &geminiBackend{
		client: client,
		model:  model,
		retry:  DefaultRetryConfig(),
	}, nil
}

func (g *geminiBackend) Close() error {
	return g.client.Close()
}

func (g *geminiBackend) completeJSON(ctx context.Context, system, user string) (map[string]any, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.3) // Lower temperature for more consistent scores
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	resp, err := withRetry(ctx, g.retry, "generate content", func() (*genai.GenerateContentResponse, error) {
		return model.GenerateContent(ctx, genai.Text(user))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call Gemini API: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from LLM")
	}

	var responseText string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText += string(txt)
		}
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(responseText), &fields); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	return fields, nil
}
