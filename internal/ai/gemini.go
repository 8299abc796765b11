package ai

import (
	"context"
	"errors"

	genai "google.golang.org/genai"
)

// DefaultModel is the multimodal model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Gemini implements Describer on top of the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini builds a Gemini describer. The API key is required; the model
// name defaults to DefaultModel.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("missing Gemini API key")
	}
	if model == "" {
		model = DefaultModel
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &Gemini{client: c, model: model}, nil
}

// Describe sends a multimodal request with the prompt and inline image bytes
// and returns the generated text.
func (g *Gemini) Describe(ctx context.Context, prompt, mimeType string, data []byte) (string, error) {
	content := &genai.Content{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: prompt},
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
		},
	}
	res, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{content}, nil)
	if err != nil {
		return "", err
	}
	return res.Text(), nil
}
