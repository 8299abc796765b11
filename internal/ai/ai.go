// Package ai wraps the remote multimodal generation capability: text and
// image in, generated text out.
package ai

import "context"

// Describer produces a natural-language description of an image from a
// prompt and the raw image bytes.
type Describer interface {
	Describe(ctx context.Context, prompt, mimeType string, data []byte) (string, error)
}

// Noop satisfies Describer without calling anything.
type Noop struct{}

func (Noop) Describe(ctx context.Context, prompt, mimeType string, data []byte) (string, error) {
	return "", nil
}
