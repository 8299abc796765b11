// Package prep turns a partitioned document's element list into retrievable
// content for a RAG pipeline: each image is paired with the figure caption
// that immediately follows it, and a remote multimodal model can be asked to
// generate a textual description of the image.
package prep

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/thywilljoshua/rag-prep/internal/ai"
	"github.com/thywilljoshua/rag-prep/internal/element"
)

// NoCaption is recorded when an image has no adjacent figure caption.
const NoCaption = "no caption available"

// ContentTypeImage tags every processed image record.
const ContentTypeImage = "image"

// describeFailureNote is the human-readable context attached to every
// failed description attempt.
const describeFailureNote = "error generating description with Gemini"

// ErrMissingAPIKey is returned when remote description is requested but no
// credential was configured.
var ErrMissingAPIKey = errors.New("prep: remote description requested but no API key configured")

// ImageRecord is one processed image, ready to be indexed as retrievable
// content. Records are not mutated after DescribeImages returns them.
type ImageRecord struct {
	ID          string `json:"id"`
	Caption     string `json:"caption"`
	ImageText   string `json:"image_text"`
	Base64Image string `json:"base64_image"`
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
	Filename    string `json:"filename"`
}

// ErrorRecord captures one failed description attempt.
type ErrorRecord struct {
	Error        string `json:"error"`
	ErrorMessage string `json:"error_message"`
}

// Config configures a Generator. The credential is explicit configuration;
// the package never reads the process environment.
type Config struct {
	// APIKey authenticates against the remote describer. Required when
	// remote description is requested and no Describer is injected.
	APIKey string

	// Model is the remote model name (default ai.DefaultModel).
	Model string

	// SubjectDomain names the document's subject area for the description
	// prompt (default "Retrieval-Augmented Generation").
	SubjectDomain string

	// MIMEType of the embedded image payloads (default "image/jpeg").
	MIMEType string

	// Timeout bounds each remote call (default 2 minutes).
	Timeout time.Duration

	// Describer overrides the remote capability. When set, APIKey is not
	// consulted.
	Describer ai.Describer

	// Logger for count diagnostics and per-image warnings.
	Logger *zerolog.Logger
}

func (c *Config) defaults() {
	if c.Model == "" {
		c.Model = ai.DefaultModel
	}
	if c.SubjectDomain == "" {
		c.SubjectDomain = "Retrieval-Augmented Generation"
	}
	if c.MIMEType == "" {
		c.MIMEType = "image/jpeg"
	}
	if c.Timeout <= 0 {
		c.Timeout = 2 * time.Minute
	}
	if c.Logger == nil {
		nop := zerolog.Nop()
		c.Logger = &nop
	}
}

// Generator pairs images with captions and generates descriptions.
type Generator struct {
	cfg  Config
	desc ai.Describer
	log  *zerolog.Logger
}

// New creates a Generator with the given configuration.
func New(cfg Config) *Generator {
	cfg.defaults()
	return &Generator{cfg: cfg, desc: cfg.Describer, log: cfg.Logger}
}

// remote returns the describer, building the Gemini client on first use.
// ErrMissingAPIKey when no credential is available.
func (g *Generator) remote(ctx context.Context) (ai.Describer, error) {
	if g.desc != nil {
		return g.desc, nil
	}
	if g.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	gem, err := ai.NewGemini(ctx, g.cfg.APIKey, g.cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("prep: init describer: %w", err)
	}
	g.desc = gem
	return g.desc, nil
}

// DescribeImages walks elements in order, builds one ImageRecord per Image
// element, and when useRemote is set asks the remote model to describe each
// image. Per-image failures become ErrorRecords and never stop the walk; the
// record keeps the image's own text as fallback content. The only returned
// error is the fatal missing-credential precondition, checked before any
// element is processed.
func (g *Generator) DescribeImages(ctx context.Context, elements []element.Element, useRemote bool) ([]ImageRecord, []ErrorRecord, error) {
	var desc ai.Describer
	if useRemote {
		d, err := g.remote(ctx)
		if err != nil {
			return nil, nil, err
		}
		desc = d
	}

	var records []ImageRecord
	var failures []ErrorRecord

	for i, el := range elements {
		if el.Type != element.KindImage {
			continue
		}

		caption := NoCaption
		if i+1 < len(elements) && elements[i+1].Type == element.KindFigureCaption {
			caption = elements[i+1].Text
		}

		rec := ImageRecord{
			ID:          uuid.NewString(),
			Caption:     caption,
			ImageText:   el.Text,
			Base64Image: el.Metadata.ImageBase64,
			Content:     el.Text, // fallback when no description is generated
			ContentType: ContentTypeImage,
			Filename:    el.Metadata.Filename,
		}

		if useRemote {
			text, err := g.describe(ctx, desc, el, caption)
			if err != nil {
				g.log.Warn().Err(err).Int("index", i).Str("caption", caption).
					Msg("image description failed")
				failures = append(failures, ErrorRecord{
					Error:        err.Error(),
					ErrorMessage: describeFailureNote,
				})
			} else {
				rec.Content = text
			}
		}

		records = append(records, rec)
	}

	g.log.Info().Int("images", len(records)).Msg("processed images with captions and descriptions")
	g.log.Info().Int("errors", len(failures)).Msg("description errors encountered")
	return records, failures, nil
}

// describe decodes the image payload and runs one bounded remote call.
func (g *Generator) describe(ctx context.Context, desc ai.Describer, el element.Element, caption string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(el.Metadata.ImageBase64)
	if err != nil {
		return "", fmt.Errorf("decode image payload: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()
	return desc.Describe(ctx, describePrompt(caption, el.Text, g.cfg.SubjectDomain), g.cfg.MIMEType, raw)
}

// DescribeTables validates the remote precondition for the table pathway.
// Table description generation itself is not implemented.
// TODO: summarize Table elements through the describer once the table
// prompt format is settled.
func (g *Generator) DescribeTables(ctx context.Context, elements []element.Element, useRemote bool) error {
	if useRemote {
		if _, err := g.remote(ctx); err != nil {
			return err
		}
	}
	return nil
}
