package prep

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/thywilljoshua/rag-prep/internal/element"
)

// fakeDescriber records calls and returns a canned result per call.
type fakeDescriber struct {
	text    string
	err     error
	calls   int
	prompts []string
}

func (f *fakeDescriber) Describe(ctx context.Context, prompt, mimeType string, data []byte) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

func TestCaptionPairing(t *testing.T) {
	tests := []struct {
		name     string
		elements []element.Element
		caption  string
		content  string
	}{
		{
			name: "image followed by caption",
			elements: []element.Element{
				element.NewImage("fig1", "AAAA", "doc.pdf"),
				element.NewText(element.KindFigureCaption, "Figure 1: architecture"),
			},
			caption: "Figure 1: architecture",
			content: "fig1",
		},
		{
			name: "image followed by table",
			elements: []element.Element{
				element.NewImage("", "AAAA", ""),
				element.NewText(element.KindTable, "a  b"),
			},
			caption: NoCaption,
			content: "",
		},
		{
			name: "image at end of sequence",
			elements: []element.Element{
				element.NewText(element.KindNarrativeText, "intro"),
				element.NewImage("chart", "AAAA", ""),
			},
			caption: NoCaption,
			content: "chart",
		},
	}

	gen := New(Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, failures, err := gen.DescribeImages(context.Background(), tt.elements, false)
			if err != nil {
				t.Fatal(err)
			}
			if len(records) != 1 {
				t.Fatalf("got %d records, want 1", len(records))
			}
			if len(failures) != 0 {
				t.Fatalf("got %d error records, want 0", len(failures))
			}
			rec := records[0]
			if rec.Caption != tt.caption {
				t.Errorf("caption = %q, want %q", rec.Caption, tt.caption)
			}
			if rec.Content != tt.content {
				t.Errorf("content = %q, want %q", rec.Content, tt.content)
			}
			if rec.ContentType != ContentTypeImage {
				t.Errorf("content_type = %q, want %q", rec.ContentType, ContentTypeImage)
			}
		})
	}
}

func TestOneRecordPerImage(t *testing.T) {
	elements := []element.Element{
		element.NewText(element.KindTitle, "A Survey"),
		element.NewImage("one", "AAAA", ""),
		element.NewImage("two", "AAAA", ""),
		element.NewText(element.KindFigureCaption, "Figure 2: pipeline"),
		element.NewText(element.KindNarrativeText, "body"),
		element.NewImage("three", "AAAA", ""),
	}

	gen := New(Config{})
	records, _, err := gen.DescribeImages(context.Background(), elements, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	// Only the image directly before the caption is paired with it.
	if records[0].Caption != NoCaption {
		t.Errorf("first caption = %q, want sentinel", records[0].Caption)
	}
	if records[1].Caption != "Figure 2: pipeline" {
		t.Errorf("second caption = %q", records[1].Caption)
	}
	seen := map[string]bool{}
	for _, rec := range records {
		if rec.ID == "" || seen[rec.ID] {
			t.Errorf("record ID %q not unique", rec.ID)
		}
		seen[rec.ID] = true
	}
}

func TestEmptyAndImageFreeSequences(t *testing.T) {
	gen := New(Config{})
	for _, elements := range [][]element.Element{
		nil,
		{element.NewText(element.KindNarrativeText, "text only")},
	} {
		records, failures, err := gen.DescribeImages(context.Background(), elements, false)
		if err != nil {
			t.Fatal(err)
		}
		if len(records) != 0 || len(failures) != 0 {
			t.Errorf("got %d records, %d errors for image-free input", len(records), len(failures))
		}
	}
}

func TestRemoteDescribeSuccess(t *testing.T) {
	desc := &fakeDescriber{text: "A block diagram of a retriever feeding a generator."}
	gen := New(Config{Describer: desc, SubjectDomain: "Retrieval-Augmented Generation"})

	elements := []element.Element{
		element.NewImage("retriever generator", "AAAA", "survey.pdf"),
		element.NewText(element.KindFigureCaption, "Figure 3: RAG overview"),
	}
	records, failures, err := gen.DescribeImages(context.Background(), elements, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(failures) != 0 {
		t.Fatalf("unexpected error records: %v", failures)
	}
	if desc.calls != 1 {
		t.Fatalf("describer called %d times, want 1", desc.calls)
	}
	if records[0].Content != desc.text {
		t.Errorf("content = %q, want generated description", records[0].Content)
	}
	// Fallback text stays available on the record.
	if records[0].ImageText != "retriever generator" {
		t.Errorf("image_text = %q", records[0].ImageText)
	}
	prompt := desc.prompts[0]
	for _, want := range []string{"Figure 3: RAG overview", "retriever generator", "Retrieval-Augmented Generation"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestRemoteFailureDoesNotAbort(t *testing.T) {
	desc := &fakeDescriber{err: errors.New("model overloaded")}
	gen := New(Config{Describer: desc})

	elements := []element.Element{
		element.NewImage("first", "AAAA", ""),
		element.NewImage("second", "AAAA", ""),
	}
	records, failures, err := gen.DescribeImages(context.Background(), elements, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if len(failures) != 2 {
		t.Fatalf("got %d error records, want one per failing image", len(failures))
	}
	for i, rec := range records {
		if rec.Content != rec.ImageText {
			t.Errorf("record %d content = %q, want fallback %q", i, rec.Content, rec.ImageText)
		}
	}
	for _, fr := range failures {
		if !strings.Contains(fr.Error, "model overloaded") {
			t.Errorf("error = %q, want wrapped cause", fr.Error)
		}
		if fr.ErrorMessage == "" {
			t.Error("error_message empty")
		}
	}
}

func TestBadPayloadBecomesErrorRecord(t *testing.T) {
	desc := &fakeDescriber{text: "unused"}
	gen := New(Config{Describer: desc})

	elements := []element.Element{
		element.NewImage("x", "not base64!", ""),
		element.NewImage("y", "AAAA", ""),
	}
	records, failures, err := gen.DescribeImages(context.Background(), elements, true)
	if err != nil {
		t.Fatal(err)
	}
	if desc.calls != 1 {
		t.Fatalf("describer called %d times, want 1 (decode failure short-circuits)", desc.calls)
	}
	if len(failures) != 1 {
		t.Fatalf("got %d error records, want 1", len(failures))
	}
	if records[0].Content != "x" {
		t.Errorf("failed record content = %q, want fallback", records[0].Content)
	}
	if records[1].Content != "unused" {
		t.Errorf("second record content = %q, want description", records[1].Content)
	}
}

func TestMissingAPIKeyIsFatal(t *testing.T) {
	gen := New(Config{})
	elements := []element.Element{element.NewImage("fig", "AAAA", "")}

	records, failures, err := gen.DescribeImages(context.Background(), elements, true)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("err = %v, want ErrMissingAPIKey", err)
	}
	if records != nil || failures != nil {
		t.Errorf("got records %v, errors %v; nothing should be processed", records, failures)
	}

	if err := gen.DescribeTables(context.Background(), elements, true); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("DescribeTables err = %v, want ErrMissingAPIKey", err)
	}
}

func TestDescribeTablesWithoutRemote(t *testing.T) {
	gen := New(Config{})
	elements := []element.Element{element.NewText(element.KindTable, "a  b\nc  d")}
	if err := gen.DescribeTables(context.Background(), elements, false); err != nil {
		t.Fatal(err)
	}
}
