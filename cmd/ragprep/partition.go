package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	rpdf "rsc.io/pdf"

	"github.com/thywilljoshua/rag-prep/internal/element"
)

func partitionCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "partition <pdf>",
		Short: "Split a PDF into classified text elements",
		Long: "Extracts per-page text and classifies blocks into Title, NarrativeText,\n" +
			"FigureCaption and Table elements, in the JSON shape the describe command\n" +
			"consumes. Image payloads are not extracted; use a hi-res layout\n" +
			"partitioner when image descriptions are needed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			elements, err := partitionPDF(args[0])
			if err != nil {
				return err
			}
			if out != "" {
				return element.Save(out, elements)
			}
			return element.Encode(cmd.OutOrStdout(), elements)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the element list to a file instead of stdout")
	return cmd
}

func partitionPDF(path string) ([]element.Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	doc, err := rpdf.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	filename := info.Name()
	var elements []element.Element
	for n := 1; n <= doc.NumPage(); n++ {
		text := pageText(doc.Page(n))
		for _, block := range splitBlocks(text) {
			el := classifyBlock(block)
			el.Metadata.Filename = filename
			el.Metadata.PageNumber = n
			elements = append(elements, el)
		}
	}
	return elements, nil
}

// pageText flattens a page's positioned text runs into lines, inserting
// spaces on horizontal gaps and newlines on baseline changes.
func pageText(p rpdf.Page) string {
	content := p.Content()
	var b strings.Builder
	var lastY, lastEnd float64
	for i, t := range content.Text {
		if i > 0 {
			if t.Y != lastY {
				b.WriteByte('\n')
			} else if t.X-lastEnd > 1 {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
		lastY = t.Y
		lastEnd = t.X + t.W
	}
	return b.String()
}

var blankLine = regexp.MustCompile(`\n\s*\n`)

// splitBlocks cuts page text into blocks on blank lines.
func splitBlocks(text string) []string {
	var blocks []string
	for _, raw := range blankLine.Split(text, -1) {
		if b := strings.TrimSpace(raw); b != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

var captionRe = regexp.MustCompile(`(?i)^(figure|fig\.?|table)\s+\d`)

// classifyBlock assigns an element kind to one text block.
func classifyBlock(block string) element.Element {
	lines := strings.Split(block, "\n")
	switch {
	case captionRe.MatchString(block) && len(lines) <= 2:
		return element.NewText(element.KindFigureCaption, block)
	case looksLikeTable(lines):
		return element.NewText(element.KindTable, block)
	case len(lines) == 1 && len(block) < 80 && !strings.HasSuffix(block, "."):
		return element.NewText(element.KindTitle, block)
	default:
		return element.NewText(element.KindNarrativeText, block)
	}
}

var twoPlusSpaces = regexp.MustCompile(`\s{2,}`)

// looksLikeTable reports whether the lines form a block of space-aligned
// columns: at least two rows with the same column count of two or more.
func looksLikeTable(lines []string) bool {
	cols := 0
	rows := 0
	for _, ln := range lines {
		parts := twoPlusSpaces.Split(strings.TrimSpace(ln), -1)
		if len(parts) < 2 {
			return false
		}
		if cols == 0 {
			cols = len(parts)
		}
		if len(parts) != cols {
			return false
		}
		rows++
	}
	return rows >= 2
}
