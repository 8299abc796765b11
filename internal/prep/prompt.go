package prep

import (
	"fmt"
	"strings"
)

// describePrompt assembles the description request for one image. The
// requirement list and length bands shape descriptions that work as
// standalone retrievable content for technical documents.
func describePrompt(caption, imageText, domain string) string {
	if imageText == "" {
		imageText = "no text"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a comprehensive and detailed description of this image from a technical document about %s.\n\n", domain)
	b.WriteString("CONTEXT INFORMATION:\n")
	fmt.Fprintf(&b, "- Caption: %s\n", caption)
	fmt.Fprintf(&b, "- Text extracted from image: %s\n\n", imageText)
	b.WriteString("DESCRIPTION REQUIREMENTS:\n")
	b.WriteString("1. Begin with a clear overview of what the image shows (diagram, chart, architecture, etc.)\n")
	b.WriteString("2. If it is a diagram or flowchart: describe components, connections, data flow direction, and system architecture\n")
	b.WriteString("3. If it is a chart or graph: explain axes, trends, key data points and their significance\n")
	b.WriteString("4. Explain technical terminology and abbreviations that appear in the image\n")
	fmt.Fprintf(&b, "5. Interpret how this visual relates to %s concepts and implementation\n", domain)
	b.WriteString("6. Include any numerical data, performance metrics, or comparative results shown\n")
	b.WriteString("7. Target length: 150-300 words for complex diagrams, 100-150 words for simple images\n\n")
	fmt.Fprintf(&b, "Focus on providing information that would be valuable in a technical context for someone implementing or researching %s systems.", domain)
	return b.String()
}
