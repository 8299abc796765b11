// Package element models the classified units emitted by a document
// partitioner: titles, narrative text, images, figure captions, tables.
// The JSON shape matches the element lists produced by hi-res layout
// partitioners, so their output can be consumed directly.
package element

// Kind classifies one parsed document element.
type Kind string

const (
	KindTitle         Kind = "Title"
	KindNarrativeText Kind = "NarrativeText"
	KindListItem      Kind = "ListItem"
	KindImage         Kind = "Image"
	KindFigureCaption Kind = "FigureCaption"
	KindTable         Kind = "Table"
	KindUnknown       Kind = "Unknown"
)

// Metadata carries the optional attributes a partitioner attaches to an
// element. Absent attributes stay at their zero values; nothing downstream
// probes for field presence.
type Metadata struct {
	Filename    string `json:"filename,omitempty"`
	PageNumber  int    `json:"page_number,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

// Element is one classified unit of a parsed document. Adjacency in the
// element list is meaningful: the element immediately after an Image, when
// it is a FigureCaption, is that image's caption.
type Element struct {
	Type     Kind     `json:"type"`
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata,omitzero"`
}

// NewImage builds an Image element with its base64 payload.
func NewImage(text, imageBase64, filename string) Element {
	return Element{
		Type: KindImage,
		Text: text,
		Metadata: Metadata{
			Filename:    filename,
			ImageBase64: imageBase64,
		},
	}
}

// NewText builds a text-only element of the given kind.
func NewText(kind Kind, text string) Element {
	return Element{Type: kind, Text: text}
}
