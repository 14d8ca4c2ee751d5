package models

// Block type names recognized by the renderer. Anything else falls through to
// the renderer's default case.
const (
	BlockTypeText  = "block"
	BlockTypeImage = "image"
)

// Mark and mark-definition names used inside text blocks.
const (
	MarkStrong = "strong"
	MarkEm     = "em"
	MarkCode   = "code"
	MarkLink   = "link"
)

// Block is one entry of a rich-text body: a tagged union over Type. Text
// blocks carry Style/Children/MarkDefs, image blocks carry Asset/Alt. The
// zero value of the unused arm stays empty on the wire.
type Block struct {
	Type string `json:"_type"`
	Key  string `json:"_key,omitempty"`

	// Type == "block"
	Style    string    `json:"style,omitempty"`
	Children []Span    `json:"children,omitempty"`
	MarkDefs []MarkDef `json:"markDefs,omitempty"`

	// Type == "image"
	Asset *Reference `json:"asset,omitempty"`
	Alt   string     `json:"alt,omitempty"`
}

// Span is an inline run of text inside a text block. Marks holds either
// decorator names (strong, em, code) or keys into the block's MarkDefs.
type Span struct {
	Type  string   `json:"_type"`
	Text  string   `json:"text"`
	Marks []string `json:"marks,omitempty"`
}

// MarkDef is an annotation attached to spans by key, e.g. a hyperlink.
type MarkDef struct {
	Key  string `json:"_key"`
	Type string `json:"_type"`
	Href string `json:"href,omitempty"`
}

// LinkDef resolves a span mark against the block's definitions. Returns nil
// when the mark is a plain decorator or the key is unknown.
func (b *Block) LinkDef(mark string) *MarkDef {
	for i := range b.MarkDefs {
		if b.MarkDefs[i].Key == mark && b.MarkDefs[i].Type == MarkLink {
			return &b.MarkDefs[i]
		}
	}
	return nil
}
