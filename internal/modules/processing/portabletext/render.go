package portabletext

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/saima-salar/blog-website-with-sanity-schema/internal/models"
)

// ImageResolver maps an image field to a CDN URL. A structurally invalid
// field returns an error and the block is skipped.
type ImageResolver interface {
	ImageURLFor(img models.Image) (string, error)
}

// BlockHandler renders one block to an HTML fragment. Returning an error
// skips the block and records a diagnostic; rendering continues.
type BlockHandler func(r *Renderer, b models.Block) (string, error)

// MarkHandler wraps already-rendered children for one mark definition.
type MarkHandler func(def models.MarkDef, children string) string

// Renderer turns a rich-text body into HTML. Dispatch is by block type with
// an explicit default (skip + diagnostic); handlers for known types can be
// overridden per instance. Rendering carries no state between blocks, so the
// same input always yields the same output.
type Renderer struct {
	resolver ImageResolver
	blocks   map[string]BlockHandler
	marks    map[string]MarkHandler
}

var styleElements = map[string]string{
	"h1":         "h1",
	"h2":         "h2",
	"h3":         "h3",
	"h4":         "h4",
	"blockquote": "blockquote",
}

var decorators = map[string]string{
	models.MarkStrong: "strong",
	models.MarkEm:     "em",
	models.MarkCode:   "code",
}

// New builds a renderer with the default block and mark handlers.
func New(resolver ImageResolver) *Renderer {
	r := &Renderer{resolver: resolver}
	r.blocks = map[string]BlockHandler{
		models.BlockTypeText:  renderTextBlock,
		models.BlockTypeImage: renderImageBlock,
	}
	r.marks = map[string]MarkHandler{
		models.MarkLink: renderLink,
	}
	return r
}

// OnBlock replaces the handler for a block type.
func (r *Renderer) OnBlock(blockType string, h BlockHandler) { r.blocks[blockType] = h }

// OnMark replaces the handler for an annotation mark type.
func (r *Renderer) OnMark(markType string, h MarkHandler) { r.marks[markType] = h }

// Render produces the HTML for an ordered block sequence plus any per-block
// skip diagnostics. Order is preserved; a bad block never fails the render.
func (r *Renderer) Render(blocks []models.Block) (template.HTML, []string) {
	var sb strings.Builder
	var diags []string

	for i, b := range blocks {
		handler, ok := r.blocks[b.Type]
		if !ok {
			diags = append(diags, fmt.Sprintf("block %d: unknown type %q skipped", i, b.Type))
			continue
		}
		fragment, err := handler(r, b)
		if err != nil {
			diags = append(diags, fmt.Sprintf("block %d: %v", i, err))
			continue
		}
		sb.WriteString(fragment)
	}
	return template.HTML(sb.String()), diags
}

func renderTextBlock(r *Renderer, b models.Block) (string, error) {
	element, ok := styleElements[b.Style]
	if !ok {
		// "normal" and anything unrecognized render as a paragraph.
		element = "p"
	}

	var sb strings.Builder
	sb.WriteString("<" + element + ">")
	for _, span := range b.Children {
		sb.WriteString(r.renderSpan(&b, span))
	}
	sb.WriteString("</" + element + ">")
	return sb.String(), nil
}

func (r *Renderer) renderSpan(b *models.Block, span models.Span) string {
	out := template.HTMLEscapeString(span.Text)

	// Decorators nest innermost-first; annotations (links) wrap the result.
	for i := len(span.Marks) - 1; i >= 0; i-- {
		mark := span.Marks[i]
		if tag, ok := decorators[mark]; ok {
			out = "<" + tag + ">" + out + "</" + tag + ">"
			continue
		}
		if def := b.LinkDef(mark); def != nil {
			if h, ok := r.marks[def.Type]; ok {
				out = h(*def, out)
			}
		}
	}
	return out
}

func renderImageBlock(r *Renderer, b models.Block) (string, error) {
	if r.resolver == nil {
		return "", fmt.Errorf("image block has no resolver")
	}
	url, err := r.resolver.ImageURLFor(models.Image{Asset: b.Asset, Alt: b.Alt})
	if err != nil {
		return "", fmt.Errorf("image block skipped: %w", err)
	}
	alt := b.Alt
	if alt == "" {
		alt = "Blog Image"
	}
	return fmt.Sprintf(`<img src="%s" alt="%s">`,
		template.HTMLEscapeString(url), template.HTMLEscapeString(alt)), nil
}

// renderLink emits an anchor that opens in a new context without leaking
// referrer or opener to the target.
func renderLink(def models.MarkDef, children string) string {
	return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`,
		template.HTMLEscapeString(def.Href), children)
}
