package portabletext

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saima-salar/blog-website-with-sanity-schema/internal/models"
)

type fakeResolver struct{}

func (fakeResolver) ImageURLFor(img models.Image) (string, error) {
	if img.Asset == nil || img.Asset.Ref == "" {
		return "", fmt.Errorf("image has no asset reference")
	}
	return "https://cdn.example.com/" + img.Asset.Ref, nil
}

func textBlock(style string, spans ...models.Span) models.Block {
	return models.Block{Type: models.BlockTypeText, Style: style, Children: spans}
}

func TestRenderParagraphAndHeadings(t *testing.T) {
	r := New(fakeResolver{})

	html, diags := r.Render([]models.Block{
		textBlock("normal", models.Span{Type: "span", Text: "plain text"}),
		textBlock("h2", models.Span{Type: "span", Text: "section"}),
		textBlock("weird-style", models.Span{Type: "span", Text: "fallback"}),
	})
	require.Empty(t, diags)
	assert.Equal(t, "<p>plain text</p><h2>section</h2><p>fallback</p>", string(html))
}

func TestRenderEscapesText(t *testing.T) {
	r := New(fakeResolver{})
	html, _ := r.Render([]models.Block{
		textBlock("normal", models.Span{Type: "span", Text: `<script>alert("x")</script>`}),
	})
	assert.NotContains(t, string(html), "<script>")
	assert.Contains(t, string(html), "&lt;script&gt;")
}

func TestRenderDecoratorsAndLinks(t *testing.T) {
	r := New(fakeResolver{})
	b := models.Block{
		Type:  models.BlockTypeText,
		Style: "normal",
		Children: []models.Span{
			{Type: "span", Text: "bold", Marks: []string{models.MarkStrong}},
			{Type: "span", Text: " and a ", Marks: nil},
			{Type: "span", Text: "link", Marks: []string{"mk1"}},
		},
		MarkDefs: []models.MarkDef{{Key: "mk1", Type: models.MarkLink, Href: "https://example.com"}},
	}

	html, diags := r.Render([]models.Block{b})
	require.Empty(t, diags)
	assert.Equal(t,
		`<p><strong>bold</strong> and a <a href="https://example.com" target="_blank" rel="noopener noreferrer">link</a></p>`,
		string(html))
}

func TestRenderImage(t *testing.T) {
	r := New(fakeResolver{})
	html, diags := r.Render([]models.Block{
		{Type: models.BlockTypeImage, Asset: &models.Reference{Type: "reference", Ref: "image-abc-1x1-png"}, Alt: "cover"},
	})
	require.Empty(t, diags)
	assert.Equal(t, `<img src="https://cdn.example.com/image-abc-1x1-png" alt="cover">`, string(html))
}

func TestRenderSkipsInvalidImage(t *testing.T) {
	r := New(fakeResolver{})
	html, diags := r.Render([]models.Block{
		textBlock("normal", models.Span{Type: "span", Text: "before"}),
		{Type: models.BlockTypeImage}, // no asset pointer
		textBlock("normal", models.Span{Type: "span", Text: "after"}),
	})
	assert.Equal(t, "<p>before</p><p>after</p>", string(html))
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0], "block 1")
}

func TestRenderSkipsUnknownBlockType(t *testing.T) {
	r := New(fakeResolver{})
	html, diags := r.Render([]models.Block{
		{Type: "youtubeEmbed"},
		textBlock("normal", models.Span{Type: "span", Text: "kept"}),
	})
	assert.Equal(t, "<p>kept</p>", string(html))
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0], `unknown type "youtubeEmbed"`)
}

func TestRenderIsDeterministic(t *testing.T) {
	r := New(fakeResolver{})
	blocks := []models.Block{
		textBlock("h1", models.Span{Type: "span", Text: "title"}),
		{Type: models.BlockTypeImage, Asset: &models.Reference{Ref: "image-x-2x2-jpg"}},
		{Type: "mystery"},
		textBlock("normal", models.Span{Type: "span", Text: "body", Marks: []string{models.MarkEm}}),
	}

	first, firstDiags := r.Render(blocks)
	for i := 0; i < 5; i++ {
		again, againDiags := r.Render(blocks)
		assert.Equal(t, first, again)
		assert.Equal(t, firstDiags, againDiags)
	}
}

func TestRenderOverrideHooks(t *testing.T) {
	r := New(fakeResolver{})
	r.OnBlock("youtubeEmbed", func(_ *Renderer, b models.Block) (string, error) {
		return "<iframe></iframe>", nil
	})
	r.OnMark(models.MarkLink, func(def models.MarkDef, children string) string {
		return `<a class="fancy" href="` + def.Href + `">` + children + `</a>`
	})

	b := textBlock("normal", models.Span{Type: "span", Text: "go", Marks: []string{"mk1"}})
	b.MarkDefs = []models.MarkDef{{Key: "mk1", Type: models.MarkLink, Href: "https://x.test"}}

	html, diags := r.Render([]models.Block{{Type: "youtubeEmbed"}, b})
	require.Empty(t, diags)
	assert.Equal(t, `<iframe></iframe><p><a class="fancy" href="https://x.test">go</a></p>`, string(html))
}
