package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeBasics(t *testing.T) {
	assert.Equal(t, "hello-world", Make("Hello World"))
	assert.Equal(t, "a-b-c", Make("  A\tB\n C  "))
	assert.Equal(t, "10-things-i-like", Make("10 Things, I like!"))
	assert.Equal(t, "", Make("!!!"))
}

func TestMakeIdempotent(t *testing.T) {
	inputs := []string{
		"Hello World",
		"Already-a-slug",
		"Mixed CASE With  Spaces",
		strings.Repeat("long title ", 40),
	}
	for _, in := range inputs {
		once := Make(in)
		assert.Equal(t, once, Make(once), "slugify must be idempotent for %q", in)
	}
}

func TestMakeConstraints(t *testing.T) {
	out := Make(strings.Repeat("word ", 100))
	assert.LessOrEqual(t, len(out), 200)
	assert.Equal(t, strings.ToLower(out), out)
	assert.NotContains(t, out, " ")
	assert.False(t, strings.HasSuffix(out, "-"))
}
