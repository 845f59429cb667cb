package mdconverter

import (
	"testing"

	"github.com/folio-theme/folio/callout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCalloutNode(t *testing.T) {
	node := callout.Transform(callout.Properties{}, []callout.Node{callout.Text("Be careful")}, "caution")

	html, err := RenderString(node)
	require.NoError(t, err)
	assert.Equal(t,
		"<div class=\"admonition-caution\">\n<p class=\"admonition-title\">Caution</p>\nBe careful</div>",
		html,
	)
}

func TestRenderAttributes(t *testing.T) {
	node := callout.Element("input", callout.Properties{
		"type":               "checkbox",
		"checked":            false,
		"disabled":           true,
		"data-n":             3,
		"class":              []string{"a", "b"},
		callout.PropHasLabel: true,
		"ignored-composite":  map[string]string{"x": "y"},
	})

	html, err := RenderString(node)
	require.NoError(t, err)
	assert.Equal(t, `<input class="a b" data-n="3" disabled="" type="checkbox"/>`, html)
}

func TestRenderEscapesTextAndKeepsRaw(t *testing.T) {
	node := callout.Root(
		callout.Element("p", nil, callout.Text(`a < b & "c"`)),
		callout.Raw("<span>raw</span>"),
	)

	html, err := RenderString(node)
	require.NoError(t, err)
	assert.Equal(t, "<p>a &lt; b &amp; &#34;c&#34;</p>\n<span>raw</span>", html)
}

func TestRenderNestedRootIsFlattened(t *testing.T) {
	node := callout.Element("div", nil, callout.Root(callout.Text("x")))

	html, err := RenderString(node)
	require.NoError(t, err)
	assert.Equal(t, "<div>x</div>", html)
}

func TestRenderRejectsInvalidNodes(t *testing.T) {
	_, err := RenderString(callout.Node{Type: "comment"})
	require.Error(t, err)

	_, err = RenderString(callout.Element("", nil))
	require.Error(t, err)
}
