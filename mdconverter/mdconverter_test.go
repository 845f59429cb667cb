package mdconverter

import (
	"context"
	"strings"
	"testing"

	"github.com/folio-theme/folio/callout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConverter(t testing.TB, cfg Config) *Converter {
	t.Helper()
	conv, err := New(cfg)
	require.NoError(t, err)
	return conv
}

func convertHTML(t testing.TB, cfg Config, markdown string) string {
	t.Helper()
	result, err := newTestConverter(t, cfg).Convert(markdown)
	require.NoError(t, err)
	return result.HTML
}

func TestConvertMarkdownBlocks(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		expected string
	}{
		{
			name:     "heading and paragraph",
			markdown: "# Hello World\n\nSome *text*.\n",
			expected: "<h1 id=\"hello-world\">Hello World</h1>\n<p>Some <em>text</em>.</p>\n",
		},
		{
			name:     "strong and strike",
			markdown: "**bold** and ~~gone~~\n",
			expected: "<p><strong>bold</strong> and <del>gone</del></p>\n",
		},
		{
			name:     "fenced code",
			markdown: "```go\nfmt.Println(1)\n```\n",
			expected: "<pre><code class=\"language-go\">fmt.Println(1)\n</code></pre>\n",
		},
		{
			name:     "bullet list",
			markdown: "- a\n- b\n",
			expected: "<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n",
		},
		{
			name:     "ordered list start",
			markdown: "3. x\n",
			expected: "<ol start=\"3\">\n<li>x</li>\n</ol>\n",
		},
		{
			name:     "blockquote",
			markdown: "> quoted\n",
			expected: "<blockquote>\n<p>quoted</p>\n</blockquote>\n",
		},
		{
			name:     "thematic break",
			markdown: "---\n",
			expected: "<hr/>\n",
		},
		{
			name:     "link with title",
			markdown: "[a](https://example.com \"T\")\n",
			expected: "<p><a href=\"https://example.com\" title=\"T\">a</a></p>\n",
		},
		{
			name:     "inline code is escaped",
			markdown: "`<b>`\n",
			expected: "<p><code>&lt;b&gt;</code></p>\n",
		},
		{
			name:     "table alignment",
			markdown: "| A | B |\n| :-- | --: |\n| 1 | 2 |\n",
			expected: "<table>\n<thead>\n<tr>\n<th align=\"left\">A</th>\n<th align=\"right\">B</th>\n</tr>\n</thead>\n" +
				"<tbody>\n<tr>\n<td align=\"left\">1</td>\n<td align=\"right\">2</td>\n</tr>\n</tbody>\n</table>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, convertHTML(t, Config{}, tt.markdown))
		})
	}
}

func TestConvertTaskList(t *testing.T) {
	html := convertHTML(t, Config{}, "- [x] done\n- [ ] todo\n")
	assert.Contains(t, html, `<input checked="" disabled="" type="checkbox"/> done`)
	assert.Contains(t, html, `<input disabled="" type="checkbox"/> todo`)
}

func TestConvertDirectiveCallout(t *testing.T) {
	html := convertHTML(t, Config{}, ":::caution\nBe careful.\n:::\n")
	assert.Equal(t,
		"<div class=\"admonition-caution\">\n<p class=\"admonition-title\">Caution</p>\n<p>Be careful.</p>\n</div>\n",
		html,
	)
}

func TestConvertDirectiveWithLabel(t *testing.T) {
	html := convertHTML(t, Config{}, ":::tip[Pro Tip]\nUse the thing.\n:::\n")
	assert.Equal(t,
		"<div class=\"admonition-tip\">\n<p class=\"admonition-title\">Tip (Pro Tip)</p>\n<p>Use the thing.</p>\n</div>\n",
		html,
	)
}

func TestConvertDirectiveLabelFormattingKeepsOnlyDirectText(t *testing.T) {
	html := convertHTML(t, Config{}, ":::note[Read *this* now]\nBody.\n:::\n")
	assert.Contains(t, html, `<p class="admonition-title">Note (Read  now)</p>`)
}

func TestConvertAlertMatchesDirective(t *testing.T) {
	directive := convertHTML(t, Config{}, ":::tip[Pro Tip]\nUse the thing.\n:::\n")
	alert := convertHTML(t, Config{}, "> [!tip] Pro Tip\n> Use the thing.\n")
	assert.Equal(t, directive, alert)
}

func TestConvertAlertKindsAreCaseInsensitive(t *testing.T) {
	html := convertHTML(t, Config{}, "> [!WARNING]\n> Watch out.\n")
	assert.Equal(t,
		"<div class=\"admonition-warning\">\n<p class=\"admonition-title\">Warning</p>\n<p>Watch out.</p>\n</div>\n",
		html,
	)
}

func TestConvertAlertDetection(t *testing.T) {
	markdown := "> [!custom]\n> text\n"

	github := convertHTML(t, Config{AlertDetection: AlertDetectGitHub}, markdown)
	assert.Equal(t, "<blockquote>\n<p>[!custom]\ntext</p>\n</blockquote>\n", github)

	all := convertHTML(t, Config{AlertDetection: AlertDetectAll}, markdown)
	assert.Equal(t,
		"<div class=\"admonition-custom\">\n<p class=\"admonition-title\">Custom</p>\n<p>text</p>\n</div>\n",
		all,
	)

	none := convertHTML(t, Config{AlertDetection: AlertDetectNone}, "> [!NOTE]\n> text\n")
	assert.Equal(t, "<blockquote>\n<p>[!NOTE]\ntext</p>\n</blockquote>\n", none)
}

func TestConvertNestedDirectives(t *testing.T) {
	markdown := "::::note\nOuter.\n\n:::tip\nInner.\n:::\n::::\n"
	expected := "<div class=\"admonition-note\">\n<p class=\"admonition-title\">Note</p>\n<p>Outer.</p>\n" +
		"<div class=\"admonition-tip\">\n<p class=\"admonition-title\">Tip</p>\n<p>Inner.</p>\n</div>\n</div>\n"
	assert.Equal(t, expected, convertHTML(t, Config{}, markdown))
}

func TestConvertEmptyDirectiveFallsBack(t *testing.T) {
	result, err := newTestConverter(t, Config{}).Convert(":::note\n:::\n")
	require.NoError(t, err)

	require.Len(t, result.Tree.Children, 1)
	assert.True(t, callout.IsFallback(result.Tree.Children[0]))
	assert.True(t, strings.HasPrefix(result.HTML, `<div class="hidden">Invalid admonition directive.`))
	assert.Contains(t, result.HTML, "&#34;:::note[title] &lt;content&gt; :::&#34;")

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningInvalidDirective, result.Warnings[0].Type)
}

func TestConvertLabelOnlyDirectiveUsesLabelAsBody(t *testing.T) {
	result, err := newTestConverter(t, Config{}).Convert(":::info[Just a label]\n:::\n")
	require.NoError(t, err)

	require.Len(t, result.Tree.Children, 1)
	div := result.Tree.Children[0]
	assert.Equal(t, "admonition-info", div.Class())
	require.Len(t, div.Children, 1)
	assert.Equal(t, "Info (Just a label)", callout.FlattenText(div.Children[0]))
	assert.Empty(t, result.Warnings)
}

func TestConvertUnclosedDirectiveRunsToEndOfDocument(t *testing.T) {
	html := convertHTML(t, Config{}, ":::danger\nNo closing fence.\n")
	assert.Equal(t,
		"<div class=\"admonition-danger\">\n<p class=\"admonition-title\">Danger</p>\n<p>No closing fence.</p>\n</div>\n",
		html,
	)
}

func TestConvertDirectiveDetectionNone(t *testing.T) {
	html := convertHTML(t, Config{DirectiveDetection: DirectiveDetectNone}, ":::note\nx\n:::\n")
	assert.Equal(t, "<p>:::note\nx\n:::</p>\n", html)
}

func TestConvertRawHTMLModes(t *testing.T) {
	markdown := "<div>hi</div>\n"

	assert.Equal(t, "<div>hi</div>\n", convertHTML(t, Config{RawHTML: RawHTMLKeep}, markdown))
	assert.Equal(t, "&lt;div&gt;hi&lt;/div&gt;\n", convertHTML(t, Config{RawHTML: RawHTMLEscape}, markdown))

	result, err := newTestConverter(t, Config{RawHTML: RawHTMLDrop}).Convert(markdown)
	require.NoError(t, err)
	assert.Empty(t, result.HTML)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningDroppedHTML, result.Warnings[0].Type)
}

func TestConvertInlineRawHTML(t *testing.T) {
	html := convertHTML(t, Config{}, "a <b>x</b>\n")
	assert.Equal(t, "<p>a <b>x</b></p>\n", html)
}

func TestConvertCustomHandler(t *testing.T) {
	var gotKind string
	var gotLabel any
	cfg := Config{
		Handler: func(props callout.Properties, children []callout.Node, kind string) callout.Node {
			gotKind = kind
			gotLabel = props[callout.PropHasLabel]
			return callout.Element("aside", callout.Properties{callout.PropClass: kind}, children...)
		},
	}

	html := convertHTML(t, cfg, ":::note[Heads up]\nBody.\n:::\n")
	assert.Equal(t, "note", gotKind)
	assert.Equal(t, true, gotLabel)
	assert.Equal(t, "<aside class=\"note\"><p>Heads up</p>\n<p>Body.</p>\n</aside>", html)
}

func TestConvertWithContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestConverter(t, Config{}).ConvertWithContext(ctx, "# Title\n")
	require.ErrorIs(t, err, context.Canceled)
}

func TestConvertEmptyInput(t *testing.T) {
	result, err := newTestConverter(t, Config{}).Convert("")
	require.NoError(t, err)
	assert.Empty(t, result.HTML)
	assert.Equal(t, callout.TypeRoot, result.Tree.Type)
	assert.Empty(t, result.Warnings)
}

func TestConvertResolvesEscapesAndEntities(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		expected string
	}{
		{
			name:     "backslash escapes",
			markdown: "Hello \\*world\\*\n",
			expected: "<p>Hello *world*</p>\n",
		},
		{
			name:     "named and numeric entities",
			markdown: "&copy; &amp; &#35; &#x41;\n",
			expected: "<p>© &amp; # A</p>\n",
		},
		{
			name:     "code span stays literal",
			markdown: "`\\* &amp;`\n",
			expected: "<p><code>\\* &amp;amp;</code></p>\n",
		},
		{
			name:     "link title",
			markdown: "[a](https://example.com \"A &amp; B\")\n",
			expected: "<p><a href=\"https://example.com\" title=\"A &amp; B\">a</a></p>\n",
		},
		{
			name:     "image alt",
			markdown: "![a \\*b\\*](x.png)\n",
			expected: "<p><img alt=\"a *b*\" src=\"x.png\"/></p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, convertHTML(t, Config{}, tt.markdown))
		})
	}
}

func TestConvertDirectiveLabelResolvesEscapes(t *testing.T) {
	html := convertHTML(t, Config{}, ":::note[A \\] b &amp; c]\nbody\n:::\n")
	assert.Contains(t, html, `<p class="admonition-title">Note (A ] b &amp; c)</p>`)
}

func TestConvertDangerousURLs(t *testing.T) {
	markdown := "[x](javascript:alert(1)) ![i](data:text/html;base64,AA)\n"

	kept := convertHTML(t, Config{RawHTML: RawHTMLKeep}, markdown)
	assert.Contains(t, kept, `href="javascript:alert(1)"`)

	for _, mode := range []RawHTMLMode{RawHTMLEscape, RawHTMLDrop} {
		t.Run(string(mode), func(t *testing.T) {
			result, err := newTestConverter(t, Config{RawHTML: mode}).Convert(markdown)
			require.NoError(t, err)
			assert.Equal(t, "<p><a href=\"\">x</a> <img alt=\"i\" src=\"\"/></p>\n", result.HTML)
			require.Len(t, result.Warnings, 2)
			for _, warning := range result.Warnings {
				assert.Equal(t, WarningUnsafeURL, warning.Type)
			}
		})
	}
}

func TestConvertSafeURLsArePreserved(t *testing.T) {
	markdown := "[x](https://example.com) ![i](data:image/png;base64,AA) <https://example.org>\n"

	result, err := newTestConverter(t, Config{RawHTML: RawHTMLDrop}).Convert(markdown)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
	assert.Contains(t, result.HTML, `href="https://example.com"`)
	assert.Contains(t, result.HTML, `src="data:image/png;base64,AA"`)
	assert.Contains(t, result.HTML, `href="https://example.org"`)
}
