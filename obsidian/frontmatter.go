package obsidian

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/folio-theme/folio/content"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// note is a parsed vault note. The frontmatter is kept as a yaml mapping
// node so key order and styles survive the rewrite.
type note struct {
	fields *yaml.Node
	body   []byte
}

func parseNote(source []byte) (*note, error) {
	var doc yaml.Node
	body, err := frontmatter.Parse(bytes.NewReader(source), &doc, yamlFormat)
	if err != nil {
		return nil, err
	}

	fields := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		switch root := doc.Content[0]; root.Kind {
		case yaml.MappingNode:
			fields = root
		case yaml.ScalarNode:
			if root.Tag != "!!null" {
				return nil, fmt.Errorf("frontmatter must be a mapping")
			}
		default:
			return nil, fmt.Errorf("frontmatter must be a mapping")
		}
	}

	return &note{fields: fields, body: body}, nil
}

func (n *note) get(key string) *yaml.Node {
	for i := 0; i+1 < len(n.fields.Content); i += 2 {
		if n.fields.Content[i].Value == key {
			return n.fields.Content[i+1]
		}
	}
	return nil
}

func (n *note) set(key string, value *yaml.Node) {
	for i := 0; i+1 < len(n.fields.Content); i += 2 {
		if n.fields.Content[i].Value == key {
			n.fields.Content[i+1] = value
			return
		}
	}
	n.fields.Content = append(n.fields.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}

func (n *note) remove(key string) {
	for i := 0; i+1 < len(n.fields.Content); i += 2 {
		if n.fields.Content[i].Value == key {
			n.fields.Content = append(n.fields.Content[:i], n.fields.Content[i+2:]...)
			return
		}
	}
}

// str returns the value of key when it is a string scalar.
func (n *note) str(key string) (string, bool) {
	value := n.get(key)
	if value == nil || value.Kind != yaml.ScalarNode || value.ShortTag() != "!!str" {
		return "", false
	}
	return value.Value, true
}

func (n *note) truthy(key string) bool {
	value := n.get(key)
	if value == nil || value.Kind != yaml.ScalarNode {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(value.Value)) {
	case "true", "yes", "on":
		return true
	default:
		return false
	}
}

func isBlank(value *yaml.Node) bool {
	if value == nil {
		return true
	}
	switch value.Kind {
	case yaml.ScalarNode:
		return value.ShortTag() == "!!null" || strings.TrimSpace(value.Value) == ""
	case yaml.SequenceNode, yaml.MappingNode:
		return len(value.Content) == 0
	default:
		return false
	}
}

func stringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func (n *note) skipReason() string {
	if n.truthy("can_skip") {
		return "can_skip property is set to true"
	}
	if n.truthy("is_draft") {
		return "post is marked as draft"
	}
	return ""
}

func (n *note) validate() error {
	var descriptionErr, dateErr error

	description := n.get("description")
	switch {
	case isBlank(description):
		descriptionErr = validation.ErrRequired
	case description.Kind != yaml.ScalarNode || description.ShortTag() != "!!str":
		descriptionErr = validation.NewError("validation_invalid_type", "invalid type, expected string")
	}

	date := n.get("date")
	switch {
	case isBlank(date):
		dateErr = validation.ErrRequired
	case date.Kind != yaml.ScalarNode:
		dateErr = validation.NewError("validation_date_invalid", "must be a scalar date")
	default:
		if _, err := parseNoteDate(date.Value); err != nil {
			dateErr = validation.NewError("validation_date_invalid", fmt.Sprintf("invalid: %q", date.Value))
		}
	}

	return validation.Errors{
		"description": descriptionErr,
		"date":        dateErr,
	}.Filter()
}

// parseNoteDate drops fractional seconds and "+" offsets before parsing.
func parseNoteDate(value string) (content.Date, error) {
	value, _, _ = strings.Cut(value, ".")
	value, _, _ = strings.Cut(value, "+")
	return content.ParseDate(value)
}

// normalize applies the title fallback, tag cleanup and date rewrite.
func (n *note) normalize(filename string) {
	if title, ok := n.str("title"); !ok || strings.TrimSpace(title) == "" {
		n.set("title", stringNode(stem(filename)))
	}

	tags := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if value := n.get("tags"); value != nil {
		switch value.Kind {
		case yaml.SequenceNode:
			tags.Style = value.Style
			for _, item := range value.Content {
				tags.Content = append(tags.Content, normalizeTag(item))
			}
		case yaml.ScalarNode:
			if value.ShortTag() == "!!str" && value.Value != "" {
				tags.Content = append(tags.Content, normalizeTag(value))
			}
		}
	}
	if len(tags.Content) == 0 {
		tags.Style = yaml.FlowStyle
	}
	n.set("tags", tags)

	if date := n.get("date"); date != nil && date.Kind == yaml.ScalarNode {
		if parsed, err := parseNoteDate(date.Value); err == nil {
			date.Value = parsed.Format(content.DateLayout)
			date.Tag = ""
			date.Style = 0
		}
	}
}

func normalizeTag(item *yaml.Node) *yaml.Node {
	if item.Kind != yaml.ScalarNode || item.ShortTag() != "!!str" || !strings.HasPrefix(item.Value, "#") {
		return item
	}
	return stringNode(strings.TrimPrefix(item.Value, "#"))
}

func (n *note) encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	if len(n.fields.Content) > 0 {
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(n.fields); err != nil {
			return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
		}
	}
	buf.WriteString("---\n\n")
	buf.Write(n.body)
	return buf.Bytes(), nil
}

func stem(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// safeName replaces characters that are invalid in folder names.
func safeName(name string) string {
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || strings.ContainsRune(`<>:"/\|?*`, r) {
			return '-'
		}
		return r
	}, name)
	return strings.TrimSpace(name)
}
