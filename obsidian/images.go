package obsidian

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	embedImagePattern        = regexp.MustCompile(`!\[\[([^\]]+)\]\]`)
	embedImageFullPattern    = regexp.MustCompile(`^\s*!\[\[([^\]]+)\]\]\s*$`)
	markdownImagePattern     = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	markdownImageFullPattern = regexp.MustCompile(`^\s*!\[([^\]]*)\]\(([^)]+)\)\s*$`)
)

const assetsDir = "assets"

func isRemoteURL(ref string) bool {
	lower := strings.ToLower(strings.TrimSpace(ref))
	for _, prefix := range []string{"http://", "https://", "data:", "mailto:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// embedTarget returns the file part of an "![[file|alias]]" embed.
func embedTarget(inner string) string {
	target, _, _ := strings.Cut(inner, "|")
	return strings.TrimSpace(target)
}

// parseImageDestination splits the parenthesised part of a markdown image
// into its destination and optional quoted title. rawTitle keeps the quotes.
func parseImageDestination(raw string) (dest, title, rawTitle string) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "<") {
		if end := strings.IndexByte(raw, '>'); end != -1 {
			inside := strings.TrimSpace(raw[1:end])
			rest := strings.TrimSpace(raw[end+1:])
			raw = inside
			if rest != "" {
				raw += " " + rest
			}
		}
	}

	trimmed := strings.TrimRight(raw, " \t\r\n")
	last := len(trimmed) - 1
	if last < 1 || (trimmed[last] != '"' && trimmed[last] != '\'') {
		return raw, "", ""
	}
	quote := trimmed[last]

	for i := 1; i < last; i++ {
		if trimmed[i] != quote || !isSpace(trimmed[i-1]) {
			continue
		}
		start := i - 1
		for start > 0 && isSpace(trimmed[start-1]) {
			start--
		}
		return strings.TrimSpace(trimmed[:start]), trimmed[i+1 : last], trimmed[i:]
	}
	return raw, "", ""
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// resolveImage finds ref inside dir. The path as written is tried first,
// then its base name. Paths escaping dir are never tried.
func resolveImage(dir, ref string) (string, string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", "", fmt.Errorf("%w: empty image reference", ErrImageNotFound)
	}

	cleaned := ref
	if unescaped, err := url.PathUnescape(cleaned); err == nil {
		cleaned = unescaped
	}
	for strings.HasPrefix(cleaned, "./") {
		cleaned = strings.TrimPrefix(cleaned, "./")
	}

	type candidate struct{ path, display string }
	var candidates []candidate
	if filepath.IsLocal(filepath.FromSlash(cleaned)) {
		candidates = append(candidates, candidate{filepath.Join(dir, filepath.FromSlash(cleaned)), cleaned})
	}
	if base := path.Base(filepath.ToSlash(cleaned)); base != "" && base != "." && base != "/" && base != ".." && base != cleaned {
		candidates = append(candidates, candidate{filepath.Join(dir, base), base})
	}

	for _, c := range candidates {
		if info, err := os.Stat(c.path); err == nil && info.Mode().IsRegular() {
			return c.path, c.display, nil
		}
	}
	return "", "", fmt.Errorf("%w: %s (searched in: %s)", ErrImageNotFound, ref, dir)
}

// normalizeImageName lowercases the base name and replaces spaces with "-".
func normalizeImageName(name string) string {
	name = path.Base(filepath.ToSlash(name))
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return strings.ReplaceAll(strings.ToLower(base), " ", "-") + ext
}

// copyFile copies src to dst keeping its permissions and modification time.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// imageCopier copies each referenced attachment once into a note's assets
// directory.
type imageCopier struct {
	importer *Importer
	destDir  string
	copied   map[string]string
}

func (c *imageCopier) copy(ref string) (string, error) {
	if name, ok := c.copied[ref]; ok {
		return name, nil
	}

	source, display, err := resolveImage(c.importer.config.SourceAttachmentDir, ref)
	if err != nil {
		return "", err
	}

	name := normalizeImageName(display)
	dest := filepath.Join(c.destDir, assetsDir, name)
	if err := copyFile(source, dest); err != nil {
		return "", fmt.Errorf("failed to copy image %s: %w", display, err)
	}
	c.importer.logger.ImageCopied(source, dest)

	c.copied[ref] = name
	return name, nil
}

// banner moves a "banner" embed into the "image" field.
func (c *imageCopier) banner(n *note) error {
	raw, ok := n.str("banner")
	if !ok {
		return nil
	}

	var ref string
	if match := embedImageFullPattern.FindStringSubmatch(raw); match != nil {
		ref = embedTarget(match[1])
	} else if match := markdownImageFullPattern.FindStringSubmatch(raw); match != nil {
		dest, _, _ := parseImageDestination(match[2])
		ref = strings.TrimSpace(dest)
	}
	if ref == "" || isRemoteURL(ref) {
		return nil
	}

	name, err := c.copy(ref)
	if err != nil {
		return err
	}
	n.set("image", stringNode("./"+assetsDir+"/"+name))
	n.remove("banner")
	return nil
}

// body rewrites image references in body to the copied assets.
func (c *imageCopier) body(body string) (string, error) {
	embeds := embedImagePattern.FindAllStringSubmatch(body, -1)
	images := markdownImagePattern.FindAllStringSubmatch(body, -1)
	updated := body

	for _, match := range embeds {
		ref := embedTarget(match[1])
		if ref == "" || isRemoteURL(ref) {
			continue
		}

		name, err := c.copy(ref)
		if err != nil {
			return "", err
		}
		alt := strings.TrimSuffix(name, path.Ext(name))
		updated = strings.ReplaceAll(updated, match[0], fmt.Sprintf("![%s](./%s/%s)", alt, assetsDir, name))
	}

	for _, match := range images {
		dest, _, rawTitle := parseImageDestination(match[2])
		ref := strings.TrimSpace(dest)
		if ref == "" || isRemoteURL(ref) {
			continue
		}

		name, err := c.copy(ref)
		if err != nil {
			return "", err
		}
		titlePart := ""
		if rawTitle != "" {
			titlePart = " " + rawTitle
		}
		updated = strings.ReplaceAll(updated, match[0], fmt.Sprintf("![%s](./%s/%s%s)", match[1], assetsDir, name, titlePart))
	}

	return updated, nil
}
