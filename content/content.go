// Package content loads and validates the site's markdown content
// collections.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// Entry is one parsed collection file.
type Entry struct {
	Collection Collection
	Slug       string
	Path       string
	Data       Schema
	Body       []byte
}

// Draft reports whether the entry is flagged as a draft.
func (e Entry) Draft() bool {
	return e.Data != nil && e.Data.IsDraft()
}

// Parse decodes and validates the frontmatter of source for collection.
func Parse(collection Collection, filePath string, source []byte) (Entry, error) {
	data, err := newSchema(collection)
	if err != nil {
		return Entry{}, err
	}

	body, err := frontmatter.Parse(bytes.NewReader(source), data, yamlFormat)
	if err != nil {
		return Entry{}, fmt.Errorf("%s: parse frontmatter: %w", filePath, err)
	}
	if err := data.Validate(); err != nil {
		return Entry{}, fmt.Errorf("%s: %w", filePath, err)
	}

	return Entry{
		Collection: collection,
		Slug:       Slug(filePath),
		Path:       filePath,
		Data:       data,
		Body:       body,
	}, nil
}

// Slug derives an entry slug from its path: the file name without extension,
// or the parent directory name for index.md files.
func Slug(filePath string) string {
	filePath = path.Clean(strings.ReplaceAll(filePath, "\\", "/"))
	base := path.Base(filePath)
	stem := strings.TrimSuffix(base, path.Ext(base))
	if strings.EqualFold(stem, "index") {
		if parent := path.Base(path.Dir(filePath)); parent != "." && parent != "/" {
			return parent
		}
	}
	return stem
}

// LoadCollection parses every markdown file under dir. Entries are sorted by
// date, newest first. Files that fail to parse are reported in the joined
// error while the remaining entries are still returned.
func LoadCollection(fsys fs.FS, collection Collection, dir string) ([]Entry, error) {
	if err := collection.Validate(); err != nil {
		return nil, err
	}

	var entries []Entry
	var errs []error
	walkErr := fs.WalkDir(fsys, dir, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(path.Ext(filePath), ".md") {
			return nil
		}

		source, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", filePath, err))
			return nil
		}

		entry, err := Parse(collection, filePath, source)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		entries = append(entries, entry)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, walkErr)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		left, right := entries[i].Data.SortDate(), entries[j].Data.SortDate()
		if !left.Equal(right) {
			return left.After(right)
		}
		return entries[i].Slug < entries[j].Slug
	})

	return entries, errors.Join(errs...)
}
