// Package site holds the site-wide configuration: metadata, navigation and
// social links.
package site

import (
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

// DefaultLocale is used when the configuration does not name one.
const DefaultLocale = "en"

// Config is the site configuration file.
type Config struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Author      string `yaml:"author" json:"author"`
	URL         string `yaml:"url" json:"url"`
	Locale      string `yaml:"locale" json:"locale"`
	Nav         []Link `yaml:"nav" json:"nav"`
	Socials     []Link `yaml:"socials" json:"socials"`
}

// Link is a labelled navigation or social link.
type Link struct {
	Label string `yaml:"label" json:"label"`
	Href  string `yaml:"href" json:"href"`
}

func (l Link) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Label, validation.Required),
		validation.Field(&l.Href, validation.Required),
	)
}

func (c Config) applyDefaults() Config {
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	return c
}

// Validate checks required metadata and every link.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.URL, validation.Required, is.URL),
		validation.Field(&c.Nav),
		validation.Field(&c.Socials),
	)
}

// Parse decodes and validates a YAML site configuration.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode site config: %w", err)
	}

	cfg = cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid site config: %w", err)
	}
	return cfg, nil
}

// Load reads and parses the site configuration at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read site config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
