package obsidian

import (
	"errors"
	"fmt"
	"io/fs"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

// Environment keys read by LoadConfig.
const (
	EnvSourceMarkdownDir   = "SOURCE_MARKDOWN_DIR"
	EnvSourceAttachmentDir = "SOURCE_ATTACHMENT_DIR"
	EnvTargetDir           = "TARGET_DIR"
)

// Config locates the vault and the blog content directory.
type Config struct {
	SourceMarkdownDir   string `json:"SOURCE_MARKDOWN_DIR"`
	SourceAttachmentDir string `json:"SOURCE_ATTACHMENT_DIR"`
	TargetDir           string `json:"TARGET_DIR"`
}

// Validate checks that every directory is set.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.SourceMarkdownDir, validation.Required),
		validation.Field(&c.SourceAttachmentDir, validation.Required),
		validation.Field(&c.TargetDir, validation.Required),
	)
}

// LoadConfig reads the importer configuration from envFile and the process
// environment. Environment variables take precedence over the file. A
// missing envFile is not an error.
func LoadConfig(envFile string) (Config, error) {
	v := viper.New()
	for _, key := range []string{EnvSourceMarkdownDir, EnvSourceAttachmentDir, EnvTargetDir} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("failed to read %s: %w", envFile, err)
			}
		}
	}

	cfg := Config{
		SourceMarkdownDir:   v.GetString(EnvSourceMarkdownDir),
		SourceAttachmentDir: v.GetString(EnvSourceAttachmentDir),
		TargetDir:           v.GetString(EnvTargetDir),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("missing required environment variables: %w", err)
	}
	return cfg, nil
}
