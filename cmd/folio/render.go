package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/adrg/frontmatter"
	"github.com/folio-theme/folio/mdconverter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type renderOptions struct {
	preset    string
	allowHTML bool
	dropHTML  bool
	strict    bool
	asJSON    bool
}

func newRenderCmd(opts *cliOptions) *cobra.Command {
	ro := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a markdown file to HTML",
		Long: `Render converts a markdown document to HTML. Frontmatter is stripped.
Reads standard input when the file is "-" or omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return runRender(cmd, opts, ro, input)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&ro.preset, "preset", presetGitHub, "Preset: github|obsidian|strict|plain")
	flags.BoolVar(&ro.allowHTML, "allow-html", false, "Pass raw HTML through")
	flags.BoolVar(&ro.dropHTML, "drop-html", false, "Drop raw HTML")
	flags.BoolVar(&ro.strict, "strict", false, "Fail when the converter reports warnings")
	flags.BoolVar(&ro.asJSON, "json", false, "Print the result tree and warnings as JSON")
	return cmd
}

func runRender(cmd *cobra.Command, opts *cliOptions, ro *renderOptions, input string) error {
	cfg, err := resolveConfig(ro.preset, ro.allowHTML, ro.dropHTML)
	if err != nil {
		return err
	}
	conv, err := mdconverter.New(cfg)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	data, err := readInput(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}
	body, err := stripFrontmatter(data)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	result, err := conv.ConvertWithContext(cmd.Context(), string(body))
	if err != nil {
		return fmt.Errorf("failed to convert %s: %w", input, err)
	}

	log := opts.logger(cmd)
	for _, warning := range result.Warnings {
		log.RenderWarning(string(warning.Type), warning.NodeType, warning.Message)
	}
	if ro.strict && len(result.Warnings) > 0 {
		return fmt.Errorf("%s: %d conversion warning(s)", input, len(result.Warnings))
	}

	out := cmd.OutOrStdout()
	if ro.asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}
	_, err = io.WriteString(out, result.HTML)
	return err
}

func readInput(stdin io.Reader, input string) ([]byte, error) {
	if input == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func stripFrontmatter(data []byte) ([]byte, error) {
	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta, frontmatter.NewFormat("---", "---", yaml.Unmarshal))
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return body, nil
}
