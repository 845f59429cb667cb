package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/folio-theme/folio/content"
	"github.com/folio-theme/folio/site"
	"github.com/spf13/cobra"
)

type validateOptions struct {
	site        string
	collections []string
}

func newValidateCmd(opts *cliOptions) *cobra.Command {
	vo := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the site configuration and content collections",
		Example: `  folio validate --site site.yaml \
    --collection blog=src/content/blog \
    --collection projects=src/content/projects`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, opts, vo)
		},
	}

	cmd.Flags().StringVar(&vo.site, "site", "", "Site configuration file")
	cmd.Flags().StringArrayVar(&vo.collections, "collection", nil, "Collection as name=dir (repeatable)")
	return cmd
}

func parseCollectionFlag(value string) (content.Collection, string, error) {
	name, dir, ok := strings.Cut(value, "=")
	if !ok || strings.TrimSpace(dir) == "" {
		return "", "", fmt.Errorf("invalid --collection %q (expected name=dir)", value)
	}
	collection := content.Collection(strings.TrimSpace(name))
	if err := collection.Validate(); err != nil {
		return "", "", err
	}
	return collection, strings.TrimSpace(dir), nil
}

func runValidate(cmd *cobra.Command, opts *cliOptions, vo *validateOptions) error {
	if vo.site == "" && len(vo.collections) == 0 {
		return fmt.Errorf("nothing to validate: pass --site and/or --collection")
	}

	log := opts.logger(cmd)
	out := cmd.OutOrStdout()
	var errs []error

	if vo.site != "" {
		cfg, err := site.Load(vo.site)
		if err != nil {
			errs = append(errs, err)
		} else {
			fmt.Fprintf(out, "site: %q ok (%d nav, %d socials)\n", cfg.Title, len(cfg.Nav), len(cfg.Socials))
		}
	}

	for _, value := range vo.collections {
		collection, dir, err := parseCollectionFlag(value)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		entries, err := content.LoadCollection(os.DirFS(dir), collection, ".")
		drafts := 0
		for _, entry := range entries {
			if entry.Draft() {
				drafts++
			}
		}
		fmt.Fprintf(out, "%s: %d valid entries (%d drafts)\n", collection, len(entries), drafts)
		if err != nil {
			log.Error("invalid collection", "collection", collection, "dir", dir, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", collection, err))
		}
	}

	return errors.Join(errs...)
}
