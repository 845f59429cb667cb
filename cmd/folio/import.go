package main

import (
	"github.com/folio-theme/folio/obsidian"
	"github.com/spf13/cobra"
)

type importOptions struct {
	envFile string
	watch   bool
}

func newImportCmd(opts *cliOptions) *cobra.Command {
	iopts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import Obsidian notes into the blog collection",
		Long: `Import copies every note in SOURCE_MARKDOWN_DIR into TARGET_DIR/<name>/index.md,
copying referenced images from SOURCE_ATTACHMENT_DIR into an assets folder.
The variables are read from the environment and the --env file.
The run stops at the first invalid note or missing image.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := obsidian.LoadConfig(iopts.envFile)
			if err != nil {
				return err
			}
			im, err := obsidian.New(cfg, opts.logger(cmd))
			if err != nil {
				return err
			}

			if iopts.watch {
				return im.Watch(cmd.Context())
			}
			_, err = im.Run(cmd.Context())
			return err
		},
	}

	cmd.Flags().StringVar(&iopts.envFile, "env", ".env", "Environment file with the importer paths")
	cmd.Flags().BoolVar(&iopts.watch, "watch", false, "Re-import when the vault changes")
	return cmd
}
