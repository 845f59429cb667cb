package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/folio-theme/folio/internal/logger"
	"github.com/spf13/cobra"
)

type cliOptions struct {
	verbose bool
}

func (o *cliOptions) logger(cmd *cobra.Command) *logger.Logger {
	level := log.InfoLevel
	if o.verbose {
		level = log.DebugLevel
	}
	return logger.NewWithLevel(cmd.ErrOrStderr(), level)
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   "folio",
		Short: "Render, validate and import content for the folio site",
		Long: `folio renders markdown with ":::kind" and "> [!KIND]" callouts to HTML,
validates content collections and the site configuration, and imports
notes from an Obsidian vault into the blog collection.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newRenderCmd(opts),
		newValidateCmd(opts),
		newImportCmd(opts),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
