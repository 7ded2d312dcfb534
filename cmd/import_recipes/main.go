package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/larsreed/recipes-sub000/internal/config"
	"github.com/larsreed/recipes-sub000/internal/db"
)

var (
	success = color.New(color.FgGreen).SprintFunc()
	warning = color.New(color.FgYellow).SprintFunc()
	faint   = color.New(color.Faint).SprintFunc()
)

var openDatabaseFunc = func() (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	database, err := db.Configure(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("configure database: %w", err)
	}
	return database, nil
}

func newRootCommand() *cobra.Command {
	var (
		format string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "import_recipes <file>",
		Short: "Import recipes, sources, conversions and temperatures",
		Long: `Import a cookbook from a YAML or JSON document, or recipes from a CSV file.

Sources are matched by name and created when missing. Recipes whose name
already exists are skipped, so an import can be re-run safely.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0], format)
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), faint(fmt.Sprintf("%d sources, %d recipes, %d conversions, %d temperatures (dry run)",
					len(doc.Sources), len(doc.Recipes), len(doc.Conversions), len(doc.Temperatures))))
				return nil
			}

			database, err := openDatabaseFunc()
			if err != nil {
				return err
			}

			report, err := newImporter(database).Import(cmd.Context(), doc)
			for _, w := range report.Warnings {
				fmt.Fprintln(cmd.ErrOrStderr(), warning("Warning: "+w))
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), success(report.String()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "input format: yaml, json or csv (default: from file extension)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse the file and report what would be imported")
	return cmd
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}
