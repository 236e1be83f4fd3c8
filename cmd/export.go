package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/folio/internal/members"
	"github.com/ziadkadry99/folio/internal/progress"
	"github.com/ziadkadry99/folio/internal/site"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the site as static files",
	Long: `Renders every page into a directory that any static file host can serve:
one index.html per route, 404.html, the embedded stylesheet and script, the
selected files from the assets directory, and an api file with the members.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if exportOutput != "" {
			cfg.Export.OutputDir = exportOutput
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		store := members.NewStore(database)
		if _, err := store.Seed(cmd.Context(), cfg.Members); err != nil {
			return fmt.Errorf("seeding members: %w", err)
		}
		names, err := store.Names(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing members: %w", err)
		}

		_, sh, err := newShell(cfg, logger)
		if err != nil {
			return err
		}

		exporter := site.NewExporter(sh, site.Options{
			OutputDir: cfg.Export.OutputDir,
			AssetsDir: cfg.AssetsDir,
			Include:   cfg.Export.Include,
			Exclude:   cfg.Export.Exclude,
			Members:   names,
		}, progress.NewReporter(), logger)

		res, err := exporter.Export(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d pages, %d static files and %d assets to %s\n",
			res.Pages, res.Static, res.Assets, cfg.Export.OutputDir)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output directory (overrides export.output_dir)")
	rootCmd.AddCommand(exportCmd)
}
