package cmd

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ziadkadry99/folio/internal/config"
	"github.com/ziadkadry99/folio/internal/content"
	"github.com/ziadkadry99/folio/internal/db"
	"github.com/ziadkadry99/folio/internal/logging"
	"github.com/ziadkadry99/folio/internal/server"
	"github.com/ziadkadry99/folio/internal/shell"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `folio init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the process logger; --verbose forces debug level.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	return logging.New(level)
}

// openDatabase opens the members database under the data directory.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	database, err := db.Open(filepath.Join(cfg.DataDir, "folio.db"))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return database, nil
}

// newShell loads the page content and builds the navigation shell.
func newShell(cfg *config.Config, logger *zap.Logger) (*content.Library, *shell.Shell, error) {
	lib, err := content.NewLibrary(cfg.ContentDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading content: %w", err)
	}

	links := make([]shell.NavLink, 0, len(cfg.Links))
	for _, l := range cfg.Links {
		links = append(links, shell.NavLink{Label: l.Label, Href: l.URL})
	}

	sh, err := shell.New(lib, shell.Options{
		SiteTitle:  cfg.Site.Title,
		ResumePath: cfg.Site.ResumePath,
		Links:      links,
		Demo: shell.DemoOptions{
			CanvasID:   cfg.Demo.CanvasID,
			HandleName: cfg.Demo.HandleName,
			LoaderSrc:  cfg.Demo.LoaderSrc,
			SocketPath: server.SocketPath,
		},
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("building page shell: %w", err)
	}
	return lib, sh, nil
}
