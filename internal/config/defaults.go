package config

// DefaultExcludes are glob patterns never copied by `folio export`.
var DefaultExcludes = []string{
	"**/.DS_Store",
	"**/*.map",
	"**/.git/**",
	"**/node_modules/**",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Title:      "Portfolio",
			Owner:      "",
			ResumePath: "/assets/resume.pdf",
		},
		Server: ServerConfig{
			Port:  8080,
			Probe: true,
		},
		Demo: DemoConfig{
			CanvasID:   "canvas",
			HandleName: "Module",
			LoaderSrc:  "/assets/raycaster/index.js",
		},
		Export: ExportConfig{
			OutputDir: "dist",
			Include:   []string{"**"},
			Exclude:   DefaultExcludes,
		},
		ContentDir: "content",
		AssetsDir:  "public",
		DataDir:    ".folio",
		LogLevel:   "info",
		Members:    []string{"Member1", "Member2", "Member3"},
	}
}
