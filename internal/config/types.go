package config

// Link is an external navigation entry (source repository, profile, ...).
type Link struct {
	Label string `yaml:"label" koanf:"label"`
	URL   string `yaml:"url" koanf:"url"`
}

// Config is the top-level folio configuration, corresponding to .folio.yml.
type Config struct {
	Site       SiteConfig   `yaml:"site" koanf:"site"`
	Server     ServerConfig `yaml:"server" koanf:"server"`
	Demo       DemoConfig   `yaml:"demo" koanf:"demo"`
	Export     ExportConfig `yaml:"export" koanf:"export"`
	ContentDir string       `yaml:"content_dir" koanf:"content_dir"`
	AssetsDir  string       `yaml:"assets_dir" koanf:"assets_dir"`
	DataDir    string       `yaml:"data_dir" koanf:"data_dir"`
	LogLevel   string       `yaml:"log_level" koanf:"log_level"`
	Links      []Link       `yaml:"links" koanf:"links"`
	Members    []string     `yaml:"members" koanf:"members"`
}

// SiteConfig holds the text shown in the page shell.
type SiteConfig struct {
	Title      string `yaml:"title" koanf:"title"`
	Owner      string `yaml:"owner" koanf:"owner"`
	ResumePath string `yaml:"resume_path" koanf:"resume_path"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Probe    bool `yaml:"probe" koanf:"probe"`
}

// DemoConfig describes how the external rendering module is attached.
type DemoConfig struct {
	CanvasID   string `yaml:"canvas_id" koanf:"canvas_id"`
	HandleName string `yaml:"handle_name" koanf:"handle_name"`
	LoaderSrc  string `yaml:"loader_src" koanf:"loader_src"`
}

// ExportConfig selects which files from AssetsDir are copied by `folio export`.
type ExportConfig struct {
	OutputDir string   `yaml:"output_dir" koanf:"output_dir"`
	Include   []string `yaml:"include" koanf:"include"`
	Exclude   []string `yaml:"exclude" koanf:"exclude"`
}
