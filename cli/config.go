package cli

import (
	"fmt"
	"strings"
	"time"
)

// Config holds the configuration for the CLI.
// Values come from DefaultConfig, then the yaml file, then DOCSEARCH_*
// environment variables, then command line flags.
type Config struct {
	// server port. default is 8080
	Port int `yaml:"port" koanf:"port"`

	// Directory that holds uploaded documents.
	UploadDir string `yaml:"upload_dir" koanf:"upload_dir"`

	// sqlite file caching extracted document text.
	Database string `yaml:"database" koanf:"database"`

	// Base url of the upload/search backend used by the forms, the tui
	// and the upload/search subcommands. Empty means this server.
	BackendURL string `yaml:"backend_url" koanf:"backend_url"`

	// Results per page. Default is 6.
	PageSize int `yaml:"page_size" koanf:"page_size"`

	// Largest accepted upload request in megabytes.
	MaxUploadMB int `yaml:"max_upload_mb" koanf:"max_upload_mb"`

	// Max documents extracted at a time.
	// Large values will increase CPU and memory usage.
	// Default is 10.
	MaxConcurrency int `yaml:"concurrency" koanf:"concurrency"`

	// Sentence segmenter: "rule" or "prose".
	Segmenter string `yaml:"segmenter" koanf:"segmenter"`

	// Origins allowed to call the backend api from a browser.
	CORSOrigins []string `yaml:"cors_origins" koanf:"cors_origins"`

	// Idle time after which a visitor's results are forgotten.
	SessionTTL time.Duration `yaml:"session_ttl" koanf:"session_ttl"`

	// Subcommand arguments, never read from the file.
	ConfigFile string `yaml:"-" koanf:"-"`
	Files      string `yaml:"-" koanf:"-"`
	Query      string `yaml:"-" koanf:"-"`
	Choice     string `yaml:"-" koanf:"-"`
	Page       int    `yaml:"-" koanf:"-"`
}

// DefaultConfigFile is loaded when present and no -config flag is given.
const DefaultConfigFile = "docsearch.yaml"

var DefaultConfig = Config{
	Port:           8080,
	UploadDir:      "uploads",
	Database:       "docsearch.db",
	PageSize:       6,
	MaxUploadMB:    50,
	MaxConcurrency: 10,
	Segmenter:      "rule",
	SessionTTL:     30 * time.Minute,
	Choice:         "all",
	Page:           1,
}

// Validate checks values that flags and the file cannot constrain.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be positive")
	}
	if c.MaxUploadMB < 1 {
		return fmt.Errorf("max_upload_mb must be positive")
	}
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("concurrency must be positive")
	}
	if c.Segmenter != "rule" && c.Segmenter != "prose" {
		return fmt.Errorf("invalid segmenter %q: must be rule or prose", c.Segmenter)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	return nil
}

// splitList splits a comma separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
