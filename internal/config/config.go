package config

import (
	"fmt"
	"time"

	"github.com/akashtjohn/boundbox/pkg/boundbox"
)

// Output formats understood by the convert command and the HTTP API.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatHOCR = "hocr"
)

// Config is the full runtime configuration.
type Config struct {
	LogLevel string                `mapstructure:"log_level" yaml:"log_level"`
	Merge    boundbox.MergeOptions `mapstructure:"merge" yaml:"merge"`
	Output   OutputConfig          `mapstructure:"output" yaml:"output"`
	Server   ServerConfig          `mapstructure:"server" yaml:"server"`
}

// OutputConfig controls how boxes are written.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            int           `mapstructure:"port" yaml:"port"`
	MaxUploadMB     int           `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// DefaultConfig returns the configuration used when nothing else is set.
func DefaultConfig() Config {
	return Config{
		LogLevel: "INFO",
		Merge:    boundbox.DefaultMergeOptions(),
		Output: OutputConfig{
			Format: FormatJSON,
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			MaxUploadMB:     20,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Merge.Validate(); err != nil {
		return err
	}
	if err := ValidateFormat(c.Output.Format); err != nil {
		return err
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server max_upload_mb must be positive, got %d", c.Server.MaxUploadMB)
	}
	return nil
}

// ValidateFormat rejects unknown output formats.
func ValidateFormat(format string) error {
	switch format {
	case FormatJSON, FormatYAML, FormatHOCR:
		return nil
	}
	return fmt.Errorf("unsupported output format %q (want %s, %s or %s)", format, FormatJSON, FormatYAML, FormatHOCR)
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
