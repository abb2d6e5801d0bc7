// Package config loads AccessLens settings from an optional YAML or JSON
// file. Command-line flags are applied on top by the cmd package.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/accesslens/core"
)

// Output formats understood by the report command.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatPDF      = "pdf"
)

// Config is the complete runtime configuration.
type Config struct {
	LogLevel string `yaml:"logLevel" json:"logLevel"`

	Fetch struct {
		Timeout      time.Duration `yaml:"timeout" json:"timeout"`
		UserAgent    string        `yaml:"userAgent" json:"userAgent"`
		MaxBodyBytes int64         `yaml:"maxBodyBytes" json:"maxBodyBytes"`
	} `yaml:"fetch" json:"fetch"`

	Output struct {
		Dir    string `yaml:"dir" json:"dir"`
		Format string `yaml:"format" json:"format"`
	} `yaml:"output" json:"output"`

	Site struct {
		MaxPages int `yaml:"maxPages" json:"maxPages"`
		Workers  int `yaml:"workers" json:"workers"`
	} `yaml:"site" json:"site"`

	Server struct {
		Addr           string        `yaml:"addr" json:"addr"`
		RequestTimeout time.Duration `yaml:"requestTimeout" json:"requestTimeout"`
		MaxBodyBytes   int64         `yaml:"maxBodyBytes" json:"maxBodyBytes"`
	} `yaml:"server" json:"server"`

	Preferences core.Preferences `yaml:"preferences" json:"preferences"`
}

// Default returns the built-in configuration.
func Default() Config {
	var c Config
	c.LogLevel = "info"
	c.Fetch.Timeout = 30 * time.Second
	c.Fetch.MaxBodyBytes = 10 << 20
	c.Output.Format = FormatMarkdown
	c.Site.MaxPages = 100
	c.Site.Workers = 4
	c.Server.Addr = ":8080"
	c.Server.RequestTimeout = 45 * time.Second
	c.Server.MaxBodyBytes = 10 << 20
	c.Preferences.SimplifyContent = true
	return c
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("reading config: %w", err)
	}
	switch filepath.Ext(path) {
	case ".json":
		if err := json.Unmarshal(b, &c); err != nil {
			return c, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return c, fmt.Errorf("parse yaml: %w", err)
		}
	}
	return c, c.Validate()
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	switch c.Output.Format {
	case FormatJSON, FormatMarkdown, FormatPDF:
	default:
		return fmt.Errorf("unknown output format %q (want json, markdown or pdf)", c.Output.Format)
	}
	if c.Site.Workers < 1 {
		return fmt.Errorf("site.workers must be at least 1, got %d", c.Site.Workers)
	}
	if c.Fetch.Timeout < 0 || c.Server.RequestTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}
