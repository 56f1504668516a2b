package telemetry

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// FileConfig is the YAML shape accepted by LoadConfig. Callers that run as
// cron jobs keep their endpoint override, extra labels and resolver setup
// in a file instead of code.
type FileConfig struct {
	Endpoint       string            `yaml:"endpoint,omitempty"`
	TimeoutMS      int               `yaml:"timeout_ms,omitempty"`
	RemoteWriteURL string            `yaml:"remote_write_url,omitempty"`
	DNSServers     []string          `yaml:"dns_servers,omitempty"`
	DNSTimeoutMS   int               `yaml:"dns_timeout_ms,omitempty"`
	Labels         map[string]string `yaml:"labels,omitempty"`
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return &fc, nil
}

// Options converts the file configuration to client options, filling
// defaults for anything left unset.
func (fc *FileConfig) Options() Options {
	opts := DefaultOptions()
	if fc.Endpoint != "" {
		opts.Endpoint = fc.Endpoint
	}
	if fc.TimeoutMS > 0 {
		opts.Timeout = time.Duration(fc.TimeoutMS) * time.Millisecond
	}
	opts.RemoteWriteURL = fc.RemoteWriteURL
	opts.DNSServers = append([]string(nil), fc.DNSServers...)
	if fc.DNSTimeoutMS > 0 {
		opts.DNSTimeout = time.Duration(fc.DNSTimeoutMS) * time.Millisecond
	}
	return opts
}
