package telemetry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.yaml")
	content := `
endpoint: http://localhost:8428/api/v1/import/prometheus
timeout_ms: 500
dns_servers:
  - 1.1.1.1:53
labels:
  version: 1.4.2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	fc, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8428/api/v1/import/prometheus", fc.Endpoint)
	assert.Equal(t, map[string]string{"version": "1.4.2"}, fc.Labels)

	opts := fc.Options()
	assert.Equal(t, fc.Endpoint, opts.Endpoint)
	assert.Equal(t, 500*time.Millisecond, opts.Timeout)
	assert.Equal(t, []string{"1.1.1.1:53"}, opts.DNSServers)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestFileConfigDefaults(t *testing.T) {
	opts := (&FileConfig{}).Options()

	assert.Equal(t, defaultEndpoint, opts.Endpoint)
	assert.Equal(t, defaultTimeout, opts.Timeout)
	assert.Empty(t, opts.DNSServers)
}
