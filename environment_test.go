package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyArch(t *testing.T) {
	cases := []struct {
		machine string
		want    string
	}{
		{"x86_64", "amd"},
		{"AMD64", "amd"},
		{"x64", "amd"},
		{"aarch64", "arm"},
		{"armv7l", "arm"},
		{"arm64", "arm"},
		{"riscv64", "unknown"},
		{"", "unknown"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, classifyArch(tc.machine), "machine %q", tc.machine)
	}
}

func TestOSReleaseParsing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "os-release")
	content := "NAME=\"Ubuntu\"\nVERSION=\"22.04\"\nID=ubuntu\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	name, version := osRelease(path)

	assert.Equal(t, "ubuntu", name)
	assert.Equal(t, "22.04", version)
}

func TestOSReleaseUnquotedValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "os-release")
	require.NoError(t, os.WriteFile(path, []byte("NAME=Alpine\n#comment\nbroken line\n"), 0o644))

	name, version := osRelease(path)

	assert.Equal(t, "alpine", name)
	assert.Equal(t, "unknown", version)
}

func TestOSReleaseMissingFile(t *testing.T) {
	name, version := osRelease(filepath.Join(t.TempDir(), "does-not-exist"))

	assert.Equal(t, "unknown", name)
	assert.Equal(t, "unknown", version)
}

func TestContainerStatus(t *testing.T) {
	dir := t.TempDir()
	write := func(content string) string {
		path := filepath.Join(dir, "sched")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	// Literal pid-1 mapping: init/systemd report "no", anything else "yes".
	assert.Equal(t, "no", containerStatus(write("systemd (1, #threads: 1)\n")))
	assert.Equal(t, "no", containerStatus(write("init (1, #threads: 1)\n")))
	assert.Equal(t, "yes", containerStatus(write("myapp (1, #threads: 4)\n")))

	assert.Equal(t, "unknown", containerStatus(filepath.Join(dir, "missing")))
}

func TestOfficialImage(t *testing.T) {
	t.Setenv(officialImageEnv, "nikiz24/monitor:latest")
	assert.Equal(t, "yes", officialImage())

	t.Setenv(officialImageEnv, "ghcr.io/someone/else")
	assert.Equal(t, "no", officialImage())

	t.Setenv(officialImageEnv, "")
	assert.Equal(t, "no", officialImage())
}

func TestOSFamily(t *testing.T) {
	assert.NotEmpty(t, osFamily())
	assert.Equal(t, "Linux", osFamilyNames["linux"])
	assert.Equal(t, "Darwin", osFamilyNames["darwin"])
}
