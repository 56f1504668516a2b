package telemetry

import (
	"os"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

const (
	osReleasePath = "/etc/os-release"
	procSchedPath = "/proc/1/sched"

	officialImageEnv    = "MONITOR_IMAGE"
	officialImageVendor = "nikiz24"
)

// osFamilyNames maps runtime.GOOS to the platform-reported OS name used both
// as the "os" label and to select the machine-id probe.
var osFamilyNames = map[string]string{
	"linux":     "Linux",
	"darwin":    "Darwin",
	"windows":   "Windows",
	"freebsd":   "FreeBSD",
	"openbsd":   "OpenBSD",
	"netbsd":    "NetBSD",
	"dragonfly": "DragonFly",
	"solaris":   "SunOS",
	"aix":       "AIX",
}

// osFamily reports the OS name for the running host.
func osFamily() string {
	if name, ok := osFamilyNames[runtime.GOOS]; ok {
		return name
	}
	return runtime.GOOS
}

// machineType reports the kernel machine-type string, e.g. "x86_64" or
// "aarch64". Falls back to the compile-time architecture when the host
// probe fails.
func machineType() string {
	if info, err := host.Info(); err == nil && info.KernelArch != "" {
		return info.KernelArch
	}
	return runtime.GOARCH
}

// classifyArch buckets a machine-type string into a coarse architecture
// class: "amd", "arm" or "unknown".
func classifyArch(machine string) string {
	m := strings.ToLower(machine)
	for _, s := range []string{"x86_64", "amd64", "x64"} {
		if strings.Contains(m, s) {
			return "amd"
		}
	}
	if strings.Contains(m, "arm") || strings.Contains(m, "aarch") {
		return "arm"
	}
	return "unknown"
}

// parseOSRelease reads a key=value release-descriptor file. Each line is
// case-folded, split on the first "=", and the value stripped of
// surrounding double quotes. A missing or unreadable file yields an empty
// map.
func parseOSRelease(path string) map[string]string {
	out := make(map[string]string)
	data, err := os.ReadFile(path)
	if err != nil {
		return out
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(strings.ToLower(line))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		out[key] = strings.Trim(value, `"`)
	}
	return out
}

// osRelease reports the release name and version from the descriptor file,
// "unknown" for anything it cannot determine.
func osRelease(path string) (name, version string) {
	name, version = "unknown", "unknown"
	kv := parseOSRelease(path)
	if v, ok := kv["name"]; ok {
		name = v
	}
	if v, ok := kv["version"]; ok {
		version = v
	}
	return name, version
}

// containerStatus inspects the process-1 scheduling-info file. A missing
// file means a non-Linux host and reports "unknown". Otherwise the first
// field names the pid-1 command: "init" or "systemd" reports "no", anything
// else reports "yes".
func containerStatus(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return "unknown"
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return "yes"
	}
	switch fields[0] {
	case "init", "systemd":
		return "no"
	}
	return "yes"
}

// officialImage reports "yes" when the image environment variable carries
// the vendor marker, "no" otherwise.
func officialImage() string {
	if strings.Contains(os.Getenv(officialImageEnv), officialImageVendor) {
		return "yes"
	}
	return "no"
}
