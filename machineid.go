package telemetry

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"os/exec"
	"strings"
)

// machineIDSalt is prefixed to the raw identifier before hashing so the raw
// hardware identifier never leaves the host.
const machineIDSalt = "nikiz24-telemetry"

// IdentifierProbe reads a raw host identifier. Probe returns an empty
// string when no identifier is available; it never fails hard.
type IdentifierProbe interface {
	Probe() string
}

// selectIdentifierProbe picks the probe matching the reported OS family.
func selectIdentifierProbe(family string) IdentifierProbe {
	switch family {
	case "Darwin":
		return darwinProbe{}
	case "Windows":
		return windowsProbe{}
	case "FreeBSD", "OpenBSD", "NetBSD", "DragonFly":
		return bsdProbe{}
	default:
		return newUnixProbe()
	}
}

// hashMachineID derives the machine_id label value from a raw identifier.
func hashMachineID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "unknown"
	}
	sum := sha256.Sum256([]byte(machineIDSalt + raw))
	return hex.EncodeToString(sum[:])
}

// unixProbe reads the first available machine-id style file, then falls
// back to the hostname command.
type unixProbe struct {
	files []string
}

func newUnixProbe() unixProbe {
	return unixProbe{
		files: []string{
			"/var/lib/dbus/machine-id",
			"/etc/machine-id",
			"/etc/hostname",
		},
	}
}

func (p unixProbe) Probe() string {
	for _, path := range p.files {
		if data, err := os.ReadFile(path); err == nil {
			if id := strings.TrimSpace(string(data)); id != "" {
				return id
			}
		}
	}
	return commandOutput("hostname")
}

// darwinProbe reads the platform serial number from system_profiler.
type darwinProbe struct{}

func (darwinProbe) Probe() string {
	out := commandOutput("system_profiler", "SPHardwareDataType")
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "Serial Number") {
			continue
		}
		if _, serial, ok := strings.Cut(line, ":"); ok {
			return strings.TrimSpace(serial)
		}
	}
	return ""
}

// bsdProbe reads the SMBIOS system UUID, then the kernel host UUID.
type bsdProbe struct{}

func (bsdProbe) Probe() string {
	if id := commandOutput("kenv", "-q", "smbios.system.uuid"); id != "" {
		return id
	}
	return commandOutput("sysctl", "-n", "kern.hostuuid")
}

// windowsProbe reads the registry-stored machine GUID.
type windowsProbe struct{}

func (windowsProbe) Probe() string {
	out := commandOutput("reg", "query",
		`HKLM\SOFTWARE\Microsoft\Cryptography`, "/v", "MachineGuid")
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "MachineGuid") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) > 0 {
			return fields[len(fields)-1]
		}
	}
	return ""
}

// commandOutput runs a host command and returns its trimmed stdout, or an
// empty string when the command is missing or fails.
func commandOutput(name string, args ...string) string {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
