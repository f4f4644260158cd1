// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"os"
	"sync"
)

// Sandbox type constants.
const (
	// SandboxNone indicates no sandbox environment detected.
	SandboxNone SandboxType = ""
	// SandboxFlatpak indicates a Flatpak sandbox environment.
	SandboxFlatpak SandboxType = "flatpak"
	// SandboxSnap indicates a Snap sandbox environment.
	SandboxSnap SandboxType = "snap"
)

// detectOnce caches the sandbox detection result for the lifetime of the process.
//
// INVARIANT: detectSandboxFrom MUST NOT panic; sync.OnceValue re-panics on
// every call after a panic.
var detectOnce = sync.OnceValue(func() SandboxType {
	return detectSandboxFrom(os.Getenv, statFile)
})

// SandboxType identifies the type of application sandbox, if any.
type SandboxType string

// DetectSandbox returns the sandbox the current process runs in.
// The result is cached after the first call.
func DetectSandbox() SandboxType {
	return detectOnce()
}

// SpawnCommandFor returns the command that runs a program on the host from
// inside the given sandbox. Snap confinement has no host escape for
// arbitrary binaries, so only Flatpak yields a spawn command.
func SpawnCommandFor(st SandboxType) string {
	if st == SandboxFlatpak {
		return "flatpak-spawn"
	}
	return ""
}

// SpawnArgsFor returns the arguments that follow SpawnCommandFor(st).
func SpawnArgsFor(st SandboxType) []string {
	if st == SandboxFlatpak {
		return []string{"--host"}
	}
	return nil
}

// detectSandboxFrom performs sandbox detection using the provided lookup functions.
func detectSandboxFrom(lookupEnv func(string) string, statFile func(string) error) SandboxType {
	// /.flatpak-info is always present inside Flatpak sandboxes.
	if err := statFile("/.flatpak-info"); err == nil {
		return SandboxFlatpak
	}
	if lookupEnv("SNAP_NAME") != "" {
		return SandboxSnap
	}
	return SandboxNone
}

func statFile(path string) error {
	_, err := os.Stat(path)
	return err
}
