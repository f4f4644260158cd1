// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
	goruntime "runtime"
)

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// ErrInvalidHostPlatform is the sentinel error wrapped by InvalidHostPlatformError.
var ErrInvalidHostPlatform = errors.New("invalid host platform")

type (
	// OSFamily is a GOOS-style operating system name ("windows", "linux", ...).
	OSFamily string

	// HostPlatform is the environment capability handed to the compiler locator.
	HostPlatform struct {
		// OS is the operating system family of the host.
		OS OSFamily
		// Sandbox is the application sandbox the process runs in, if any.
		Sandbox SandboxType
	}

	// InvalidHostPlatformError is returned when a HostPlatform has no OS family.
	InvalidHostPlatformError struct {
		Value HostPlatform
	}
)

// Current returns the platform of the running process.
func Current() HostPlatform {
	return HostPlatform{
		OS:      OSFamily(goruntime.GOOS),
		Sandbox: DetectSandbox(),
	}
}

// String returns the OS family name.
func (f OSFamily) String() string { return string(f) }

// IsWindows reports whether the host OS family is Windows.
func (p HostPlatform) IsWindows() bool { return p.OS == Windows }

// SpawnPrefix returns the command and arguments that must precede a host
// command when running inside a sandbox. Both are empty outside a sandbox.
func (p HostPlatform) SpawnPrefix() (string, []string) {
	return SpawnCommandFor(p.Sandbox), SpawnArgsFor(p.Sandbox)
}

// Validate returns an error when the OS family is empty.
func (p HostPlatform) Validate() error {
	if p.OS == "" {
		return &InvalidHostPlatformError{Value: p}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidHostPlatformError) Error() string {
	return fmt.Sprintf("invalid host platform %+v: OS family must be set", e.Value)
}

// Unwrap returns ErrInvalidHostPlatform for errors.Is() compatibility.
func (e *InvalidHostPlatformError) Unwrap() error { return ErrInvalidHostPlatform }
