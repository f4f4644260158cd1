// SPDX-License-Identifier: MPL-2.0

// Package platform describes the host the compiler runs on.
//
// A HostPlatform value is passed explicitly to the compiler locator rather
// than consulting runtime.GOOS at the point of use, so both the Windows and
// the POSIX resolution branches can be exercised from any test host.
package platform
