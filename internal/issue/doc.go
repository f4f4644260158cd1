// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// remediation hints. Each error may name an entry of the issue catalog, a
// Markdown help page rendered with glamour when pursctl exits on that error.
package issue
