// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/pursctl/config.cue (or $XDG_CONFIG_HOME on Linux,
// ~/Library/Application Support/pursctl/config.cue on macOS, %APPDATA%\pursctl\config.cue
// on Windows), falling back to ./pursctl.cue. Environment variables prefixed with
// PURSCTL_ override file values, e.g. PURSCTL_COMPILER_COMMAND or PURSCTL_UI_VERBOSE.
//
// Files are validated against the embedded CUE schema (config_schema.cue) so that
// unknown fields and wrong types are reported with their CUE path.
package config
