// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultSourceGlob is used when no source globs are configured.
	DefaultSourceGlob SourceGlob = "src/**/*.purs"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidCompilerCommand is returned when a CompilerCommand is whitespace-only.
	ErrInvalidCompilerCommand = errors.New("invalid compiler command")
	// ErrInvalidSourceGlob is the sentinel error wrapped by InvalidSourceGlobError.
	ErrInvalidSourceGlob = errors.New("invalid source glob")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// CompilerCommand is a command name or path used instead of the platform
	// candidates. The zero value means "use the platform candidates".
	CompilerCommand string

	// InvalidCompilerCommandError is returned when a CompilerCommand is
	// non-empty but whitespace-only.
	InvalidCompilerCommandError struct {
		Value CompilerCommand
	}

	// SourceGlob is a doublestar pattern selecting PureScript sources. It is
	// passed to the compiler verbatim.
	SourceGlob string

	// InvalidSourceGlobError is returned when a SourceGlob is empty or not a
	// well-formed pattern.
	InvalidSourceGlobError struct {
		Value  SourceGlob
		Reason string
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Compiler configures how the purs binary is found and invoked.
		Compiler CompilerConfig `json:"compiler" mapstructure:"compiler"`
		// Sources configures the default source globs.
		Sources SourcesConfig `json:"sources" mapstructure:"sources"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// CompilerConfig configures the compiler.
	CompilerConfig struct {
		// Command overrides the platform candidates when set.
		Command CompilerCommand `json:"command" mapstructure:"command"`
		// ExtraArgs are passed to every compiler subcommand before the
		// arguments given on the command line.
		ExtraArgs []string `json:"extra_args" mapstructure:"extra_args"`
	}

	// SourcesConfig configures the default source globs.
	SourcesConfig struct {
		// Globs is used when no globs are given on the command line.
		Globs []SourceGlob `json:"globs" mapstructure:"globs"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Compiler.Command.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, glob := range c.Sources.Globs {
		if valid, fieldErrs := glob.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig followed by the field errors.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// SourceGlobs returns the configured globs as plain strings, falling back
// to DefaultSourceGlob when none are configured.
func (c Config) SourceGlobs() []string {
	if len(c.Sources.Globs) == 0 {
		return []string{string(DefaultSourceGlob)}
	}
	globs := make([]string, len(c.Sources.Globs))
	for i, g := range c.Sources.Globs {
		globs[i] = string(g)
	}
	return globs
}

// String returns the string representation of the CompilerCommand.
func (c CompilerCommand) String() string { return string(c) }

// IsValid returns whether the CompilerCommand is valid. The zero value is
// valid; non-zero values must not be whitespace-only.
func (c CompilerCommand) IsValid() (bool, []error) {
	if c != "" && strings.TrimSpace(string(c)) == "" {
		return false, []error{&InvalidCompilerCommandError{Value: c}}
	}
	return true, nil
}

// Error implements the error interface for InvalidCompilerCommandError.
func (e *InvalidCompilerCommandError) Error() string {
	return fmt.Sprintf("invalid compiler command %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidCompilerCommand for errors.Is() compatibility.
func (e *InvalidCompilerCommandError) Unwrap() error { return ErrInvalidCompilerCommand }

// String returns the string representation of the SourceGlob.
func (g SourceGlob) String() string { return string(g) }

// IsValid returns whether the SourceGlob is a non-empty, well-formed
// doublestar pattern.
func (g SourceGlob) IsValid() (bool, []error) {
	if strings.TrimSpace(string(g)) == "" {
		return false, []error{&InvalidSourceGlobError{Value: g, Reason: "must be non-empty"}}
	}
	if !doublestar.ValidatePattern(string(g)) {
		return false, []error{&InvalidSourceGlobError{Value: g, Reason: "malformed pattern"}}
	}
	return true, nil
}

// Error implements the error interface for InvalidSourceGlobError.
func (e *InvalidSourceGlobError) Error() string {
	return fmt.Sprintf("invalid source glob %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidSourceGlob for errors.Is() compatibility.
func (e *InvalidSourceGlobError) Unwrap() error { return ErrInvalidSourceGlob }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// GlamourStyle returns the glamour standard style matching the scheme.
func (cs ColorScheme) GlamourStyle() string {
	switch cs {
	case ColorSchemeDark:
		return "dark"
	case ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Compiler: CompilerConfig{
			Command:   "",
			ExtraArgs: []string{},
		},
		Sources: SourcesConfig{
			Globs: []SourceGlob{DefaultSourceGlob},
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
