// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"log/slog"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/pursctl/pursctl/internal/config"
)

// splitArgs separates positional globs from the arguments after "--",
// which are handed to purs untouched.
func splitArgs(cmd *cobra.Command, args []string) (globs, passthrough []string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}

// resolveInputs returns the source globs and extra compiler arguments for
// one invocation. Configured extra arguments precede command-line ones.
func resolveInputs(cfg *config.Config, globs, passthrough []string) ([]string, []string) {
	if len(globs) == 0 {
		globs = cfg.SourceGlobs()
	}

	extra := make([]string, 0, len(cfg.Compiler.ExtraArgs)+len(passthrough))
	extra = append(extra, cfg.Compiler.ExtraArgs...)
	extra = append(extra, passthrough...)
	return globs, extra
}

// warnEmptyGlobs logs a warning for every glob that matches no file on
// disk. The globs are still passed to purs verbatim.
func warnEmptyGlobs(logger *slog.Logger, globs []string) {
	for _, glob := range globs {
		matches, err := doublestar.FilepathGlob(glob, doublestar.WithFilesOnly())
		if err != nil {
			logger.Warn("invalid source glob", "glob", glob, "error", err)
			continue
		}
		if len(matches) == 0 {
			logger.Warn("source glob matches no files", "glob", glob)
			continue
		}
		logger.Debug("source glob", "glob", glob, "matches", len(matches))
	}
}
