// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pursctl/pursctl/internal/config"
)

// newConfigCommand creates the `pursctl config` command tree.
func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage pursctl configuration",
		Long: `Manage pursctl configuration.

Configuration is read from the first of:
  - the file given with --config
  - ./pursctl.cue in the working directory
  - Linux: ~/.config/pursctl/config.cue
  - macOS: ~/Library/Application Support/pursctl/config.cue
  - Windows: %APPDATA%\pursctl\config.cue

Every key can be overridden with a PURSCTL_ environment variable,
for example PURSCTL_COMPILER_COMMAND.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app, flags)
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app, flags, force)
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app, flags)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := loadSession(cmd, app, flags)
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(sess.loaded.Config))
			return nil
		},
	})

	return cfgCmd
}

// loadSession is newSession for commands that only read configuration.
func loadSession(cmd *cobra.Command, app *App, flags *rootFlags) (*session, error) {
	sess, err := app.newSession(cmd.Context(), flags)
	if err != nil {
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		return nil, &ExitError{Code: 1, Err: err}
	}
	return sess, nil
}

func showConfig(cmd *cobra.Command, app *App, flags *rootFlags) error {
	sess, err := loadSession(cmd, app, flags)
	if err != nil {
		return err
	}
	cfg := sess.loaded.Config

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	w := app.stdout

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if sess.loaded.Path != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), sess.loaded.Path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s:\n", keyStyle.Render("compiler"))
	if cfg.Compiler.Command == "" {
		fmt.Fprintf(w, "  command: %s\n", SubtitleStyle.Render("(platform default)"))
	} else {
		fmt.Fprintf(w, "  command: %s\n", valueStyle.Render(cfg.Compiler.Command.String()))
	}
	if len(cfg.Compiler.ExtraArgs) == 0 {
		fmt.Fprintf(w, "  extra_args: %s\n", SubtitleStyle.Render("(none)"))
	} else {
		fmt.Fprintf(w, "  extra_args: %s\n", valueStyle.Render(strings.Join(cfg.Compiler.ExtraArgs, " ")))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("sources"))
	for _, glob := range cfg.SourceGlobs() {
		fmt.Fprintf(w, "  - %s\n", valueStyle.Render(glob))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func initConfig(app *App, flags *rootFlags, force bool) error {
	path := flags.configPath
	if path == "" {
		userPath, err := config.UserConfigPath(config.LoadOptions{})
		if err != nil {
			return err
		}
		path = userPath
	}

	if err := config.WriteDefaultConfig(path, force); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath(app *App, flags *rootFlags) error {
	opts := config.LoadOptions{ConfigFilePath: flags.configPath}

	userPath, err := config.UserConfigPath(opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "Config file: %s\n", userPath)

	resolved, err := config.ResolvePath(opts)
	if err != nil {
		return err
	}
	if resolved == "" {
		fmt.Fprintf(app.stdout, "Active file: %s\n", SubtitleStyle.Render("(none, using defaults)"))
	} else {
		fmt.Fprintf(app.stdout, "Active file: %s\n", resolved)
	}
	return nil
}
