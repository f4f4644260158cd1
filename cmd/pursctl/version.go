// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pursctl/pursctl/internal/issue"
	"github.com/pursctl/pursctl/internal/purs"
)

func newVersionCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show pursctl and compiler versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := app.newSession(ctx, flags)
			if err != nil {
				cmd.SilenceErrors = true
				return &ExitError{Code: 1, Err: err}
			}
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			fmt.Fprintf(app.stdout, "%s %s\n", TitleStyle.Render("pursctl"), getVersionString())

			compiler, err := sess.locator().Locate(ctx)
			if err != nil {
				return sess.fail("locate the PureScript compiler", issue.CompilerNotFoundId, err)
			}

			fmt.Fprintf(app.stdout, "%s %s (%s, minimum %s)\n",
				TitleStyle.Render("purs"),
				compiler.Version(),
				CmdStyle.Render(compiler.Command()),
				purs.MinimumVersion)
			return nil
		},
	}
}
