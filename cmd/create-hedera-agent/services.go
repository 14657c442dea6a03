// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"create-hedera-agent/internal/service"

	"github.com/spf13/cobra"
)

func newServicesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List the Hedera services that can be added to a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(app.stdout, TitleStyle.Render("Available services:"))
			for _, e := range service.Catalogue() {
				id := fmt.Sprintf("%-5s", strings.ToLower(e.ID.String()))
				fmt.Fprintf(app.stdout, "  %s %s\n", CmdStyle.Render(id), e.Title)
				fmt.Fprintf(app.stdout, "        %s\n", SubtitleStyle.Render(e.Description))
			}
			return nil
		},
	}
}
