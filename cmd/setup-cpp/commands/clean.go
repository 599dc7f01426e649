package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/setup-cpp/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove downloaded and extracted archives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			toolCache, _ := cmd.Flags().GetBool("tool-cache")
			return c.app.Clean(cmd.Context(), app.CleanOptions{ToolCache: toolCache})
		},
	}

	cmd.Flags().BoolP("tool-cache", "t", false, "Also remove the tool cache")

	return cmd
}
