package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/setup-cpp/internal/app"
	"go.trai.ch/setup-cpp/internal/core/domain"
	"go.trai.ch/setup-cpp/internal/ui/report"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the requested tools and add them to PATH",
		Long: "Install the requested tools and add them to PATH.\n\n" +
			"Each tool flag takes a version, \"true\" for the default version or \"false\" to skip it.\n" +
			"Flags override the manifest named by SETUP_CPP_CONFIG.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			overrides := make(map[string]string, len(domain.ToolOrder))
			for _, tool := range domain.ToolOrder {
				v, _ := cmd.Flags().GetString(tool)
				overrides[tool] = v
			}
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			asJSON, _ := cmd.Flags().GetBool("json")
			noProgress, _ := cmd.Flags().GetBool("no-progress")

			requests, err := c.app.Requests(overrides)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				planned, err := c.app.Plan(requests)
				if err != nil {
					return err
				}
				if asJSON {
					return report.JSON(out, planned)
				}
				return report.New(out).Plan(planned)
			}

			entries, err := c.app.Run(cmd.Context(), requests, app.RunOptions{DisableProgress: noProgress})
			if err != nil {
				return err
			}
			if asJSON {
				return report.JSON(out, entries)
			}
			return report.New(out).Summary(entries)
		},
	}

	for _, tool := range domain.ToolOrder {
		cmd.Flags().String(tool, "", "Version of "+tool+" to install")
	}
	cmd.Flags().BoolP("dry-run", "n", false, "Print the resolved tools and sources without installing")
	cmd.Flags().Bool("json", false, "Print the result as JSON")
	cmd.Flags().Bool("no-progress", false, "Do not write the progress journal")
	return cmd
}
