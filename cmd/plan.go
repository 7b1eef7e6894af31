package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/distasm/internal/plan"
)

var (
	planOutputFormat string
	planName         string
	planPlatforms    []string
)

var planCmd = &cobra.Command{
	Use:   "plan <config-path>",
	Short: "Show what an assembly would do",
	Long: `List the platform archives and install lists an assembly would process,
without running any tool. Unsupported archives and unit lists without a
repository list are shown rather than rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planOutputFormat, "output", "o", "text", "output format (text, json)")
	planCmd.Flags().StringVar(&planName, "name", "", "distribution name used for output archive names")
	planCmd.Flags().StringArrayVar(&planPlatforms, "platform", nil, "only show matching platforms (can be repeated)")
	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, args []string) error {
	layout, settings, err := loadConfig(args[0])
	if err != nil {
		return err
	}

	return plan.Run(&plan.Opts{
		Layout:           layout,
		Settings:         settings,
		DistributionName: planName,
		Platforms:        planPlatforms,
		OutputFormat:     planOutputFormat,
		Writer:           newUI().Out(),
		Logger:           slog.Default(),
	})
}
