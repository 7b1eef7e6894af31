package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/distasm/internal/fetch"
	"github.com/donaldgifford/distasm/internal/pipeline"
)

var (
	assemblePlatforms []string
	assembleFetch     bool
)

var assembleCmd = &cobra.Command{
	Use:   "assemble <config-path> <distribution-name> <description> <installer-binary>",
	Short: "Assemble a distribution for every platform archive",
	Long: `Assemble a customized distribution for every base archive found in
<config-path>/source. The work directory is recreated on every run; finished
archives are written to <config-path>/target as
<distribution-name>-<platform>.<filetype>.`,
	Args: cobra.ExactArgs(4),
	RunE: runAssemble,
}

func init() {
	assembleCmd.Flags().StringArrayVar(&assemblePlatforms, "platform", nil,
		"only assemble matching platforms (full platform or OS, can be repeated)")
	assembleCmd.Flags().BoolVar(&assembleFetch, "fetch", false, "fetch missing base archives before assembling")
	rootCmd.AddCommand(assembleCmd)
}

func runAssemble(cmd *cobra.Command, args []string) error {
	layout, settings, err := loadConfig(args[0])
	if err != nil {
		return err
	}

	w := newUI()

	if assembleFetch && len(settings.Fetch.Archives) > 0 {
		if _, err := fetch.Run(cmd.Context(), &fetch.Opts{
			Layout:   layout,
			Settings: settings,
			UI:       w,
			Logger:   slog.Default(),
		}); err != nil {
			return err
		}
	}

	result, err := pipeline.Run(cmd.Context(), &pipeline.Opts{
		Layout:           layout,
		DistributionName: args[1],
		Description:      args[2],
		InstallerBinary:  args[3],
		Settings:         settings,
		Platforms:        assemblePlatforms,
		UI:               w,
		Logger:           slog.Default(),
	})
	if err != nil {
		return err
	}

	for _, o := range result.Outputs {
		w.Successf("%s", o.Archive)
	}

	return nil
}
