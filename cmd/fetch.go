package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/distasm/internal/fetch"
)

var fetchForce bool

var fetchCmd = &cobra.Command{
	Use:   "fetch <config-path>",
	Short: "Download the base archives listed in the settings file",
	Long: `Download every archive listed under fetch.archives in distasm.yaml into
<config-path>/source. Sources use go-getter syntax, so http(s), s3::, gcs::
and local paths all work. Archives already present are skipped unless
--force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchForce, "force", false, "download archives that already exist")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	layout, settings, err := loadConfig(args[0])
	if err != nil {
		return err
	}

	w := newUI()

	result, err := fetch.Run(cmd.Context(), &fetch.Opts{
		Layout:   layout,
		Settings: settings,
		Force:    fetchForce,
		UI:       w,
		Logger:   slog.Default(),
	})
	if err != nil {
		return err
	}

	w.Infof("%d fetched, %d already present", len(result.Fetched), len(result.Skipped))

	return nil
}
