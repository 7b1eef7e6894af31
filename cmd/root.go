// Package cmd defines the CLI commands for distasm.
package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/distasm/internal/asmerr"
	"github.com/donaldgifford/distasm/internal/config"
	"github.com/donaldgifford/distasm/internal/ui"
)

var (
	verbose bool
	noColor bool
	cfgFile string
)

// rootCmd is the base command for the distasm CLI.
var rootCmd = &cobra.Command{
	Use:   "distasm",
	Short: "Assemble customized Eclipse distributions",
	Long: `Distasm turns vendor Eclipse SDK archives into customized distributions.
For every platform archive in <config-path>/source it extracts the archive,
renames it, installs the features listed in the *.iulist/*.repolist pairs,
stamps a description onto the splash screen and packages the result into
<config-path>/target.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		initLogger()
	},
}

// ExecuteContext runs the root command with ctx, which is cancelled on
// interrupt.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default is <config-path>/distasm.yaml)")
}

func initLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func newUI() *ui.Writer {
	return ui.NewWriter(noColor)
}

// loadConfig resolves the layout below configPath and reads the settings
// file. Settings problems are configuration errors.
func loadConfig(configPath string) (config.Layout, *config.Settings, error) {
	layout, err := config.NewLayout(configPath)
	if err != nil {
		return config.Layout{}, nil, err
	}

	path := cfgFile
	if path == "" {
		path = layout.SettingsPath()
	}

	settings, err := config.LoadSettings(path)
	if err != nil {
		return config.Layout{}, nil, asmerr.Configf("%v", err)
	}

	slog.Debug("loaded settings", "path", path, "prefix", settings.Product.ArchivePrefix)

	return layout, settings, nil
}
