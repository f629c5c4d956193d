// Command dopingplot renders the doping scatter plot without running the
// HTTP service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dopingplot/internal/config"
	"dopingplot/internal/logger"
)

var opts struct {
	mock     bool
	url      string
	logLevel string
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dopingplot",
		Short:         "Render the Alpe d'Huez doping scatter plot",
		Long:          "Fetch the cyclist dataset, normalize it and render the doping scatter plot as SVG, PNG and interactive HTML.",
		Version:       config.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger.Configure(opts.logLevel, "text")
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&opts.mock, "mock", false, "use the embedded sample dataset instead of fetching")
	flags.StringVar(&opts.url, "url", "", "dataset URL (defaults to DATASET_URL)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	cmd.AddCommand(newRenderCmd(), newRecordsCmd(), newGeometryCmd())
	return cmd
}

// loadConfig reads the environment and applies the persistent flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return nil, err
	}
	if opts.mock {
		cfg.MockupMode = true
	}
	if opts.url != "" {
		cfg.DatasetURL = opts.url
	}
	return cfg, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
