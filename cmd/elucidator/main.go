// elucidator is a debug/demo CLI over the capi package: parse and render
// specifications, and drive a single in-process session through an
// insert/query cycle, for exercising the library from a terminal instead
// of a foreign-language binding.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Neumenon/elucidator/capi"
	"github.com/Neumenon/elucidator/session"
)

var (
	cfgPath string
	cfg     Config
	logger  *zap.SugaredLogger

	// api is the single process-wide capi.API the CLI drives; a real
	// foreign binding would own one of these per process, exactly as here.
	// Built in PersistentPreRunE, once the logger it's wired with exists.
	api *capi.API
)

var rootCmd = &cobra.Command{
	Use:   "elucidator",
	Short: "Elucidator spec/session debug CLI",
	Long: `elucidator exercises the specification parser and the spatiotemporal
metadata store from the command line: parse and render specification text,
and run a session through register/insert/query by hand.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(cfgPath)
		if err != nil {
			return fmt.Errorf("loading config %q: %w", cfgPath, err)
		}
		cfg = loaded
		logger = newLogger(cfg.JSONLogs)
		api = capi.NewAPI(session.WithLogger(logger))
		return nil
	},
}

func newLogger(jsonOutput bool) *zap.SugaredLogger {
	var zapLogger *zap.Logger
	var err error
	if jsonOutput {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to initialize logger: %v\n", err)
		return zap.NewNop().Sugar()
	}
	return zapLogger.Sugar()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "elucidator.toml", "path to optional TOML config file")
	rootCmd.AddCommand(specCmd)
	rootCmd.AddCommand(sessionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
