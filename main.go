package main

import (
	"os"

	"github.com/spf13/cobra"

	"catalog-converter/config"
	"catalog-converter/server"
	"catalog-converter/services"
	"catalog-converter/utils"
)

var forceConvert bool

var rootCmd = &cobra.Command{
	Use:           "catalog-converter",
	Short:         "Converts a spreadsheet inventory export into a JSON catalog",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Run one conversion pass and exit",
	RunE:  runConvert,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog over HTTP",
	RunE:  runServe,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the catalog whenever the source file changes",
	RunE:  runWatch,
}

func init() {
	convertCmd.Flags().BoolVar(&forceConvert, "force", false,
		"convert even if the source file is unchanged")
	rootCmd.AddCommand(convertCmd, serveCmd, watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and assembles the shared pipeline. The returned
// logger owns the durable log sink and must be closed by the caller.
func setup() (*config.Config, *utils.Logger, *services.Pipeline) {
	cfg := config.Load()
	logger := utils.NewFileLogger(cfg.LogFilePath)
	pipeline := services.NewPipeline(cfg, logger)

	logger.Info("=== Catalog converter starting ===")
	logger.Info("Config — source: %s | mode: %s | targets: %d | retention: %d",
		cfg.SourcePath, cfg.Mode, len(cfg.OutputPaths), cfg.BackupRetention)

	return cfg, logger, pipeline
}

func runConvert(cmd *cobra.Command, args []string) error {
	_, logger, pipeline := setup()
	defer logger.Close()

	if err := pipeline.Run(forceConvert); err != nil {
		logger.Error("Conversion failed: %v", err)
		return err
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, pipeline := setup()
	defer logger.Close()

	router := server.NewRouter(cfg, pipeline.Builder(), pipeline.Gate(), logger)
	if err := router.Serve(); err != nil {
		logger.Error("Server stopped: %v", err)
		return err
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, logger, pipeline := setup()
	defer logger.Close()

	watcher := services.NewWatcher(cfg, pipeline, logger)
	if err := watcher.Watch(); err != nil {
		logger.Error("Watcher stopped: %v", err)
		return err
	}
	return nil
}
