package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/halcyonair/skyaudit/internal/api"
	"github.com/halcyonair/skyaudit/internal/audit"
	"github.com/halcyonair/skyaudit/internal/config"
	"github.com/halcyonair/skyaudit/internal/dataset"
	"github.com/halcyonair/skyaudit/internal/report"
	"github.com/halcyonair/skyaudit/pkg/logger"
)

var (
	configPath string
	outputPath string
)

var rootCmd = &cobra.Command{
	Use:           "skyaudit",
	Short:         "Audits flight-school records for weather-minimums violations",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var auditCmd = &cobra.Command{
	Use:   "audit <dataset-dir>",
	Short: "Audit a dataset directory and write the violation report",
	Args:  cobra.ExactArgs(1),
	RunE:  runAudit,
}

var serveCmd = &cobra.Command{
	Use:   "serve <dataset-dir>",
	Short: "Serve audit results for a dataset directory over HTTP",
	Args:  cobra.ExactArgs(1),
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to TOML config file")
	auditCmd.Flags().StringVarP(&outputPath, "output", "o", "", "CSV file for the violation report")
	rootCmd.AddCommand(auditCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads configuration, the logger, and the dataset bundle.
func setup(dir string) (*config.Config, *logger.Logger, *audit.Bundle, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	bundle, err := dataset.Load(dir, cfg.Audit)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, log, bundle, nil
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, log, bundle, err := setup(args[0])
	if err != nil {
		return err
	}
	defer log.Sync()

	violations := audit.New(log).WeatherViolations(bundle)

	if len(violations) == 0 {
		fmt.Println("No violations found.")
		return nil
	}

	output := outputPath
	if output == "" {
		output = cfg.Audit.OutputFile
	}
	if err := report.WriteCSV(violations, output); err != nil {
		return err
	}

	if len(violations) == 1 {
		fmt.Println("1 violation found.")
	} else {
		fmt.Printf("%d violations found.\n", len(violations))
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, bundle, err := setup(args[0])
	if err != nil {
		return err
	}
	defer log.Sync()

	router := api.NewRouter(audit.New(log), bundle, cfg, log)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router.Routes(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", logger.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}
