package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbench/internal/collector"
	"github.com/goliatone/go-formbench/internal/output"
	"github.com/goliatone/go-formbench/internal/report"
	"github.com/goliatone/go-formbench/internal/server"
	"github.com/goliatone/go-formbench/pkg/metrics"
)

var (
	serveAddr string

	benchURL         string
	benchReportsDir  string
	benchPlanPath    string
	benchInteractive bool
	benchProgress    bool

	reportReportsDir string
	reportOutDir     string
	reportFormat     string
)

var rootCmd = &cobra.Command{
	Use:   "formbench",
	Short: "Compare server-rendered and client-hydrated form implementations",
	Long: `formbench serves the same dynamically configured form through two
implementations, drives a browser against both, and reports which one
performs better per category.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the form workbench HTTP server",
	RunE:  runServe,
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Drive a browser against a running server and record metrics",
	RunE:  runBench,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregate recorded metrics into a comparison report",
	RunE:  runReport,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")

	benchCmd.Flags().StringVar(&benchURL, "url", "http://localhost:8080", "Base URL of a running formbench server")
	benchCmd.Flags().StringVar(&benchReportsDir, "reports-dir", "reports", "Directory metric batches are written to")
	benchCmd.Flags().StringVar(&benchPlanPath, "plan", "", "YAML sweep file (default: built-in plan)")
	benchCmd.Flags().BoolVar(&benchInteractive, "interactive", false, "Prompt for the field configuration instead of using a plan")
	benchCmd.Flags().BoolVar(&benchProgress, "progress", true, "Show progress bar")

	reportCmd.Flags().StringVar(&reportReportsDir, "reports-dir", "reports", "Directory holding recorded metric batches")
	reportCmd.Flags().StringVar(&reportOutDir, "out-dir", "reports", "Directory the JSON and HTML reports are written to")
	reportCmd.Flags().StringVar(&reportFormat, "format", "table", "Console output format (table, json)")

	rootCmd.AddCommand(serveCmd, benchCmd, reportCmd)
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := newLogger()
	srv, err := server.New(
		server.WithAddr(serveAddr),
		server.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	log.WithField("addr", serveAddr).Info("starting formbench server")
	return srv.Run(ctx)
}

func runBench(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	plan, err := buildPlan()
	if err != nil {
		if errors.Is(err, collector.ErrPromptCancelled) {
			return nil
		}
		return err
	}

	store, err := metrics.NewStore(benchReportsDir)
	if err != nil {
		return fmt.Errorf("open metrics store: %w", err)
	}

	log := newLogger()
	c, err := collector.New(benchURL, store,
		collector.WithLogger(log),
		collector.WithProgress(benchProgress),
	)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"url":    benchURL,
		"run_id": c.RunID(),
		"steps":  plan.Measurements(),
	}).Info("starting benchmark run")

	if err := c.Run(ctx, plan); err != nil {
		return fmt.Errorf("benchmark run: %w", err)
	}

	log.WithField("dir", store.Dir()).Info("benchmark complete")
	return nil
}

func buildPlan() (collector.Plan, error) {
	if benchInteractive {
		return collector.PromptPlan()
	}
	if benchPlanPath != "" {
		return collector.LoadPlan(benchPlanPath)
	}
	return collector.DefaultPlan(), nil
}

func runReport(cmd *cobra.Command, args []string) error {
	store, err := metrics.NewStore(reportReportsDir)
	if err != nil {
		return fmt.Errorf("open metrics store: %w", err)
	}
	samples, err := store.LoadSamples()
	if err != nil {
		return fmt.Errorf("load samples: %w", err)
	}
	if len(samples) == 0 {
		return fmt.Errorf("no samples found in %s, run 'formbench bench' first", reportReportsDir)
	}

	r := report.NewGenerator().Generate(samples)

	emitter, err := report.NewEmitter(reportOutDir)
	if err != nil {
		return fmt.Errorf("prepare report output: %w", err)
	}
	jsonPath, err := emitter.WriteJSON(r)
	if err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}
	htmlPath, err := emitter.WriteHTML(r)
	if err != nil {
		return fmt.Errorf("write HTML report: %w", err)
	}

	formatter, err := output.NewFormatter(reportFormat)
	if err != nil {
		return err
	}
	if err := formatter.Format(os.Stdout, r); err != nil {
		return fmt.Errorf("format report: %w", err)
	}

	fmt.Fprintf(os.Stdout, "\nReports written:\n  %s\n  %s\n", jsonPath, htmlPath)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
