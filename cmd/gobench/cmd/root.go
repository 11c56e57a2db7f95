// Package cmd implements the gobench CLI root command, mirroring the
// teacher's cmd/root.go split between command wiring (here) and the
// business logic it dispatches to (RunBenchmarks in the public package).
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	gobench "github.com/gobench-project/gobench"
	"github.com/gobench-project/gobench/internal/config"
	"github.com/gobench-project/gobench/report"
	"github.com/gobench-project/gobench/report/console"
	"github.com/gobench-project/gobench/report/csv"
	"github.com/gobench-project/gobench/report/json"
)

var rootCmd = &cobra.Command{
	Use:   "gobench",
	Short: "Run registered microbenchmarks",
	RunE:  run,
}

// Execute runs the root command; a host binary's main() calls this after
// registering its families.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd.Flags())
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	logger, _ := zap.NewProduction()
	if cfg.Verbosity > 0 {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()
	gobench.SetLogger(logger)

	if cfg.ListTests {
		for _, name := range gobench.ListMatching(cfg.Filter) {
			fmt.Println(name)
		}
		return nil
	}

	sink := newConsoleReporter(cfg)

	if cfg.Out != "" {
		f, err := os.Create(cfg.Out)
		if err != nil {
			return fmt.Errorf("gobench: opening --benchmark_out: %w", err)
		}
		defer f.Close()
		sink = tee(sink, newFileReporter(cfg, f))
	}

	opts := gobench.RunOptions{
		Filter:      cfg.Filter,
		MinTime:     cfg.MinTime,
		Repetitions: cfg.Repetitions,
	}
	if code := gobench.RunBenchmarks(sink, opts); code != 0 {
		os.Exit(code)
	}
	return nil
}

func newConsoleReporter(cfg config.Config) report.Reporter {
	switch cfg.Format {
	case config.FormatJSON:
		r := json.New(os.Stdout)
		r.AggregatesOnly = cfg.DisplayAggregatesOnly
		return r
	case config.FormatCSV:
		r := csv.New(os.Stdout)
		r.AggregatesOnly = cfg.DisplayAggregatesOnly
		return r
	default:
		return console.New(cfg.DisplayAggregatesOnly, cfg.Color)
	}
}

func newFileReporter(cfg config.Config, f *os.File) report.Reporter {
	switch cfg.OutFormat {
	case config.FormatCSV:
		r := csv.New(f)
		r.AggregatesOnly = cfg.ReportAggregatesOnly
		return r
	case config.FormatConsole:
		return console.New(cfg.ReportAggregatesOnly, config.ColorOff)
	default:
		r := json.New(f)
		r.AggregatesOnly = cfg.ReportAggregatesOnly
		return r
	}
}

// teeReporter fans ReportContext/ReportRuns/Finalize out to the console
// and file sinks; each sink applies its own aggregates-only suppression
// independently on the same raw group.
type teeReporter struct {
	a, b report.Reporter
}

func tee(a, b report.Reporter) report.Reporter {
	return &teeReporter{a: a, b: b}
}

func (t *teeReporter) ReportContext(ctx report.Context) bool {
	okA := t.a.ReportContext(ctx)
	okB := t.b.ReportContext(ctx)
	return okA && okB
}

func (t *teeReporter) ReportRuns(group []report.RunRecord) {
	t.a.ReportRuns(group)
	t.b.ReportRuns(group)
}

func (t *teeReporter) Finalize() {
	t.a.Finalize()
	t.b.Finalize()
}
