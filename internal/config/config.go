// Package config defines the harness's CLI surface and environment-variable
// fallback, matching the teacher pack's cobra/pflag/viper wiring
// (oasisprotocol-oasis-sdk's tests/benchmark/cmd uses the same trio).
// Every --benchmark_* flag is additionally readable as BENCHMARK_<UPPER_NAME>
// through viper's environment binding.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Format names a reporter output format.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
	FormatCSV     Format = "csv"
)

// Color names a console color mode.
type Color string

const (
	ColorAuto Color = "auto"
	ColorOn   Color = "true"
	ColorOff  Color = "false"
)

// Config is the resolved set of --benchmark_* flags.
type Config struct {
	ListTests             bool
	Filter                string
	MinTime                float64
	Repetitions            int
	ReportAggregatesOnly   bool
	DisplayAggregatesOnly  bool
	Format                 Format
	OutFormat              Format
	Out                    string
	Color                  Color
	Verbosity              int
}

// RegisterFlags adds every --benchmark_* flag (plus --v) to fs, with
// defaults matching the harness's documented CLI surface. Call Load
// afterward, once fs has been parsed, to resolve the final Config.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Bool("benchmark_list_tests", false, "print matching instance names and exit")
	fs.String("benchmark_filter", "all", `restrict instances by regex; "" runs nothing, "all" runs all`)
	fs.Float64("benchmark_min_time", 0.5, "per-run minimum accumulated time, in seconds")
	fs.Int("benchmark_repetitions", 1, "default repetition count")
	fs.Bool("benchmark_report_aggregates_only", false, "suppress per-run rows in the file sink")
	fs.Bool("benchmark_display_aggregates_only", false, "suppress per-run rows in the console sink")
	fs.String("benchmark_format", "console", "console sink format: console, json, or csv")
	fs.String("benchmark_out_format", "json", "file sink format: console, json, or csv")
	fs.String("benchmark_out", "", "also write a report to this file")
	fs.String("benchmark_color", "auto", "colorised console: true, false, or auto")
	fs.Int("v", 0, "verbosity level")
}

// Load binds fs to a fresh viper instance with BENCHMARK_ environment
// fallback (truthy strings 1/true/yes/y/on, case-insensitively) and
// returns the resolved Config.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BENCHMARK")
	v.AutomaticEnv()
	// Flag names already start with benchmark_, so the prefixed key reads
	// BENCHMARK_BENCHMARK_<NAME>; fold the doubled prefix so
	// --benchmark_filter maps to BENCHMARK_FILTER (and --v to BENCHMARK_V).
	v.SetEnvKeyReplacer(strings.NewReplacer("BENCHMARK_BENCHMARK_", "BENCHMARK_", "-", "_"))

	if err := v.BindPFlags(fs); err != nil {
		return Config{}, err
	}

	return Config{
		ListTests:             readBool(v, "benchmark_list_tests"),
		Filter:                v.GetString("benchmark_filter"),
		MinTime:               v.GetFloat64("benchmark_min_time"),
		Repetitions:           v.GetInt("benchmark_repetitions"),
		ReportAggregatesOnly:  readBool(v, "benchmark_report_aggregates_only"),
		DisplayAggregatesOnly: readBool(v, "benchmark_display_aggregates_only"),
		Format:                Format(v.GetString("benchmark_format")),
		OutFormat:             Format(v.GetString("benchmark_out_format")),
		Out:                   v.GetString("benchmark_out"),
		Color:                 Color(v.GetString("benchmark_color")),
		Verbosity:             v.GetInt("v"),
	}, nil
}

// readBool re-parses a viper string/bool value with the harness's truthy
// set (1/true/yes/y/on, case-insensitive) rather than Go's strconv rules,
// since BENCHMARK_* environment values are free-form strings.
func readBool(v *viper.Viper, key string) bool {
	return ParseBool(v.GetString(key))
}

// ParseBool recognizes the harness's truthy token set; anything else,
// including an empty string, is false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}
