package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/specialistvlad/cslgen/internal/app"
	"github.com/specialistvlad/cslgen/internal/render"
	"github.com/specialistvlad/cslgen/internal/space"
	"github.com/specialistvlad/cslgen/internal/translate"
)

// LogLevelEnv overrides the default log level when -log-level is not given.
const LogLevelEnv = "CSLGEN_LOG_LEVEL"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("cslgen", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprintf(output, `
cslgen - translates a CSL search-space description into target code.

Usage:
  cslgen -csl FILE [options]

Built-in templates: %s

Options:
`, strings.Join(render.BuiltinSkins(), ", "))
		flagSet.PrintDefaults()
	}

	cslFlag := flagSet.String("csl", "", "Path to the CSL source file (required).")
	templateFlag := flagSet.String("template", translate.DefaultSkin, "Built-in template name or path to a template (skin) file.")
	outFlag := flagSet.String("out", translate.DefaultOutputPath, "Path of the generated output file.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'. Defaults to $"+LogLevelEnv+" when set.")
	checkFlag := flagSet.Bool("check", false, "Enumerate the search space after translating and report its legal points.")
	checkLimitFlag := flagSet.Int("check-limit", space.DefaultLimit, "Maximum number of points -check evaluates.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := *cslFlag
	if path == "" && flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if path == "" {
		flagSet.Usage()
		return nil, false, &ExitError{Code: 2, Message: "missing required -csl flag"}
	}
	slog.Debug("CSL input determined.", "path", path)

	logLevel := strings.ToLower(*logLevelFlag)
	if env := os.Getenv(LogLevelEnv); env != "" && !isFlagSet(flagSet, "log-level") {
		logLevel = strings.ToLower(env)
	}

	config, err := app.NewConfig(app.Config{
		InputPath:  path,
		Skin:       *templateFlag,
		OutputPath: *outFlag,
		LogFormat:  strings.ToLower(*logFormatFlag),
		LogLevel:   logLevel,
		Check:      *checkFlag,
		CheckLimit: *checkLimitFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
