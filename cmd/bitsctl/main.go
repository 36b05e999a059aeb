package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/danmuck/bitsctl/internal/config"
	"github.com/danmuck/bitsctl/internal/export"
	"github.com/danmuck/bitsctl/internal/logging"
	"github.com/danmuck/bitsctl/internal/observability"
	"github.com/danmuck/bitsctl/internal/protocol"
	"github.com/danmuck/bitsctl/internal/solver"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

const usage = `usage: bitsctl [flags] <part|command>

parts:
  1, bits.versions   sum of every packet version
  2, bits.eval       value of the packet expression

commands:
  dump               export the decoded packet tree
  list               list registered solvers

flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("bitsctl", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	input := fs.StringP("input", "i", "-", `input path or "-" for stdin`)
	configPath := fs.StringP("config", "c", "", "TOML config path")
	format := fs.StringP("format", "f", string(export.FormatText), "dump format: text|yaml|json|cbor")
	maxDepth := fs.Int("max-depth", protocol.DefaultLimits().MaxDepth, "packet nesting limit, 0 disables")
	metricsFile := fs.String("metrics-file", "", "write prometheus text exposition on exit")
	logLevel := fs.String("log-level", "", "log level: trace|debug|info|warn|error|off")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 2
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "bitsctl: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	if fs.Changed("input") {
		cfg.Input = *input
	}
	if fs.Changed("format") {
		f, err := export.ParseFormat(*format)
		if err != nil {
			fmt.Fprintf(stderr, "bitsctl: %v\n", err)
			return 2
		}
		cfg.Format = f
	}
	if fs.Changed("max-depth") {
		cfg.MaxDepth = *maxDepth
	}
	if fs.Changed("metrics-file") {
		cfg.MetricsFile = *metricsFile
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = *logLevel
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(stderr, "bitsctl: %v\n", err)
		return 2
	}

	logging.ConfigureRuntime()
	if cfg.LogLevel != "" {
		logging.SetLevel(cfg.LogLevel)
	}
	_, runID := observability.InitLogger("bitsctl")
	log.Debug().Str("run", runID).Str("input", cfg.Input).Msg("starting")

	command := strconv.Itoa(cfg.Part)
	if fs.NArg() == 1 {
		command = fs.Arg(0)
	}

	code := dispatch(command, cfg, stdin, stdout, stderr)

	if cfg.MetricsFile != "" {
		if err := observability.WriteTextfile(cfg.MetricsFile); err != nil {
			fmt.Fprintf(stderr, "bitsctl: %v\n", err)
			if code == 0 {
				code = 1
			}
		}
	}
	return code
}

func dispatch(command string, cfg config.Config, stdin io.Reader, stdout, stderr io.Writer) int {
	registry := solver.DefaultRegistry(cfg.Limits())

	switch command {
	case "list":
		for _, meta := range registry.ListMetadata() {
			fmt.Fprintf(stdout, "%d\t%s\t%s\n", meta.Part, meta.ID, meta.Description)
		}
		return 0
	case "dump":
		if err := dump(cfg, stdin, stdout); err != nil {
			fmt.Fprintf(stderr, "bitsctl: %v\n", err)
			return 1
		}
		return 0
	}

	s, ok := registry.Resolve(command)
	if !ok {
		fmt.Fprintf(stderr, "bitsctl: unknown part or command %q\n", command)
		return 2
	}
	lines, err := readInput(cfg.Input, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "bitsctl: %v\n", err)
		return 1
	}
	answer, err := s.Solve(lines)
	if err != nil {
		log.Error().Err(err).Str("solver", s.Metadata().ID).Msg("solve failed")
		fmt.Fprintf(stderr, "bitsctl: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "The solution to part %d is %q\n", s.Metadata().Part, answer)
	return 0
}

func dump(cfg config.Config, stdin io.Reader, stdout io.Writer) error {
	lines, err := readInput(cfg.Input, stdin)
	if err != nil {
		return err
	}
	line, err := solver.FirstLine(lines)
	if err != nil {
		return err
	}
	res, err := solver.DecodeLine(protocol.NewDecoder(cfg.Limits()), line)
	if err != nil {
		return err
	}
	return export.Encode(stdout, export.Build(line, res), cfg.Format)
}

func readInput(path string, stdin io.Reader) ([]string, error) {
	rc, err := solver.OpenInput(path, stdin)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return solver.ReadLines(rc)
}
