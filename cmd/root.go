// Package cmd implements the CLI command structure for todotxt.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/nibzard/todotxt-go/internal/config"
	"github.com/nibzard/todotxt-go/internal/logging"
	"github.com/nibzard/todotxt-go/internal/parallel"
	"github.com/nibzard/todotxt-go/internal/render"
	"github.com/nibzard/todotxt-go/internal/todo"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the todotxt CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todotxt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.NewFromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	if f := cws.GetConfigFile(); f != "" {
		logger.Debug("loaded config", "file", f)
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "ls" as default
	subcommand := "ls"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	// Execute the subcommand
	switch subcommand {
	case "parse":
		return parseCommand(ctx, cfg, logger, remainingArgs)
	case "ls", "list":
		return lsCommand(ctx, cfg, logger, remainingArgs)
	case "check":
		return checkCommand(ctx, cfg, logger, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		// If it's not a recognized command, it might be a todo.txt path for ls
		if fi, err := os.Stat(subcommand); err == nil && !fi.IsDir() {
			return lsCommand(ctx, cfg, logger, append(remainingArgs, subcommand))
		}
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// parseCommand decodes lines given as arguments, or read from stdin when
// there are none, and prints the decoded tasks.
func parseCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("todotxt parse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	formatName := fs.String("format", cfg.Format, "Output format (text, table, json, yaml)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	format, err := render.ParseFormat(*formatName)
	if err != nil {
		return err
	}

	var lines []todo.Line
	if remaining := fs.Args(); len(remaining) > 0 {
		for i, text := range remaining {
			lines = append(lines, todo.Line{Number: i + 1, Text: text})
		}
	} else {
		lines, err = todo.ReadLines(stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	f, err := parallel.Decode(ctx, lines, parallel.Options{Workers: cfg.Workers})
	if err != nil {
		return err
	}
	if len(f.Errors) > 0 {
		errs := make([]error, 0, len(f.Errors))
		for _, pe := range f.Errors {
			logger.Warn("rejected line", "line", pe.Line, "raw", pe.Raw, "err", pe.Err)
			errs = append(errs, pe)
		}
		return fmt.Errorf("%d of %d line(s) rejected: %w", len(f.Errors), len(lines), errors.Join(errs...))
	}

	return render.Write(stdout, f.Tasks, format)
}

// lsCommand lists the tasks of a todo.txt file.
func lsCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("todotxt ls", flag.ContinueOnError)
	fs.SetOutput(stderr)
	formatName := fs.String("format", cfg.Format, "Output format (text, table, json, yaml)")
	rejectsPath := fs.String("rejects", "", "Write rejected lines to this JSONL file")
	status := fs.String("status", "", "Filter by status (open|done)")
	projectTag := fs.String("project", "", "Only tasks tagged with any of these +projects (comma-separated)")
	contextTag := fs.String("context", "", "Only tasks tagged with any of these @contexts (comma-separated)")
	priority := fs.String("priority", "", "Only tasks with this priority (A-Z)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	format, err := render.ParseFormat(*formatName)
	if err != nil {
		return err
	}
	filter, err := newTaskFilter(*status, *projectTag, *contextTag, *priority)
	if err != nil {
		return err
	}

	todoPath, err := todoPathArg(cfg, fs.Args())
	if err != nil {
		return err
	}

	var rejects *logging.RejectLog
	if *rejectsPath != "" {
		rejects, err = logging.NewRejectLog(*rejectsPath)
		if err != nil {
			return err
		}
		defer rejects.Close()
	}

	f, decodeErr := decodeFile(ctx, cfg, logger, todoPath)
	if f == nil {
		return decodeErr
	}
	for _, pe := range f.Errors {
		if err := rejects.Record(todoPath, pe); err != nil {
			return err
		}
	}
	if decodeErr != nil {
		return decodeErr
	}

	tasks := make([]*todo.Task, 0, len(f.Tasks))
	for _, t := range f.Tasks {
		if filter.match(t) {
			tasks = append(tasks, t)
		}
	}
	logger.Debug("listed tasks", "file", todoPath, "tasks", len(f.Tasks), "shown", len(tasks), "rejected", len(f.Errors))

	return render.Write(stdout, tasks, format)
}

// checkCommand validates a todo.txt file.
func checkCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("todotxt check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	schemaPath := fs.String("schema", cfg.SchemaFile, "Path to task JSON schema (default: embedded)")
	minimal := fs.Bool("minimal", false, "Skip JSON Schema validation")

	if err := fs.Parse(args); err != nil {
		return err
	}

	todoPath, err := todoPathArg(cfg, fs.Args())
	if err != nil {
		return err
	}

	f, err := decodeFile(ctx, cfg, logger, todoPath)
	if err != nil {
		return err
	}

	result := f.Validate(todo.ValidationOptions{
		SchemaPath: resolvePath(cfg, *schemaPath),
		Minimal:    *minimal,
	})

	fmt.Fprintf(stdout, "Todo file: %s\n", todoPath)
	switch {
	case result.UsedSchema && *schemaPath != "":
		fmt.Fprintf(stdout, "Schema: %s\n", *schemaPath)
	case result.UsedSchema:
		fmt.Fprintln(stdout, "Schema: embedded")
	default:
		fmt.Fprintln(stdout, "Schema: none (minimal checks)")
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(stdout, "  warning: %s\n", w)
	}
	if result.Valid {
		fmt.Fprintf(stdout, "OK: %d task(s)\n", len(f.Tasks))
		return nil
	}

	fmt.Fprintln(stdout, "Validation failed:")
	for _, e := range result.Errors {
		fmt.Fprintf(stdout, "  - %v\n", e)
	}
	return fmt.Errorf("validation failed: %d error(s)", len(result.Errors))
}

// configCommand prints the effective configuration and where each value came from.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("todotxt config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	example := fs.Bool("example", false, "Print an example config file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if *example {
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	}

	if f := cws.GetConfigFile(); f != "" {
		fmt.Fprintf(stdout, "Config file: %s\n", f)
	} else {
		fmt.Fprintln(stdout, "Config file: (none)")
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(stdout)
	tw.AppendHeader(table.Row{"Key", "Value", "Source"})
	for _, field := range config.Fields() {
		tw.AppendRow(table.Row{field, cws.Config.Value(field), cws.Source(field)})
	}
	tw.Render()
	return nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "todotxt version %s\n", Version)
	return nil
}

// decodeFile reads path and decodes its lines in parallel, logging every
// rejected line. When fail-fast stops the decode it returns the partial file
// together with the error.
func decodeFile(ctx context.Context, cfg *config.Config, logger *log.Logger, path string) (*todo.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read todo file: %w", err)
	}
	defer file.Close()

	lines, err := todo.ReadLines(file)
	if err != nil {
		return nil, fmt.Errorf("read todo file %s: %w", path, err)
	}

	f, err := parallel.Decode(ctx, lines, parallel.Options{
		Workers:  cfg.Workers,
		FailFast: cfg.FailFast,
	})
	if f == nil {
		return nil, err
	}
	f.Path = path

	for _, pe := range f.Errors {
		logger.Warn("rejected line", "file", path, "line", pe.Line, "err", pe.Err)
	}
	return f, err
}

// todoPathArg returns the todo.txt path named by args, or the configured one.
func todoPathArg(cfg *config.Config, args []string) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	if len(args) == 1 {
		return resolvePath(cfg, args[0]), nil
	}
	return cfg.TodoFile, nil
}

// resolvePath makes p absolute against the project root. Empty stays empty.
func resolvePath(cfg *config.Config, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(cfg.ProjectRoot, p)
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "todotxt - decode, list and check todo.txt files")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todotxt [global options] [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  ls [file]        List tasks (default command)")
	fmt.Fprintln(w, "  parse [line...]  Decode lines given as arguments or on stdin")
	fmt.Fprintln(w, "  check [file]     Validate a todo.txt file")
	fmt.Fprintln(w, "  config           Show effective configuration and value sources")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w, "  help             Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Output format (text, table, json, yaml)")
	fmt.Fprintln(w, "  -rejects string")
	fmt.Fprintln(w, "        Write rejected lines to this JSONL file")
	fmt.Fprintln(w, "  -status string")
	fmt.Fprintln(w, "        Filter by status (open|done)")
	fmt.Fprintln(w, "  -project string")
	fmt.Fprintln(w, "        Only tasks tagged with any of these +projects (comma-separated)")
	fmt.Fprintln(w, "  -context string")
	fmt.Fprintln(w, "        Only tasks tagged with any of these @contexts (comma-separated)")
	fmt.Fprintln(w, "  -priority string")
	fmt.Fprintln(w, "        Only tasks with this priority (A-Z)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Parse Options (use with 'parse' command):")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Output format (text, table, json, yaml)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Options (use with 'check' command):")
	fmt.Fprintln(w, "  -schema string")
	fmt.Fprintln(w, "        Path to task JSON schema (default: embedded)")
	fmt.Fprintln(w, "  -minimal")
	fmt.Fprintln(w, "        Skip JSON Schema validation")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options (use with 'config' command):")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print an example config file")
}
