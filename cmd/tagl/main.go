// Command tagl lexes, parses, checks and runs tagl programs.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"tagl/interpreter-go/pkg/diag"
	"tagl/interpreter-go/pkg/driver"
	"tagl/interpreter-go/pkg/playground"
)

// These are set at build time via -ldflags.
var (
	Version = "development"
	GitHash = "unknown"
)

var log = logrus.New()

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// cli holds the parsed command line.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	configPath   string
	debug        bool
	logLevel     string
	wordBounded  bool
	maxCallDepth int

	file    string
	noCheck bool
	watch   bool
	format  string

	address string
	timeout time.Duration

	manifest *driver.Manifest
}

func run(args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr}

	terminated, code := false, exitOK
	app := kingpin.New("tagl", "The tagl interpreter.")
	app.UsageWriter(stdout)
	app.ErrorWriter(stderr)
	app.Terminate(func(status int) {
		terminated, code = true, status
	})

	app.Flag("config", "Project manifest (default: nearest "+driver.ManifestFileName+").").StringVar(&c.configPath)
	app.Flag("debug", "Log every pipeline stage.").Short('d').BoolVar(&c.debug)
	app.Flag("log-level", "Log level: panic, fatal, error, warning, info, debug.").StringVar(&c.logLevel)
	app.Flag("word-bounded-keywords", "Only treat whole words as 'is' and 'is not'.").BoolVar(&c.wordBounded)
	app.Flag("max-call-depth", "Maximum function call depth, 0 keeps the manifest value.").Default("0").IntVar(&c.maxCallDepth)

	runCmd := app.Command("run", "Run a source file, or the manifest entry.").Default()
	runCmd.Arg("file", "Source file.").StringVar(&c.file)
	runCmd.Flag("no-check", "Skip type checking.").BoolVar(&c.noCheck)
	runCmd.Flag("watch", "Run again whenever the file changes.").Short('w').BoolVar(&c.watch)

	checkCmd := app.Command("check", "Type check a source file.")
	checkCmd.Arg("file", "Source file.").StringVar(&c.file)

	tokensCmd := app.Command("tokens", "Print the tokens of a source file.")
	tokensCmd.Arg("file", "Source file.").StringVar(&c.file)
	tokensCmd.Flag("format", "Output format: text, json, yaml.").Short('f').Default("text").StringVar(&c.format)

	astCmd := app.Command("ast", "Print the syntax tree of a source file.")
	astCmd.Arg("file", "Source file.").StringVar(&c.file)
	astCmd.Flag("format", "Output format: text, json, yaml.").Short('f').Default("text").StringVar(&c.format)

	replCmd := app.Command("repl", "Start an interactive session.")

	serveCmd := app.Command("serve", "Serve the HTTP playground.")
	serveCmd.Flag("address", "Address:port to listen on.").Short('l').StringVar(&c.address)
	serveCmd.Flag("timeout", "Per-request run timeout.").DurationVar(&c.timeout)

	versionCmd := app.Command("version", "Print the version.")

	command, err := app.Parse(args)
	if terminated {
		return code
	}
	if err != nil {
		fmt.Fprintf(stderr, "tagl: %s\n", err)
		return exitUsage
	}

	if command == versionCmd.FullCommand() {
		fmt.Fprintf(stdout, "tagl %s (%s)\n", Version, GitHash)
		return exitOK
	}

	if err := c.configure(); err != nil {
		fmt.Fprintf(stderr, "tagl: %s\n", err)
		return exitUsage
	}

	switch command {
	case runCmd.FullCommand():
		return c.doRun()
	case checkCmd.FullCommand():
		return c.doCheck()
	case tokensCmd.FullCommand():
		return c.doTokens()
	case astCmd.FullCommand():
		return c.doAST()
	case replCmd.FullCommand():
		return c.doRepl()
	case serveCmd.FullCommand():
		return c.doServe()
	}

	app.Usage(args)
	return exitUsage
}

func (c *cli) pipelineConfig() driver.Config {
	cfg := driver.ConfigFromManifest(c.manifest)
	cfg.Stdout = c.stdout
	if c.noCheck {
		cfg.SkipCheck = true
	}
	return cfg
}

// report prints a pipeline failure and returns the matching exit code.
func (c *cli) report(err error) int {
	if err == nil {
		return exitOK
	}
	fmt.Fprintln(c.stderr, diag.Describe(err))
	return exitFailure
}

func (c *cli) doRun() int {
	path, err := c.sourcePath()
	if err != nil {
		return c.report(err)
	}
	pipeline := driver.NewPipeline(c.pipelineConfig())

	if !c.watch {
		_, err := pipeline.RunFile(path)
		return c.report(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = driver.Watch(ctx, path, func() {
		if _, err := pipeline.RunFile(path); err != nil {
			c.report(err)
		}
	})
	return c.report(err)
}

func (c *cli) doCheck() int {
	source, err := c.readSource()
	if err != nil {
		return c.report(err)
	}
	if _, err := driver.NewPipeline(c.pipelineConfig()).Check(source); err != nil {
		return c.report(err)
	}
	fmt.Fprintln(c.stdout, "ok")
	return exitOK
}

func (c *cli) doTokens() int {
	format, err := driver.ParseFormat(c.format)
	if err != nil {
		return c.report(err)
	}
	source, err := c.readSource()
	if err != nil {
		return c.report(err)
	}
	tokens := driver.NewPipeline(c.pipelineConfig()).Tokens(source)
	return c.report(driver.DumpTokens(c.stdout, tokens, format))
}

func (c *cli) doAST() int {
	format, err := driver.ParseFormat(c.format)
	if err != nil {
		return c.report(err)
	}
	source, err := c.readSource()
	if err != nil {
		return c.report(err)
	}
	res, err := driver.NewPipeline(c.pipelineConfig()).Parse(source)
	if err != nil {
		return c.report(err)
	}
	return c.report(driver.DumpProgram(c.stdout, res.Program, format))
}

func (c *cli) doServe() int {
	cfg := playground.Config{
		Address:        c.manifest.Playground.Address,
		Timeout:        c.manifest.Playground.Timeout,
		MaxSourceBytes: c.manifest.Playground.MaxSourceBytes,
		MaxCallDepth:   c.manifest.Interpreter.MaxCallDepth,
		Version:        Version,
		GitHash:        GitHash,
		Debug:          c.debug,
	}
	if c.address != "" {
		cfg.Address = c.address
	}
	if c.timeout > 0 {
		cfg.Timeout = c.timeout
	}

	if err := playground.NewServer(cfg).ListenAndServe(); err != nil {
		log.WithError(err).Error("playground failed")
		return exitFailure
	}
	return exitOK
}
