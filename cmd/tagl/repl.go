package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"tagl/interpreter-go/pkg/diag"
	"tagl/interpreter-go/pkg/driver"
	"tagl/interpreter-go/pkg/interpreter"
	"tagl/interpreter-go/pkg/lexer"
	"tagl/interpreter-go/pkg/parser"
	"tagl/interpreter-go/pkg/runtime"
)

const (
	historyFile  = ".tagl_history"
	promptMain   = "tagl> "
	promptMore   = "  ... "
	replCommands = ":quit, :env, :reset, :help"
)

// repl evaluates input against one long-lived session. Input that ends in
// the middle of a statement is buffered until it parses.
type repl struct {
	session *driver.Session
	lexer   lexer.Options
	stdout  io.Writer
	stderr  io.Writer
	pending strings.Builder
}

func newRepl(cfg driver.Config, stdout, stderr io.Writer) *repl {
	cfg.Stdout = stdout
	return &repl{
		session: driver.NewSession(cfg),
		lexer:   cfg.Lexer,
		stdout:  stdout,
		stderr:  stderr,
	}
}

func (r *repl) prompt() string {
	if r.pending.Len() > 0 {
		return promptMore
	}
	return promptMain
}

// discard drops a partially entered statement.
func (r *repl) discard() {
	r.pending.Reset()
}

// feed consumes one line of input and reports whether the session is over.
func (r *repl) feed(line string) bool {
	if r.pending.Len() == 0 {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return false
		}
		if strings.HasPrefix(trimmed, ":") {
			return r.command(trimmed)
		}
	} else {
		r.pending.WriteByte('\n')
	}
	r.pending.WriteString(line)

	source := r.pending.String()
	if _, err := parser.ParseSource(source, r.lexer); diag.Is(err, diag.CodeUnexpectedEOF) {
		return false
	}
	r.pending.Reset()

	res, err := r.session.Run(source)
	if err != nil {
		fmt.Fprintln(r.stderr, diag.Describe(err))
		return false
	}
	if _, null := res.Value.(runtime.NullValue); res.Value != nil && !null {
		fmt.Fprintf(r.stdout, "=> %s\n", interpreter.ValueToString(res.Value))
	}
	return false
}

func (r *repl) command(cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return true
	case ":env":
		globals := r.session.Globals()
		names := make([]string, 0, len(globals))
		for name := range globals {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(r.stdout, "%s = %s\n", name, globals[name])
		}
	case ":reset":
		r.session.Reset()
		fmt.Fprintln(r.stdout, "session reset")
	case ":help":
		fmt.Fprintf(r.stdout, "commands: %s\n", replCommands)
	default:
		fmt.Fprintf(r.stderr, "unknown command %q, try %s\n", cmd, replCommands)
	}
	return false
}

func (c *cli) doRepl() int {
	r := newRepl(c.pipelineConfig(), c.stdout, c.stderr)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	var histPath string
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintf(c.stdout, "tagl %s, type :help for commands\n", Version)
	for {
		line, err := ln.Prompt(r.prompt())
		if errors.Is(err, liner.ErrPromptAborted) {
			r.discard()
			continue
		}
		if err != nil {
			// io.EOF on ctrl-D
			fmt.Fprintln(c.stdout)
			return exitOK
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if r.feed(line) {
			return exitOK
		}
	}
}
