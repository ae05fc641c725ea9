package driver

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"tagl/interpreter-go/pkg/ast"
	"tagl/interpreter-go/pkg/interpreter"
	"tagl/interpreter-go/pkg/lexer"
	"tagl/interpreter-go/pkg/parser"
	"tagl/interpreter-go/pkg/runtime"
	"tagl/interpreter-go/pkg/typechecker"
)

// Config controls how source flows through the stages.
type Config struct {
	Lexer        lexer.Options
	SkipCheck    bool
	MaxCallDepth int
	Stdout       io.Writer
	// Context bounds interpretation; nil means no deadline.
	Context context.Context
}

// ConfigFromManifest derives the pipeline configuration from project settings.
func ConfigFromManifest(m *Manifest) Config {
	if m == nil {
		m = DefaultManifest()
	}
	return Config{
		Lexer:        lexer.Options{WordBoundedKeywords: m.Lexer.WordBoundedKeywords},
		SkipCheck:    !m.Check,
		MaxCallDepth: m.Interpreter.MaxCallDepth,
	}
}

// Result collects what each completed stage produced.
type Result struct {
	Tokens  []lexer.Token
	Program *ast.Program
	Value   runtime.Value
}

// Pipeline runs each request against fresh checker and interpreter state.
type Pipeline struct {
	cfg Config
}

func NewPipeline(cfg Config) *Pipeline {
	return &Pipeline{cfg: cfg}
}

func (p *Pipeline) Tokens(source string) []lexer.Token {
	return NewSession(p.cfg).Tokens(source)
}

func (p *Pipeline) Parse(source string) (*Result, error) {
	return NewSession(p.cfg).Parse(source)
}

func (p *Pipeline) Check(source string) (*Result, error) {
	return NewSession(p.cfg).Check(source)
}

func (p *Pipeline) Run(source string) (*Result, error) {
	return NewSession(p.cfg).Run(source)
}

// RunFile reads path and runs it through a fresh pipeline.
func (p *Pipeline) RunFile(path string) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	log.WithField("file", path).Debug("running source file")
	return p.Run(string(source))
}

// Session keeps checker and interpreter globals alive across runs.
type Session struct {
	cfg     Config
	checker *typechecker.Checker
	interp  *interpreter.Interpreter
}

func NewSession(cfg Config) *Session {
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	return &Session{
		cfg:     cfg,
		checker: typechecker.New(),
		interp:  interpreter.New(interpreter.Options{
			Stdout:       cfg.Stdout,
			MaxCallDepth: cfg.MaxCallDepth,
			Context:      cfg.Context,
		}),
	}
}

// Reset forgets every definition made in the session.
func (s *Session) Reset() {
	s.checker.Reset()
	s.interp.Reset()
}

// Globals returns the display form of each global runtime binding, keyed by name.
func (s *Session) Globals() map[string]string {
	env := s.interp.GlobalEnvironment()
	out := make(map[string]string)
	for _, name := range env.Keys() {
		val, _ := env.Lookup(name)
		out[name] = interpreter.ValueToString(val)
	}
	return out
}

func (s *Session) Tokens(source string) []lexer.Token {
	started := time.Now()
	tokens := lexer.LexWithOptions(source, s.cfg.Lexer)
	log.WithFields(logrus.Fields{
		"stage":   "lex",
		"tokens":  len(tokens),
		"elapsed": time.Since(started),
	}).Debug("lexed source")
	return tokens
}

func (s *Session) Parse(source string) (*Result, error) {
	res := &Result{Tokens: s.Tokens(source)}
	started := time.Now()
	program, err := parser.Parse(res.Tokens)
	if err != nil {
		log.WithError(err).WithField("stage", "parse").Warn("parse failed")
		return res, err
	}
	res.Program = program
	log.WithFields(logrus.Fields{
		"stage":      "parse",
		"statements": len(program.Body),
		"elapsed":    time.Since(started),
	}).Debug("parsed program")
	return res, nil
}

func (s *Session) Check(source string) (*Result, error) {
	res, err := s.Parse(source)
	if err != nil {
		return res, err
	}
	return res, s.check(res.Program)
}

func (s *Session) check(program *ast.Program) error {
	started := time.Now()
	if err := s.checker.Check(program); err != nil {
		log.WithError(err).WithField("stage", "check").Warn("type check failed")
		return err
	}
	log.WithFields(logrus.Fields{
		"stage":   "check",
		"elapsed": time.Since(started),
	}).Debug("checked program")
	return nil
}

// Run lexes, parses, checks unless disabled, and interprets source. A failing
// stage stops every later one. A run that fails leaves no definitions behind in
// either the checker or the interpreter, so both keep agreeing on what exists.
func (s *Session) Run(source string) (*Result, error) {
	res, err := s.Parse(source)
	if err != nil {
		return res, err
	}
	rollbackTypes := s.checker.Checkpoint()
	rollbackValues := s.interp.Checkpoint()
	if !s.cfg.SkipCheck {
		if err := s.check(res.Program); err != nil {
			return res, err
		}
	}

	started := time.Now()
	val, err := s.interp.EvaluateProgram(res.Program)
	if err != nil {
		log.WithError(err).WithField("stage", "run").Warn("interpretation failed")
		rollbackTypes()
		rollbackValues()
		return res, err
	}
	res.Value = val
	log.WithFields(logrus.Fields{
		"stage":   "run",
		"elapsed": time.Since(started),
	}).Debug("interpreted program")
	return res, nil
}
