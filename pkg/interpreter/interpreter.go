// Package interpreter evaluates tagl programs by walking the AST.
package interpreter

import (
	"context"
	"io"
	"os"

	"tagl/interpreter-go/pkg/ast"
	"tagl/interpreter-go/pkg/runtime"
)

const builtinPrint = "print"

// Options configures an Interpreter.
type Options struct {
	// Stdout receives print output. Defaults to os.Stdout.
	Stdout io.Writer
	// MaxCallDepth bounds nested user-function calls. Zero means unbounded.
	MaxCallDepth int
	// Context, when set, is checked on every user-function call; once it is
	// done evaluation stops with an interrupted error.
	Context context.Context
}

// Interpreter drives evaluation of tagl AST nodes.
type Interpreter struct {
	global   *runtime.Environment
	out      io.Writer
	ctx      context.Context
	maxDepth int
	depth    int
}

// New returns an interpreter whose global environment holds the built-ins.
func New(opts Options) *Interpreter {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	i := &Interpreter{out: out, ctx: ctx, maxDepth: opts.MaxCallDepth}
	i.Reset()
	return i
}

// Reset drops every global binding except the built-ins.
func (i *Interpreter) Reset() {
	i.global = runtime.NewEnvironment(nil)
	i.global.Define(builtinPrint, runtime.FunctionValue{Name: builtinPrint})
	i.depth = 0
}

// Checkpoint records the global bindings; the returned func restores them.
func (i *Interpreter) Checkpoint() func() {
	saved := i.global.Snapshot()
	return func() {
		i.global.Restore(saved)
		i.depth = 0
	}
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Interpret executes program for its effects.
func (i *Interpreter) Interpret(program *ast.Program) error {
	_, err := i.EvaluateProgram(program)
	return err
}

// EvaluateProgram executes the program's statements in order and returns the
// value of the last one.
func (i *Interpreter) EvaluateProgram(program *ast.Program) (runtime.Value, error) {
	if program == nil {
		return runtime.NullValue{}, nil
	}
	return i.evaluateStatements(program.Body, i.global)
}
