package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagl/interpreter-go/pkg/diag"
	"tagl/interpreter-go/pkg/runtime"
)

func TestPipelineRun(t *testing.T) {
	var out bytes.Buffer
	res, err := NewPipeline(Config{Stdout: &out}).Run(`
func greet(name: String) { print(name) }
greet(String(Alice))
`)
	require.NoError(t, err)
	assert.Equal(t, "Alice\n", out.String())
	assert.Len(t, res.Program.Body, 2)
	assert.NotEmpty(t, res.Tokens)
	assert.Equal(t, runtime.NullValue{}, res.Value)
}

func TestPipelineCheckFailureStopsInterpretation(t *testing.T) {
	var out bytes.Buffer
	_, err := NewPipeline(Config{Stdout: &out}).Run(`print(String(before)) missing()`)
	require.Error(t, err)
	assert.True(t, diag.Is(err, diag.CodeUndefinedFunction))
	assert.Empty(t, out.String())
}

func TestPipelineSkipCheck(t *testing.T) {
	var out bytes.Buffer
	_, err := NewPipeline(Config{Stdout: &out, SkipCheck: true}).Run(`print(String(before)) missing()`)
	require.Error(t, err)
	stage, _ := diag.StageOf(err)
	assert.Equal(t, diag.StageRuntime, stage)
	assert.Equal(t, "before\n", out.String())
}

func TestPipelineParseFailureKeepsTokens(t *testing.T) {
	res, err := NewPipeline(Config{}).Parse(`func (`)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Nil(t, res.Program)
	assert.Len(t, res.Tokens, 3)
}

func TestPipelineWordBoundedKeywords(t *testing.T) {
	var out bytes.Buffer
	cfg := Config{Stdout: &out, SkipCheck: true}
	cfg.Lexer.WordBoundedKeywords = true
	_, err := NewPipeline(cfg).Run(`func isSame(a: String) { print(a) } isSame(String(ok))`)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out.String())
}

func TestPipelineRunFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.tagl", "print(Integer[7])\n")
	var out bytes.Buffer
	_, err := NewPipeline(Config{Stdout: &out}).RunFile(path)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out.String())

	_, err = NewPipeline(Config{}).RunFile(filepath.Join(t.TempDir(), "absent.tagl"))
	assert.Error(t, err)
}

func TestSessionPersistsDefinitions(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(Config{Stdout: &out})

	_, err := s.Run(`func greet(name: String) { print(name) }`)
	require.NoError(t, err)
	_, err = s.Run(`greet(String(again))`)
	require.NoError(t, err)
	assert.Equal(t, "again\n", out.String())
	assert.Equal(t, "<function greet>", s.Globals()["greet"])

	s.Reset()
	_, err = s.Run(`greet(String(gone))`)
	require.Error(t, err)
	assert.NotContains(t, s.Globals(), "greet")
}

func TestSessionRuntimeFailureRollsBackDefinitions(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(Config{Stdout: &out})

	_, err := s.Run(`func f() { } print(Integer[abc]) func g() { }`)
	require.Error(t, err)
	assert.True(t, diag.Is(err, diag.CodeLiteralConversion))
	assert.NotContains(t, s.Globals(), "f")

	for _, call := range []string{`g()`, `f()`} {
		_, err = s.Run(call)
		require.Error(t, err, call)
		stage, _ := diag.StageOf(err)
		assert.Equal(t, diag.StageType, stage, call)
		assert.True(t, diag.Is(err, diag.CodeUndefinedFunction), call)
	}

	_, err = s.Run(`func h() { print(String(kept)) }`)
	require.NoError(t, err)
	_, err = s.Run(`h()`)
	require.NoError(t, err)
	assert.Equal(t, "kept\n", out.String())
}

func TestSessionResultValue(t *testing.T) {
	s := NewSession(Config{Stdout: &bytes.Buffer{}})
	res, err := s.Run(`String[hello]`)
	require.NoError(t, err)
	assert.Equal(t, runtime.StringValue{Val: "hello"}, res.Value)
}

func TestWatchRerunsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.tagl", "print(String(one))\n")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	calls := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func() { calls <- struct{}{} })
	}()

	select {
	case <-calls:
	case <-ctx.Done():
		t.Fatal("initial run did not happen")
	}

	require.NoError(t, os.WriteFile(path, []byte("print(String(two))\n"), 0o644))
	select {
	case <-calls:
	case <-ctx.Done():
		t.Fatal("no run after write")
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestSetLogLevelString(t *testing.T) {
	prev := GetLogLevel()
	defer SetLogLevel(prev)

	require.NoError(t, SetLogLevelString("debug"))
	assert.Equal(t, "debug", GetLogLevel().String())
	assert.Error(t, SetLogLevelString("loud"))
}

func TestFormatProgramOutline(t *testing.T) {
	res, err := NewPipeline(Config{}).Parse(`// hi
func f(a: String) { if a is String[x] { print(a, 1) } }`)
	require.NoError(t, err)

	want := strings.Join([]string{
		"Program",
		`  Comment "hi"`,
		"  FunctionDeclaration f(a: String)",
		"    IfStatement",
		"      BinaryExpression is",
		"        Identifier a",
		"        TypedValue String",
		"          Identifier x",
		"      FunctionCall print",
		"        Identifier a",
		"        IntegerLiteral 1",
		"",
	}, "\n")
	assert.Equal(t, want, FormatProgram(res.Program))
}
