package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestVersionCommand(t *testing.T) {
	code, out, _ := runCLI("version")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "tagl "+Version+" ("+GitHash+")\n", out)
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		args   []string
		source string
		code   int
		stdout string
		stderr string
	}{
		{
			name:   "prints",
			source: "func greet(name: String) { print(name) }\ngreet(String(Alice))\n",
			code:   exitOK,
			stdout: "Alice\n",
		},
		{
			name:   "type error stops the run",
			source: "print(String(before))\nfunc f(x: String) { }\nf(Integer[1])\n",
			code:   exitFailure,
			stderr: "type error: Type mismatch: expected String, got Integer\n",
		},
		{
			name:   "syntax error",
			source: "func f(x String) { }",
			code:   exitFailure,
			stderr: "syntax error: line 1, column 10: Expected ':' after parameter name\n",
		},
		{
			name:   "unchecked run sees the caller's bindings",
			args:   []string{"--no-check"},
			source: "func inner() { print(x) }\nfunc outer(x: String) { inner() }\nouter(String(hi))\n",
			code:   exitOK,
			stdout: "hi\n",
		},
		{
			name:   "call depth",
			args:   []string{"--max-call-depth=5"},
			source: "func loop() { loop() }\nloop()\n",
			code:   exitFailure,
			stderr: "runtime error: Maximum call depth 5 exceeded calling 'loop'\n",
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, fmt.Sprintf("case%d.tagl", i), tt.source)
			args := append([]string{"run"}, tt.args...)
			code, out, errOut := runCLI(append(args, path)...)
			assert.Equal(t, tt.code, code, errOut)
			assert.Equal(t, tt.stdout, out)
			if tt.stderr != "" {
				assert.Contains(t, errOut, tt.stderr)
			}
		})
	}
}

func TestGlobalFlagsBeforeCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.tagl", "func f(isReady: String) { print(isReady) }\nf(String(ok))\n")

	code, out, errOut := runCLI("--word-bounded-keywords", "run", path)
	assert.Equal(t, exitOK, code, errOut)
	assert.Equal(t, "ok\n", out)
}

func TestRunUsesManifestEntry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.tagl", "print(String(from entry))\n")
	manifest := writeFile(t, dir, "tagl.yml", "name: demo\nentry: main.tagl\n")

	code, out, errOut := runCLI("--config", manifest, "run")
	assert.Equal(t, exitOK, code, errOut)
	assert.Equal(t, "from entry\n", out)
}

func TestInvalidManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := writeFile(t, dir, "tagl.yml", "entry: main.tagl\n")

	code, _, errOut := runCLI("--config", manifest, "run")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "name must be provided")
}

func TestRunWithoutSource(t *testing.T) {
	dir := t.TempDir()
	manifest := writeFile(t, dir, "tagl.yml", "name: demo\n")

	code, _, errOut := runCLI("--config", manifest, "run")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, errOut, "no source file given")
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.tagl", "print(String(x))\n")
	bad := writeFile(t, dir, "bad.tagl", "missing()\n")

	code, out, _ := runCLI("check", good)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "ok\n", out)

	code, _, errOut := runCLI("check", bad)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, errOut, "type error: Undefined function 'missing'")
}

func TestTokensCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.tagl", "print(x)")

	code, out, errOut := runCLI("tokens", path)
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, "Identifier(\"print\")\nLeftParen\nIdentifier(\"x\")\nRightParen\nEOF\n", out)

	code, out, _ = runCLI("tokens", "--format", "json", path)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, `"kind": "LeftParen"`)

	code, _, errOut = runCLI("tokens", "--format", "xml", path)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, errOut, `unsupported format "xml"`)
}

func TestASTCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.tagl", "print(x)")

	code, out, errOut := runCLI("ast", path)
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, "Program\n  FunctionCall print\n    Identifier x\n", out)

	code, out, _ = runCLI("ast", "-f", "yaml", path)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "type: Program")
}

func TestMissingFile(t *testing.T) {
	code, _, errOut := runCLI("run", filepath.Join(t.TempDir(), "nope.tagl"))
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, errOut, "nope.tagl")
}

func TestUsageErrors(t *testing.T) {
	code, _, errOut := runCLI("frobnicate", "x")
	assert.Equal(t, exitUsage, code)
	assert.NotEmpty(t, errOut)

	code, _, _ = runCLI("--max-call-depth=-1", "version")
	assert.Equal(t, exitOK, code)

	code, _, errOut = runCLI("--max-call-depth=-1", "check", "x.tagl")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "must not be negative")
}
