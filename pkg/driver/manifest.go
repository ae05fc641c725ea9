package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ManifestFileName is the project manifest looked up by FindManifest.
const ManifestFileName = "tagl.yml"

// Defaults applied to settings the manifest leaves out.
const (
	DefaultPlaygroundAddress        = ":8642"
	DefaultPlaygroundTimeout        = 5 * time.Second
	DefaultPlaygroundMaxSourceBytes = 64 * 1024
)

var ErrManifestNotFound = errors.New("manifest: " + ManifestFileName + " not found")

// Manifest represents the parsed contents of tagl.yml.
type Manifest struct {
	Path        string
	Name        string
	Entry       string
	Logging     string
	Check       bool
	Lexer       LexerSettings
	Interpreter InterpreterSettings
	Playground  PlaygroundSettings
}

type LexerSettings struct {
	WordBoundedKeywords bool
}

type InterpreterSettings struct {
	MaxCallDepth int
}

type PlaygroundSettings struct {
	Address        string
	Timeout        time.Duration
	MaxSourceBytes int64
}

// DefaultManifest is used when no tagl.yml is present.
func DefaultManifest() *Manifest {
	return &Manifest{
		Check: true,
		Playground: PlaygroundSettings{
			Address:        DefaultPlaygroundAddress,
			Timeout:        DefaultPlaygroundTimeout,
			MaxSourceBytes: DefaultPlaygroundMaxSourceBytes,
		},
	}
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses tagl.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest, issues := raw.toManifest(absPath)
	if err := manifest.validate(issues); err != nil {
		return nil, err
	}
	return manifest, nil
}

// FindManifest walks up from dir to the filesystem root looking for tagl.yml.
func FindManifest(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(current, ManifestFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrManifestNotFound
		}
		current = parent
	}
}

// EntryPath resolves the entry source file relative to the manifest.
func (m *Manifest) EntryPath() string {
	if m == nil || m.Entry == "" {
		return ""
	}
	if filepath.IsAbs(m.Entry) || m.Path == "" {
		return m.Entry
	}
	return filepath.Join(filepath.Dir(m.Path), m.Entry)
}

func (m *Manifest) validate(issues []string) error {
	errs := ValidationError{Issues: issues}
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Logging != "" {
		if _, err := logrus.ParseLevel(m.Logging); err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("logging: unsupported level %q", m.Logging))
		}
	}
	if m.Entry != "" && filepath.Ext(m.Entry) != ".tagl" {
		errs.Issues = append(errs.Issues, fmt.Sprintf("entry %q must be a .tagl file", m.Entry))
	}
	if m.Interpreter.MaxCallDepth < 0 {
		errs.Issues = append(errs.Issues, "interpreter.max-call-depth must not be negative")
	}
	if m.Playground.Timeout <= 0 {
		errs.Issues = append(errs.Issues, "playground.timeout must be positive")
	}
	if m.Playground.MaxSourceBytes <= 0 {
		errs.Issues = append(errs.Issues, "playground.max-source-bytes must be positive")
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

type manifestFile struct {
	Name        string          `yaml:"name"`
	Entry       string          `yaml:"entry"`
	Logging     string          `yaml:"logging"`
	Check       *bool           `yaml:"check"`
	Lexer       lexerYAML       `yaml:"lexer"`
	Interpreter interpreterYAML `yaml:"interpreter"`
	Playground  playgroundYAML  `yaml:"playground"`
}

type lexerYAML struct {
	WordBoundedKeywords bool `yaml:"word-bounded-keywords"`
}

type interpreterYAML struct {
	MaxCallDepth int `yaml:"max-call-depth"`
}

type playgroundYAML struct {
	Address        string `yaml:"address"`
	Timeout        string `yaml:"timeout"`
	MaxSourceBytes *int64 `yaml:"max-source-bytes"`
}

func (mf manifestFile) toManifest(path string) (*Manifest, []string) {
	var issues []string
	result := DefaultManifest()
	result.Path = path
	result.Name = strings.TrimSpace(mf.Name)
	result.Entry = strings.TrimSpace(mf.Entry)
	result.Logging = strings.ToLower(strings.TrimSpace(mf.Logging))
	if mf.Check != nil {
		result.Check = *mf.Check
	}
	result.Lexer.WordBoundedKeywords = mf.Lexer.WordBoundedKeywords
	result.Interpreter.MaxCallDepth = mf.Interpreter.MaxCallDepth

	if addr := strings.TrimSpace(mf.Playground.Address); addr != "" {
		result.Playground.Address = addr
	}
	if raw := strings.TrimSpace(mf.Playground.Timeout); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			issues = append(issues, fmt.Sprintf("playground.timeout: invalid duration %q", raw))
		} else {
			result.Playground.Timeout = timeout
		}
	}
	if mf.Playground.MaxSourceBytes != nil {
		result.Playground.MaxSourceBytes = *mf.Playground.MaxSourceBytes
	}
	return result, issues
}
