package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"tagl/interpreter-go/pkg/driver"
	"tagl/interpreter-go/pkg/playground"
)

// configure loads the manifest and lets command line flags override it.
func (c *cli) configure() error {
	manifest, err := loadManifest(c.configPath)
	if err != nil {
		return err
	}
	if c.wordBounded {
		manifest.Lexer.WordBoundedKeywords = true
	}
	if c.maxCallDepth < 0 {
		return fmt.Errorf("--max-call-depth must not be negative")
	}
	if c.maxCallDepth > 0 {
		manifest.Interpreter.MaxCallDepth = c.maxCallDepth
	}
	c.manifest = manifest

	level := manifest.Logging
	if c.logLevel != "" {
		level = c.logLevel
	}
	if c.debug {
		level = "debug"
	}
	if level != "" {
		if err := setLogLevel(level); err != nil {
			return err
		}
	}

	log.WithFields(map[string]interface{}{
		"manifest":              manifest.Path,
		"word-bounded-keywords": manifest.Lexer.WordBoundedKeywords,
		"max-call-depth":        manifest.Interpreter.MaxCallDepth,
		"check":                 manifest.Check,
	}).Debug("configuration")
	return nil
}

// loadManifest reads an explicit manifest, or the nearest one above the
// working directory. A missing manifest yields the defaults.
func loadManifest(path string) (*driver.Manifest, error) {
	if path != "" {
		return driver.LoadManifest(path)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	found, err := driver.FindManifest(wd)
	if errors.Is(err, driver.ErrManifestNotFound) {
		return driver.DefaultManifest(), nil
	}
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(found)
}

func setLogLevel(name string) error {
	ll, err := logrus.ParseLevel(strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("failed to parse log level: %s", err)
	}
	log.Level = ll
	driver.SetLogLevel(ll)
	playground.SetLogLevel(ll)
	return nil
}

// sourcePath is the file argument, falling back to the manifest entry.
func (c *cli) sourcePath() (string, error) {
	if c.file != "" {
		return c.file, nil
	}
	if entry := c.manifest.EntryPath(); entry != "" {
		return entry, nil
	}
	return "", fmt.Errorf("no source file given and no entry in %s", driver.ManifestFileName)
}

func (c *cli) readSource() (string, error) {
	path, err := c.sourcePath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
