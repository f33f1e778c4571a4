// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config layers ideaconf settings: defaults, the user options file,
// the workspace options file, IDEACONF_* environment variables and command
// line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/goplus/ideaconf/internal/configure"
	"github.com/goplus/ideaconf/internal/env"
)

// FileName is the options file looked up in the workspace directory.
const FileName = ".ideaconf.yaml"

// UserFileName is the options file looked up in env.WorkDir.
const UserFileName = "config.yaml"

// Environment variables.
const (
	EnvWorkspace            = "IDEACONF_WORKSPACE"
	EnvGenerateShareable    = "IDEACONF_GENERATE_SHAREABLE"
	EnvGenerateNonShareable = "IDEACONF_GENERATE_NON_SHAREABLE"
	EnvOutputDir            = "IDEACONF_OUTPUT_DIR"
	EnvVerbose              = "IDEACONF_VERBOSE"
)

// Config holds the resolved settings.
type Config struct {
	Workspace            string `yaml:"workspace"`
	LocalRepository      string `yaml:"localRepository"`
	GenerateShareable    bool   `yaml:"generateShareable"`
	GenerateNonShareable bool   `yaml:"generateNonShareable"`
	OutputDir            string `yaml:"outputDir"`
	Verbose              bool   `yaml:"verbose"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Workspace:            ".",
		GenerateNonShareable: true,
	}
}

// Options returns the generation options of c.
func (c Config) Options() configure.Options {
	return configure.Options{
		GenerateShareable:    c.GenerateShareable,
		GenerateNonShareable: c.GenerateNonShareable,
		OutputDir:            c.OutputDir,
	}
}

// LoadFile overlays the options file at path on c. A missing file is not an
// error.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// LoadEnv overlays the IDEACONF_* variables on c.
func (c *Config) LoadEnv() error {
	if v := os.Getenv(EnvWorkspace); v != "" {
		c.Workspace = v
	}
	if v := os.Getenv(env.LocalRepositoryEnv); v != "" {
		c.LocalRepository = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	for name, dst := range map[string]*bool{
		EnvGenerateShareable:    &c.GenerateShareable,
		EnvGenerateNonShareable: &c.GenerateNonShareable,
		EnvVerbose:              &c.Verbose,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = b
	}
	return nil
}

// Flags are the command line settings. Only flags set by the user override
// lower layers.
type Flags struct {
	fs  *pflag.FlagSet
	val Config
}

// BindFlags registers the settings flags on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	d := Default()
	fs.StringVarP(&f.val.Workspace, "workspace", "w", d.Workspace, "workspace directory or manifest file")
	fs.StringVar(&f.val.LocalRepository, "local-repository", "", "local artifact repository")
	fs.BoolVar(&f.val.GenerateShareable, "shareable", d.GenerateShareable, "generate shareable configurations")
	fs.BoolVar(&f.val.GenerateNonShareable, "non-shareable", d.GenerateNonShareable, "generate local IDE configurations")
	fs.StringVarP(&f.val.OutputDir, "output", "o", "", "directory generators write to")
	fs.BoolVarP(&f.val.Verbose, "verbose", "v", false, "print debug output")
	return f
}

func (f *Flags) apply(c *Config) {
	if f == nil {
		return
	}
	if f.fs.Changed("workspace") {
		c.Workspace = f.val.Workspace
	}
	if f.fs.Changed("local-repository") {
		c.LocalRepository = f.val.LocalRepository
	}
	if f.fs.Changed("shareable") {
		c.GenerateShareable = f.val.GenerateShareable
	}
	if f.fs.Changed("non-shareable") {
		c.GenerateNonShareable = f.val.GenerateNonShareable
	}
	if f.fs.Changed("output") {
		c.OutputDir = f.val.OutputDir
	}
	if f.fs.Changed("verbose") {
		c.Verbose = f.val.Verbose
	}
}

// Load resolves the settings. The options file is read from the workspace
// directory chosen by the environment or flags.
func Load(f *Flags) (Config, error) {
	c := Default()
	// The workspace decides where the options file lives.
	probe := c
	if err := probe.LoadEnv(); err != nil {
		return c, err
	}
	f.apply(&probe)

	if dir, err := env.WorkDir(); err == nil {
		if err := c.LoadFile(filepath.Join(dir, UserFileName)); err != nil {
			return c, err
		}
	}
	if err := c.LoadFile(filepath.Join(workspaceDir(probe.Workspace), FileName)); err != nil {
		return c, err
	}
	if err := c.LoadEnv(); err != nil {
		return c, err
	}
	f.apply(&c)

	if c.LocalRepository == "" {
		dir, err := env.LocalRepositoryDir()
		if err != nil {
			return c, err
		}
		c.LocalRepository = dir
	}
	return c, nil
}

// workspaceDir returns the directory of a workspace path, which may name the
// manifest file itself.
func workspaceDir(path string) string {
	if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
		return filepath.Dir(path)
	}
	return path
}
