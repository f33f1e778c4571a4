// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package project defines the build graph seen by ideaconf: modules, the
// plugins they declare and the session that orders them.
package project

import (
	"path/filepath"
	"sync"

	"github.com/goplus/ideaconf/mod/artifact"
)

// Packaging kinds ideaconf generates configuration for.
const (
	PackagingLibrary     = "swc"
	PackagingApplication = "swf"
	PackagingBundle      = "air"
)

// InScope reports whether packaging is one of the Flex packagings.
func InScope(packaging string) bool {
	switch packaging {
	case PackagingLibrary, PackagingApplication, PackagingBundle:
		return true
	}
	return false
}

// PluginRef is a build plugin declared by a module.
type PluginRef struct {
	Group   string
	Name    string
	Version string // empty selects the highest registered version
	Config  map[string]string
}

// ID returns "group:name".
func (p PluginRef) ID() string {
	return p.Group + ":" + p.Name
}

// Module is one buildable unit of the graph.
type Module struct {
	Group     string
	Name      string
	Version   string
	Packaging string
	Dir       string // absolute base directory

	Plugins      []PluginRef
	Repositories []string

	// Artifact is the artifact this module produces.
	Artifact *artifact.Descriptor
	// Artifacts is the resolved dependency set.
	Artifacts []*artifact.Descriptor
}

// ID returns "group:name".
func (m *Module) ID() string {
	return m.Group + ":" + m.Name
}

// Key returns the key of the artifact produced by m.
func (m *Module) Key() artifact.Key {
	return artifact.Key{Group: m.Group, Name: m.Name, Version: m.Version, Kind: m.Packaging}
}

// IsLibrary reports whether m produces a component library.
func (m *Module) IsLibrary() bool {
	return m.Packaging == PackagingLibrary
}

// Session is one build invocation over an ordered set of modules.
type Session struct {
	// Modules in dependency order, producers before consumers.
	Modules []*Module
	// LocalRepository is the root directory of the local artifact store.
	LocalRepository string

	top *Module

	mu      sync.Mutex
	current *Module
}

// NewSession creates a session over modules. The first module is the
// top-level module unless top is non-nil.
func NewSession(modules []*Module, top *Module, localRepo string) *Session {
	if top == nil && len(modules) > 0 {
		top = modules[0]
	}
	return &Session{
		Modules:         modules,
		LocalRepository: localRepo,
		top:             top,
		current:         top,
	}
}

// TopLevel returns the module the build was started from.
func (s *Session) TopLevel() *Module {
	return s.top
}

// TopLevelDir returns the cleaned base directory of the top-level module.
func (s *Session) TopLevelDir() string {
	if s.top == nil {
		return ""
	}
	return filepath.Clean(s.top.Dir)
}

// Current returns the module tasks are currently executed for.
func (s *Session) Current() *Module {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetCurrent makes mod the current module and returns a func restoring the
// top-level module. Callers defer the restore:
//
//	defer sess.SetCurrent(mod)()
func (s *Session) SetCurrent(mod *Module) (restore func()) {
	s.mu.Lock()
	s.current = mod
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.current = s.top
		s.mu.Unlock()
	}
}
