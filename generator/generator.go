// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package generator is the contract shared between ideaconf and the IDE
// configuration generators it drives.
//
// Generators live in archives that are opened inside the realm of the
// compiler plugin, so neither side depends on the other at build time. Both
// sides compile against this package only.
package generator

import (
	"github.com/goplus/ideaconf/project"
)

// Qualified class names under which the contract is exported to plugin
// realms.
const (
	ContractClass = "com.intellij.flex.maven.FlexConfigGenerator"
	UtilsClass    = "com.intellij.flex.maven.Utils"
)

// Task is the view a generator has of a configured compile task.
type Task interface {
	// Goal returns the goal the task was configured for, e.g. "compile-swc".
	Goal() string
	// Module returns the module the task was configured for.
	Module() *project.Module
	// Parameter returns the configured value of a task parameter.
	Parameter(name string) (value string, ok bool)
}

// Generator writes IDE configuration for one module. An instance is created
// per module and per variant and is never reused.
//
// The lifecycle is fixed: PreGenerate, Generate, PostGenerate, each called
// exactly once. sourceFile is empty for library modules.
type Generator interface {
	PreGenerate(mod *project.Module, classifier string) error
	Generate(task Task, sourceFile string) error
	PostGenerate(mod *project.Module) error
}

// GeneratorFunc adapts three funcs to a Generator. Nil funcs are no-ops.
type GeneratorFunc struct {
	Pre  func(mod *project.Module, classifier string) error
	Gen  func(task Task, sourceFile string) error
	Post func(mod *project.Module) error
}

func (g *GeneratorFunc) PreGenerate(mod *project.Module, classifier string) error {
	if g.Pre == nil {
		return nil
	}
	return g.Pre(mod, classifier)
}

func (g *GeneratorFunc) Generate(task Task, sourceFile string) error {
	if g.Gen == nil {
		return nil
	}
	return g.Gen(task, sourceFile)
}

func (g *GeneratorFunc) PostGenerate(mod *project.Module) error {
	if g.Post == nil {
		return nil
	}
	return g.Post(mod)
}
