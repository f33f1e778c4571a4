// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package configure

import (
	"context"

	"github.com/qiniu/x/log"

	"github.com/goplus/ideaconf/internal/plugin"
	"github.com/goplus/ideaconf/project"
)

// Plugins looked up in module declarations.
const (
	PluginGroup      = "org.sonatype.flexmojos"
	CompilerPlugin   = "flexmojos-maven-plugin"
	GeneratorPlugin  = "flexmojos-generator-mojo"
	GoalCompileSWC   = "compile-swc"
	GoalCompileSWF   = "compile-swf"
	GoalGenerateCode = "generate"
)

// locate finds the compile task of mod and, when declared, the companion
// code generation task. A nil compile execution means mod does not use the
// compiler plugin.
func (g *Generator) locate(ctx context.Context, mod *project.Module) (compile, companion *plugin.Execution, err error) {
	for _, ref := range mod.Plugins {
		if ref.Group != PluginGroup {
			continue
		}
		switch ref.Name {
		case CompilerPlugin:
			if compile != nil {
				continue
			}
			goal := GoalCompileSWF
			if mod.IsLibrary() {
				goal = GoalCompileSWC
			}
			if compile, err = g.execution(ctx, mod, ref, goal); err != nil {
				return nil, nil, err
			}
		case GeneratorPlugin:
			if companion != nil {
				continue
			}
			c, err := g.execution(ctx, mod, ref, GoalGenerateCode)
			if err != nil {
				log.Warnf("%s: skip code generation: %v", mod.ID(), err)
				continue
			}
			companion = c
		}
		if compile != nil && companion != nil {
			break
		}
	}
	return compile, companion, nil
}

// execution resolves goal of ref and prepares it for mod.
func (g *Generator) execution(ctx context.Context, mod *project.Module, ref project.PluginRef, goal string) (*plugin.Execution, error) {
	desc, err := g.host.TaskDescriptor(ctx, ref, goal, mod.Repositories)
	if err != nil {
		return nil, &TaskResolutionError{Module: mod.ID(), Plugin: ref.ID(), Goal: goal, Err: err}
	}
	exec := plugin.NewExecution(desc, plugin.DefaultExecutionID, plugin.SourceCLI)
	if err := g.host.SetupExecution(g.sess, mod, exec); err != nil {
		return nil, &TaskResolutionError{Module: mod.ID(), Plugin: ref.ID(), Goal: goal, Err: err}
	}
	return exec, nil
}
