// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package configure

import (
	"context"
	"fmt"

	"github.com/qiniu/x/log"

	"github.com/goplus/ideaconf/generator"
	"github.com/goplus/ideaconf/internal/plugin"
	"github.com/goplus/ideaconf/internal/realm"
	"github.com/goplus/ideaconf/project"
)

// run configures the task of exec once and runs every generator class of
// names against it. The configured task is released on every path.
func (g *Generator) run(ctx context.Context, mod *project.Module, exec *plugin.Execution, pr *realm.Realm, names []string) error {
	task, err := g.host.ConfiguredTask(ctx, g.sess, exec)
	if err != nil {
		return &GenerationError{Module: mod.ID(), Phase: PhaseConfigure, Err: err}
	}
	if task == nil {
		return &GenerationError{Module: mod.ID(), Phase: PhaseConfigure, Err: fmt.Errorf("no task for %s", exec.Descriptor)}
	}
	defer g.host.ReleaseTask(task, exec)

	gt, ok := task.(generator.Task)
	if !ok {
		return &GenerationError{Module: mod.ID(), Phase: PhaseConfigure, Err: fmt.Errorf("%T is not a compile task", task)}
	}
	for _, name := range names {
		if err := g.generate(mod, gt, pr, name); err != nil {
			return err
		}
	}
	return nil
}

// generate runs the three phases of the generator class name.
func (g *Generator) generate(mod *project.Module, task generator.Task, pr *realm.Realm, name string) error {
	fail := func(phase string, err error) error {
		return &GenerationError{Module: mod.ID(), Class: name, Phase: phase, Err: err}
	}
	class, err := pr.LoadClass(name)
	if err != nil {
		return fail(PhaseLoad, err)
	}
	if !class.Instantiable() {
		return fail(PhaseLoad, fmt.Errorf("class %s cannot be instantiated", name))
	}
	v, err := class.New(g.sess, g.opts.OutputDir)
	if err != nil {
		return fail(PhaseLoad, err)
	}
	gen, ok := v.(generator.Generator)
	if !ok {
		return fail(PhaseLoad, fmt.Errorf("%T does not implement %s", v, generator.ContractClass))
	}

	log.Debugf("%s: running %s", mod.ID(), name)
	if err := gen.PreGenerate(mod, generator.Classifier(task)); err != nil {
		return fail(PhasePre, err)
	}
	var src string
	if !mod.IsLibrary() {
		if src, err = generator.SourceFile(task); err != nil {
			return fail(PhaseGenerate, err)
		}
	}
	if err := gen.Generate(task, src); err != nil {
		return fail(PhaseGenerate, err)
	}
	if err := gen.PostGenerate(mod); err != nil {
		return fail(PhasePost, err)
	}
	return nil
}
