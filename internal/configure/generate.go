// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package configure generates IDE configuration for the Flex modules of a
// build.
//
// For every module it runs the compile task of the Flex compiler plugin up to
// the point where the task is configured, then hands the configured task to
// generator classes. The generators live in an archive opened inside the
// realm of the compiler plugin; the realm is bridged so those classes can see
// the generator contract of this package's realm.
package configure

import (
	"context"
	"fmt"
	"reflect"

	"github.com/qiniu/x/log"

	"github.com/goplus/ideaconf/generator"
	"github.com/goplus/ideaconf/internal/plugin"
	"github.com/goplus/ideaconf/internal/realm"
	"github.com/goplus/ideaconf/internal/reconcile"
	"github.com/goplus/ideaconf/internal/repo"
	"github.com/goplus/ideaconf/project"
)

// Host is the build platform the generator drives.
type Host interface {
	TaskDescriptor(ctx context.Context, ref project.PluginRef, goal string, repos []string) (*plugin.TaskDescriptor, error)
	SetupExecution(sess *project.Session, mod *project.Module, exec *plugin.Execution) error
	ConfiguredTask(ctx context.Context, sess *project.Session, exec *plugin.Execution) (plugin.Task, error)
	ReleaseTask(task plugin.Task, exec *plugin.Execution)
	PluginRealm(sess *project.Session, desc *plugin.Descriptor) (*realm.Realm, error)
}

var _ Host = (*plugin.Manager)(nil)

// Report summarizes a generation run.
type Report struct {
	Generated []string // module IDs
	Skipped   []string // module IDs
	Patches   []reconcile.Patch
}

// Generator drives generation over a session.
type Generator struct {
	host    Host
	store   *repo.Local
	opts    Options
	classes []string

	ext  *realm.Realm
	sess *project.Session
}

// New creates a Generator. store is the local repository holding the
// generator archive.
func New(host Host, store *repo.Local, opts Options) *Generator {
	ext := realm.New("extension>ideaconf")
	ext.Define(&realm.Class{
		Name: generator.ContractClass,
		Type: reflect.TypeOf((*generator.Generator)(nil)).Elem(),
	})
	ext.Define(&realm.Class{
		Name: generator.UtilsClass,
		Type: reflect.TypeOf(generator.Utils{}),
	})
	return &Generator{
		host:    host,
		store:   store,
		opts:    opts,
		classes: opts.Classes(),
		ext:     ext,
	}
}

// Realm returns the realm holding the generator contract.
func (g *Generator) Realm() *realm.Realm {
	return g.ext
}

// Execute generates configuration for every in-scope module of sess, in
// order. It stops at the first failing module.
func (g *Generator) Execute(ctx context.Context, sess *project.Session) (*Report, error) {
	g.sess = sess
	rep := new(Report)
	rec := reconcile.New(sess)
	for _, mod := range sess.Modules {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if !project.InScope(mod.Packaging) {
			log.Debugf("skip %s: packaging %q", mod.ID(), mod.Packaging)
			continue
		}
		patches := rec.Visit(mod)
		for _, p := range patches {
			log.Debugf("%s: %s %s from %s", mod.ID(), p.Action, p.Key, p.Producer.ID())
		}
		rep.Patches = append(rep.Patches, patches...)

		generated, err := g.module(ctx, mod)
		if err != nil {
			return rep, fmt.Errorf("Cannot generate flex config: %w", err)
		}
		if generated {
			rep.Generated = append(rep.Generated, mod.ID())
		} else {
			rep.Skipped = append(rep.Skipped, mod.ID())
		}
	}
	return rep, nil
}

// module generates configuration for mod. It reports false when mod does not
// declare the compiler plugin.
func (g *Generator) module(ctx context.Context, mod *project.Module) (bool, error) {
	defer g.sess.SetCurrent(mod)()

	compile, companion, err := g.locate(ctx, mod)
	if err != nil {
		return false, err
	}
	if compile == nil {
		log.Debugf("skip %s: no compiler plugin", mod.ID())
		return false, nil
	}
	if companion != nil {
		log.Debugf("%s: located %s", mod.ID(), companion.Descriptor)
	}
	pr, err := g.bridge(compile)
	if err != nil {
		return false, err
	}
	if err := g.run(ctx, mod, compile, pr, g.classes); err != nil {
		return false, err
	}
	log.Infof("generated flex config for %s", mod.ID())
	return true, nil
}
