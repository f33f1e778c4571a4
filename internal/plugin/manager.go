// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plugin

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/qiniu/x/log"

	"github.com/goplus/ideaconf/internal/realm"
	"github.com/goplus/ideaconf/project"
)

// Descriptor describes a resolved plugin.
type Descriptor struct {
	Group   string
	Name    string
	Version string

	plugin *Plugin
}

// ID returns "group:name:version".
func (d *Descriptor) ID() string {
	return d.Group + ":" + d.Name + ":" + d.Version
}

// TaskDescriptor describes one goal of a resolved plugin.
type TaskDescriptor struct {
	Plugin *Descriptor
	Goal   string

	goal *Goal
}

func (t *TaskDescriptor) String() string {
	return t.Plugin.ID() + ":" + t.Goal
}

// Execution sources.
const (
	SourceCLI       = "cli"
	SourceLifecycle = "lifecycle"
)

// DefaultExecutionID is the id of executions created outside a lifecycle.
const DefaultExecutionID = "default-cli"

// Execution is a prepared, executable task handle.
type Execution struct {
	Descriptor  *TaskDescriptor
	ExecutionID string
	Source      string

	// Module and Config are filled by SetupExecution.
	Module *project.Module
	Config map[string]string

	ready bool
}

// NewExecution creates an execution of desc. It must be prepared with
// SetupExecution before use.
func NewExecution(desc *TaskDescriptor, id, source string) *Execution {
	return &Execution{Descriptor: desc, ExecutionID: id, Source: source}
}

// Ready reports whether exec went through SetupExecution.
func (e *Execution) Ready() bool {
	return e.ready
}

// Manager resolves and runs plugin tasks for one build session.
type Manager struct {
	mu       sync.Mutex
	realms   map[string]*realm.Realm // by plugin descriptor ID
	live     map[Task]*Execution
	executed map[string]bool // module ID + task descriptor
}

// NewManager creates a Manager.
func NewManager() *Manager {
	return &Manager{
		realms:   make(map[string]*realm.Realm),
		live:     make(map[Task]*Execution),
		executed: make(map[string]bool),
	}
}

// TaskDescriptor resolves goal of the plugin ref. repos are the remote
// repositories of the declaring module; plugins are compiled in, so they are
// only reported.
func (m *Manager) TaskDescriptor(ctx context.Context, ref project.PluginRef, goal string, repos []string) (*TaskDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := lookup(ref)
	if err != nil {
		return nil, err
	}
	g, ok := p.goal(goal)
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s:%s", ErrGoalNotFound, goal, p.ID(), p.Version)
	}
	log.Debugf("resolved %s:%s:%s (repositories %v)", p.ID(), p.Version, goal, repos)
	return &TaskDescriptor{
		Plugin: &Descriptor{Group: p.Group, Name: p.Name, Version: p.Version, plugin: p},
		Goal:   goal,
		goal:   g,
	}, nil
}

// SetupExecution binds exec to mod and computes its configuration: goal
// defaults overlaid by the configuration of the plugin declared in mod.
func (m *Manager) SetupExecution(sess *project.Session, mod *project.Module, exec *Execution) error {
	if exec.Descriptor == nil || exec.Descriptor.goal == nil {
		return errors.New("setup execution: unresolved task descriptor")
	}
	cfg := maps.Clone(exec.Descriptor.goal.Defaults)
	if cfg == nil {
		cfg = make(map[string]string)
	}
	for _, ref := range mod.Plugins {
		if ref.Group == exec.Descriptor.Plugin.Group && ref.Name == exec.Descriptor.Plugin.Name {
			maps.Copy(cfg, ref.Config)
			break
		}
	}
	exec.Module = mod
	exec.Config = cfg
	exec.ready = true
	return nil
}

// ConfiguredTask builds the task instance of exec. The instance must be
// handed back with ReleaseTask.
func (m *Manager) ConfiguredTask(ctx context.Context, sess *project.Session, exec *Execution) (Task, error) {
	if !exec.ready {
		return nil, fmt.Errorf("configure %s: execution not set up", exec.Descriptor)
	}
	if cur := sess.Current(); cur != exec.Module {
		return nil, fmt.Errorf("configure %s: current module is %s, want %s", exec.Descriptor, moduleID(cur), exec.Module.ID())
	}
	task, err := exec.Descriptor.goal.Configure(ctx, exec)
	if err != nil {
		return nil, fmt.Errorf("configure %s for %s: %w", exec.Descriptor, exec.Module.ID(), err)
	}
	m.mu.Lock()
	m.live[task] = exec
	m.mu.Unlock()
	return task, nil
}

// ReleaseTask hands task back. Releasing a nil or unknown task is a no-op.
func (m *Manager) ReleaseTask(task Task, exec *Execution) {
	if task == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.live[task]; ok {
		delete(m.live, task)
		log.Debugf("released %s for %s", exec.Descriptor, exec.Module.ID())
	}
}

// Live returns the number of configured tasks not released yet.
func (m *Manager) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.live)
}

// Execute configures, runs and releases exec. Each (module, goal) pair runs
// at most once per Manager; later calls are no-ops.
func (m *Manager) Execute(ctx context.Context, sess *project.Session, exec *Execution) error {
	key := exec.Module.ID() + "|" + exec.Descriptor.String()
	m.mu.Lock()
	done := m.executed[key]
	m.executed[key] = true
	m.mu.Unlock()
	if done {
		return nil
	}

	task, err := m.ConfiguredTask(ctx, sess, exec)
	if err != nil {
		return err
	}
	defer m.ReleaseTask(task, exec)
	return task.Execute(ctx)
}

// PluginRealm returns the realm of the plugin described by desc, creating it
// on first use. The same realm is returned for the whole session.
func (m *Manager) PluginRealm(sess *project.Session, desc *Descriptor) (*realm.Realm, error) {
	if desc == nil {
		return nil, errors.New("plugin realm: nil descriptor")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.realms[desc.ID()]
	if !ok {
		r = realm.New("plugin>" + desc.ID())
		m.realms[desc.ID()] = r
	}
	return r, nil
}

func moduleID(mod *project.Module) string {
	if mod == nil {
		return "<none>"
	}
	return mod.ID()
}
