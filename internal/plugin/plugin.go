// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plugin is the in-process plugin manager of the build host. It
// resolves task descriptors for declared plugins, prepares executions,
// configures and releases task instances, and owns one realm per plugin.
package plugin

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/mod/semver"

	"github.com/goplus/ideaconf/project"
)

var (
	ErrPluginNotFound = errors.New("plugin not found")
	ErrGoalNotFound   = errors.New("goal not found")
)

// Task is a configured task instance. Implementations must be comparable;
// pointer types are.
type Task interface {
	// Execute runs the task.
	Execute(ctx context.Context) error
}

// GoalFunc configures a task instance for exec.
type GoalFunc func(ctx context.Context, exec *Execution) (Task, error)

// Goal is a unit of work a plugin offers.
type Goal struct {
	Name string
	// Defaults are merged under the configuration declared by the module.
	Defaults map[string]string
	// Configure builds the task instance.
	Configure GoalFunc
}

// Plugin is a registered build plugin.
type Plugin struct {
	Group   string
	Name    string
	Version string // a semantic version without the "v" prefix
	Goals   []*Goal
}

// ID returns "group:name".
func (p *Plugin) ID() string {
	return p.Group + ":" + p.Name
}

func (p *Plugin) goal(name string) (*Goal, bool) {
	for _, g := range p.Goals {
		if g.Name == name {
			return g, true
		}
	}
	return nil, false
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string][]*Plugin) // by ID
)

// Register makes p available to every Manager. Registering the same
// group:name:version twice panics.
func Register(p *Plugin) {
	if !semver.IsValid("v" + p.Version) {
		panic(fmt.Sprintf("plugin: %s has invalid version %q", p.ID(), p.Version))
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	for _, q := range registry[p.ID()] {
		if q.Version == p.Version {
			panic(fmt.Sprintf("plugin: %s:%s registered twice", p.ID(), p.Version))
		}
	}
	registry[p.ID()] = append(registry[p.ID()], p)
}

// lookup returns the registered plugin matching ref. An empty version
// selects the highest registered version.
func lookup(ref project.PluginRef) (*Plugin, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	candidates := registry[ref.ID()]
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrPluginNotFound, ref.ID())
	}
	if ref.Version != "" {
		for _, p := range candidates {
			if semver.Compare("v"+p.Version, "v"+ref.Version) == 0 {
				return p, nil
			}
		}
		return nil, fmt.Errorf("%w: %s:%s", ErrPluginNotFound, ref.ID(), ref.Version)
	}
	return slices.MaxFunc(candidates, func(a, b *Plugin) int {
		return semver.Compare("v"+a.Version, "v"+b.Version)
	}), nil
}
