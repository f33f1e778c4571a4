// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package configure

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/goplus/ideaconf/generator"
	"github.com/goplus/ideaconf/internal/plugin"
	"github.com/goplus/ideaconf/internal/realm"
	"github.com/goplus/ideaconf/project"
)

const (
	recordingClass = "test.RecordingGenerator"
	failingClass   = "test.FailingGenerator"
)

// fakeTask is a configured compile task.
type fakeTask struct {
	goal   string
	mod    *project.Module
	params map[string]string
}

func (t *fakeTask) Execute(ctx context.Context) error { return nil }
func (t *fakeTask) Goal() string { return t.goal }
func (t *fakeTask) Module() *project.Module { return t.mod }

func (t *fakeTask) Parameter(name string) (string, bool) {
	v, ok := t.params[name]
	return v, ok
}

// mockHost records every call in events.
type mockHost struct {
	events []string

	descriptorErr map[string]error // by goal
	configureErr  error
	realmErr      error
	failPhase     string // phase the failing generator fails in

	realm    *realm.Realm
	released int
	resolved []string // goals passed to TaskDescriptor
}

func (h *mockHost) record(format string, args ...any) {
	h.events = append(h.events, fmt.Sprintf(format, args...))
}

func (h *mockHost) TaskDescriptor(ctx context.Context, ref project.PluginRef, goal string, repos []string) (*plugin.TaskDescriptor, error) {
	h.resolved = append(h.resolved, goal)
	if err := h.descriptorErr[goal]; err != nil {
		return nil, err
	}
	return &plugin.TaskDescriptor{
		Plugin: &plugin.Descriptor{Group: ref.Group, Name: ref.Name, Version: "4.0.0"},
		Goal:   goal,
	}, nil
}

func (h *mockHost) SetupExecution(sess *project.Session, mod *project.Module, exec *plugin.Execution) error {
	exec.Module = mod
	exec.Config = map[string]string{generator.ParamSourcePaths: "src"}
	return nil
}

func (h *mockHost) ConfiguredTask(ctx context.Context, sess *project.Session, exec *plugin.Execution) (plugin.Task, error) {
	if sess.Current() != exec.Module {
		return nil, errors.New("wrong current module")
	}
	if h.configureErr != nil {
		return nil, h.configureErr
	}
	h.record("configure:%s", exec.Descriptor.Goal)
	return &fakeTask{goal: exec.Descriptor.Goal, mod: exec.Module, params: exec.Config}, nil
}

func (h *mockHost) ReleaseTask(task plugin.Task, exec *plugin.Execution) {
	h.released++
	h.record("release")
}

func (h *mockHost) PluginRealm(sess *project.Session, desc *plugin.Descriptor) (*realm.Realm, error) {
	if h.realmErr != nil {
		return nil, h.realmErr
	}
	if h.realm == nil {
		h.realm = realm.New("plugin>" + desc.ID())
		for _, name := range []string{recordingClass, failingClass} {
			name := name
			h.realm.Define(&realm.Class{
				Name:     name,
				Type:     reflect.TypeOf(recorder{}),
				Requires: []string{generator.ContractClass, generator.UtilsClass},
				New: func(args ...any) (any, error) {
					r := &recorder{host: h, name: name}
					if name == failingClass {
						r.failPhase = h.failPhase
					}
					return r, nil
				},
			})
		}
	}
	return h.realm, nil
}

var errBoom = errors.New("boom")

// recorder is a generator writing its calls into the host events.
type recorder struct {
	host      *mockHost
	name      string
	failPhase string
}

func (r *recorder) short() string {
	if r.name == failingClass {
		return "failing"
	}
	return "recording"
}

func (r *recorder) PreGenerate(mod *project.Module, classifier string) error {
	r.host.record("%s.pre:%s", r.short(), mod.Name)
	if r.failPhase == PhasePre {
		return errBoom
	}
	return nil
}

func (r *recorder) Generate(task generator.Task, sourceFile string) error {
	r.host.record("%s.generate:%s", r.short(), sourceFile)
	if r.failPhase == PhaseGenerate {
		return errBoom
	}
	return nil
}

func (r *recorder) PostGenerate(mod *project.Module) error {
	r.host.record("%s.post:%s", r.short(), mod.Name)
	if r.failPhase == PhasePost {
		return errBoom
	}
	return nil
}
