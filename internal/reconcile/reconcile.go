// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reconcile converges artifact descriptors of a build graph onto the
// outputs of the modules that produce them.
//
// The host resolver may hand out two descriptors with the same key but
// different identities. A consumer then reads a stale repository copy, or
// fails on an unresolved artifact, although the producing module is part of
// the same build. Reconciliation patches only File and Resolved; it never
// adds, removes or reorders anything.
package reconcile

import (
	"path/filepath"
	"strings"

	"github.com/goplus/ideaconf/mod/artifact"
	"github.com/goplus/ideaconf/project"
)

// Action tells what happened to a dependency descriptor.
type Action int

const (
	// MarkedResolved means the descriptor was unresolved; it is now resolved
	// and points at the producer's output.
	MarkedResolved Action = iota
	// Kept means the descriptor already points into the top-level directory.
	Kept
	// Repointed means the descriptor file was replaced by the producer's file.
	Repointed
)

func (a Action) String() string {
	switch a {
	case MarkedResolved:
		return "resolved"
	case Kept:
		return "kept"
	case Repointed:
		return "repointed"
	}
	return "unknown"
}

// Patch records one descriptor visited by the reconciler.
type Patch struct {
	Module   *project.Module
	Key      artifact.Key
	Action   Action
	Producer *project.Module
}

// Reconciler walks modules one at a time. The zero value is not usable;
// use New.
type Reconciler struct {
	rootDir   string
	producers map[artifact.Key]*project.Module
}

// New creates a Reconciler for sess.
func New(sess *project.Session) *Reconciler {
	return &Reconciler{
		rootDir:   sess.TopLevelDir(),
		producers: make(map[artifact.Key]*project.Module, len(sess.Modules)),
	}
}

// Visit patches the dependency descriptors of mod against the producers seen
// so far, then records mod as the producer of its own artifact.
// Modules of an out-of-scope packaging are ignored.
func (r *Reconciler) Visit(mod *project.Module) []Patch {
	if !project.InScope(mod.Packaging) {
		return nil
	}
	var patches []Patch
	for _, dep := range mod.Artifacts {
		producer, ok := r.producers[dep.Key]
		if !ok {
			continue
		}
		action := r.patch(dep, producer)
		patches = append(patches, Patch{Module: mod, Key: dep.Key, Action: action, Producer: producer})
	}
	if mod.Artifact != nil {
		r.producers[mod.Artifact.Key] = mod
	}
	return patches
}

// patch marks an unresolved descriptor resolved, leaves a resolved one that
// already lives under the top-level directory alone, and points every other
// one at the producer's output.
func (r *Reconciler) patch(dep *artifact.Descriptor, producer *project.Module) Action {
	action := Repointed
	if !dep.Resolved {
		dep.Resolved = true
		action = MarkedResolved
	} else if r.underRoot(dep.File) {
		return Kept
	}
	if producer.Artifact != nil {
		dep.File = producer.Artifact.File
	}
	return action
}

// underRoot reports whether file lies inside the top-level directory. A
// sibling sharing the directory name as a prefix, such as /ws-other for /ws,
// is not inside it.
func (r *Reconciler) underRoot(file string) bool {
	if r.rootDir == "" || file == "" {
		return false
	}
	file = filepath.Clean(file)
	if file == r.rootDir {
		return true
	}
	return strings.HasPrefix(file, r.rootDir+string(filepath.Separator))
}

// Graph reconciles every module of sess in order and returns the patches.
// Running it again on the same graph changes nothing.
func Graph(sess *project.Session) []Patch {
	r := New(sess)
	var patches []Patch
	for _, mod := range sess.Modules {
		patches = append(patches, r.Visit(mod)...)
	}
	return patches
}
