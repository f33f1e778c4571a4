// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package configure

import "fmt"

// TaskResolutionError reports a plugin task that could not be resolved or
// prepared for a module.
type TaskResolutionError struct {
	Module string
	Plugin string
	Goal   string
	Err    error
}

func (e *TaskResolutionError) Error() string {
	return fmt.Sprintf("%s: resolve %s:%s: %v", e.Module, e.Plugin, e.Goal, e.Err)
}

func (e *TaskResolutionError) Unwrap() error {
	return e.Err
}

// BridgeError reports a failure to make the generator archive and the shared
// contract visible in a plugin realm.
type BridgeError struct {
	Module string
	Err    error
}

func (e *BridgeError) Error() string {
	return fmt.Sprintf("%s: bridge plugin realm: %v", e.Module, e.Err)
}

func (e *BridgeError) Unwrap() error {
	return e.Err
}

// Generation phases.
const (
	PhaseConfigure = "configure"
	PhaseLoad      = "load"
	PhasePre       = "preGenerate"
	PhaseGenerate  = "generate"
	PhasePost      = "postGenerate"
)

// GenerationError reports a failure while running a generator class for a
// module. Class is empty when the failure happened before any class ran.
type GenerationError struct {
	Module string
	Class  string
	Phase  string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Class == "" {
		return fmt.Sprintf("%s: %s: %v", e.Module, e.Phase, e.Err)
	}
	return fmt.Sprintf("%s: %s %s: %v", e.Module, e.Class, e.Phase, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
