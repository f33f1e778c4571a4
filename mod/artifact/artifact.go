// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package artifact defines the artifact.Key and artifact.Descriptor types
// along with support code.
package artifact

import (
	"fmt"
	"path"
	"strings"
)

// A Key identifies a produced binary independently of where it lives.
// Two descriptors with equal keys describe the same logical artifact.
type Key struct {
	Group   string // e.g. "com.example"
	Name    string // e.g. "core"
	Version string // e.g. "1.0.0"
	Kind    string // packaging kind: "swc", "swf", "air", ...
}

// String returns the key in the form "group:name:version:kind".
func (k Key) String() string {
	return k.Group + ":" + k.Name + ":" + k.Version + ":" + k.Kind
}

// ParseKey parses a key in the form "group:name:version:kind".
func ParseKey(s string) (Key, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 4 {
		return Key{}, fmt.Errorf("invalid artifact key %q: expected group:name:version:kind", s)
	}
	for _, p := range parts {
		if p == "" {
			return Key{}, fmt.Errorf("invalid artifact key %q: empty component", s)
		}
	}
	return Key{Group: parts[0], Name: parts[1], Version: parts[2], Kind: parts[3]}, nil
}

// FileName returns the conventional file name of the artifact,
// e.g. "core-1.0.0.swc".
func (k Key) FileName() string {
	return k.Name + "-" + k.Version + "." + k.Kind
}

// RepoPath returns the slash-separated location of the artifact relative
// to the root of an artifact repository:
//
//	com/example/core/1.0.0/core-1.0.0.swc
func (k Key) RepoPath() string {
	return path.Join(strings.ReplaceAll(k.Group, ".", "/"), k.Name, k.Version, k.FileName())
}

// A Descriptor is one occurrence of an artifact in the build graph.
// File and Resolved are mutable; Key never changes.
type Descriptor struct {
	Key      Key
	File     string // location of the artifact file, empty if unknown
	Resolved bool   // whether the host resolver considers File usable
}

// New returns a descriptor for key.
func New(key Key, file string, resolved bool) *Descriptor {
	return &Descriptor{Key: key, File: file, Resolved: resolved}
}

func (d *Descriptor) String() string {
	state := "unresolved"
	if d.Resolved {
		state = "resolved"
	}
	return fmt.Sprintf("%s (%s, %s)", d.Key, d.File, state)
}
