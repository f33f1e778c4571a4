// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package workspace loads the build graph of a workspace from its HCL
// manifest.
//
// A manifest lists the modules in build order. Expressions may use
// workspace_dir, local_repository and env. The workspace directory itself is
// the top-level module.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/qiniu/x/log"
	"github.com/zclconf/go-cty/cty"

	"github.com/goplus/ideaconf/mod/artifact"
	"github.com/goplus/ideaconf/project"
)

// ManifestFile is the manifest file name looked up in a workspace directory.
const ManifestFile = "ideaconf.hcl"

type header struct {
	Name            string   `hcl:"name,optional"`
	Group           string   `hcl:"group,optional"`
	Version         string   `hcl:"version,optional"`
	LocalRepository *string  `hcl:"local_repository,optional"`
	Remain          hcl.Body `hcl:",remain"`
}

type body struct {
	Modules []*moduleBlock `hcl:"module,block"`
}

type moduleBlock struct {
	Name         string             `hcl:"name,label"`
	Group        string             `hcl:"group"`
	Version      string             `hcl:"version,optional"`
	Packaging    string             `hcl:"packaging"`
	Dir          string             `hcl:"dir,optional"`
	File         string             `hcl:"file,optional"`
	Repositories []string           `hcl:"repositories,optional"`
	Plugins      []*pluginBlock     `hcl:"plugin,block"`
	Dependencies []*dependencyBlock `hcl:"dependency,block"`
}

type pluginBlock struct {
	ID      string            `hcl:"id,label"` // group:name
	Version string            `hcl:"version,optional"`
	Config  map[string]string `hcl:"config,optional"`
}

type dependencyBlock struct {
	Key      string `hcl:"key,label"`
	File     string `hcl:"file,optional"`
	Resolved *bool  `hcl:"resolved,optional"`
}

// Load reads the manifest of the workspace at path. path is either the
// manifest file or the directory holding it. localRepo is the repository
// used when the manifest does not set local_repository.
func Load(path, localRepo string) (*project.Session, error) {
	file := path
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		file = filepath.Join(path, ManifestFile)
	}
	src, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	return Parse(src, abs, filepath.Dir(abs), localRepo)
}

// Parse decodes manifest src. filename is used in diagnostics; relative
// paths in the manifest are resolved against dir.
func Parse(src []byte, filename, dir, localRepo string) (*project.Session, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", filename, diags)
	}

	ctx := evalContext(dir)
	var hdr header
	if diags := gohcl.DecodeBody(f.Body, ctx, &hdr); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", filename, diags)
	}
	if hdr.LocalRepository != nil {
		localRepo = absIn(dir, *hdr.LocalRepository)
	}
	ctx.Variables["local_repository"] = cty.StringVal(localRepo)

	var b body
	if diags := gohcl.DecodeBody(hdr.Remain, ctx, &b); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", filename, diags)
	}

	top := &project.Module{
		Group:     hdr.Group,
		Name:      hdr.Name,
		Version:   hdr.Version,
		Packaging: "pom",
		Dir:       dir,
	}
	if top.Name == "" {
		top.Name = filepath.Base(dir)
	}
	mods := []*project.Module{top}
	seen := make(map[string]bool)
	for _, mb := range b.Modules {
		mod, err := mb.module(dir)
		if err != nil {
			return nil, fmt.Errorf("%s: module %q: %w", filename, mb.Name, err)
		}
		if seen[mod.ID()] {
			return nil, fmt.Errorf("%s: module %s declared twice", filename, mod.ID())
		}
		seen[mod.ID()] = true
		mods = append(mods, mod)
	}
	log.Debugf("loaded %d modules from %s", len(b.Modules), filename)
	return project.NewSession(mods, top, localRepo), nil
}

func evalContext(dir string) *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			vars[k] = cty.StringVal(v)
		}
	}
	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"workspace_dir":    cty.StringVal(dir),
			"local_repository": cty.StringVal(""),
			"env":              env,
		},
	}
}

func (mb *moduleBlock) module(root string) (*project.Module, error) {
	if mb.Packaging == "" {
		return nil, fmt.Errorf("packaging is empty")
	}
	mod := &project.Module{
		Group:        mb.Group,
		Name:         mb.Name,
		Version:      mb.Version,
		Packaging:    mb.Packaging,
		Dir:          absIn(root, mb.Dir),
		Repositories: mb.Repositories,
	}
	if mb.Dir == "" {
		mod.Dir = filepath.Join(root, mb.Name)
	}
	file := mb.File
	if file == "" {
		file = filepath.Join(mod.Dir, "target", mod.Key().FileName())
	}
	mod.Artifact = artifact.New(mod.Key(), absIn(root, file), true)

	for _, pb := range mb.Plugins {
		group, name, ok := strings.Cut(pb.ID, ":")
		if !ok || group == "" || name == "" {
			return nil, fmt.Errorf("plugin %q: want group:name", pb.ID)
		}
		mod.Plugins = append(mod.Plugins, project.PluginRef{
			Group:   group,
			Name:    name,
			Version: pb.Version,
			Config:  pb.Config,
		})
	}
	for _, db := range mb.Dependencies {
		key, err := artifact.ParseKey(db.Key)
		if err != nil {
			return nil, err
		}
		resolved := true
		if db.Resolved != nil {
			resolved = *db.Resolved
		}
		file := db.File
		if file != "" {
			file = absIn(root, file)
		}
		mod.Artifacts = append(mod.Artifacts, artifact.New(key, file, resolved))
	}
	return mod, nil
}

// absIn makes path absolute against dir.
func absIn(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
