// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Parameters every compile task understands.
const (
	ParamClassifier  = "classifier"
	ParamSourceFile  = "sourceFile"
	ParamSourcePaths = "sourcePaths" // comma separated, relative to the module dir
	ParamOutput      = "output"
	ParamLibraryPath = "libraryPath" // comma separated dependency files
)

// Utils groups the task inspection helpers exported next to the contract.
type Utils struct{}

// Classifier returns the classifier of the artifact task produces, or "".
func (Utils) Classifier(task Task) string {
	v, _ := task.Parameter(ParamClassifier)
	return v
}

// SourcePaths returns the absolute source roots of task.
func (Utils) SourcePaths(task Task) []string {
	v, _ := task.Parameter(ParamSourcePaths)
	return SplitList(v, task.Module().Dir)
}

// SourceFile returns the main application source of task.
//
// An explicit sourceFile parameter is looked up in the source roots. Without
// it, "<module name>.mxml", "<module name>.as", "Main.mxml" and "Main.as" are
// tried in that order.
func (u Utils) SourceFile(task Task) (string, error) {
	roots := u.SourcePaths(task)
	if name, ok := task.Parameter(ParamSourceFile); ok && name != "" {
		if filepath.IsAbs(name) {
			return name, nil
		}
		if f, ok := findIn(roots, name); ok {
			return f, nil
		}
		if len(roots) > 0 {
			return filepath.Join(roots[0], name), nil
		}
		return filepath.Join(task.Module().Dir, name), nil
	}
	mod := task.Module()
	for _, name := range []string{mod.Name + ".mxml", mod.Name + ".as", "Main.mxml", "Main.as"} {
		if f, ok := findIn(roots, name); ok {
			return f, nil
		}
	}
	return "", fmt.Errorf("no application source found for %s in %v", mod.ID(), roots)
}

func findIn(roots []string, name string) (string, bool) {
	for _, root := range roots {
		f := filepath.Join(root, name)
		if fi, err := os.Stat(f); err == nil && !fi.IsDir() {
			return f, true
		}
	}
	return "", false
}

// Classifier is Utils{}.Classifier.
func Classifier(task Task) string {
	return Utils{}.Classifier(task)
}

// SourceFile is Utils{}.SourceFile.
func SourceFile(task Task) (string, error) {
	return Utils{}.SourceFile(task)
}

// SplitList splits a comma separated list of paths, making relative entries
// absolute against dir.
func SplitList(list, dir string) []string {
	var out []string
	for _, p := range strings.Split(list, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		out = append(out, filepath.Clean(p))
	}
	return out
}
