// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package repo locates artifacts in the local artifact repository.
package repo

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/goplus/ideaconf/internal/env"
	"github.com/goplus/ideaconf/mod/artifact"
)

// Local is a local artifact repository laid out as
//
//	<dir>/<group as path>/<name>/<version>/<name>-<version>.<kind>
type Local struct {
	dir string
}

// New creates a Local rooted at dir.
func New(dir string) *Local {
	return &Local{dir: dir}
}

// Default returns the Local at env.LocalRepositoryDir.
func Default() (*Local, error) {
	dir, err := env.LocalRepositoryDir()
	if err != nil {
		return nil, err
	}
	return New(dir), nil
}

// Dir returns the repository root.
func (l *Local) Dir() string {
	return l.dir
}

// Path returns the file path of key within the repository.
func (l *Local) Path(key artifact.Key) string {
	return filepath.Join(l.dir, filepath.FromSlash(key.RepoPath()))
}

// URL returns the file URL of key within the repository.
func (l *Local) URL(key artifact.Key) (string, error) {
	if l.dir == "" {
		return "", fmt.Errorf("local repository not configured")
	}
	abs, err := filepath.Abs(l.Path(key))
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}

// Has reports whether key is present in the repository.
func (l *Local) Has(key artifact.Key) bool {
	fi, err := os.Stat(l.Path(key))
	return err == nil && !fi.IsDir()
}
