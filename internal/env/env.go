// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package env

import (
	"os"
	"path/filepath"
)

// LocalRepositoryEnv overrides the local artifact repository location.
const LocalRepositoryEnv = "IDEACONF_LOCAL_REPOSITORY"

// WorkDir returns the per-user ideaconf directory <UserCacheDir>/.ideaconf.
func WorkDir() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userCacheDir, ".ideaconf"), nil
}

// LocalRepositoryDir returns the local artifact repository directory.
// $IDEACONF_LOCAL_REPOSITORY wins; otherwise it is <UserHomeDir>/.m2/repository.
// The directory is not created.
func LocalRepositoryDir() (string, error) {
	if dir := os.Getenv(LocalRepositoryEnv); dir != "" {
		return filepath.Abs(dir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".m2", "repository"), nil
}
