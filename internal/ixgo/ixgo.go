// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ixgo registers the packages interpreted generator archives may
// import. Import it for side effects only.
package ixgo

import (
	_ "github.com/goplus/ixgo/pkg/fmt"
	_ "github.com/goplus/ixgo/pkg/os"
	_ "github.com/goplus/ixgo/pkg/path/filepath"
	_ "github.com/goplus/ixgo/pkg/strings"

	_ "github.com/goplus/ideaconf/internal/ixgo/pkg/github.com/goplus/ideaconf/generator"
	_ "github.com/goplus/ideaconf/internal/ixgo/pkg/github.com/goplus/ideaconf/mod/artifact"
	_ "github.com/goplus/ideaconf/internal/ixgo/pkg/github.com/goplus/ideaconf/project"
)
