// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command ideaconf generates IDE configuration for the Flex modules of a
// workspace.
package main

import (
	"github.com/goplus/ideaconf/cmd/ideaconf/internal"
)

func main() {
	internal.Execute()
}
