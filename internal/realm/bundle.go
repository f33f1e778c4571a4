// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package realm

import (
	"fmt"
	"sync"
)

// Bundle is an archive compiled into the binary. Bundles register themselves
// from init and are found by the file name of the archive location.
type Bundle struct {
	Name    string // e.g. "idea-configurator"
	Version string // e.g. "1.5.4"
	Classes []*Class
}

// ID returns "name-version", the archive file name without extension.
func (b *Bundle) ID() string {
	return b.Name + "-" + b.Version
}

var (
	bundlesMu sync.RWMutex
	bundles   = make(map[string]*Bundle)
)

// RegisterBundle makes b available to AddArchive. It panics if a bundle with
// the same ID is already registered.
func RegisterBundle(b *Bundle) {
	bundlesMu.Lock()
	defer bundlesMu.Unlock()
	if _, dup := bundles[b.ID()]; dup {
		panic(fmt.Sprintf("realm: bundle %s registered twice", b.ID()))
	}
	bundles[b.ID()] = b
}

func lookupBundle(id string) (*Bundle, bool) {
	bundlesMu.RLock()
	defer bundlesMu.RUnlock()
	b, ok := bundles[id]
	return b, ok
}
