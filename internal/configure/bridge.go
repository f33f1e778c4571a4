// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package configure

import (
	"github.com/goplus/ideaconf/generator"
	"github.com/goplus/ideaconf/internal/plugin"
	"github.com/goplus/ideaconf/internal/realm"
	"github.com/goplus/ideaconf/mod/artifact"
)

// ConfiguratorKey is the artifact key of the generator archive.
var ConfiguratorKey = artifact.Key{
	Group:   ConfiguratorGroup,
	Name:    ConfiguratorName,
	Version: ConfiguratorVersion,
	Kind:    "jar",
}

// bridge opens the generator archive in the realm of the plugin owning exec
// and imports the generator contract into it. Bridging a realm again changes
// nothing.
func (g *Generator) bridge(exec *plugin.Execution) (*realm.Realm, error) {
	fail := func(err error) (*realm.Realm, error) {
		return nil, &BridgeError{Module: exec.Module.ID(), Err: err}
	}
	pr, err := g.host.PluginRealm(g.sess, exec.Descriptor.Plugin)
	if err != nil {
		return fail(err)
	}
	loc, err := g.store.URL(ConfiguratorKey)
	if err != nil {
		return fail(err)
	}
	if err := pr.AddArchive(loc); err != nil {
		return fail(err)
	}
	for _, name := range []string{generator.ContractClass, generator.UtilsClass} {
		if err := pr.Import(g.ext, name); err != nil {
			return fail(err)
		}
	}
	return pr, nil
}
