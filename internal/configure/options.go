// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package configure

// Generator classes selected by Options.
const (
	IdeaConfigurator         = "com.intellij.flex.maven.IdeaConfigurator"
	ShareableConfigGenerator = "com.intellij.flex.maven.ShareableFlexConfigGenerator"
)

// Coordinates of the archive holding the generator classes.
const (
	ConfiguratorGroup   = "com.intellij.flex.maven"
	ConfiguratorName    = "idea-configurator"
	ConfiguratorVersion = "1.5.4"
)

// Options selects the configurations to generate.
type Options struct {
	// GenerateShareable writes configurations with workspace relative paths.
	GenerateShareable bool
	// GenerateNonShareable writes configurations for the local IDE.
	GenerateNonShareable bool
	// OutputDir overrides the directory generators write to. Empty keeps the
	// per-module default of each generator.
	OutputDir string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{GenerateNonShareable: true}
}

// Classes returns the generator classes to run, in order.
func (o Options) Classes() []string {
	var names []string
	if o.GenerateNonShareable {
		names = append(names, IdeaConfigurator)
	}
	if o.GenerateShareable {
		names = append(names, ShareableConfigGenerator)
	}
	return names
}
