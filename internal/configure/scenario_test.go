// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package configure

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goplus/ideaconf/internal/plugin"
	"github.com/goplus/ideaconf/internal/repo"
	"github.com/goplus/ideaconf/mod/artifact"
	"github.com/goplus/ideaconf/project"

	_ "github.com/goplus/ideaconf/x/flexmojos"
)

// workspace builds a parent with a library and an application depending on
// a stale repository copy of the library.
func workspace(t *testing.T) (sess *project.Session, lib, app *project.Module, dep *artifact.Descriptor) {
	t.Helper()
	ws := t.TempDir()
	localRepo := filepath.Join(t.TempDir(), "repository")

	key := artifact.Key{Group: "com.example", Name: "core", Version: "1.0.0", Kind: "swc"}
	lib = &project.Module{
		Group: "com.example", Name: "core", Version: "1.0.0", Packaging: "swc",
		Dir:      filepath.Join(ws, "core"),
		Plugins:  []project.PluginRef{{Group: PluginGroup, Name: CompilerPlugin, Version: "4.0.0"}},
		Artifact: artifact.New(key, filepath.Join(ws, "core", "target", "core-1.0.0.swc"), true),
	}
	dep = artifact.New(key, filepath.Join(localRepo, filepath.FromSlash(key.RepoPath())), false)
	app = &project.Module{
		Group: "com.example", Name: "app", Version: "1.0.0", Packaging: "swf",
		Dir:       filepath.Join(ws, "app"),
		Plugins:   []project.PluginRef{{Group: PluginGroup, Name: CompilerPlugin}},
		Artifact:  artifact.New(artifact.Key{Group: "com.example", Name: "app", Version: "1.0.0", Kind: "swf"}, filepath.Join(ws, "app", "target", "app-1.0.0.swf"), true),
		Artifacts: []*artifact.Descriptor{dep},
	}
	src := filepath.Join(app.Dir, "src", "main", "flex", "Main.mxml")
	if err := os.MkdirAll(filepath.Dir(src), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(src, []byte("<s:Application/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	top := &project.Module{Group: "com.example", Name: "parent", Version: "1.0.0", Packaging: "pom", Dir: ws}
	sess = project.NewSession([]*project.Module{top, lib, app}, top, localRepo)
	return sess, lib, app, dep
}

func TestScenario_ApplicationAgainstLibrary(t *testing.T) {
	sess, lib, app, dep := workspace(t)
	m := plugin.NewManager()
	g := New(m, repo.New(sess.LocalRepository), Options{GenerateShareable: true, GenerateNonShareable: true})

	rep, err := g.Execute(context.Background(), sess)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(rep.Generated) != 2 {
		t.Errorf("generated = %v, want core and app", rep.Generated)
	}
	if !dep.Resolved || dep.File != lib.Artifact.File {
		t.Errorf("dependency = %v, want resolved to %s", dep, lib.Artifact.File)
	}
	if n := m.Live(); n != 0 {
		t.Errorf("%d configured tasks not released", n)
	}

	local, err := os.ReadFile(filepath.Join(app.Dir, ".idea", "flex", "app-config.xml"))
	if err != nil {
		t.Fatalf("IDE configuration not written: %v", err)
	}
	for _, want := range []string{
		"<path-element>" + lib.Artifact.File + "</path-element>",
		"<path-element>" + filepath.Join(app.Dir, "src", "main", "flex", "Main.mxml") + "</path-element>",
		"<output>" + app.Artifact.File + "</output>",
	} {
		if !strings.Contains(string(local), want) {
			t.Errorf("IDE configuration lacks %s:\n%s", want, local)
		}
	}

	shared, err := os.ReadFile(filepath.Join(app.Dir, "build-config", "app-config.xml"))
	if err != nil {
		t.Fatalf("shareable configuration not written: %v", err)
	}
	if !strings.Contains(string(shared), "${root}/core/target/core-1.0.0.swc") {
		t.Errorf("shareable configuration not workspace relative:\n%s", shared)
	}
	if strings.Contains(string(shared), sess.TopLevelDir()) {
		t.Errorf("shareable configuration contains absolute paths:\n%s", shared)
	}

	libConf, err := os.ReadFile(filepath.Join(lib.Dir, ".idea", "flex", "core-config.xml"))
	if err != nil {
		t.Fatalf("library configuration not written: %v", err)
	}
	if !strings.Contains(string(libConf), "<include-sources>") || strings.Contains(string(libConf), "<file-specs>") {
		t.Errorf("library configuration:\n%s", libConf)
	}
}

func TestScenario_Idempotent(t *testing.T) {
	sess, _, _, dep := workspace(t)
	for i := 0; i < 2; i++ {
		g := New(plugin.NewManager(), repo.New(sess.LocalRepository), DefaultOptions())
		if _, err := g.Execute(context.Background(), sess); err != nil {
			t.Fatalf("Execute #%d failed: %v", i, err)
		}
	}
	if !dep.Resolved {
		t.Error("dependency not resolved")
	}
}

func TestScenario_UnknownPluginVersion(t *testing.T) {
	sess, lib, _, _ := workspace(t)
	lib.Plugins[0].Version = "9.9.9"
	g := New(plugin.NewManager(), repo.New(sess.LocalRepository), DefaultOptions())
	_, err := g.Execute(context.Background(), sess)
	if err == nil || !strings.Contains(err.Error(), "plugin not found") {
		t.Fatalf("err = %v, want plugin not found", err)
	}
}

func TestScenario_CompanionNotRun(t *testing.T) {
	sess, lib, _, _ := workspace(t)
	lib.Plugins = append(lib.Plugins, project.PluginRef{
		Group:  PluginGroup,
		Name:   GeneratorPlugin,
		Config: map[string]string{"templates": "does/not/exist.as"},
	})
	m := plugin.NewManager()
	g := New(m, repo.New(sess.LocalRepository), DefaultOptions())

	rep, err := g.Execute(context.Background(), sess)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(rep.Generated) != 2 {
		t.Errorf("generated = %v, want core and app", rep.Generated)
	}
	if _, err := os.Stat(filepath.Join(lib.Dir, "target", "generated-sources")); !os.IsNotExist(err) {
		t.Errorf("code generation ran: stat err = %v", err)
	}
	if n := m.Live(); n != 0 {
		t.Errorf("%d configured tasks not released", n)
	}
}
