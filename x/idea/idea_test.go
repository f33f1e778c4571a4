package idea

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goplus/ideaconf/generator"
	"github.com/goplus/ideaconf/internal/realm"
	"github.com/goplus/ideaconf/project"
)

type task struct {
	mod    *project.Module
	params map[string]string
}

func (t *task) Goal() string { return "compile-swf" }
func (t *task) Module() *project.Module { return t.mod }

func (t *task) Parameter(name string) (string, bool) {
	v, ok := t.params[name]
	return v, ok
}

func testModule(t *testing.T) (*project.Session, *project.Module) {
	t.Helper()
	ws := t.TempDir()
	mod := &project.Module{Group: "com.example", Name: "app", Packaging: "swf", Dir: filepath.Join(ws, "app")}
	top := &project.Module{Group: "com.example", Name: "parent", Packaging: "pom", Dir: ws}
	return project.NewSession([]*project.Module{top, mod}, top, ""), mod
}

func testTask(mod *project.Module) *task {
	return &task{mod: mod, params: map[string]string{
		generator.ParamSourcePaths: "src/main/flex",
		generator.ParamLibraryPath: filepath.Join(filepath.Dir(mod.Dir), "core", "core.swc"),
		generator.ParamOutput:      filepath.Join(mod.Dir, "target", "app.swf"),
	}}
}

func TestIdeaConfigurator(t *testing.T) {
	sess, mod := testModule(t)
	g := NewIdeaConfigurator(sess, "")
	if err := g.PreGenerate(mod, "debug"); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(mod.Dir, "src", "main", "flex", "Main.mxml")
	if err := g.Generate(testTask(mod), src); err != nil {
		t.Fatal(err)
	}
	if err := g.PostGenerate(mod); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(mod.Dir, ".idea", "flex", "app-debug-config.xml")
	if g.File() != want {
		t.Errorf("File() = %s, want %s", g.File(), want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	for _, s := range []string{
		"<flex-config>",
		"<source-path>",
		"<path-element>" + filepath.Join(mod.Dir, "src", "main", "flex") + "</path-element>",
		"<file-specs>",
		"<path-element>" + src + "</path-element>",
		"<output>" + filepath.Join(mod.Dir, "target", "app.swf") + "</output>",
	} {
		if !strings.Contains(got, s) {
			t.Errorf("missing %s in\n%s", s, got)
		}
	}
	if strings.Contains(got, "<include-sources>") {
		t.Errorf("application configuration has include-sources:\n%s", got)
	}
}

func TestShareableConfigGenerator(t *testing.T) {
	sess, mod := testModule(t)
	out := t.TempDir()
	g := NewShareableConfigGenerator(sess, out)
	if err := g.PreGenerate(mod, ""); err != nil {
		t.Fatal(err)
	}
	if err := g.Generate(testTask(mod), ""); err != nil {
		t.Fatal(err)
	}
	if err := g.PostGenerate(mod); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(out, "app-config.xml"))
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	for _, s := range []string{
		"<path-element>${root}/app/src/main/flex</path-element>",
		"<path-element>${root}/core/core.swc</path-element>",
		"<include-sources>",
		"<output>${root}/app/target/app.swf</output>",
	} {
		if !strings.Contains(got, s) {
			t.Errorf("missing %s in\n%s", s, got)
		}
	}
}

func TestLifecycleOrder(t *testing.T) {
	sess, mod := testModule(t)
	g := NewIdeaConfigurator(sess, t.TempDir())
	if err := g.Generate(testTask(mod), ""); err == nil {
		t.Error("Generate before PreGenerate succeeded")
	}
	if err := g.PreGenerate(mod, ""); err != nil {
		t.Fatal(err)
	}
	if err := g.PostGenerate(mod); err == nil {
		t.Error("PostGenerate before Generate succeeded")
	}
}

func TestBundle(t *testing.T) {
	sess, _ := testModule(t)
	host := realm.New("host")
	host.Define(&realm.Class{Name: generator.ContractClass})
	host.Define(&realm.Class{Name: generator.UtilsClass})

	r := realm.New("plugin")
	if err := r.AddArchive("file:///repo/com/intellij/flex/maven/idea-configurator/1.5.4/idea-configurator-1.5.4.jar"); err != nil {
		t.Fatalf("AddArchive failed: %v", err)
	}
	if _, err := r.LoadClass(IdeaConfiguratorClass); err == nil {
		t.Fatal("LoadClass succeeded without the contract")
	}
	for _, name := range []string{generator.ContractClass, generator.UtilsClass} {
		if err := r.Import(host, name); err != nil {
			t.Fatal(err)
		}
	}
	for _, name := range []string{IdeaConfiguratorClass, ShareableClass} {
		c, err := r.LoadClass(name)
		if err != nil {
			t.Fatalf("LoadClass(%s): %v", name, err)
		}
		v, err := c.New(sess, nil)
		if err != nil {
			t.Fatalf("New(%s): %v", name, err)
		}
		if _, ok := v.(generator.Generator); !ok {
			t.Errorf("%s: %T is not a generator", name, v)
		}
		if _, err := c.New("not a session", ""); err == nil {
			t.Errorf("%s: New accepted a bad session", name)
		}
	}
}

func TestDefaultDirFollowsModule(t *testing.T) {
	sess, mod := testModule(t)
	other := &project.Module{Group: "com.example", Name: "core", Packaging: "swc", Dir: filepath.Join(sess.TopLevelDir(), "core")}

	g := NewShareableConfigGenerator(sess, "")
	for _, m := range []*project.Module{mod, other} {
		if err := g.PreGenerate(m, ""); err != nil {
			t.Fatal(err)
		}
		want := filepath.Join(m.Dir, "build-config", m.Name+"-config.xml")
		if g.File() != want {
			t.Errorf("File() = %s, want %s", g.File(), want)
		}
		if g.outDir != "" {
			t.Errorf("outDir = %q after PreGenerate, want empty", g.outDir)
		}
	}

	out := t.TempDir()
	ig := NewIdeaConfigurator(sess, out)
	if err := ig.PreGenerate(mod, "debug"); err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(out, "app-debug-config.xml"); ig.File() != want {
		t.Errorf("File() = %s, want %s", ig.File(), want)
	}
}
