// Package flexmojos is the Flex compiler plugin. It registers the
// compile-swc, compile-swf and generate goals with the plugin manager and
// drives the Flex SDK compilers (compc, mxmlc).
package flexmojos

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goplus/ideaconf/generator"
	"github.com/goplus/ideaconf/internal/plugin"
	"github.com/goplus/ideaconf/project"
)

// Plugin coordinates.
const (
	Group           = "org.sonatype.flexmojos"
	CompilerPlugin  = "flexmojos-maven-plugin"
	GeneratorPlugin = "flexmojos-generator-mojo"
	Version         = "4.0.0"
)

// Goals.
const (
	GoalCompileSWC = "compile-swc"
	GoalCompileSWF = "compile-swf"
	GoalGenerate   = "generate"
)

// Parameters understood in addition to those of package generator.
const (
	ParamSDK          = "flexHome"  // Flex SDK root; compilers run from <flexHome>/bin
	ParamGeneratedDir = "generated" // output of the generate goal, relative to the module dir
	ParamTemplates    = "templates" // comma separated generator templates
)

const defaultSourcePaths = "src/main/flex"

func init() {
	compileDefaults := map[string]string{
		generator.ParamSourcePaths: defaultSourcePaths,
	}
	plugin.Register(&plugin.Plugin{
		Group:   Group,
		Name:    CompilerPlugin,
		Version: Version,
		Goals: []*plugin.Goal{
			{Name: GoalCompileSWC, Defaults: compileDefaults, Configure: configureCompile},
			{Name: GoalCompileSWF, Defaults: compileDefaults, Configure: configureCompile},
		},
	})
	plugin.Register(&plugin.Plugin{
		Group:   Group,
		Name:    GeneratorPlugin,
		Version: Version,
		Goals: []*plugin.Goal{
			{Name: GoalGenerate, Defaults: map[string]string{ParamGeneratedDir: "target/generated-sources/flexmojos"}, Configure: configureGenerate},
		},
	})
}

// CompileTask is a configured compile-swc or compile-swf task.
type CompileTask struct {
	goal   string
	mod    *project.Module
	params map[string]string
}

var (
	_ plugin.Task    = (*CompileTask)(nil)
	_ generator.Task = (*CompileTask)(nil)
)

// configureCompile resolves the parameters a compile task runs with: source
// roots, output file and the library path built from resolved dependencies.
func configureCompile(ctx context.Context, pe *plugin.Execution) (plugin.Task, error) {
	mod := pe.Module
	params := make(map[string]string, len(pe.Config)+2)
	for k, v := range pe.Config {
		params[k] = v
	}
	if _, ok := params[generator.ParamOutput]; !ok && mod.Artifact != nil {
		params[generator.ParamOutput] = mod.Artifact.File
	}
	if params[generator.ParamOutput] == "" {
		return nil, fmt.Errorf("%s: no output file", mod.ID())
	}

	var libs []string
	for _, dep := range mod.Artifacts {
		if dep.Key.Kind != project.PackagingLibrary {
			continue
		}
		if !dep.Resolved {
			return nil, fmt.Errorf("%s: unable to handle unresolved artifact %s", mod.ID(), dep.Key)
		}
		libs = append(libs, dep.File)
	}
	params[generator.ParamLibraryPath] = strings.Join(libs, ",")

	if g, ok := params[ParamGeneratedDir]; ok && g != "" {
		params[generator.ParamSourcePaths] += "," + g
	}
	return &CompileTask{goal: pe.Descriptor.Goal, mod: mod, params: params}, nil
}

func (t *CompileTask) Goal() string {
	return t.goal
}

func (t *CompileTask) Module() *project.Module {
	return t.mod
}

func (t *CompileTask) Parameter(name string) (string, bool) {
	v, ok := t.params[name]
	return v, ok
}

// Tool returns the SDK compiler for the goal.
func (t *CompileTask) Tool() string {
	tool := "mxmlc"
	if t.goal == GoalCompileSWC {
		tool = "compc"
	}
	if sdk := t.params[ParamSDK]; sdk != "" {
		return filepath.Join(sdk, "bin", tool)
	}
	return tool
}

// Args returns the compiler command line.
func (t *CompileTask) Args() ([]string, error) {
	var args []string
	for _, p := range generator.SplitList(t.params[generator.ParamSourcePaths], t.mod.Dir) {
		args = append(args, "-source-path+="+p)
	}
	for _, lib := range generator.SplitList(t.params[generator.ParamLibraryPath], t.mod.Dir) {
		args = append(args, "-library-path+="+lib)
	}
	args = append(args, "-output="+t.params[generator.ParamOutput])
	if t.goal == GoalCompileSWC {
		for _, p := range generator.SplitList(t.params[generator.ParamSourcePaths], t.mod.Dir) {
			args = append(args, "-include-sources+="+p)
		}
		return args, nil
	}
	src, err := generator.SourceFile(t)
	if err != nil {
		return nil, err
	}
	return append(args, src), nil
}

// Execute runs the compiler.
func (t *CompileTask) Execute(ctx context.Context) error {
	args, err := t.Args()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(t.params[generator.ParamOutput]), 0o755); err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, t.Tool(), args...)
	cmd.Dir = t.mod.Dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// GenerateTask is a configured generate task. It materializes the declared
// templates into the generated sources directory.
type GenerateTask struct {
	mod       *project.Module
	dir       string
	templates []string
}

func configureGenerate(ctx context.Context, pe *plugin.Execution) (plugin.Task, error) {
	dir := pe.Config[ParamGeneratedDir]
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(pe.Module.Dir, dir)
	}
	return &GenerateTask{
		mod:       pe.Module,
		dir:       dir,
		templates: generator.SplitList(pe.Config[ParamTemplates], pe.Module.Dir),
	}, nil
}

// Dir returns the generated sources directory.
func (t *GenerateTask) Dir() string {
	return t.dir
}

// Execute copies every template into the generated sources directory,
// keeping the file name.
func (t *GenerateTask) Execute(ctx context.Context) error {
	if err := os.MkdirAll(t.dir, 0o755); err != nil {
		return err
	}
	for _, tmpl := range slices.Sorted(slices.Values(t.templates)) {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := os.ReadFile(tmpl)
		if err != nil {
			return fmt.Errorf("%s: %w", t.mod.ID(), err)
		}
		if err := os.WriteFile(filepath.Join(t.dir, filepath.Base(tmpl)), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
