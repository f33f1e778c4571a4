// Package idea provides the IDE configuration generators bundled in the
// idea-configurator archive. Both write a Flex compiler configuration per
// module: IdeaConfigurator with absolute paths for the local IDE, and
// ShareableConfigGenerator with paths relative to the workspace so the file
// can be committed.
package idea

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/goplus/ideaconf/generator"
	"github.com/goplus/ideaconf/internal/realm"
	"github.com/goplus/ideaconf/project"
)

// Archive coordinates of the bundle.
const (
	ArchiveGroup   = "com.intellij.flex.maven"
	ArchiveName    = "idea-configurator"
	ArchiveVersion = "1.5.4"
	ArchiveKind    = "jar"
)

// Class names of the generators.
const (
	IdeaConfiguratorClass = "com.intellij.flex.maven.IdeaConfigurator"
	ShareableClass        = "com.intellij.flex.maven.ShareableFlexConfigGenerator"
)

func init() {
	requires := []string{generator.ContractClass, generator.UtilsClass}
	realm.RegisterBundle(&realm.Bundle{
		Name:    ArchiveName,
		Version: ArchiveVersion,
		Classes: []*realm.Class{
			{
				Name:     IdeaConfiguratorClass,
				Type:     reflect.TypeOf(IdeaConfigurator{}),
				Requires: requires,
				New: func(args ...any) (any, error) {
					sess, outDir, err := ctorArgs(args)
					if err != nil {
						return nil, err
					}
					return NewIdeaConfigurator(sess, outDir), nil
				},
			},
			{
				Name:     ShareableClass,
				Type:     reflect.TypeOf(ShareableConfigGenerator{}),
				Requires: requires,
				New: func(args ...any) (any, error) {
					sess, outDir, err := ctorArgs(args)
					if err != nil {
						return nil, err
					}
					return NewShareableConfigGenerator(sess, outDir), nil
				},
			},
		},
	})
}

// ctorArgs checks the (session, output directory) constructor arguments.
func ctorArgs(args []any) (*project.Session, string, error) {
	if len(args) != 2 {
		return nil, "", fmt.Errorf("want (session, outputDir), got %d arguments", len(args))
	}
	sess, ok := args[0].(*project.Session)
	if !ok || sess == nil {
		return nil, "", fmt.Errorf("want *project.Session, got %T", args[0])
	}
	var outDir string
	if args[1] != nil {
		if outDir, ok = args[1].(string); !ok {
			return nil, "", fmt.Errorf("want string output directory, got %T", args[1])
		}
	}
	return sess, outDir, nil
}

type pathList struct {
	Elements []string `xml:"path-element"`
}

type compilerConfig struct {
	SourcePath  pathList `xml:"source-path"`
	LibraryPath pathList `xml:"library-path"`
}

type flexConfig struct {
	XMLName        xml.Name       `xml:"flex-config"`
	Compiler       compilerConfig `xml:"compiler"`
	IncludeSources *pathList      `xml:"include-sources,omitempty"`
	FileSpecs      *pathList      `xml:"file-specs,omitempty"`
	Output         string         `xml:"output"`
}

var (
	errNotStarted   = errors.New("generate called before preGenerate")
	errNotGenerated = errors.New("postGenerate called before generate")
)

// configGenerator is the lifecycle shared by both generators.
type configGenerator struct {
	sess   *project.Session
	outDir string
	// rel rewrites a path for the written file.
	rel func(path string) string

	file   string
	config *flexConfig
}

// preGenerate starts a configuration for mod written to dir.
func (g *configGenerator) preGenerate(dir string, mod *project.Module, classifier string) error {
	name := mod.Name
	if classifier != "" {
		name += "-" + classifier
	}
	g.file = filepath.Join(dir, name+"-config.xml")
	g.config = nil
	return nil
}

func (g *configGenerator) Generate(task generator.Task, sourceFile string) error {
	if g.file == "" {
		return errNotStarted
	}
	mod := task.Module()
	cfg := &flexConfig{}
	roots := generator.Utils{}.SourcePaths(task)
	for _, p := range roots {
		cfg.Compiler.SourcePath.Elements = append(cfg.Compiler.SourcePath.Elements, g.rel(p))
	}
	libs, _ := task.Parameter(generator.ParamLibraryPath)
	for _, p := range generator.SplitList(libs, mod.Dir) {
		cfg.Compiler.LibraryPath.Elements = append(cfg.Compiler.LibraryPath.Elements, g.rel(p))
	}
	if out, ok := task.Parameter(generator.ParamOutput); ok {
		cfg.Output = g.rel(out)
	}
	if sourceFile == "" {
		cfg.IncludeSources = &pathList{}
		for _, p := range roots {
			cfg.IncludeSources.Elements = append(cfg.IncludeSources.Elements, g.rel(p))
		}
	} else {
		cfg.FileSpecs = &pathList{Elements: []string{g.rel(sourceFile)}}
	}
	g.config = cfg
	return nil
}

func (g *configGenerator) PostGenerate(mod *project.Module) error {
	if g.config == nil {
		return errNotGenerated
	}
	data, err := xml.MarshalIndent(g.config, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(g.file), 0o755); err != nil {
		return err
	}
	data = append([]byte(xml.Header), data...)
	if err := os.WriteFile(g.file, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("%s: %w", mod.ID(), err)
	}
	return nil
}

// File returns the configuration file of the current module.
func (g *configGenerator) File() string {
	return g.file
}

// IdeaConfigurator writes <out>/<module>[-<classifier>]-config.xml with
// absolute paths. out defaults to <module>/.idea/flex.
type IdeaConfigurator struct {
	configGenerator
}

// NewIdeaConfigurator creates an IdeaConfigurator. An empty outDir selects
// the default per-module directory.
func NewIdeaConfigurator(sess *project.Session, outDir string) *IdeaConfigurator {
	g := &IdeaConfigurator{configGenerator{sess: sess, outDir: outDir, rel: filepath.Clean}}
	return g
}

func (g *IdeaConfigurator) PreGenerate(mod *project.Module, classifier string) error {
	dir := g.outDir
	if dir == "" {
		dir = filepath.Join(mod.Dir, ".idea", "flex")
	}
	return g.preGenerate(dir, mod, classifier)
}

// ShareableConfigGenerator writes <out>/<module>[-<classifier>]-config.xml
// with paths relative to the top-level module directory. out defaults to
// <module>/build-config.
type ShareableConfigGenerator struct {
	configGenerator
}

// NewShareableConfigGenerator creates a ShareableConfigGenerator.
func NewShareableConfigGenerator(sess *project.Session, outDir string) *ShareableConfigGenerator {
	root := sess.TopLevelDir()
	g := &ShareableConfigGenerator{configGenerator{sess: sess, outDir: outDir}}
	g.rel = func(p string) string {
		if root == "" {
			return filepath.ToSlash(p)
		}
		if r, err := filepath.Rel(root, p); err == nil {
			return "${root}/" + filepath.ToSlash(r)
		}
		return filepath.ToSlash(p)
	}
	return g
}

func (g *ShareableConfigGenerator) PreGenerate(mod *project.Module, classifier string) error {
	dir := g.outDir
	if dir == "" {
		dir = filepath.Join(mod.Dir, "build-config")
	}
	return g.preGenerate(dir, mod, classifier)
}

var (
	_ generator.Generator = (*IdeaConfigurator)(nil)
	_ generator.Generator = (*ShareableConfigGenerator)(nil)
)
