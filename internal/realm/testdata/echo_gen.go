package main

import (
	"github.com/goplus/ideaconf/generator"
	"github.com/goplus/ideaconf/project"
)

type EchoGenerator struct {
	Calls     []string
	OutputDir string
}

func (g *EchoGenerator) Init(sess interface{}, outputDir string) {
	g.OutputDir = outputDir
}

func (g *EchoGenerator) PreGenerate(mod *project.Module, classifier string) error {
	g.Calls = append(g.Calls, "pre:"+mod.Name+":"+classifier)
	return nil
}

func (g *EchoGenerator) Generate(task generator.Task, sourceFile string) error {
	g.Calls = append(g.Calls, "generate:"+task.Goal()+":"+sourceFile)
	return nil
}

func (g *EchoGenerator) PostGenerate(mod *project.Module) error {
	g.Calls = append(g.Calls, "post:"+mod.Name)
	return nil
}

func main() {
}
