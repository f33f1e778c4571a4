// export by github.com/goplus/ixgo/cmd/qexp

package generator

import (
	q "github.com/goplus/ideaconf/generator"

	"go/constant"
	"reflect"

	"github.com/goplus/ixgo"
)

func init() {
	ixgo.RegisterPackage(&ixgo.Package{
		Name: "generator",
		Path: "github.com/goplus/ideaconf/generator",
		Deps: map[string]string{
			"fmt":                                "fmt",
			"github.com/goplus/ideaconf/project": "project",
			"os":                                 "os",
			"path/filepath":                      "filepath",
			"strings":                            "strings",
		},
		Interfaces: map[string]reflect.Type{
			"Generator": reflect.TypeOf((*q.Generator)(nil)).Elem(),
			"Task":      reflect.TypeOf((*q.Task)(nil)).Elem(),
		},
		NamedTypes: map[string]reflect.Type{
			"GeneratorFunc": reflect.TypeOf((*q.GeneratorFunc)(nil)).Elem(),
			"Utils":         reflect.TypeOf((*q.Utils)(nil)).Elem(),
		},
		AliasTypes: map[string]reflect.Type{},
		Vars:       map[string]reflect.Value{},
		Funcs: map[string]reflect.Value{
			"Classifier": reflect.ValueOf(q.Classifier),
			"SourceFile": reflect.ValueOf(q.SourceFile),
			"SplitList":  reflect.ValueOf(q.SplitList),
		},
		TypedConsts: map[string]ixgo.TypedConst{},
		UntypedConsts: map[string]ixgo.UntypedConst{
			"ContractClass":    {Typ: "untyped string", Value: constant.MakeString(string(q.ContractClass))},
			"ParamClassifier":  {Typ: "untyped string", Value: constant.MakeString(string(q.ParamClassifier))},
			"ParamLibraryPath": {Typ: "untyped string", Value: constant.MakeString(string(q.ParamLibraryPath))},
			"ParamOutput":      {Typ: "untyped string", Value: constant.MakeString(string(q.ParamOutput))},
			"ParamSourceFile":  {Typ: "untyped string", Value: constant.MakeString(string(q.ParamSourceFile))},
			"ParamSourcePaths": {Typ: "untyped string", Value: constant.MakeString(string(q.ParamSourcePaths))},
			"UtilsClass":       {Typ: "untyped string", Value: constant.MakeString(string(q.UtilsClass))},
		},
	})
}
