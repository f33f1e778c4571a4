// export by github.com/goplus/ixgo/cmd/qexp

package project

import (
	q "github.com/goplus/ideaconf/project"

	"go/constant"
	"reflect"

	"github.com/goplus/ixgo"
)

func init() {
	ixgo.RegisterPackage(&ixgo.Package{
		Name: "project",
		Path: "github.com/goplus/ideaconf/project",
		Deps: map[string]string{
			"github.com/goplus/ideaconf/mod/artifact": "artifact",
			"path/filepath": "filepath",
		},
		Interfaces: map[string]reflect.Type{},
		NamedTypes: map[string]reflect.Type{
			"Module":    reflect.TypeOf((*q.Module)(nil)).Elem(),
			"PluginRef": reflect.TypeOf((*q.PluginRef)(nil)).Elem(),
		},
		AliasTypes: map[string]reflect.Type{},
		Vars:       map[string]reflect.Value{},
		Funcs: map[string]reflect.Value{
			"InScope": reflect.ValueOf(q.InScope),
		},
		TypedConsts: map[string]ixgo.TypedConst{},
		UntypedConsts: map[string]ixgo.UntypedConst{
			"PackagingApplication": {Typ: "untyped string", Value: constant.MakeString(string(q.PackagingApplication))},
			"PackagingBundle":      {Typ: "untyped string", Value: constant.MakeString(string(q.PackagingBundle))},
			"PackagingLibrary":     {Typ: "untyped string", Value: constant.MakeString(string(q.PackagingLibrary))},
		},
	})
}
