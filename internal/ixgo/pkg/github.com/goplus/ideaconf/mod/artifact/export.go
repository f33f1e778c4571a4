// export by github.com/goplus/ixgo/cmd/qexp

package artifact

import (
	q "github.com/goplus/ideaconf/mod/artifact"

	"reflect"

	"github.com/goplus/ixgo"
)

func init() {
	ixgo.RegisterPackage(&ixgo.Package{
		Name: "artifact",
		Path: "github.com/goplus/ideaconf/mod/artifact",
		Deps: map[string]string{
			"fmt":     "fmt",
			"path":    "path",
			"strings": "strings",
		},
		Interfaces: map[string]reflect.Type{},
		NamedTypes: map[string]reflect.Type{
			"Descriptor": reflect.TypeOf((*q.Descriptor)(nil)).Elem(),
			"Key":        reflect.TypeOf((*q.Key)(nil)).Elem(),
		},
		AliasTypes: map[string]reflect.Type{},
		Vars:       map[string]reflect.Value{},
		Funcs: map[string]reflect.Value{
			"New":      reflect.ValueOf(q.New),
			"ParseKey": reflect.ValueOf(q.ParseKey),
		},
		TypedConsts:   map[string]ixgo.TypedConst{},
		UntypedConsts: map[string]ixgo.UntypedConst{},
	})
}
