// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package loader interprets generator archives written as Go source.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"sync"

	"github.com/goplus/ixgo"

	// make ixgo happy
	_ "github.com/goplus/ideaconf/internal/ixgo"
)

// loadMu serializes interpreter loading. The ixgo interpreter has internal
// race conditions during concurrent loading.
var loadMu sync.Mutex

// Script is an interpreted Go source file. Each Script owns its own ixgo
// context, so types of two scripts never mix.
type Script struct {
	path    string
	interp  *ixgo.Interp
	imports []string // package paths imported by the script
}

// Load builds and initializes the Go source file at path.
func Load(path string) (*Script, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadSource(path, src)
}

// LoadSource builds and initializes src as if read from path.
func LoadSource(path string, src []byte) (*Script, error) {
	loadMu.Lock()
	defer loadMu.Unlock()

	ctx := ixgo.NewContext(0)
	pkg, err := ctx.LoadFile(filepath.Base(path), src)
	if err != nil {
		return nil, fmt.Errorf("failed to load script %s: %w", path, err)
	}
	interp, err := ctx.NewInterp(pkg)
	if err != nil {
		return nil, fmt.Errorf("failed to load script %s: %w", path, err)
	}
	if err = interp.RunInit(); err != nil {
		return nil, fmt.Errorf("failed to init script %s: %w", path, err)
	}
	var imports []string
	for _, imp := range pkg.Pkg.Imports() {
		imports = append(imports, imp.Path())
	}
	return &Script{path: path, interp: interp, imports: imports}, nil
}

// Path returns the file the script was loaded from.
func (s *Script) Path() string {
	return s.path
}

// Imports reports whether the script imports the package path.
func (s *Script) Imports(path string) bool {
	return slices.Contains(s.imports, path)
}

// Type looks up a type declared at the top level of the script.
func (s *Script) Type(name string) (reflect.Type, bool) {
	return s.interp.GetType(name)
}

// New allocates a value of the named type and returns a pointer to it.
// If the pointer has an Init method, it is called with args.
func (s *Script) New(name string, args ...any) (any, error) {
	typ, ok := s.Type(name)
	if !ok {
		return nil, fmt.Errorf("type %s not found in %s", name, s.path)
	}
	val := reflect.New(typ)
	if err := callInit(val, args); err != nil {
		return nil, fmt.Errorf("%s.%s: %w", filepath.Base(s.path), name, err)
	}
	return val.Interface(), nil
}

// callInit calls val.Init(args...) when present. A trailing error result is
// returned to the caller.
func callInit(val reflect.Value, args []any) error {
	m := val.MethodByName("Init")
	if !m.IsValid() {
		return nil
	}
	mt := m.Type()
	if mt.NumIn() != len(args) {
		return fmt.Errorf("Init takes %d arguments, got %d", mt.NumIn(), len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		want := mt.In(i)
		if arg == nil {
			in[i] = reflect.Zero(want)
			continue
		}
		v := reflect.ValueOf(arg)
		if !v.Type().AssignableTo(want) {
			return fmt.Errorf("Init argument %d: %s is not assignable to %s", i, v.Type(), want)
		}
		in[i] = v
	}
	out := m.Call(in)
	if n := len(out); n > 0 {
		if err, ok := out[n-1].Interface().(error); ok && err != nil {
			return err
		}
	}
	return nil
}
