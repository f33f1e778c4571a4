// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package realm

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goplus/ideaconf/generator"
	"github.com/goplus/ideaconf/project"
)

const (
	contractName = "test.Contract"
	widgetName   = "test.Widget"
)

type widget struct{ args []any }

func init() {
	RegisterBundle(&Bundle{
		Name:    "widgets",
		Version: "1.0.0",
		Classes: []*Class{{
			Name:     widgetName,
			Type:     reflect.TypeOf(widget{}),
			Requires: []string{contractName},
			New: func(args ...any) (any, error) {
				return &widget{args: args}, nil
			},
		}},
	})
}

func newHost() *Realm {
	host := New("host")
	host.Define(&Class{Name: contractName, Type: reflect.TypeOf((*generator.Generator)(nil)).Elem()})
	return host
}

func TestRealm_ImportEnablesLoading(t *testing.T) {
	host := newHost()
	plugin := New("plugin")

	if err := plugin.AddArchive("file:///repo/test/widgets/1.0.0/widgets-1.0.0.jar"); err != nil {
		t.Fatalf("AddArchive failed: %v", err)
	}

	if _, err := plugin.LoadClass(widgetName); !errors.Is(err, ErrMissingImport) {
		t.Fatalf("LoadClass before import: err = %v, want ErrMissingImport", err)
	}

	if err := plugin.Import(host, contractName); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	c, err := plugin.LoadClass(widgetName)
	if err != nil {
		t.Fatalf("LoadClass after import failed: %v", err)
	}
	inst, err := c.New("session", nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if w := inst.(*widget); len(w.args) != 2 || w.args[0] != "session" {
		t.Errorf("constructor args = %v", w.args)
	}

	contract, err := plugin.LoadClass(contractName)
	if err != nil {
		t.Fatalf("LoadClass(contract) failed: %v", err)
	}
	hostContract, _ := host.LoadClass(contractName)
	if contract != hostContract {
		t.Error("imported class should be the host's class")
	}
}

func TestRealm_Idempotent(t *testing.T) {
	host := newHost()
	plugin := New("plugin")
	loc := "file:///repo/widgets-1.0.0.jar"
	for i := 0; i < 3; i++ {
		if err := plugin.AddArchive(loc); err != nil {
			t.Fatalf("AddArchive #%d failed: %v", i, err)
		}
		if err := plugin.Import(host, contractName); err != nil {
			t.Fatalf("Import #%d failed: %v", i, err)
		}
	}
	if diff := cmp.Diff([]string{loc}, plugin.Archives()); diff != "" {
		t.Errorf("archives (-want +got):\n%s", diff)
	}
}

func TestRealm_Isolation(t *testing.T) {
	a := New("a")
	b := New("b")
	if err := a.AddArchive("/repo/widgets-1.0.0.jar"); err != nil {
		t.Fatalf("AddArchive failed: %v", err)
	}
	if _, err := b.LoadClass(widgetName); !errors.Is(err, ErrClassNotFound) {
		t.Errorf("class leaked across realms: err = %v", err)
	}
}

func TestRealm_AddArchiveErrors(t *testing.T) {
	r := New("r")
	tests := []struct {
		name     string
		location string
		is       error
	}{
		{name: "empty", location: ""},
		{name: "bad url", location: "file://%zz"},
		{name: "bad scheme", location: "https://example.com/a.jar"},
		{name: "missing", location: "file://" + filepath.ToSlash(filepath.Join(t.TempDir(), "nope-1.0.jar")), is: ErrArchiveNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.AddArchive(tt.location)
			if err == nil {
				t.Fatalf("AddArchive(%q) should fail", tt.location)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("AddArchive(%q) err = %v, want %v", tt.location, err, tt.is)
			}
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		f := filepath.Join(t.TempDir(), "other-1.0.zip")
		if err := os.WriteFile(f, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := r.AddArchive(f); err == nil {
			t.Error("AddArchive should reject unknown archive formats")
		}
	})
}

func TestRealm_ImportErrors(t *testing.T) {
	host := newHost()
	plugin := New("plugin")
	if err := plugin.Import(host, "test.Unknown"); !errors.Is(err, ErrClassNotFound) {
		t.Errorf("Import of unknown class: err = %v, want ErrClassNotFound", err)
	}
	if err := host.Import(host, contractName); err == nil {
		t.Error("Import from itself should fail")
	}
}

func TestRealm_ImportCycle(t *testing.T) {
	a := newHost()
	b := New("b")
	if err := b.Import(a, contractName); err != nil {
		t.Fatal(err)
	}
	// a owns the class; importing it back must not recurse forever.
	if err := a.Import(b, contractName); err != nil {
		t.Fatal(err)
	}
	if _, err := b.LoadClass(contractName); !errors.Is(err, ErrClassNotFound) {
		t.Errorf("cyclic import: err = %v, want ErrClassNotFound", err)
	}
}

func TestRealm_ScriptArchive(t *testing.T) {
	plugin := New("plugin")
	path, err := filepath.Abs("testdata/echo_gen.go")
	if err != nil {
		t.Fatal(err)
	}
	if err := plugin.AddArchive("file://" + filepath.ToSlash(path)); err != nil {
		t.Fatalf("AddArchive failed: %v", err)
	}
	const name = "com.example.EchoGenerator"
	if _, err := plugin.LoadClass(name); !errors.Is(err, ErrMissingImport) {
		t.Fatalf("LoadClass before import: err = %v, want ErrMissingImport", err)
	}

	host := New("host")
	host.Define(&Class{Name: generator.ContractClass, Type: reflect.TypeOf((*generator.Generator)(nil)).Elem()})
	host.Define(&Class{Name: generator.UtilsClass, Type: reflect.TypeOf(generator.Utils{})})
	if err := plugin.Import(host, generator.ContractClass); err != nil {
		t.Fatal(err)
	}
	if _, err := plugin.LoadClass(name); !errors.Is(err, ErrMissingImport) {
		t.Fatalf("LoadClass with only the contract: err = %v, want ErrMissingImport", err)
	}
	if err := plugin.Import(host, generator.UtilsClass); err != nil {
		t.Fatal(err)
	}
	c, err := plugin.LoadClass(name)
	if err != nil {
		t.Fatalf("LoadClass after import failed: %v", err)
	}
	if diff := cmp.Diff([]string{generator.ContractClass, generator.UtilsClass}, c.Requires); diff != "" {
		t.Errorf("requires (-want +got):\n%s", diff)
	}
	inst, err := c.New(&project.Session{}, "out")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	g, ok := inst.(generator.Generator)
	if !ok {
		t.Fatalf("%T does not implement generator.Generator", inst)
	}

	mod := &project.Module{Name: "app"}
	if err := g.PreGenerate(mod, "debug"); err != nil {
		t.Fatal(err)
	}
	if err := g.PostGenerate(mod); err != nil {
		t.Fatal(err)
	}

	elem := reflect.ValueOf(inst).Elem()
	if got := elem.FieldByName("OutputDir").String(); got != "out" {
		t.Errorf("OutputDir = %q, want out", got)
	}
	calls := elem.FieldByName("Calls").Interface().([]string)
	if diff := cmp.Diff([]string{"pre:app:debug", "post:app"}, calls); diff != "" {
		t.Errorf("calls (-want +got):\n%s", diff)
	}
}
