// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package realm implements isolated class namespaces.
//
// A Realm holds the classes of one plugin. Classes enter a realm either from
// archives added to it or by being imported by name from another realm.
// A class only loads when every class it requires is visible in the realm it
// is loaded from, so code compiled against a shared contract cannot be used
// until that contract has been imported.
package realm

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/goplus/ideaconf/generator"
	"github.com/goplus/ideaconf/internal/loader"
)

var (
	ErrArchiveNotFound = errors.New("archive not found")
	ErrClassNotFound   = errors.New("class not found")
	ErrMissingImport   = errors.New("missing import")
)

// Class is a loadable, named type.
type Class struct {
	// Name is the qualified class name, e.g. "com.intellij.flex.maven.Utils".
	Name string
	// Type is the Go type behind the class.
	Type reflect.Type
	// Requires lists the classes that must be visible for this class to load.
	Requires []string
	// New constructs an instance. Nil for classes that cannot be instantiated.
	New func(args ...any) (any, error)
}

// Instantiable reports whether c can be constructed.
func (c *Class) Instantiable() bool {
	return c.New != nil
}

// Realm is an isolated class namespace. The zero value is not usable; use New.
type Realm struct {
	id string

	mu       sync.Mutex
	archives []string
	classes  map[string]*Class
	imports  map[string]*Realm
	scripts  []*loader.Script
}

// New creates an empty realm.
func New(id string) *Realm {
	return &Realm{
		id:      id,
		classes: make(map[string]*Class),
		imports: make(map[string]*Realm),
	}
}

// ID returns the realm identifier.
func (r *Realm) ID() string {
	return r.id
}

func (r *Realm) String() string {
	return "realm:" + r.id
}

// Define adds c to the classes owned by r. A class already defined under the
// same name is kept.
func (r *Realm) Define(c *Class) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.classes[c.Name]; !ok {
		r.classes[c.Name] = c
	}
}

// Archives returns the archive locations added to r, in order.
func (r *Realm) Archives() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.archives)
}

// AddArchive opens the archive at location and defines its classes in r.
// location is a file URL or a path. Adding the same location twice is a
// no-op.
//
// A registered bundle whose "name-version" matches the archive file name is
// used as is. Otherwise a ".go" file is interpreted as a script archive.
func (r *Realm) AddArchive(location string) error {
	file, err := archivePath(location)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if slices.Contains(r.archives, location) {
		return nil
	}

	base := filepath.Base(file)
	if b, ok := lookupBundle(strings.TrimSuffix(base, filepath.Ext(base))); ok {
		for _, c := range b.Classes {
			if _, dup := r.classes[c.Name]; !dup {
				r.classes[c.Name] = c
			}
		}
		r.archives = append(r.archives, location)
		return nil
	}

	if _, err := os.Stat(file); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrArchiveNotFound, location)
		}
		return err
	}
	if filepath.Ext(file) != ".go" {
		return fmt.Errorf("unsupported archive %s", location)
	}
	script, err := loader.Load(file)
	if err != nil {
		return err
	}
	r.scripts = append(r.scripts, script)
	r.archives = append(r.archives, location)
	return nil
}

// archivePath converts an archive location into a local file path.
func archivePath(location string) (string, error) {
	if location == "" {
		return "", fmt.Errorf("invalid archive location: empty")
	}
	u, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("invalid archive location %q: %w", location, err)
	}
	switch u.Scheme {
	case "file":
		if u.Path == "" {
			return "", fmt.Errorf("invalid archive location %q: no path", location)
		}
		return filepath.FromSlash(u.Path), nil
	case "":
		return location, nil
	}
	return "", fmt.Errorf("invalid archive location %q: unsupported scheme %s", location, u.Scheme)
}

// Import makes the class name of realm from visible in r. Imports take
// precedence over classes owned by r. Importing a name already imported is a
// no-op.
func (r *Realm) Import(from *Realm, name string) error {
	if from == r {
		return fmt.Errorf("%s: cannot import %s from itself", r, name)
	}
	if _, err := from.LoadClass(name); err != nil {
		return fmt.Errorf("%s: import %s from %s: %w", r, name, from, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.imports[name]; !ok {
		r.imports[name] = from
	}
	return nil
}

// LoadClass returns the class called name as seen from r.
func (r *Realm) LoadClass(name string) (*Class, error) {
	c, ok := r.lookup(name)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %s", r, ErrClassNotFound, name)
	}
	for _, req := range c.Requires {
		if _, ok := r.lookup(req); !ok {
			return nil, fmt.Errorf("%s: loading %s: %w: %s", r, name, ErrMissingImport, req)
		}
	}
	return c, nil
}

func (r *Realm) lookup(name string) (*Class, bool) {
	return r.lookupSeen(name, nil)
}

func (r *Realm) lookupSeen(name string, seen map[*Realm]bool) (*Class, bool) {
	if seen[r] {
		return nil, false
	}
	r.mu.Lock()
	from, imported := r.imports[name]
	c, owned := r.classes[name]
	scripts := slices.Clone(r.scripts)
	r.mu.Unlock()

	if imported {
		if seen == nil {
			seen = make(map[*Realm]bool)
		}
		seen[r] = true
		return from.lookupSeen(name, seen)
	}
	if owned {
		return c, true
	}
	return scriptClass(scripts, name)
}

// contractPkg is the package generator scripts compile against.
var contractPkg = reflect.TypeOf((*generator.Generator)(nil)).Elem().PkgPath()

// scriptClass resolves a qualified name against script archives by its last
// dotted segment. Classes of a script importing the generator contract
// require the contract classes, like bundled generators do.
func scriptClass(scripts []*loader.Script, name string) (*Class, bool) {
	simple := name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		simple = name[i+1:]
	}
	for _, s := range scripts {
		typ, ok := s.Type(simple)
		if !ok {
			continue
		}
		s := s
		var requires []string
		if s.Imports(contractPkg) {
			requires = []string{generator.ContractClass, generator.UtilsClass}
		}
		return &Class{
			Name:     name,
			Type:     typ,
			Requires: requires,
			New: func(args ...any) (any, error) {
				return s.New(simple, args...)
			},
		}, true
	}
	return nil, false
}
