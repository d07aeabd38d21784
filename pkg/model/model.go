// Package model assembles parsed modules into one queryable
// compilation.
//
// A [Model] owns a set of [Source] units and loads them lazily: a
// module is parsed on first access, or all at once with
// [Model.LoadAll]. Loaded modules are wired together through ownership
// links so that the name resolver in
// [github.com/matzehuels/swanview/pkg/swan] can follow qualified paths
// and interface companions across the whole compilation.
package model

import (
	"github.com/matzehuels/swanview/pkg/errors"
	"github.com/matzehuels/swanview/pkg/swan"
)

// Parser turns source content into a module tree. The JSON decoder in
// [github.com/matzehuels/swanview/pkg/swanjson] is the stock
// implementation.
type Parser interface {
	Parse(src Source) (*swan.Module, error)
}

// Model is the set of modules of one compilation.
//
// Not safe for concurrent use without external synchronization.
type Model struct {
	swan.Base

	parser  Parser
	sources []Source
	loaded  map[Source]*swan.Module
}

// New builds an empty model using the given parser.
func New(parser Parser) *Model {
	return &Model{
		parser: parser,
		loaded: make(map[Source]*swan.Module),
	}
}

// AddSource registers a source. Registration is cheap; parsing happens
// on first access.
func (m *Model) AddSource(srcs ...Source) {
	m.sources = append(m.sources, srcs...)
}

// Sources returns the registered sources in registration order.
func (m *Model) Sources() []Source { return m.sources }

// Module returns the module held by src, parsing it on first access.
func (m *Model) Module(src Source) (*swan.Module, error) {
	if mod, ok := m.loaded[src]; ok {
		return mod, nil
	}
	mod, err := m.parser.Parse(src)
	if err != nil {
		return nil, err
	}
	mod.SetOwner(m)
	m.loaded[src] = mod
	return mod, nil
}

// ModuleByPath returns the loaded or loadable module with the given
// path, preferring a body over its interface. The miss is the soft
// NAME_NOT_FOUND error.
func (m *Model) ModuleByPath(path string) (*swan.Module, error) {
	var itf *swan.Module
	for _, src := range m.sources {
		if src.Name() != path {
			continue
		}
		mod, err := m.Module(src)
		if err != nil {
			return nil, err
		}
		if !mod.IsInterface() {
			return mod, nil
		}
		if itf == nil {
			itf = mod
		}
	}
	if itf != nil {
		return itf, nil
	}
	return nil, errors.New(errors.ErrCodeNameNotFound, "no module %q in model", path)
}

// LoadAll parses every registered source. It stops at the first
// parse failure.
func (m *Model) LoadAll() error {
	for _, src := range m.sources {
		if _, err := m.Module(src); err != nil {
			return err
		}
	}
	return nil
}

// LoadedModules returns every module parsed so far, in source
// registration order. It implements [swan.ModelView]; qualified name
// resolution sees exactly these modules, so callers wanting whole-
// compilation resolution should [Model.LoadAll] first.
func (m *Model) LoadedModules() []*swan.Module {
	var mods []*swan.Module
	for _, src := range m.sources {
		if mod, ok := m.loaded[src]; ok {
			mods = append(mods, mod)
		}
	}
	return mods
}

// Declarations streams every global declaration of every loaded
// module: types, constants, sensors, groups, operators and signatures.
func (m *Model) Declarations() []swan.Declaration {
	var decls []swan.Declaration
	for _, mod := range m.LoadedModules() {
		for _, g := range mod.Decls {
			switch d := g.(type) {
			case *swan.TypeDecls:
				for _, t := range d.Types {
					decls = append(decls, t)
				}
			case *swan.ConstDecls:
				for _, c := range d.Constants {
					decls = append(decls, c)
				}
			case *swan.SensorDecls:
				for _, s := range d.Sensors {
					decls = append(decls, s)
				}
			case *swan.GroupDecls:
				for _, g := range d.Groups {
					decls = append(decls, g)
				}
			case *swan.Operator:
				decls = append(decls, d)
			}
		}
	}
	return decls
}

// Types returns every type declaration of the loaded modules.
func (m *Model) Types() []*swan.TypeDecl {
	return filterDecls[*swan.TypeDecl](m)
}

// Constants returns every constant declaration of the loaded modules.
func (m *Model) Constants() []*swan.ConstDecl {
	return filterDecls[*swan.ConstDecl](m)
}

// Sensors returns every sensor declaration of the loaded modules.
func (m *Model) Sensors() []*swan.SensorDecl {
	return filterDecls[*swan.SensorDecl](m)
}

// Groups returns every group declaration of the loaded modules.
func (m *Model) Groups() []*swan.GroupDecl {
	return filterDecls[*swan.GroupDecl](m)
}

// Operators returns every operator with a body across the loaded
// modules.
func (m *Model) Operators() []*swan.Operator {
	var ops []*swan.Operator
	for _, op := range filterDecls[*swan.Operator](m) {
		if op.HasBody() {
			ops = append(ops, op)
		}
	}
	return ops
}

// Signatures returns every bodiless operator signature across the
// loaded modules.
func (m *Model) Signatures() []*swan.Operator {
	var ops []*swan.Operator
	for _, op := range filterDecls[*swan.Operator](m) {
		if !op.HasBody() {
			ops = append(ops, op)
		}
	}
	return ops
}

func filterDecls[T swan.Declaration](m *Model) []T {
	var out []T
	for _, d := range m.Declarations() {
		if t, ok := d.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// Find returns the first loaded declaration matching pred, or nil.
func (m *Model) Find(pred func(swan.Declaration) bool) swan.Declaration {
	for _, d := range m.Declarations() {
		if pred(d) {
			return d
		}
	}
	return nil
}

// Resolve resolves a possibly qualified name against a module of the
// compilation, loading every source first so qualified paths and
// interface companions are visible.
func (m *Model) Resolve(fromModule, name string) (swan.Declaration, error) {
	if err := m.LoadAll(); err != nil {
		return nil, err
	}
	mod, err := m.ModuleByPath(fromModule)
	if err != nil {
		return nil, err
	}
	return swan.Resolve(mod, name)
}
