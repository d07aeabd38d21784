package swan

import (
	"strings"
)

// ModuleKind distinguishes the two syntactic forms of a module.
type ModuleKind int

const (
	// ModuleBody is the full definition of a module.
	ModuleBody ModuleKind = iota
	// ModuleInterface is the exported signature view of a module.
	// A body may omit declarations present only in its interface.
	ModuleInterface
)

// Module is a container of global declarations keyed by its path
// identifier. A body and an interface sharing a path are companions
// describing the same logical module.
//
// A module's owner is the model container it was installed into (any
// type exposing the loaded modules, see [ModelView]); top-level modules
// not yet installed have a nil owner.
type Module struct {
	Base
	Name  *PathID
	Kind  ModuleKind
	Uses  []*UseDirective
	Decls []GlobalDecl
}

// NewModule builds a module and adopts its use directives and
// declarations.
func NewModule(name *PathID, kind ModuleKind, uses []*UseDirective, decls []GlobalDecl) *Module {
	m := &Module{Name: name, Kind: kind, Uses: uses, Decls: decls}
	Adopt(m, uses...)
	Adopt(m, decls...)
	return m
}

// IsInterface reports whether the module is an interface view.
func (m *Module) IsInterface() bool { return m.Kind == ModuleInterface }

// FullPath returns the module's path string.
func (m *Module) FullPath() string { return m.Name.String() }

// Operators returns the operators and signatures declared at the top
// level of the module, in declaration order.
func (m *Module) Operators() []*Operator {
	var ops []*Operator
	for _, d := range m.Decls {
		if op, ok := d.(*Operator); ok {
			ops = append(ops, op)
		}
	}
	return ops
}

// Operator returns the top-level operator or signature with the given
// name, or nil.
func (m *Module) Operator(name string) *Operator {
	for _, op := range m.Operators() {
		if op.ID.Value == name {
			return op
		}
	}
	return nil
}

// String renders the module's use directives and declarations as
// Swan-like text, one per line.
func (m *Module) String() string {
	var lines []string
	for _, u := range m.Uses {
		lines = append(lines, u.String())
	}
	for _, d := range m.Decls {
		if s, ok := d.(interface{ String() string }); ok {
			lines = append(lines, s.String())
		}
	}
	return strings.Join(lines, "\n")
}

// ModelView is the slice of a model container the namespace resolver
// needs: the modules currently loaded. The model type in
// [github.com/matzehuels/swanview/pkg/model] implements it.
type ModelView interface {
	Item
	// LoadedModules returns every loaded module of the compilation,
	// bodies and interfaces, in a stable order.
	LoadedModules() []*Module
}
