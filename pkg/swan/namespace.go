package swan

import (
	"strings"

	"github.com/matzehuels/swanview/pkg/errors"
)

// Resolve looks up name from the lexical context of start, an item
// somewhere inside the tree.
//
// An unqualified name climbs the owner chain: operator parameters and
// var sections shadow module-level declarations, which shadow nothing.
// A qualified name ("M::x", "A::B::x") is resolved against the loaded
// modules, honoring the use directives of start's enclosing module
// (aliases and bare last-segment shortcuts).
//
// A miss on the final identifier is the soft NAME_NOT_FOUND error
// (check with [errors.NotFound]); a malformed name, an unresolvable
// module path, or a start item detached from any module are fatal
// (MALFORMED_NAME, MODULE_NOT_FOUND, ORPHAN_NODE).
func Resolve(start Item, name string) (Declaration, error) {
	if strings.Contains(name, "::") {
		return resolveQualified(start, name)
	}
	if !ValidIdentifier(name) {
		return nil, errors.New(errors.ErrCodeMalformedName, "invalid identifier: %q", name)
	}
	return resolveLocal(start, name)
}

// resolveLocal climbs from start toward the module, checking each
// declaration site on the way.
func resolveLocal(start Item, name string) (Declaration, error) {
	for cur := start; cur != nil; cur = cur.Owner() {
		switch it := cur.(type) {
		case *Module:
			return moduleLookup(it, name)
		case *Operator:
			if d := findVar(it.Inputs, name); d != nil {
				return d, nil
			}
			if d := findVar(it.Outputs, name); d != nil {
				return d, nil
			}
		case *Scope:
			if d := findInSections(it.Sections, name); d != nil {
				return d, nil
			}
		case *State:
			if d := findInSections(it.Sections, name); d != nil {
				return d, nil
			}
		case Section:
			if d := findInSection(it, name); d != nil {
				return d, nil
			}
		}
	}
	return nil, errors.New(errors.ErrCodeOrphanNode,
		"item has no owning module while resolving %q", name)
}

func findVar(vars []*VarDecl, name string) Declaration {
	for _, v := range vars {
		if v.ID.Value == name {
			return v
		}
	}
	return nil
}

// findInSections scans every section of a scope or state. Sections do
// not shadow each other, so the scan short-circuits only on a match.
func findInSections(sections []Section, name string) Declaration {
	for _, sec := range sections {
		if d := findInSection(sec, name); d != nil {
			return d
		}
	}
	return nil
}

// findInSection looks inside one scope section: var sections declare
// directly, diagrams declare through nested scope-section blocks.
func findInSection(sec Section, name string) Declaration {
	switch s := sec.(type) {
	case *VarSection:
		return findVar(s.Vars, name)
	case *Diagram:
		for _, obj := range s.Objects {
			sb, ok := obj.(*SectionBlock)
			if !ok {
				continue
			}
			if d := findInSection(sb.Section, name); d != nil {
				return d
			}
		}
	}
	return nil
}

// moduleLookup scans the module's global declarations, then the
// interface companion of a body.
func moduleLookup(m *Module, name string) (Declaration, error) {
	if d := m.Declaration(name); d != nil {
		return d, nil
	}
	if !m.IsInterface() {
		if view, ok := m.Owner().(ModelView); ok {
			if itf := companionInterface(view, m); itf != nil {
				if d := itf.Declaration(name); d != nil {
					return d, nil
				}
			}
		}
	}
	return nil, errors.New(errors.ErrCodeNameNotFound,
		"no declaration %q in module %s", name, m.FullPath())
}

// Declaration returns the global declaration or operator with the
// given name declared directly in the module, or nil.
func (m *Module) Declaration(name string) Declaration {
	for _, g := range m.Decls {
		switch d := g.(type) {
		case *TypeDecls:
			for _, t := range d.Types {
				if t.ID.Value == name {
					return t
				}
			}
		case *ConstDecls:
			for _, c := range d.Constants {
				if c.ID.Value == name {
					return c
				}
			}
		case *SensorDecls:
			for _, s := range d.Sensors {
				if s.ID.Value == name {
					return s
				}
			}
		case *GroupDecls:
			for _, g := range d.Groups {
				if g.ID.Value == name {
					return g
				}
			}
		case *Operator:
			if d.ID.Value == name {
				return d
			}
		}
	}
	return nil
}

func companionInterface(view ModelView, body *Module) *Module {
	for _, m := range view.LoadedModules() {
		if m.IsInterface() && m.FullPath() == body.FullPath() {
			return m
		}
	}
	return nil
}

// resolveQualified resolves "path::ident" against the loaded modules.
func resolveQualified(start Item, name string) (Declaration, error) {
	cut := strings.LastIndex(name, "::")
	modPart, ident := strings.TrimSpace(name[:cut]), strings.TrimSpace(name[cut+2:])
	if !ValidPath(modPart) || !ValidIdentifier(ident) {
		return nil, errors.New(errors.ErrCodeMalformedName, "invalid qualified name: %q", name)
	}

	home, err := EnclosingModule(start)
	if err != nil {
		return nil, err
	}
	view, ok := home.Owner().(ModelView)
	if !ok {
		return nil, errors.New(errors.ErrCodeOrphanNode,
			"module %s is not installed in a model", home.FullPath())
	}

	target := findModule(view, home, modPart)
	if target == nil {
		return nil, errors.New(errors.ErrCodeModuleNotFound,
			"no module %q visible from %s", modPart, home.FullPath())
	}
	return moduleLookup(target, ident)
}

// findModule matches modPart against the loaded modules: first as a
// full path, then as an explicit use-directive alias declared anywhere
// in the model. Bodies win over interfaces.
func findModule(view ModelView, home *Module, modPart string) *Module {
	if m := modByPath(view, modPart); m != nil {
		return m
	}
	seen := map[*Module]bool{}
	for _, holder := range append([]*Module{home}, view.LoadedModules()...) {
		if seen[holder] {
			continue
		}
		seen[holder] = true
		for _, use := range holder.Uses {
			if use.Alias == nil || use.Alias.Value != modPart {
				continue
			}
			if m := modByPath(view, use.Path.String()); m != nil {
				return m
			}
		}
	}
	return nil
}

func modByPath(view ModelView, path string) *Module {
	var itf *Module
	for _, m := range view.LoadedModules() {
		if m.FullPath() != path {
			continue
		}
		if !m.IsInterface() {
			return m
		}
		if itf == nil {
			itf = m
		}
	}
	return itf
}
