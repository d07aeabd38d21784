// Package swanjson reads and writes the JSON interchange form of Swan
// modules.
//
// The format mirrors the object tree one level of nesting at a time:
// a module document holds use directives and declaration groups,
// operators hold scopes, scopes hold sections, diagrams hold objects.
// Expressions and type annotations cross the boundary as opaque text.
//
// Wire endpoints encode their port as "self" for the enclosing
// operator's interface, "#luid" for a block, or "" when disconnected.
//
// [Parser] plugs the decoder into a model so that sources load on
// demand:
//
//	m := model.New(swanjson.Parser{})
//	m.AddSource(src)
//	mod, err := m.Module(src)
package swanjson
