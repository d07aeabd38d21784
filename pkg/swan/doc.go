// Package swan models Swan synchronous-dataflow programs as in-memory
// syntax trees and answers structural queries over them.
//
// # Overview
//
// A Swan compilation is a set of modules (bodies and interfaces) holding
// global declarations: types, constants, sensors, signal groups, and
// operators. Operator bodies are scopes made of sections (variables,
// equations, emissions, diagrams), and diagrams hold wired blocks.
//
// Trees are produced by an external parsing step (see
// [github.com/matzehuels/swanview/pkg/swanjson]) and installed into a
// model container ([github.com/matzehuels/swanview/pkg/model]). Once
// built, a tree is immutable except for owner back-links and one-shot
// lazy fields.
//
// # Queries
//
// Two resolvers do the structural work:
//
//   - [Diagram.Sources] and [Diagram.Targets] answer connectivity
//     questions inside one diagram: which blocks feed a block, and which
//     blocks it feeds, resolving through wires, nested local objects,
//     and group bars.
//   - [Resolve] answers name questions: given any node and an identifier
//     (possibly a qualified path like A::B::ident), find the declaration
//     it refers to, climbing lexical scopes and following use-directive
//     aliases across modules.
//
// # Ownership
//
// Every node carries an owner back-reference set once at construction
// time via [Adopt]. The owner link is a navigation aid only; containment
// is expressed by struct fields (a Diagram owns its objects, a Scope its
// sections). Nodes are not safe for concurrent mutation, but read-only
// queries against a fixed tree are race-free.
package swan
