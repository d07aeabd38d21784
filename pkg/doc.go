// Package pkg provides the core libraries for Swanview model inspection.
//
// # Overview
//
// Swanview loads Swan dataflow projects into an in-memory object model
// and answers structural questions about them. The pkg directory is
// organized into four main areas:
//
//  1. [swan] - The object model (modules, operators, scopes, diagrams)
//     and its two resolvers: diagram connectivity and name resolution
//  2. [model] - The compilation container (sources, lazy loading,
//     project manifests)
//  3. [swanjson] - JSON interchange codec between sources and the tree
//  4. [render/nodelink] - Graphviz rendering of diagram connectivity
//
// # Architecture
//
// The typical data flow through Swanview:
//
//	swanproj.toml + .swan/.swani sources
//	         ↓
//	    [model] package (register sources, load on demand)
//	         ↓
//	    [swanjson] package (decode documents into trees)
//	         ↓
//	    [swan] package (navigate wires, resolve names)
//	         ↓
//	    CLI / HTTP API / SVG output
//
// # Quick Start
//
// Load a project and query an operator's diagram:
//
//	import (
//	    "github.com/matzehuels/swanview/pkg/model"
//	    "github.com/matzehuels/swanview/pkg/swan"
//	    "github.com/matzehuels/swanview/pkg/swanjson"
//	)
//
//	// 1. Open the project and parse every source
//	m, _, _ := model.Open("path/to/project", swanjson.Parser{})
//	_ = m.LoadAll()
//
//	// 2. Resolve a name the way an operator body sees it
//	decl, _ := m.Resolve("engine::ctrl", "flt::LowPass")
//
//	// 3. Walk a diagram's connectivity
//	links, _ := d.Sources(block)
//
// # Main Packages
//
// [swan] - The object tree. Every node carries an owner link; the
// diagram connectivity graph ([swan.Diagram.Sources] and
// [swan.Diagram.Targets]) and the namespace resolver ([swan.Resolve])
// both operate on it directly.
//
// [model] - Sources, lazy parsing, TOML project manifests, and the
// whole-compilation accessors (types, constants, sensors, groups,
// operators, signatures).
//
// [swanjson] - The interchange codec. Decodes JSON documents into
// trees with ownership wired, defers operator bodies until first
// access, and encodes trees back for the HTTP API.
//
// [render/nodelink] - Directed graph diagrams of wire connectivity
// using Graphviz.
//
// [errors] - Structured errors with machine-readable codes shared by
// the libraries, CLI and API.
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/swan/...     # Specific package
//
// [swan]: https://pkg.go.dev/github.com/matzehuels/swanview/pkg/swan
// [model]: https://pkg.go.dev/github.com/matzehuels/swanview/pkg/model
// [swanjson]: https://pkg.go.dev/github.com/matzehuels/swanview/pkg/swanjson
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/swanview/pkg/render/nodelink
// [errors]: https://pkg.go.dev/github.com/matzehuels/swanview/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/swanview/pkg/buildinfo
package pkg
