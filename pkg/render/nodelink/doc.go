// Package nodelink renders diagram connectivity as node-link graphs.
//
// # Overview
//
// This package turns the wires of a Swan diagram into a directed graph
// visualization using Graphviz: blocks appear as boxes, group bars as
// thin dividers, and every wire as an arrow, labeled with its group
// adaptation when one rides the endpoint.
//
// # Usage
//
// Convert a diagram to DOT format, then render to SVG:
//
//	dot, err := nodelink.ToDOT(d, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT uses left-to-right layout (rankdir=LR), following
// the reading direction of dataflow diagrams.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
