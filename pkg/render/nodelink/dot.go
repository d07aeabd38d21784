package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/swanview/pkg/swan"
)

// Options configures node-link rendering.
type Options struct {
	// Detailed includes the object kind in node labels. When false,
	// only the label text (expression, definition, callee) is shown.
	Detailed bool
}

// ToDOT converts a diagram's connectivity to Graphviz DOT format. The
// resulting DOT string can be rendered with [RenderSVG].
//
// Wires and scope-section blocks do not become nodes; everything else
// with a LUID does, and each wire endpoint pair becomes one edge.
func ToDOT(d *swan.Diagram, opts Options) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, obj := range d.Objects {
		if !wireable(obj) || obj.Luid() == "" {
			continue
		}
		attrs := fmtAttrs(obj, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", string(obj.Luid()), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, obj := range d.Objects {
		if !wireable(obj) || obj.Luid() == "" {
			continue
		}
		links, err := d.Targets(obj)
		if err != nil {
			return "", err
		}
		for _, l := range links {
			if l.Adaptation != nil {
				fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n",
					string(obj.Luid()), string(l.Object.Luid()), l.Adaptation.String())
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q;\n", string(obj.Luid()), string(l.Object.Luid()))
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func wireable(obj swan.Object) bool {
	switch obj.(type) {
	case *swan.Wire, *swan.SectionBlock:
		return false
	}
	return true
}

func fmtAttrs(obj swan.Object, detailed bool) []string {
	var label, kind string
	var extra []string
	switch o := obj.(type) {
	case *swan.ExprBlock:
		label, kind = fmt.Sprint(o.Expr), "expr"
		extra = []string{"shape=ellipse"}
	case *swan.DefBlock:
		label, kind = o.LHS.String(), "def"
	case *swan.Block:
		label, kind = o.Callee.String(), "block"
	case *swan.Bar:
		label, kind = strings.TrimSpace("group "+o.Operation.String()), "group"
		extra = []string{"shape=box", "style=filled", "fillcolor=lightgrey", "height=0.2"}
	default:
		label, kind = string(obj.Luid()), "object"
	}
	if detailed {
		label = kind + "\n" + label
	}
	return append([]string{fmt.Sprintf("label=%q", label)}, extra...)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
