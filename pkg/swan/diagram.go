package swan

import (
	"fmt"
	"strings"
)

// GroupOperation is the operation carried by a group bar.
type GroupOperation int

const (
	// GroupNoOp merges incoming flows into a group unchanged.
	GroupNoOp GroupOperation = iota
	// GroupByName projects a group by field names.
	GroupByName
	// GroupByPos projects a group by positions.
	GroupByPos
	// GroupNormalize flattens a group ("()" form).
	GroupNormalize
)

// String renders the operation as it appears after the group keyword.
func (op GroupOperation) String() string {
	switch op {
	case GroupByName:
		return "byname"
	case GroupByPos:
		return "bypos"
	case GroupNormalize:
		return "()"
	default:
		return ""
	}
}

// GroupAdaptation renames/reorders the signals of a group crossing a
// connection: .(renaming {{, renaming}}).
type GroupAdaptation struct {
	Base
	Renamings []string
}

func (a *GroupAdaptation) String() string {
	return ".(" + strings.Join(a.Renamings, ", ") + ")"
}

// PortRef identifies a wire endpoint: either a block by LUID, or the
// enclosing operator's own interface ("self").
type PortRef struct {
	Base
	Luid Luid
	Self bool
}

// PortAt returns a port reference to the block with the given LUID.
func PortAt(luid Luid) *PortRef { return &PortRef{Luid: luid} }

// SelfPort returns a reference to the enclosing operator's own
// interface. Self ports are resolved by the caller against the
// operator's inputs/outputs, never through the connectivity graph.
func SelfPort() *PortRef { return &PortRef{Self: true} }

func (p *PortRef) String() string {
	if p.Self {
		return "self"
	}
	return p.Luid.String()
}

// Connection is a wire endpoint: an optional port plus an optional
// group adaptation. The empty form "()" has neither.
type Connection struct {
	Base
	Port       *PortRef
	Adaptation *GroupAdaptation
}

// NewConnection builds a connection; either argument may be nil.
func NewConnection(port *PortRef, adaptation *GroupAdaptation) *Connection {
	c := &Connection{Port: port, Adaptation: adaptation}
	if port != nil {
		port.SetOwner(c)
	}
	if adaptation != nil {
		adaptation.SetOwner(c)
	}
	return c
}

// Valid reports whether the connection is well-formed: an adaptation
// without a port is invalid, "()" is valid.
func (c *Connection) Valid() bool {
	return c.Port != nil || c.Adaptation == nil
}

// Connected reports whether the connection targets some port.
func (c *Connection) Connected() bool {
	return c != nil && c.Valid() && c.Port != nil
}

func (c *Connection) String() string {
	if !c.Connected() {
		return "()"
	}
	s := c.Port.String()
	if c.Adaptation != nil {
		s += " " + c.Adaptation.String()
	}
	return s
}

// Object is a diagram object: an expression block, definition block,
// operator-call block, group bar, wire, or nested scope-section block.
// Objects may carry a LUID making them wireable, and a list of nested
// local objects acting as grouping/merge points.
type Object interface {
	Item
	fmt.Stringer
	// Luid returns the object's local unique identifier, or "" when the
	// object is never a wire endpoint.
	Luid() Luid
	// Locals returns the nested local objects.
	Locals() []Object

	describe() string
}

// objectCore carries the LUID and locals shared by all object kinds.
type objectCore struct {
	Base
	luid   Luid
	locals []Object
}

func (o *objectCore) Luid() Luid       { return o.luid }
func (o *objectCore) Locals() []Object { return o.locals }

func objectString(o Object) string {
	var b strings.Builder
	b.WriteString("(")
	if o.Luid() != "" {
		fmt.Fprintf(&b, "%s ", o.Luid())
	}
	b.WriteString(o.describe())
	if locals := o.Locals(); len(locals) > 0 {
		b.WriteString("\nwhere\n")
		parts := make([]string, len(locals))
		for i, l := range locals {
			parts[i] = l.String()
		}
		b.WriteString(strings.Join(parts, "\n"))
	}
	b.WriteString(")")
	return b.String()
}

// ExprBlock is an expression block: (#luid expr e).
type ExprBlock struct {
	objectCore
	Expr Expr
}

// NewExprBlock builds an expression block.
func NewExprBlock(luid Luid, expr Expr, locals ...Object) *ExprBlock {
	o := &ExprBlock{objectCore: objectCore{luid: luid, locals: locals}, Expr: expr}
	if expr != nil {
		expr.SetOwner(o)
	}
	Adopt(o, locals...)
	return o
}

func (o *ExprBlock) describe() string { return fmt.Sprintf("expr %s", o.Expr) }
func (o *ExprBlock) String() string   { return objectString(o) }

// DefBlock is a definition block: (#luid def lhs).
type DefBlock struct {
	objectCore
	LHS *EquationLHS
}

// NewDefBlock builds a definition block.
func NewDefBlock(luid Luid, lhs *EquationLHS, locals ...Object) *DefBlock {
	o := &DefBlock{objectCore: objectCore{luid: luid, locals: locals}, LHS: lhs}
	if lhs != nil {
		lhs.SetOwner(o)
	}
	Adopt(o, locals...)
	return o
}

func (o *DefBlock) describe() string { return fmt.Sprintf("def %s", o.LHS) }
func (o *DefBlock) String() string   { return objectString(o) }

// Block is an operator-call block: (#luid block (Callee)).
type Block struct {
	objectCore
	Callee       *PathID
	InstanceLuid Luid // optional instance tag
}

// NewBlock builds an operator-call block.
func NewBlock(luid Luid, callee *PathID, locals ...Object) *Block {
	o := &Block{objectCore: objectCore{luid: luid, locals: locals}, Callee: callee}
	if callee != nil {
		callee.SetOwner(o)
	}
	Adopt(o, locals...)
	return o
}

func (o *Block) describe() string {
	s := fmt.Sprintf("block (%s)", o.Callee)
	if o.InstanceLuid != "" {
		s += " " + o.InstanceLuid.String()
	}
	return s
}

func (o *Block) String() string { return objectString(o) }

// Bar is a group/ungroup bar: (#luid group [operation]).
type Bar struct {
	objectCore
	Operation GroupOperation
}

// NewBar builds a group bar.
func NewBar(luid Luid, op GroupOperation, locals ...Object) *Bar {
	o := &Bar{objectCore: objectCore{luid: luid, locals: locals}, Operation: op}
	Adopt(o, locals...)
	return o
}

func (o *Bar) describe() string {
	if s := o.Operation.String(); s != "" {
		return "group " + s
	}
	return "group"
}

func (o *Bar) String() string { return objectString(o) }

// SectionBlock wraps a nested scope section inside a diagram, giving
// equations and local declarations a graphical position.
type SectionBlock struct {
	objectCore
	Section Section
}

// NewSectionBlock builds a scope-section block.
func NewSectionBlock(luid Luid, section Section, locals ...Object) *SectionBlock {
	o := &SectionBlock{objectCore: objectCore{luid: luid, locals: locals}, Section: section}
	if section != nil {
		section.SetOwner(o)
	}
	Adopt(o, locals...)
	return o
}

func (o *SectionBlock) describe() string { return o.Section.String() }
func (o *SectionBlock) String() string   { return objectString(o) }

// Wire connects a source endpoint to one or more target endpoints:
// (#luid wire source => target {{, target}}).
//
// A well-formed wire has at least one target; this is checked by
// [Wire.HasTarget], not enforced at construction.
type Wire struct {
	objectCore
	Source  *Connection
	Targets []*Connection
}

// NewWire builds a wire.
func NewWire(luid Luid, source *Connection, targets ...*Connection) *Wire {
	w := &Wire{objectCore: objectCore{luid: luid}, Source: source, Targets: targets}
	if source != nil {
		source.SetOwner(w)
	}
	Adopt(w, targets...)
	return w
}

// HasTarget reports whether the wire has at least one target.
func (w *Wire) HasTarget() bool { return len(w.Targets) > 0 }

func (w *Wire) describe() string {
	parts := make([]string, len(w.Targets))
	for i, t := range w.Targets {
		parts[i] = t.String()
	}
	return fmt.Sprintf("wire %s => %s", w.Source, strings.Join(parts, ", "))
}

func (w *Wire) String() string { return objectString(w) }

// Diagram is a **diagram** scope section holding wired objects.
//
// The connectivity index behind [Diagram.Sources] and [Diagram.Targets]
// is built once on first query; the object list must not change
// afterwards. Like the rest of the tree, a Diagram is not safe for
// concurrent use without external synchronization.
type Diagram struct {
	Base
	Objects []Object

	nav *navigation
}

// NewDiagram builds a diagram and adopts its objects.
func NewDiagram(objects ...Object) *Diagram {
	d := &Diagram{Objects: objects}
	Adopt(d, objects...)
	return d
}

func (*Diagram) section() {}

func (d *Diagram) String() string {
	if len(d.Objects) == 0 {
		return "diagram"
	}
	parts := make([]string, len(d.Objects))
	for i, o := range d.Objects {
		parts[i] = o.String()
	}
	return "diagram\n" + strings.Join(parts, "\n")
}
