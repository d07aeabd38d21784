package swan

import (
	"fmt"
	"strings"
)

// Expr is a dataflow expression. Expressions carry no structural
// algorithm in this model; most cross the parser boundary as raw text.
type Expr interface {
	Item
	fmt.Stringer
	exprNode()
}

// RawExpr is an expression kept as its textual form.
type RawExpr struct {
	Base
	Text string
}

func (*RawExpr) exprNode() {}

func (e *RawExpr) String() string { return e.Text }

// NewRawExpr wraps expression text as an Expr node.
func NewRawExpr(text string) *RawExpr { return &RawExpr{Text: text} }

// TypeExpr is a type expression, kept textual for the same reason.
type TypeExpr struct {
	Base
	Text string
}

func (t *TypeExpr) String() string { return t.Text }

// GlobalDecl is a top-level declaration inside a module: one of the
// declaration group containers, an operator, or a signature.
type GlobalDecl interface {
	Item
	globalDecl()
}

// TypeDecl declares a named type.
type TypeDecl struct {
	Base
	ID  *Identifier
	Def *TypeExpr // nil for an abstract type
}

// Ident returns the declared identifier.
func (d *TypeDecl) Ident() *Identifier { return d.ID }

func (d *TypeDecl) String() string {
	if d.Def == nil {
		return d.ID.String()
	}
	return fmt.Sprintf("%s = %s", d.ID, d.Def)
}

// ConstDecl declares a named constant.
type ConstDecl struct {
	Base
	ID    *Identifier
	Type  *TypeExpr
	Value Expr // nil for an interface constant without value
}

// Ident returns the declared identifier.
func (d *ConstDecl) Ident() *Identifier { return d.ID }

func (d *ConstDecl) String() string {
	s := d.ID.String()
	if d.Type != nil {
		s += ": " + d.Type.String()
	}
	if d.Value != nil {
		s += " = " + d.Value.String()
	}
	return s
}

// SensorDecl declares a sensor: a global input visible to every
// operator of the compilation.
type SensorDecl struct {
	Base
	ID   *Identifier
	Type *TypeExpr
}

// Ident returns the declared identifier.
func (d *SensorDecl) Ident() *Identifier { return d.ID }

func (d *SensorDecl) String() string {
	if d.Type == nil {
		return d.ID.String()
	}
	return fmt.Sprintf("%s: %s", d.ID, d.Type)
}

// GroupDecl declares a named signal group.
type GroupDecl struct {
	Base
	ID  *Identifier
	Def *TypeExpr
}

// Ident returns the declared identifier.
func (d *GroupDecl) Ident() *Identifier { return d.ID }

func (d *GroupDecl) String() string {
	if d.Def == nil {
		return d.ID.String()
	}
	return fmt.Sprintf("%s = %s", d.ID, d.Def)
}

// TypeDecls is the **type** declaration group of a module.
type TypeDecls struct {
	Base
	Types []*TypeDecl
}

// NewTypeDecls builds the group and adopts its declarations.
func NewTypeDecls(decls ...*TypeDecl) *TypeDecls {
	g := &TypeDecls{Types: decls}
	Adopt(g, decls...)
	return g
}

func (*TypeDecls) globalDecl() {}

func (g *TypeDecls) String() string { return declGroupString("type", g.Types) }

// ConstDecls is the **const** declaration group of a module.
type ConstDecls struct {
	Base
	Constants []*ConstDecl
}

// NewConstDecls builds the group and adopts its declarations.
func NewConstDecls(decls ...*ConstDecl) *ConstDecls {
	g := &ConstDecls{Constants: decls}
	Adopt(g, decls...)
	return g
}

func (*ConstDecls) globalDecl() {}

func (g *ConstDecls) String() string { return declGroupString("const", g.Constants) }

// SensorDecls is the **sensor** declaration group of a module.
type SensorDecls struct {
	Base
	Sensors []*SensorDecl
}

// NewSensorDecls builds the group and adopts its declarations.
func NewSensorDecls(decls ...*SensorDecl) *SensorDecls {
	g := &SensorDecls{Sensors: decls}
	Adopt(g, decls...)
	return g
}

func (*SensorDecls) globalDecl() {}

func (g *SensorDecls) String() string { return declGroupString("sensor", g.Sensors) }

// GroupDecls is the **group** declaration group of a module.
type GroupDecls struct {
	Base
	Groups []*GroupDecl
}

// NewGroupDecls builds the group and adopts its declarations.
func NewGroupDecls(decls ...*GroupDecl) *GroupDecls {
	g := &GroupDecls{Groups: decls}
	Adopt(g, decls...)
	return g
}

func (*GroupDecls) globalDecl() {}

func (g *GroupDecls) String() string { return declGroupString("group", g.Groups) }

func declGroupString[T fmt.Stringer](kind string, decls []T) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.String()
	}
	return fmt.Sprintf("%s %s;", kind, strings.Join(parts, "; "))
}

// UseDirective imports another module, optionally introducing a local
// alias for its path.
type UseDirective struct {
	Base
	Path  *PathID
	Alias *Identifier // nil when no renaming
}

func (u *UseDirective) String() string {
	if u.Alias == nil {
		return fmt.Sprintf("use %s;", u.Path)
	}
	return fmt.Sprintf("use %s as %s;", u.Path, u.Alias)
}

// VarDecl declares a variable: an operator input/output or a local in a
// var section.
type VarDecl struct {
	Base
	ID      *Identifier
	Clock   bool
	Probe   bool
	Type    *TypeExpr
	When    Expr // clock expression
	Default Expr
	Last    Expr
}

// Ident returns the declared identifier.
func (d *VarDecl) Ident() *Identifier { return d.ID }

func (d *VarDecl) String() string {
	var b strings.Builder
	if d.Clock {
		b.WriteString("clock ")
	}
	if d.Probe {
		b.WriteString("probe ")
	}
	b.WriteString(d.ID.String())
	if d.Type != nil {
		fmt.Fprintf(&b, ": %s", d.Type)
	}
	if d.When != nil {
		fmt.Fprintf(&b, " when %s", d.When)
	}
	if d.Default != nil {
		fmt.Fprintf(&b, " default = %s", d.Default)
	}
	if d.Last != nil {
		fmt.Fprintf(&b, " last = %s", d.Last)
	}
	return b.String()
}
