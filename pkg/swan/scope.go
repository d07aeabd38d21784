package swan

import (
	"fmt"
	"strings"
)

// Scope is a braced block of scope sections forming an operator body
// or a state body.
type Scope struct {
	Base
	Sections []Section
}

// NewScope builds a scope and adopts its sections.
func NewScope(sections ...Section) *Scope {
	s := &Scope{Sections: sections}
	Adopt(s, sections...)
	return s
}

func (s *Scope) String() string {
	parts := make([]string, len(s.Sections))
	for i, sec := range s.Sections {
		parts[i] = sec.String()
	}
	return "{\n" + strings.Join(parts, "\n") + "\n}"
}

// Section is a scope section: variables, equations, emissions, formal
// properties, or a diagram.
type Section interface {
	Item
	fmt.Stringer
	section()
}

// VarSection is a **var** section declaring local variables.
type VarSection struct {
	Base
	Vars []*VarDecl
}

// NewVarSection builds the section and adopts its declarations.
func NewVarSection(vars ...*VarDecl) *VarSection {
	s := &VarSection{Vars: vars}
	Adopt(s, vars...)
	return s
}

func (*VarSection) section() {}

func (s *VarSection) String() string { return sectionString("var", s.Vars, ";") }

// Equation is a dataflow equation inside a **let** section.
type Equation interface {
	Item
	fmt.Stringer
	equation()
}

// EquationLHS is the left-hand side of an equation: the defined flow
// names ("_" entries mark discarded flows).
type EquationLHS struct {
	Base
	Names []string
}

func (l *EquationLHS) String() string { return strings.Join(l.Names, ", ") }

// ExprEquation is a plain lhs = expr equation.
type ExprEquation struct {
	Base
	LHS  *EquationLHS
	Expr Expr
}

// NewExprEquation builds the equation and adopts its parts.
func NewExprEquation(lhs *EquationLHS, expr Expr) *ExprEquation {
	eq := &ExprEquation{LHS: lhs, Expr: expr}
	Adopt[Item](eq, lhs, expr)
	return eq
}

func (*ExprEquation) equation() {}

func (e *ExprEquation) String() string { return fmt.Sprintf("%s = %s", e.LHS, e.Expr) }

// LetSection is a **let** section holding equations.
type LetSection struct {
	Base
	Equations []Equation
}

// NewLetSection builds the section and adopts its equations.
func NewLetSection(equations ...Equation) *LetSection {
	s := &LetSection{Equations: equations}
	Adopt(s, equations...)
	return s
}

func (*LetSection) section() {}

func (s *LetSection) String() string { return sectionString("let", s.Equations, ";") }

// Emission emits signals, optionally under a condition:
// flow {{, flow}} [if expr].
type Emission struct {
	Base
	Flows     []*Identifier
	Condition Expr // nil for unconditional emission
}

func (e *Emission) String() string {
	names := make([]string, len(e.Flows))
	for i, f := range e.Flows {
		names[i] = f.String()
	}
	s := strings.Join(names, ", ")
	if e.Condition != nil {
		s += " if " + e.Condition.String()
	}
	return s
}

// EmitSection is an **emit** section of signal emissions.
type EmitSection struct {
	Base
	Emissions []*Emission
}

// NewEmitSection builds the section and adopts its emissions.
func NewEmitSection(emissions ...*Emission) *EmitSection {
	s := &EmitSection{Emissions: emissions}
	Adopt(s, emissions...)
	return s
}

func (*EmitSection) section() {}

func (s *EmitSection) String() string { return sectionString("emit", s.Emissions, ";") }

// FormalProperty is a named assume or guarantee expression.
type FormalProperty struct {
	Base
	ID   *Identifier
	Expr Expr
}

func (p *FormalProperty) String() string { return fmt.Sprintf("%s: %s", p.ID, p.Expr) }

// AssumeSection is an **assume** section of hypotheses.
type AssumeSection struct {
	Base
	Hypotheses []*FormalProperty
}

// NewAssumeSection builds the section and adopts its hypotheses.
func NewAssumeSection(props ...*FormalProperty) *AssumeSection {
	s := &AssumeSection{Hypotheses: props}
	Adopt(s, props...)
	return s
}

func (*AssumeSection) section() {}

func (s *AssumeSection) String() string { return sectionString("assume", s.Hypotheses, ";") }

// GuaranteeSection is a **guarantee** section of proof obligations.
type GuaranteeSection struct {
	Base
	Guarantees []*FormalProperty
}

// NewGuaranteeSection builds the section and adopts its guarantees.
func NewGuaranteeSection(props ...*FormalProperty) *GuaranteeSection {
	s := &GuaranteeSection{Guarantees: props}
	Adopt(s, props...)
	return s
}

func (*GuaranteeSection) section() {}

func (s *GuaranteeSection) String() string { return sectionString("guarantee", s.Guarantees, ";") }

func sectionString[T fmt.Stringer](kind string, items []T, end string) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = fmt.Sprintf("    %s%s", it, end)
	}
	return kind + "\n" + strings.Join(lines, "\n")
}
