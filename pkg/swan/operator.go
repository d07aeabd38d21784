package swan

import (
	"fmt"
	"strings"
)

// Operator is a user-defined operator: a signature (inputs/outputs)
// with an optional body. Interfaces declare body-less signatures;
// module bodies declare operators whose body may be realized lazily
// from a deferred builder (the parser hands bodies out on demand).
type Operator struct {
	Base
	ID      *Identifier
	Node    bool // node (stateful) rather than function
	Inputs  []*VarDecl
	Outputs []*VarDecl

	body    *Scope
	buildFn func(*Operator) *Scope
}

// NewOperator builds an operator and adopts its interface variables
// and body. body may be nil for a signature.
func NewOperator(id *Identifier, node bool, inputs, outputs []*VarDecl, body *Scope) *Operator {
	op := &Operator{ID: id, Node: node, Inputs: inputs, Outputs: outputs, body: body}
	Adopt(op, id)
	Adopt(op, inputs...)
	Adopt(op, outputs...)
	if body != nil {
		body.SetOwner(op)
	}
	return op
}

func (*Operator) globalDecl() {}

// Ident returns the operator's identifier.
func (o *Operator) Ident() *Identifier { return o.ID }

// DeferBody installs a builder invoked on the first Body call.
// It replaces any previously installed builder or body.
func (o *Operator) DeferBody(build func(*Operator) *Scope) {
	o.body = nil
	o.buildFn = build
}

// Body returns the operator body, realizing a deferred builder on
// first use. The builder runs at most once; the realized scope is
// adopted and cached. Returns nil for a signature.
func (o *Operator) Body() *Scope {
	if o.body == nil && o.buildFn != nil {
		build := o.buildFn
		o.buildFn = nil // guard against re-entrant rebuilding
		o.body = build(o)
		if o.body != nil {
			o.body.SetOwner(o)
		}
	}
	return o.body
}

// HasBody reports whether the operator has a body, realized or
// deferred.
func (o *Operator) HasBody() bool { return o.body != nil || o.buildFn != nil }

// Signature renders the declaration without its body, e.g.
// "node Regulation (a: int32) returns (o: int32)".
func (o *Operator) Signature() string {
	kind := "function"
	if o.Node {
		kind = "node"
	}
	return fmt.Sprintf("%s %s %s returns %s", kind, o.ID, varList(o.Inputs), varList(o.Outputs))
}

func (o *Operator) String() string {
	body := o.Body()
	if body == nil {
		return o.Signature() + ";"
	}
	return o.Signature() + "\n" + body.String()
}

func varList(vars []*VarDecl) string {
	if len(vars) == 0 {
		return "()"
	}
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = v.String()
	}
	return "(" + strings.Join(parts, "; ") + ")"
}
