package swanjson

import (
	"github.com/matzehuels/swanview/pkg/errors"
	"github.com/matzehuels/swanview/pkg/swan"
)

// ModuleDoc is the top-level document of one source.
type ModuleDoc struct {
	Module       string    `json:"module"`
	Interface    bool      `json:"interface,omitempty"`
	Uses         []UseDoc  `json:"uses,omitempty"`
	Declarations []DeclDoc `json:"declarations,omitempty"`
}

// UseDoc is a use directive.
type UseDoc struct {
	Path  string `json:"path"`
	Alias string `json:"alias,omitempty"`
}

// DeclDoc is one declaration group or operator. Kind selects which of
// the payload fields is meaningful.
type DeclDoc struct {
	Kind     string       `json:"kind"` // type, const, sensor, group, operator
	Items    []ItemDoc    `json:"items,omitempty"`
	Operator *OperatorDoc `json:"operator,omitempty"`
}

// ItemDoc is one named declaration inside a group.
type ItemDoc struct {
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Def   string `json:"def,omitempty"`
	Value string `json:"value,omitempty"`
}

// OperatorDoc is a user operator or signature.
type OperatorDoc struct {
	Name    string    `json:"name"`
	Node    bool      `json:"node,omitempty"`
	Inputs  []VarDoc  `json:"inputs,omitempty"`
	Outputs []VarDoc  `json:"outputs,omitempty"`
	Body    *ScopeDoc `json:"body,omitempty"`
}

// VarDoc is a variable declaration.
type VarDoc struct {
	Name    string `json:"name"`
	Type    string `json:"type,omitempty"`
	Clock   bool   `json:"clock,omitempty"`
	Probe   bool   `json:"probe,omitempty"`
	When    string `json:"when,omitempty"`
	Default string `json:"default,omitempty"`
	Last    string `json:"last,omitempty"`
}

// ScopeDoc is an operator body.
type ScopeDoc struct {
	Sections []SectionDoc `json:"sections,omitempty"`
}

// SectionDoc is one scope section; Kind selects the payload.
type SectionDoc struct {
	Kind       string        `json:"kind"` // var, let, emit, assume, guarantee, diagram
	Vars       []VarDoc      `json:"vars,omitempty"`
	Equations  []EquationDoc `json:"equations,omitempty"`
	Emissions  []EmissionDoc `json:"emissions,omitempty"`
	Properties []PropertyDoc `json:"properties,omitempty"`
	Objects    []ObjectDoc   `json:"objects,omitempty"`
}

// EquationDoc is a let equation: either expression-defined or an
// automaton.
type EquationDoc struct {
	LHS       []string      `json:"lhs,omitempty"`
	Expr      string        `json:"expr,omitempty"`
	Automaton *AutomatonDoc `json:"automaton,omitempty"`
}

// EmissionDoc is one signal emission.
type EmissionDoc struct {
	Flows     []string `json:"flows"`
	Condition string   `json:"if,omitempty"`
}

// PropertyDoc is a named assume/guarantee property.
type PropertyDoc struct {
	Name string `json:"name"`
	Expr string `json:"expr"`
}

// AutomatonDoc is a state machine.
type AutomatonDoc struct {
	Name   string     `json:"name,omitempty"`
	States []StateDoc `json:"states"`
}

// StateDoc is one automaton state.
type StateDoc struct {
	Name     string          `json:"name"`
	Initial  bool            `json:"initial,omitempty"`
	Strong   []TransitionDoc `json:"unless,omitempty"`
	Weak     []TransitionDoc `json:"until,omitempty"`
	Sections []SectionDoc    `json:"sections,omitempty"`
}

// TransitionDoc is a guarded state change.
type TransitionDoc struct {
	If      string `json:"if"`
	Target  string `json:"target"`
	Restart bool   `json:"restart,omitempty"`
}

// ObjectDoc is one diagram object; Kind selects the payload.
type ObjectDoc struct {
	Luid    string      `json:"luid,omitempty"`
	Kind    string      `json:"kind"` // expr, def, block, group, wire, section
	Expr    string      `json:"expr,omitempty"`
	LHS     []string    `json:"lhs,omitempty"`
	Callee  string      `json:"callee,omitempty"`
	Op      string      `json:"op,omitempty"` // "", byname, bypos, normalize
	Source  *ConnDoc    `json:"source,omitempty"`
	Targets []ConnDoc   `json:"targets,omitempty"`
	Section *SectionDoc `json:"section,omitempty"`
	Locals  []ObjectDoc `json:"locals,omitempty"`
}

// ConnDoc is a wire endpoint. Port is "self", "#luid", or "" for the
// empty connection. Adapt holds group adaptation renamings.
type ConnDoc struct {
	Port  string   `json:"port"`
	Adapt []string `json:"adapt,omitempty"`
}

// =========================================================================
// Document -> tree
// =========================================================================

// Build materializes the document into a module tree.
func (doc *ModuleDoc) Build() (*swan.Module, error) {
	if !swan.ValidPath(doc.Module) {
		return nil, errors.New(errors.ErrCodeMalformedName, "invalid module path %q", doc.Module)
	}
	kind := swan.ModuleBody
	if doc.Interface {
		kind = swan.ModuleInterface
	}

	uses := make([]*swan.UseDirective, 0, len(doc.Uses))
	for _, u := range doc.Uses {
		if !swan.ValidPath(u.Path) {
			return nil, errors.New(errors.ErrCodeMalformedName, "invalid use path %q", u.Path)
		}
		use := &swan.UseDirective{Path: swan.ParsePathID(u.Path)}
		if u.Alias != "" {
			use.Alias = swan.NewIdentifier(u.Alias)
		}
		uses = append(uses, use)
	}

	decls := make([]swan.GlobalDecl, 0, len(doc.Declarations))
	for _, d := range doc.Declarations {
		built, err := buildDecl(d)
		if err != nil {
			return nil, err
		}
		decls = append(decls, built)
	}
	return swan.NewModule(swan.ParsePathID(doc.Module), kind, uses, decls), nil
}

func buildDecl(d DeclDoc) (swan.GlobalDecl, error) {
	switch d.Kind {
	case "type":
		items := make([]*swan.TypeDecl, len(d.Items))
		for i, it := range d.Items {
			items[i] = &swan.TypeDecl{ID: swan.NewIdentifier(it.Name), Def: typeExpr(it.Def)}
		}
		return swan.NewTypeDecls(items...), nil
	case "const":
		items := make([]*swan.ConstDecl, len(d.Items))
		for i, it := range d.Items {
			items[i] = &swan.ConstDecl{
				ID:    swan.NewIdentifier(it.Name),
				Type:  typeExpr(it.Type),
				Value: rawExpr(it.Value),
			}
		}
		return swan.NewConstDecls(items...), nil
	case "sensor":
		items := make([]*swan.SensorDecl, len(d.Items))
		for i, it := range d.Items {
			items[i] = &swan.SensorDecl{ID: swan.NewIdentifier(it.Name), Type: typeExpr(it.Type)}
		}
		return swan.NewSensorDecls(items...), nil
	case "group":
		items := make([]*swan.GroupDecl, len(d.Items))
		for i, it := range d.Items {
			items[i] = &swan.GroupDecl{ID: swan.NewIdentifier(it.Name), Def: typeExpr(it.Def)}
		}
		return swan.NewGroupDecls(items...), nil
	case "operator":
		if d.Operator == nil {
			return nil, errors.New(errors.ErrCodeParse, "operator declaration without payload")
		}
		return buildOperator(*d.Operator), nil
	default:
		return nil, errors.New(errors.ErrCodeParse, "unknown declaration kind %q", d.Kind)
	}
}

func buildOperator(doc OperatorDoc) *swan.Operator {
	op := swan.NewOperator(
		swan.NewIdentifier(doc.Name), doc.Node,
		buildVars(doc.Inputs), buildVars(doc.Outputs), nil,
	)
	if body := doc.Body; body != nil {
		// Body content stays a document until somebody asks for it.
		op.DeferBody(func(*swan.Operator) *swan.Scope {
			return buildScope(*body)
		})
	}
	return op
}

func buildVars(docs []VarDoc) []*swan.VarDecl {
	vars := make([]*swan.VarDecl, len(docs))
	for i, v := range docs {
		vars[i] = &swan.VarDecl{
			ID:      swan.NewIdentifier(v.Name),
			Type:    typeExpr(v.Type),
			Clock:   v.Clock,
			Probe:   v.Probe,
			When:    rawExpr(v.When),
			Default: rawExpr(v.Default),
			Last:    rawExpr(v.Last),
		}
	}
	return vars
}

func buildScope(doc ScopeDoc) *swan.Scope {
	return swan.NewScope(buildSections(doc.Sections)...)
}

func buildSections(docs []SectionDoc) []swan.Section {
	sections := make([]swan.Section, len(docs))
	for i, s := range docs {
		sections[i] = buildSection(s)
	}
	return sections
}

func buildSection(doc SectionDoc) swan.Section {
	switch doc.Kind {
	case "let":
		eqs := make([]swan.Equation, len(doc.Equations))
		for i, e := range doc.Equations {
			eqs[i] = buildEquation(e)
		}
		return swan.NewLetSection(eqs...)
	case "emit":
		ems := make([]*swan.Emission, len(doc.Emissions))
		for i, e := range doc.Emissions {
			flows := make([]*swan.Identifier, len(e.Flows))
			for j, f := range e.Flows {
				flows[j] = swan.NewIdentifier(f)
			}
			ems[i] = &swan.Emission{Flows: flows, Condition: rawExpr(e.Condition)}
		}
		return swan.NewEmitSection(ems...)
	case "assume":
		return swan.NewAssumeSection(buildProperties(doc.Properties)...)
	case "guarantee":
		return swan.NewGuaranteeSection(buildProperties(doc.Properties)...)
	case "diagram":
		objs := make([]swan.Object, len(doc.Objects))
		for i, o := range doc.Objects {
			objs[i] = buildObject(o)
		}
		return swan.NewDiagram(objs...)
	default: // var
		return swan.NewVarSection(buildVars(doc.Vars)...)
	}
}

func buildProperties(docs []PropertyDoc) []*swan.FormalProperty {
	props := make([]*swan.FormalProperty, len(docs))
	for i, p := range docs {
		props[i] = &swan.FormalProperty{ID: swan.NewIdentifier(p.Name), Expr: rawExpr(p.Expr)}
	}
	return props
}

func buildEquation(doc EquationDoc) swan.Equation {
	lhs := &swan.EquationLHS{Names: doc.LHS}
	if doc.Automaton != nil {
		states := make([]*swan.State, len(doc.Automaton.States))
		for i, s := range doc.Automaton.States {
			states[i] = buildState(s)
		}
		if len(doc.LHS) == 0 {
			lhs = nil
		}
		return swan.NewStateMachine(lhs, doc.Automaton.Name, states...)
	}
	return swan.NewExprEquation(lhs, rawExpr(doc.Expr))
}

func buildState(doc StateDoc) *swan.State {
	st := swan.NewState(swan.NewIdentifier(doc.Name), doc.Initial, buildSections(doc.Sections)...)
	for _, t := range doc.Strong {
		st.AddTransition(buildTransition(t), true)
	}
	for _, t := range doc.Weak {
		st.AddTransition(buildTransition(t), false)
	}
	return st
}

func buildTransition(doc TransitionDoc) *swan.Transition {
	return &swan.Transition{
		Condition: rawExpr(doc.If),
		Target:    swan.NewIdentifier(doc.Target),
		Restart:   doc.Restart,
	}
}

func buildObject(doc ObjectDoc) swan.Object {
	luid := swan.ParseLuid(doc.Luid)
	locals := make([]swan.Object, len(doc.Locals))
	for i, l := range doc.Locals {
		locals[i] = buildObject(l)
	}
	switch doc.Kind {
	case "def":
		return swan.NewDefBlock(luid, &swan.EquationLHS{Names: doc.LHS}, locals...)
	case "block":
		return swan.NewBlock(luid, swan.ParsePathID(doc.Callee), locals...)
	case "group":
		return swan.NewBar(luid, groupOp(doc.Op), locals...)
	case "wire":
		targets := make([]*swan.Connection, len(doc.Targets))
		for i, c := range doc.Targets {
			targets[i] = buildConn(c)
		}
		return swan.NewWire(luid, buildConn(valueOrEmpty(doc.Source)), targets...)
	case "section":
		var sec swan.Section
		if doc.Section != nil {
			sec = buildSection(*doc.Section)
		}
		return swan.NewSectionBlock(luid, sec, locals...)
	default: // expr
		return swan.NewExprBlock(luid, rawExpr(doc.Expr), locals...)
	}
}

func valueOrEmpty(c *ConnDoc) ConnDoc {
	if c == nil {
		return ConnDoc{}
	}
	return *c
}

func buildConn(doc ConnDoc) *swan.Connection {
	var port *swan.PortRef
	switch {
	case doc.Port == "self":
		port = swan.SelfPort()
	case doc.Port != "":
		port = swan.PortAt(swan.ParseLuid(doc.Port))
	}
	var adapt *swan.GroupAdaptation
	if len(doc.Adapt) > 0 {
		adapt = &swan.GroupAdaptation{Renamings: doc.Adapt}
	}
	return swan.NewConnection(port, adapt)
}

func groupOp(s string) swan.GroupOperation {
	switch s {
	case "byname":
		return swan.GroupByName
	case "bypos":
		return swan.GroupByPos
	case "normalize", "()":
		return swan.GroupNormalize
	default:
		return swan.GroupNoOp
	}
}

func rawExpr(text string) swan.Expr {
	if text == "" {
		return nil
	}
	return swan.NewRawExpr(text)
}

func typeExpr(text string) *swan.TypeExpr {
	if text == "" {
		return nil
	}
	return &swan.TypeExpr{Text: text}
}

// =========================================================================
// Tree -> document
// =========================================================================

// Document flattens a module tree back into its interchange form.
// Deferred operator bodies are realized by the walk.
func Document(m *swan.Module) *ModuleDoc {
	doc := &ModuleDoc{
		Module:    m.FullPath(),
		Interface: m.IsInterface(),
	}
	for _, u := range m.Uses {
		ud := UseDoc{Path: u.Path.String()}
		if u.Alias != nil {
			ud.Alias = u.Alias.Value
		}
		doc.Uses = append(doc.Uses, ud)
	}
	for _, g := range m.Decls {
		doc.Declarations = append(doc.Declarations, declDoc(g))
	}
	return doc
}

func declDoc(g swan.GlobalDecl) DeclDoc {
	switch d := g.(type) {
	case *swan.TypeDecls:
		doc := DeclDoc{Kind: "type"}
		for _, t := range d.Types {
			doc.Items = append(doc.Items, ItemDoc{Name: t.ID.Value, Def: typeText(t.Def)})
		}
		return doc
	case *swan.ConstDecls:
		doc := DeclDoc{Kind: "const"}
		for _, c := range d.Constants {
			doc.Items = append(doc.Items, ItemDoc{
				Name: c.ID.Value, Type: typeText(c.Type), Value: exprText(c.Value),
			})
		}
		return doc
	case *swan.SensorDecls:
		doc := DeclDoc{Kind: "sensor"}
		for _, s := range d.Sensors {
			doc.Items = append(doc.Items, ItemDoc{Name: s.ID.Value, Type: typeText(s.Type)})
		}
		return doc
	case *swan.GroupDecls:
		doc := DeclDoc{Kind: "group"}
		for _, g := range d.Groups {
			doc.Items = append(doc.Items, ItemDoc{Name: g.ID.Value, Def: typeText(g.Def)})
		}
		return doc
	case *swan.Operator:
		return DeclDoc{Kind: "operator", Operator: operatorDoc(d)}
	default:
		return DeclDoc{}
	}
}

func operatorDoc(op *swan.Operator) *OperatorDoc {
	doc := &OperatorDoc{
		Name:    op.ID.Value,
		Node:    op.Node,
		Inputs:  varDocs(op.Inputs),
		Outputs: varDocs(op.Outputs),
	}
	if op.HasBody() {
		doc.Body = scopeDoc(op.Body())
	}
	return doc
}

func varDocs(vars []*swan.VarDecl) []VarDoc {
	docs := make([]VarDoc, len(vars))
	for i, v := range vars {
		docs[i] = VarDoc{
			Name:    v.ID.Value,
			Type:    typeText(v.Type),
			Clock:   v.Clock,
			Probe:   v.Probe,
			When:    exprText(v.When),
			Default: exprText(v.Default),
			Last:    exprText(v.Last),
		}
	}
	return docs
}

func scopeDoc(s *swan.Scope) *ScopeDoc {
	if s == nil {
		return nil
	}
	doc := &ScopeDoc{}
	for _, sec := range s.Sections {
		doc.Sections = append(doc.Sections, sectionDoc(sec))
	}
	return doc
}

func sectionDoc(sec swan.Section) SectionDoc {
	switch s := sec.(type) {
	case *swan.VarSection:
		return SectionDoc{Kind: "var", Vars: varDocs(s.Vars)}
	case *swan.LetSection:
		doc := SectionDoc{Kind: "let"}
		for _, eq := range s.Equations {
			doc.Equations = append(doc.Equations, equationDoc(eq))
		}
		return doc
	case *swan.EmitSection:
		doc := SectionDoc{Kind: "emit"}
		for _, e := range s.Emissions {
			flows := make([]string, len(e.Flows))
			for i, f := range e.Flows {
				flows[i] = f.Value
			}
			doc.Emissions = append(doc.Emissions, EmissionDoc{
				Flows: flows, Condition: exprText(e.Condition),
			})
		}
		return doc
	case *swan.AssumeSection:
		return SectionDoc{Kind: "assume", Properties: propertyDocs(s.Hypotheses)}
	case *swan.GuaranteeSection:
		return SectionDoc{Kind: "guarantee", Properties: propertyDocs(s.Guarantees)}
	case *swan.Diagram:
		doc := SectionDoc{Kind: "diagram"}
		for _, o := range s.Objects {
			doc.Objects = append(doc.Objects, objectDoc(o))
		}
		return doc
	default:
		return SectionDoc{}
	}
}

func propertyDocs(props []*swan.FormalProperty) []PropertyDoc {
	docs := make([]PropertyDoc, len(props))
	for i, p := range props {
		docs[i] = PropertyDoc{Name: p.ID.Value, Expr: exprText(p.Expr)}
	}
	return docs
}

func equationDoc(eq swan.Equation) EquationDoc {
	switch e := eq.(type) {
	case *swan.ExprEquation:
		return EquationDoc{LHS: e.LHS.Names, Expr: exprText(e.Expr)}
	case *swan.StateMachine:
		doc := EquationDoc{Automaton: &AutomatonDoc{Name: e.Name}}
		if e.LHS != nil {
			doc.LHS = e.LHS.Names
		}
		for _, st := range e.States {
			doc.Automaton.States = append(doc.Automaton.States, stateDoc(st))
		}
		return doc
	default:
		return EquationDoc{}
	}
}

func stateDoc(st *swan.State) StateDoc {
	doc := StateDoc{Name: st.ID.Value, Initial: st.Initial}
	for _, t := range st.Strong {
		doc.Strong = append(doc.Strong, transitionDoc(t))
	}
	for _, t := range st.Weak {
		doc.Weak = append(doc.Weak, transitionDoc(t))
	}
	for _, sec := range st.Sections {
		doc.Sections = append(doc.Sections, sectionDoc(sec))
	}
	return doc
}

func transitionDoc(t *swan.Transition) TransitionDoc {
	return TransitionDoc{If: exprText(t.Condition), Target: t.Target.Value, Restart: t.Restart}
}

func objectDoc(o swan.Object) ObjectDoc {
	doc := ObjectDoc{Luid: luidText(o.Luid())}
	for _, l := range o.Locals() {
		doc.Locals = append(doc.Locals, objectDoc(l))
	}
	switch obj := o.(type) {
	case *swan.ExprBlock:
		doc.Kind = "expr"
		doc.Expr = exprText(obj.Expr)
	case *swan.DefBlock:
		doc.Kind = "def"
		doc.LHS = obj.LHS.Names
	case *swan.Block:
		doc.Kind = "block"
		doc.Callee = obj.Callee.String()
	case *swan.Bar:
		doc.Kind = "group"
		doc.Op = groupOpText(obj.Operation)
	case *swan.Wire:
		doc.Kind = "wire"
		src := connDoc(obj.Source)
		doc.Source = &src
		for _, t := range obj.Targets {
			doc.Targets = append(doc.Targets, connDoc(t))
		}
	case *swan.SectionBlock:
		doc.Kind = "section"
		if obj.Section != nil {
			sec := sectionDoc(obj.Section)
			doc.Section = &sec
		}
	}
	return doc
}

func connDoc(c *swan.Connection) ConnDoc {
	doc := ConnDoc{}
	if c == nil {
		return doc
	}
	if c.Port != nil {
		doc.Port = c.Port.String()
	}
	if c.Adaptation != nil {
		doc.Adapt = c.Adaptation.Renamings
	}
	return doc
}

func groupOpText(op swan.GroupOperation) string {
	if op == swan.GroupNormalize {
		return "normalize"
	}
	return op.String()
}

func luidText(l swan.Luid) string { return string(l) }

func exprText(e swan.Expr) string {
	if e == nil {
		return ""
	}
	return e.String()
}

func typeText(t *swan.TypeExpr) string {
	if t == nil {
		return ""
	}
	return t.Text
}
