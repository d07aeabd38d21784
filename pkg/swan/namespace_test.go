package swan

import (
	"testing"

	"github.com/matzehuels/swanview/pkg/errors"
)

// testModel is the minimal model container the resolver needs.
type testModel struct {
	Base
	modules []*Module
}

func (m *testModel) LoadedModules() []*Module { return m.modules }

func newTestModel(mods ...*Module) *testModel {
	m := &testModel{modules: mods}
	Adopt[*Module](m, mods...)
	return m
}

// controlModel assembles a small compilation:
//
//	module engine::ctrl (uses math::filters as flt, utils)
//	  const kp: float32 = 0.8;
//	  node Regulation (setpoint, measure) returns (command)
//	    var delta;
//	    let automaton
//	      initial state Tracking: var acc; let acc = delta;
//	interface engine::ctrl
//	  sensor ambient: float32;
//	module math::filters
//	  const order: int32 = 2;
//	  node LowPass ...
//	module utils
//	  const eps: float32 = 1e-6;
func controlModel() (*testModel, *ExprEquation) {
	stateEq := NewExprEquation(&EquationLHS{Names: []string{"acc"}}, NewRawExpr("delta"))
	tracking := NewState(NewIdentifier("Tracking"), true,
		NewVarSection(&VarDecl{ID: NewIdentifier("acc")}),
		NewLetSection(stateEq),
	)
	regulation := NewOperator(NewIdentifier("Regulation"), true,
		[]*VarDecl{{ID: NewIdentifier("setpoint")}, {ID: NewIdentifier("measure")}},
		[]*VarDecl{{ID: NewIdentifier("command")}},
		NewScope(
			NewVarSection(&VarDecl{ID: NewIdentifier("delta")}),
			NewLetSection(NewStateMachine(nil, "", tracking)),
		),
	)

	body := NewModule(NewPathID("engine", "ctrl"), ModuleBody,
		[]*UseDirective{
			{Path: NewPathID("math", "filters"), Alias: NewIdentifier("flt")},
			{Path: NewPathID("utils")},
		},
		[]GlobalDecl{
			NewConstDecls(&ConstDecl{ID: NewIdentifier("kp"),
				Type: &TypeExpr{Text: "float32"}, Value: NewRawExpr("0.8")}),
			regulation,
		},
	)
	itf := NewModule(NewPathID("engine", "ctrl"), ModuleInterface, nil,
		[]GlobalDecl{
			NewSensorDecls(&SensorDecl{ID: NewIdentifier("ambient"),
				Type: &TypeExpr{Text: "float32"}}),
		},
	)
	filters := NewModule(NewPathID("math", "filters"), ModuleBody, nil,
		[]GlobalDecl{
			NewConstDecls(&ConstDecl{ID: NewIdentifier("order"),
				Type: &TypeExpr{Text: "int32"}, Value: NewRawExpr("2")}),
			NewOperator(NewIdentifier("LowPass"), true, nil, nil, nil),
		},
	)
	utils := NewModule(NewPathID("utils"), ModuleBody, nil,
		[]GlobalDecl{
			NewConstDecls(&ConstDecl{ID: NewIdentifier("eps"),
				Type: &TypeExpr{Text: "float32"}, Value: NewRawExpr("1e-6")}),
		},
	)
	return newTestModel(body, itf, filters, utils), stateEq
}

func TestResolveLexicalClimb(t *testing.T) {
	_, stateEq := controlModel()

	tests := []struct {
		name  string
		start Item
		ident string
	}{
		{"state-local var", stateEq, "acc"},
		{"operator scope var through automaton", stateEq, "delta"},
		{"operator input", stateEq, "setpoint"},
		{"operator output", stateEq, "command"},
		{"module const", stateEq, "kp"},
		{"operator by name", stateEq, "Regulation"},
		{"interface companion decl", stateEq, "ambient"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Resolve(tt.start, tt.ident)
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.ident, err)
			}
			if got := d.Ident().Value; got != tt.ident {
				t.Errorf("Resolve(%q) = %q", tt.ident, got)
			}
		})
	}
}

func TestResolveShadowing(t *testing.T) {
	// The state-local acc shadows nothing, but delta exists both as an
	// operator scope var and nowhere above, so the nearest declaration
	// site must win when names collide.
	model, stateEq := controlModel()
	body := model.LoadedModules()[0]
	body.Decls = append(body.Decls,
		NewConstDecls(&ConstDecl{ID: NewIdentifier("delta"), Value: NewRawExpr("0")}))
	Adopt(body, body.Decls[len(body.Decls)-1])

	d, err := Resolve(stateEq, "delta")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := d.(*VarDecl); !ok {
		t.Errorf("Resolve(delta) = %T, want the scope *VarDecl, not the module const", d)
	}
}

func TestResolveQualified(t *testing.T) {
	_, stateEq := controlModel()

	tests := []struct {
		name  string
		path  string
		ident string
	}{
		{"alias", "flt::LowPass", "LowPass"},
		{"full path", "math::filters::order", "order"},
		{"bare module", "utils::eps", "eps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Resolve(stateEq, tt.path)
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.path, err)
			}
			if got := d.Ident().Value; got != tt.ident {
				t.Errorf("Resolve(%q) = %q, want %q", tt.path, got, tt.ident)
			}
		})
	}
}

func TestResolveErrors(t *testing.T) {
	_, stateEq := controlModel()

	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{"unknown module is fatal", "nowhere::x", errors.ErrCodeModuleNotFound},
		// Only the explicit alias names an imported module; the bare
		// last segment of "use math::filters as flt" does not.
		{"use path tail is not an alias", "filters::order", errors.ErrCodeModuleNotFound},
		{"bad identifier", "3bad", errors.ErrCodeMalformedName},
		{"bad qualified ident", "utils::9eps", errors.ErrCodeMalformedName},
		{"miss is soft", "nothing", errors.ErrCodeNameNotFound},
		{"qualified miss is soft", "utils::nothing", errors.ErrCodeNameNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(stateEq, tt.in)
			if !errors.Is(err, tt.code) {
				t.Errorf("Resolve(%q) error = %v, want code %s", tt.in, err, tt.code)
			}
		})
	}

	if _, err := Resolve(stateEq, "nothing"); !errors.NotFound(err) {
		t.Errorf("NotFound() = false for NAME_NOT_FOUND")
	}
}

func TestResolveOrphan(t *testing.T) {
	detached := NewScope(NewVarSection(&VarDecl{ID: NewIdentifier("x")}))
	if _, err := Resolve(detached, "y"); !errors.Is(err, errors.ErrCodeOrphanNode) {
		t.Errorf("Resolve on detached scope = %v, want ORPHAN_NODE", err)
	}

	// Qualified lookups additionally need an installed model.
	lone := NewModule(NewPathID("lone"), ModuleBody, nil, nil)
	if _, err := Resolve(lone, "utils::eps"); !errors.Is(err, errors.ErrCodeOrphanNode) {
		t.Errorf("Resolve without model = %v, want ORPHAN_NODE", err)
	}
}
