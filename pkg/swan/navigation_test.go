package swan

import (
	"testing"

	"github.com/matzehuels/swanview/pkg/errors"
)

// regulationDiagram builds the running example used across the
// navigation tests:
//
//	(#0 expr setpoint)
//	(#1 expr measure)
//	(#2 group
//	 where (#3 group) (#4 group))
//	(#5 block (PID))
//	(#6 def command)
//	(#7 wire #0 => #3)
//	(#8 wire #1 => #4)
//	(#9 wire #2 => #5)
//	(#10 wire #5 => #6, #11)
//	(#11 def trace)
func regulationDiagram() (*Diagram, map[string]Object) {
	setpoint := NewExprBlock("0", NewRawExpr("setpoint"))
	measure := NewExprBlock("1", NewRawExpr("measure"))
	merge := NewBar("2", GroupNoOp, NewBar("3", GroupNoOp), NewBar("4", GroupNoOp))
	pid := NewBlock("5", ParsePathID("PID"))
	command := NewDefBlock("6", &EquationLHS{Names: []string{"command"}})
	trace := NewDefBlock("11", &EquationLHS{Names: []string{"trace"}})

	d := NewDiagram(
		setpoint, measure, merge, pid, command,
		NewWire("7", NewConnection(PortAt("0"), nil), NewConnection(PortAt("3"), nil)),
		NewWire("8", NewConnection(PortAt("1"), nil), NewConnection(PortAt("4"), nil)),
		NewWire("9", NewConnection(PortAt("2"), nil), NewConnection(PortAt("5"), nil)),
		NewWire("10", NewConnection(PortAt("5"), nil),
			NewConnection(PortAt("6"), nil), NewConnection(PortAt("11"), nil)),
		trace,
	)
	objs := map[string]Object{
		"setpoint": setpoint, "measure": measure, "merge": merge,
		"pid": pid, "command": command, "trace": trace,
	}
	return d, objs
}

func luidsOf(links []Link) []Luid {
	out := make([]Luid, len(links))
	for i, l := range links {
		out[i] = l.Object.Luid()
	}
	return out
}

func equalLuids(a, b []Luid) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDiagramSources(t *testing.T) {
	d, objs := regulationDiagram()

	tests := []struct {
		name string
		obj  Object
		want []Luid
	}{
		{"def from block", objs["command"], []Luid{"5"}},
		{"block from bar", objs["pid"], []Luid{"2"}},
		{"bar collects through locals in wire order", objs["merge"], []Luid{"0", "1"}},
		{"fan-out target", objs["trace"], []Luid{"5"}},
		{"pure source has none", objs["setpoint"], nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Sources(tt.obj)
			if err != nil {
				t.Fatalf("Sources() error = %v", err)
			}
			if !equalLuids(luidsOf(got), tt.want) {
				t.Errorf("Sources() = %v, want %v", luidsOf(got), tt.want)
			}
		})
	}
}

func TestDiagramTargets(t *testing.T) {
	d, objs := regulationDiagram()

	tests := []struct {
		name string
		obj  Object
		want []Luid
	}{
		{"fan-out in endpoint order", objs["pid"], []Luid{"6", "11"}},
		{"expr feeds bar local's owner", objs["setpoint"], []Luid{"2"}},
		{"bar read through its own luid only", objs["merge"], []Luid{"5"}},
		{"sink has none", objs["command"], nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Targets(tt.obj)
			if err != nil {
				t.Fatalf("Targets() error = %v", err)
			}
			if !equalLuids(luidsOf(got), tt.want) {
				t.Errorf("Targets() = %v, want %v", luidsOf(got), tt.want)
			}
		})
	}
}

func TestDiagramQueriesDeterministic(t *testing.T) {
	d, objs := regulationDiagram()
	first, err := d.Sources(objs["merge"])
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := d.Sources(objs["merge"])
		if err != nil {
			t.Fatal(err)
		}
		if !equalLuids(luidsOf(again), luidsOf(first)) {
			t.Fatalf("run %d: Sources() = %v, want %v", i, luidsOf(again), luidsOf(first))
		}
	}
}

func TestDiagramSelfPortsExcluded(t *testing.T) {
	in := NewBlock("0", ParsePathID("Filter"))
	out := NewDefBlock("1", &EquationLHS{Names: []string{"y"}})
	d := NewDiagram(
		in, out,
		// operator input feeds the block
		NewWire("2", NewConnection(SelfPort(), nil), NewConnection(PortAt("0"), nil)),
		// block feeds both the def and the operator output
		NewWire("3", NewConnection(PortAt("0"), nil),
			NewConnection(PortAt("1"), nil), NewConnection(SelfPort(), nil)),
	)

	srcs, err := d.Sources(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(srcs) != 0 {
		t.Errorf("Sources() via self = %v, want none", luidsOf(srcs))
	}

	tgts, err := d.Targets(in)
	if err != nil {
		t.Fatal(err)
	}
	if !equalLuids(luidsOf(tgts), []Luid{"1"}) {
		t.Errorf("Targets() = %v, want [1]", luidsOf(tgts))
	}
}

func TestDiagramDisconnectedEndpointsExcluded(t *testing.T) {
	a := NewExprBlock("0", NewRawExpr("a"))
	b := NewDefBlock("1", &EquationLHS{Names: []string{"b"}})
	d := NewDiagram(
		a, b,
		NewWire("2", NewConnection(nil, nil), NewConnection(PortAt("1"), nil)),
		NewWire("3", NewConnection(PortAt("0"), nil), NewConnection(nil, nil)),
	)

	srcs, err := d.Sources(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(srcs) != 0 {
		t.Errorf("Sources() through empty endpoint = %v, want none", luidsOf(srcs))
	}
	tgts, err := d.Targets(a)
	if err != nil {
		t.Fatal(err)
	}
	if len(tgts) != 0 {
		t.Errorf("Targets() through empty endpoint = %v, want none", luidsOf(tgts))
	}
}

func TestDiagramAdaptationCarried(t *testing.T) {
	a := NewExprBlock("0", NewRawExpr("sig"))
	b := NewBlock("1", ParsePathID("Consume"))
	adapt := &GroupAdaptation{Renamings: []string{"x: 1"}}
	d := NewDiagram(a, b,
		NewWire("2", NewConnection(PortAt("0"), nil), NewConnection(PortAt("1"), adapt)),
	)

	tgts, err := d.Targets(a)
	if err != nil {
		t.Fatal(err)
	}
	if len(tgts) != 1 || tgts[0].Adaptation != adapt {
		t.Fatalf("Targets() adaptation not carried: %+v", tgts)
	}

	srcs, err := d.Sources(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(srcs) != 1 || srcs[0].Adaptation != nil {
		t.Fatalf("Sources() adaptation = %+v, want nil (source endpoint has none)", srcs)
	}
}

func TestDiagramQueryMisuse(t *testing.T) {
	block := NewBlock("0", ParsePathID("Op"))
	wire := NewWire("1", NewConnection(PortAt("0"), nil), NewConnection(SelfPort(), nil))
	sect := NewSectionBlock("2", NewVarSection())
	d := NewDiagram(block, wire, sect)

	for _, obj := range []Object{wire, sect} {
		if _, err := d.Sources(obj); !errors.Is(err, errors.ErrCodeStructuralMisuse) {
			t.Errorf("Sources(%T) error = %v, want STRUCTURAL_MISUSE", obj, err)
		}
		if _, err := d.Targets(obj); !errors.Is(err, errors.ErrCodeStructuralMisuse) {
			t.Errorf("Targets(%T) error = %v, want STRUCTURAL_MISUSE", obj, err)
		}
	}
}

func TestWireString(t *testing.T) {
	w := NewWire("7", NewConnection(PortAt("0"), nil),
		NewConnection(PortAt("3"), nil), NewConnection(SelfPort(), nil))
	want := "(#7 wire #0 => #3, self)"
	if got := w.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestBarStringWithLocals(t *testing.T) {
	bar := NewBar("2", GroupByName, NewBar("3", GroupNoOp))
	want := "(#2 group byname\nwhere\n(#3 group))"
	if got := bar.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
