package swanjson

import (
	"testing"

	"github.com/matzehuels/swanview/pkg/errors"
	"github.com/matzehuels/swanview/pkg/model"
	"github.com/matzehuels/swanview/pkg/swan"
)

const regulationJSON = `{
  "module": "engine::ctrl",
  "uses": [
    {"path": "math::filters", "alias": "flt"}
  ],
  "declarations": [
    {"kind": "const", "items": [{"name": "kp", "type": "float32", "value": "0.8"}]},
    {"kind": "operator", "operator": {
      "name": "Regulation",
      "node": true,
      "inputs": [{"name": "setpoint", "type": "float32"}, {"name": "measure", "type": "float32"}],
      "outputs": [{"name": "command", "type": "float32"}],
      "body": {"sections": [
        {"kind": "var", "vars": [{"name": "delta", "type": "float32"}]},
        {"kind": "diagram", "objects": [
          {"luid": "0", "kind": "expr", "expr": "setpoint"},
          {"luid": "1", "kind": "expr", "expr": "measure"},
          {"luid": "2", "kind": "group", "locals": [
            {"luid": "3", "kind": "group"},
            {"luid": "4", "kind": "group"}
          ]},
          {"luid": "5", "kind": "block", "callee": "flt::LowPass"},
          {"luid": "6", "kind": "def", "lhs": ["command"]},
          {"luid": "7", "kind": "wire", "source": {"port": "#0"}, "targets": [{"port": "#3"}]},
          {"luid": "8", "kind": "wire", "source": {"port": "#1"}, "targets": [{"port": "#4"}]},
          {"luid": "9", "kind": "wire", "source": {"port": "#2"}, "targets": [{"port": "#5", "adapt": ["x", "y"]}]},
          {"luid": "10", "kind": "wire", "source": {"port": "#5"}, "targets": [{"port": "#6"}, {"port": "self"}]}
        ]}
      ]}
    }}
  ]
}`

func TestDecodeRegulation(t *testing.T) {
	mod, err := Decode([]byte(regulationJSON))
	if err != nil {
		t.Fatal(err)
	}
	if got := mod.FullPath(); got != "engine::ctrl" {
		t.Errorf("FullPath() = %q", got)
	}
	if mod.IsInterface() {
		t.Error("IsInterface() = true for a body document")
	}

	op := mod.Operator("Regulation")
	if op == nil {
		t.Fatal("operator Regulation not decoded")
	}
	if !op.Node || len(op.Inputs) != 2 || len(op.Outputs) != 1 {
		t.Fatalf("signature = %s", op.Signature())
	}
	if !op.HasBody() {
		t.Fatal("HasBody() = false")
	}

	body := op.Body()
	if body == nil || len(body.Sections) != 2 {
		t.Fatalf("body sections = %v", body)
	}
	if body.Owner() != op {
		t.Error("realized body not owned by its operator")
	}

	d, ok := body.Sections[1].(*swan.Diagram)
	if !ok {
		t.Fatalf("section[1] = %T, want *swan.Diagram", body.Sections[1])
	}
	if len(d.Objects) != 10 {
		t.Fatalf("diagram objects = %d, want 10", len(d.Objects))
	}
}

func TestDecodedDiagramNavigates(t *testing.T) {
	mod, err := Decode([]byte(regulationJSON))
	if err != nil {
		t.Fatal(err)
	}
	body := mod.Operator("Regulation").Body()
	d := body.Sections[1].(*swan.Diagram)

	var bar, block swan.Object
	for _, o := range d.Objects {
		switch o.Luid() {
		case "2":
			bar = o
		case "5":
			block = o
		}
	}

	srcs, err := d.Sources(bar)
	if err != nil {
		t.Fatal(err)
	}
	if len(srcs) != 2 || srcs[0].Object.Luid() != "0" || srcs[1].Object.Luid() != "1" {
		t.Fatalf("Sources(bar) = %v", srcs)
	}

	// The adaptation rides the target endpoint, so the Sources link
	// carries none; the self endpoint of wire 10 is skipped.
	srcs, err = d.Sources(block)
	if err != nil {
		t.Fatal(err)
	}
	if len(srcs) != 1 || srcs[0].Object.Luid() != "2" || srcs[0].Adaptation != nil {
		t.Fatalf("Sources(block) = %v", srcs)
	}
	tgts, err := d.Targets(block)
	if err != nil {
		t.Fatal(err)
	}
	if len(tgts) != 1 || tgts[0].Object.Luid() != "6" {
		t.Fatalf("Targets(block) = %v", tgts)
	}
}

func TestRoundTrip(t *testing.T) {
	mod, err := Decode([]byte(regulationJSON))
	if err != nil {
		t.Fatal(err)
	}
	data, err := Encode(mod)
	if err != nil {
		t.Fatal(err)
	}
	again, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if again.String() != mod.String() {
		t.Errorf("round trip drifted:\n--- first\n%s\n--- second\n%s", mod, again)
	}
}

func TestParserFillsSourceMetadata(t *testing.T) {
	src := model.NewStringSource(`{"declarations": []}`, "sys::itf", true)
	mod, err := Parser{}.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if got := mod.FullPath(); got != "sys::itf" {
		t.Errorf("FullPath() = %q, want source name", got)
	}
	if !mod.IsInterface() {
		t.Error("IsInterface() = false for a .swani source")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{"not json", `{"module": `, errors.ErrCodeParse},
		{"bad module path", `{"module": "9bad"}`, errors.ErrCodeMalformedName},
		{"bad use path", `{"module": "m", "uses": [{"path": "::"}]}`, errors.ErrCodeMalformedName},
		{"unknown decl kind", `{"module": "m", "declarations": [{"kind": "enum"}]}`, errors.ErrCodeParse},
		{"operator without payload", `{"module": "m", "declarations": [{"kind": "operator"}]}`, errors.ErrCodeParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.in)); !errors.Is(err, tt.code) {
				t.Errorf("Decode(%q) error = %v, want code %s", tt.in, err, tt.code)
			}
		})
	}
}
