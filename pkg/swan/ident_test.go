package swan

import "testing"

func TestValidIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"x", true},
		{"Regulation", true},
		{"low_pass2", true},
		{"_hidden", false},
		{"9lives", false},
		{"", false},
		{"a::b", false},
		{"with space", false},
	}
	for _, tt := range tests {
		if got := ValidIdentifier(tt.in); got != tt.want {
			t.Errorf("ValidIdentifier(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidPath(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"utils", true},
		{"engine::ctrl", true},
		{"a :: b :: c", true},
		{"::", false},
		{"a::", false},
		{"::b", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidPath(tt.in); got != tt.want {
			t.Errorf("ValidPath(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParsePathID(t *testing.T) {
	p := ParsePathID("engine :: ctrl")
	if got := p.String(); got != "engine::ctrl" {
		t.Errorf("String() = %q", got)
	}
	if got := p.Name(); got != "ctrl" {
		t.Errorf("Name() = %q", got)
	}
}

func TestLuid(t *testing.T) {
	if got := ParseLuid("#12"); got != Luid("12") {
		t.Errorf("ParseLuid(#12) = %q", got)
	}
	if got := ParseLuid("12"); got != Luid("12") {
		t.Errorf("ParseLuid(12) = %q", got)
	}
	if got := Luid("12").String(); got != "#12" {
		t.Errorf("String() = %q", got)
	}
	if !ValidLuid("#a-1") || ValidLuid("") {
		t.Error("ValidLuid misjudged")
	}
}

func TestIdentifierString(t *testing.T) {
	id := NewIdentifier("speed")
	id.Pragmas = []Pragma{"#pragma cg probe #end"}
	want := "#pragma cg probe #end speed"
	if got := id.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFullPath(t *testing.T) {
	c := &ConstDecl{ID: NewIdentifier("kp")}
	m := NewModule(NewPathID("engine", "ctrl"), ModuleBody, nil,
		[]GlobalDecl{NewConstDecls(c)})
	_ = m

	path, err := FullPath(c)
	if err != nil {
		t.Fatal(err)
	}
	if path != "engine::ctrl::kp" {
		t.Errorf("FullPath() = %q", path)
	}

	orphan := &ConstDecl{ID: NewIdentifier("lost")}
	if _, err := FullPath(orphan); err == nil {
		t.Error("FullPath on detached declaration should fail")
	}
}
