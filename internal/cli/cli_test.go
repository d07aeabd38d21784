package cli

import (
	"testing"

	"github.com/matzehuels/swanview/pkg/errors"
)

func TestSplitOperatorRef(t *testing.T) {
	tests := []struct {
		in      string
		modPath string
		opName  string
		wantErr bool
	}{
		{"utils::Filter", "utils", "Filter", false},
		{"engine::ctrl::Regulation", "engine::ctrl", "Regulation", false},
		{"NoModule", "", "", true},
		{"trailing::", "", "", true},
		{"::Leading", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			modPath, opName, err := splitOperatorRef(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeMalformedName) {
					t.Fatalf("error = %v, want MALFORMED_NAME", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if modPath != tt.modPath || opName != tt.opName {
				t.Errorf("split = %q, %q; want %q, %q", modPath, opName, tt.modPath, tt.opName)
			}
		})
	}
}
