package script

import (
	"testing"

	cerrors "carrental/cli/internal/errors"
)

func TestSplitSections(t *testing.T) {
	tests := []struct {
		name        string
		script      string
		wantSystem  string
		wantTenant  string
		expectError bool
	}{
		{
			name:       "marker in the middle",
			script:     "CREATE EXTENSION dblink;\n" + Marker + "\nCREATE TABLE cars ();\n",
			wantSystem: "CREATE EXTENSION dblink;\n",
			wantTenant: Marker + "\nCREATE TABLE cars ();\n",
		},
		{
			name:       "marker first",
			script:     Marker + "\nSELECT 1;\n",
			wantSystem: "",
			wantTenant: Marker + "\nSELECT 1;\n",
		},
		{
			name:        "marker missing",
			script:      "SELECT 1;\n",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			system, tenant, err := SplitSections(tt.script, Marker)
			if tt.expectError {
				if !cerrors.IsKind(err, cerrors.Resource) {
					t.Errorf("expected resource error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if system != tt.wantSystem {
				t.Errorf("system = %q, want %q", system, tt.wantSystem)
			}
			if tenant != tt.wantTenant {
				t.Errorf("tenant = %q, want %q", tenant, tt.wantTenant)
			}
			if system+tenant != tt.script {
				t.Errorf("system+tenant does not reconstruct the script")
			}
		})
	}
}
