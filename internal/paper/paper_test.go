package paper

import "testing"

func TestParseIDVersion(t *testing.T) {
	tests := []struct {
		name        string
		id          string
		wantID      string
		wantVersion string
	}{
		{"no version", "2301.00001", "2301.00001", "v1"},
		{"v1 suffix", "2301.00001v1", "2301.00001", "v1"},
		{"v2 suffix", "2301.00001v2", "2301.00001", "v2"},
		{"multi digit version", "2301.00001v12", "2301.00001", "v12"},
		{"old style id", "hep-th/9901001", "hep-th/9901001", "v1"},
		{"old style with version", "hep-th/9901001v3", "hep-th/9901001", "v3"},
		{"bare version tag", "v2", "v2", "v1"},
		{"empty", "", "", "v1"},
		{"malformed passes through", "not-an-id", "not-an-id", "v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID, gotVersion := ParseIDVersion(tt.id)
			if gotID != tt.wantID || gotVersion != tt.wantVersion {
				t.Errorf("ParseIDVersion(%q) = (%q, %q), want (%q, %q)",
					tt.id, gotID, gotVersion, tt.wantID, tt.wantVersion)
			}
		})
	}
}

func TestUniqueKey(t *testing.T) {
	p := Paper{ArXivID: "2301.00001", Version: "v2"}
	if got := p.UniqueKey(); got != "2301.00001v2" {
		t.Errorf("UniqueKey() = %q, want %q", got, "2301.00001v2")
	}

	// Stable under re-construction of an equal record.
	q := Paper{ArXivID: "2301.00001", Version: "v2", Title: "different field"}
	if p.UniqueKey() != q.UniqueKey() {
		t.Errorf("UniqueKey() differs for equal identity: %q vs %q", p.UniqueKey(), q.UniqueKey())
	}
}

func TestUniqueKeyDistinguishesVersions(t *testing.T) {
	v1 := Paper{ArXivID: "2301.00001", Version: "v1"}
	v2 := Paper{ArXivID: "2301.00001", Version: "v2"}
	if v1.UniqueKey() == v2.UniqueKey() {
		t.Errorf("UniqueKey() = %q for both versions, want distinct keys", v1.UniqueKey())
	}
}
