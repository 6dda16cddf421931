package canon

import "testing"

func TestIDDeterministic(t *testing.T) {
	a := ID("The cable is faulty")
	b := ID("The cable is faulty")
	if a != b {
		t.Errorf("same statement produced different ids: %s vs %s", a, b)
	}
}

func TestIDPinnedValues(t *testing.T) {
	// Pinned outputs: a change here means previously issued ids no longer
	// correlate across audit logs.
	if got := ID("Other"); got != "8a491ff6-9190-5d49-9845-fa0a0c921e53" {
		t.Errorf("ID(\"Other\") = %s", got)
	}
	if got := ID(""); got != "50170352-a292-567f-95bc-1d13606c2ef8" {
		t.Errorf("ID(\"\") = %s", got)
	}
}

func TestIDNormalization(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		same bool
	}{
		{"case insensitive", "Cable Fault", "cable fault", true},
		{"outer whitespace trimmed", "  cable fault  ", "cable fault", true},
		{"inner whitespace collapsed", "cable \t\n fault", "cable fault", true},
		{"distinct statements distinct ids", "cable fault", "software bug", false},
		{"word order matters", "fault cable", "cable fault", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ID(tt.a) == ID(tt.b)
			if got != tt.same {
				t.Errorf("ID(%q) == ID(%q) = %v, want %v", tt.a, tt.b, got, tt.same)
			}
		})
	}
}

func TestIDEmptyString(t *testing.T) {
	if ID("") == "" {
		t.Error("empty statement must still yield an id")
	}
	if ID("") != ID("   ") {
		t.Error("whitespace-only statement should normalize to empty")
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  The   CABLE\tis  Faulty "); got != "the cable is faulty" {
		t.Errorf("Normalize = %q", got)
	}
}
