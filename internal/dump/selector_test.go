package dump

import "testing"

func TestToPartsFromParts(t *testing.T) {
	tests := []struct {
		selector string
		want     Parts
	}{
		{"a", Parts{"a"}},
		{"a.b.c", Parts{"a", "b", "c"}},
		{"config.util.cmd", Parts{"config", "util", "cmd"}},
	}
	for _, tt := range tests {
		got, err := toParts(tt.selector)
		if err != nil {
			t.Fatalf("toParts(%q): unexpected error: %v", tt.selector, err)
		}
		if !got.equal(tt.want) {
			t.Errorf("toParts(%q) = %v, want %v", tt.selector, got, tt.want)
		}
		if back := fromParts(got); back != tt.selector {
			t.Errorf("fromParts(toParts(%q)) = %q", tt.selector, back)
		}
	}
}

func TestToPartsRejectsMalformed(t *testing.T) {
	for _, selector := range []string{"", "a..b", ".a", "a."} {
		if _, err := toParts(selector); err == nil {
			t.Errorf("toParts(%q): expected error, got nil", selector)
		}
	}
}

func TestPartsCloneIsIndependent(t *testing.T) {
	p := Parts{"a", "b"}
	c := p.clone()
	c[0] = "z"
	if p[0] != "a" {
		t.Errorf("clone mutated original: p[0] = %q", p[0])
	}
}

func TestPartsEqual(t *testing.T) {
	if !(Parts{"a", "b"}.equal(Parts{"a", "b"})) {
		t.Error("expected equal parts to compare equal")
	}
	if (Parts{"a", "b"}.equal(Parts{"a"})) {
		t.Error("expected different-length parts to compare unequal")
	}
	if (Parts{"a", "b"}.equal(Parts{"a", "c"})) {
		t.Error("expected differing parts to compare unequal")
	}
}
