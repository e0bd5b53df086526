package update

import "testing"

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.2", "1.2.0", 0},
		{"1.2.0", "1.2", 0},
		{"2.0.0", "1.9.9", 1},
		{"1.0.1", "1.0.2", -1},
		{"1.3", "1.2.9", 1},
		{"1.10", "1.9", 1},
		{"1.4.1", "1.4.0", 1},
		{"", "0", 0},
		{"1.x", "1.0", 0},
		{"1.beta.2", "1.0.1", 1},
		{"1.1e3", "1.0", 0},
		{"1.0x10", "1.0", 0},
		{"1.99999999999999999999", "1.0", 0},
		{" 1 . 2 ", "1.2", 0},
		{"0.9", "1", -1},
	}
	for _, tt := range tests {
		if got := CompareVersions(tt.a, tt.b); got != tt.want {
			t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := CompareVersions(tt.b, tt.a); got != -tt.want {
			t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.b, tt.a, got, -tt.want)
		}
	}
}
