package validate

import "testing"

func TestPlainText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  plain message  ", "plain message"},
		{"<b>Lift</b> is down", "Lift is down"},
		{"<p>first</p><p>second</p>", "first\nsecond"},
		{"line<br>next", "line\nnext"},
		{"<script>alert(1)</script>", ""},
		{"Tom &amp; Jerry", "Tom & Jerry"},
	}
	for _, tt := range tests {
		if got := PlainText(tt.in); got != tt.want {
			t.Fatalf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
