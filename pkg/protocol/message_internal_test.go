package protocol

import "testing"

func TestEncodeHeader_FixedWidth(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "   0"},
		{5, "   5"},
		{25, "  25"},
		{100, " 100"},
		{512, " 512"},
	}

	for _, tt := range tests {
		got := encodeHeader(tt.n)
		if len(got) != HeaderSize {
			t.Errorf("encodeHeader(%d) produced %d bytes, want %d", tt.n, len(got), HeaderSize)
		}
		if string(got) != tt.want {
			t.Errorf("encodeHeader(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
