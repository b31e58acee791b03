package commands

import "testing"

func TestParsePWMIndex(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "1", want: 1},
		{in: "7", want: 7},
		{in: "0", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "x", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parsePWMIndex(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("parsePWMIndex(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parsePWMIndex(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("parsePWMIndex(%q)=%d want %d", tt.in, got, tt.want)
		}
	}
}
