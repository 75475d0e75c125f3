package system

import "testing"

func TestControlURLExplicitHost(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"192.168.1.10:8080", "http://192.168.1.10:8080/"},
		{"192.168.1.10:80", "http://192.168.1.10/"},
		{"example.local:9000", "http://example.local:9000/"},
	}
	for _, tc := range tests {
		got, err := ControlURL(tc.in)
		if err != nil {
			t.Fatalf("ControlURL(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ControlURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestControlURLBadAddr(t *testing.T) {
	if _, err := ControlURL("not-an-addr"); err == nil {
		t.Fatal("want error for address without port")
	}
}
