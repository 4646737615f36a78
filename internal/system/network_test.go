package system

import "testing"

func TestControlURL(t *testing.T) {
	tests := []struct {
		listen string
		hostIP string
		want   string
	}{
		{":80", "192.168.1.20", "http://192.168.1.20/"},
		{":8080", "10.0.0.5", "http://10.0.0.5:8080/"},
		{"0.0.0.0:8080", "10.0.0.5", "http://10.0.0.5:8080/"},
		{"127.0.0.1:9000", "10.0.0.5", "http://127.0.0.1:9000/"},
		{":8080", "", "http://localhost:8080/"},
		{"[::1]:8080", "", "http://[::1]:8080/"},
		{"garbage", "10.0.0.5", "http://10.0.0.5/"},
	}
	for _, tt := range tests {
		if got := controlURL(tt.listen, tt.hostIP); got != tt.want {
			t.Errorf("controlURL(%q, %q) = %q, want %q", tt.listen, tt.hostIP, got, tt.want)
		}
	}
}
