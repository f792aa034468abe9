package clientip

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRealClientIP(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{"192.0.2.10:5555", "192.0.2.10"},
		{"[2001:db8::1]:443", "2001:db8::1"},
		{"192.0.2.11", "192.0.2.11"},
	}

	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			assert.Equal(t, tt.want, RealClientIP(req))
		})
	}
}
