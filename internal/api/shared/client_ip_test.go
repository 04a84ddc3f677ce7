package shared_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calref/user-api/internal/api/shared"
)

func TestClientIP(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		want       string
	}{
		{
			name:       "x-forwarded-for wins",
			forwarded:  "203.0.113.9",
			realIP:     "198.51.100.1",
			remoteAddr: "192.0.2.1:1234",
			want:       "203.0.113.9",
		},
		{
			name:       "first forwarded entry is the client",
			forwarded:  "203.0.113.9, 198.51.100.1, 192.0.2.1",
			remoteAddr: "192.0.2.1:1234",
			want:       "203.0.113.9",
		},
		{
			name:       "x-real-ip when no forwarded header",
			realIP:     "198.51.100.1",
			remoteAddr: "192.0.2.1:1234",
			want:       "198.51.100.1",
		},
		{
			name:       "remote addr host as last resort",
			remoteAddr: "192.0.2.1:1234",
			want:       "192.0.2.1",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "192.0.2.1",
			want:       "192.0.2.1",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tc.remoteAddr
			if tc.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			if tc.realIP != "" {
				r.Header.Set("X-Real-IP", tc.realIP)
			}

			assert.Equal(t, tc.want, shared.ClientIP(r))
		})
	}
}
