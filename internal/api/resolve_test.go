package api

import (
	"net/url"
	"testing"
)

func TestResolveBase(t *testing.T) {
	tests := []struct {
		name     string
		origin   string
		override string
		want     string
	}{
		{
			name:   "origin wins, port replaced with service port",
			origin: "http://192.168.1.5:3000/transactions",
			want:   "http://192.168.1.5:8080",
		},
		{
			name:   "origin keeps scheme",
			origin: "https://home.example.net",
			want:   "https://home.example.net:8080",
		},
		{
			name:     "origin beats override",
			origin:   "http://10.0.0.5:3000",
			override: "http://somewhere-else:9999",
			want:     "http://10.0.0.5:8080",
		},
		{
			name:     "override without origin",
			override: "http://ledger.internal:8080",
			want:     "http://ledger.internal:8080",
		},
		{
			name:     "override trailing slash trimmed",
			override: "http://ledger.internal:8080/",
			want:     "http://ledger.internal:8080",
		},
		{
			name: "bare default",
			want: "http://localhost:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var origin *url.URL
			if tt.origin != "" {
				u, err := url.Parse(tt.origin)
				if err != nil {
					t.Fatalf("parse origin: %v", err)
				}
				origin = u
			}
			if got := ResolveBase(origin, tt.override); got != tt.want {
				t.Fatalf("ResolveBase() = %q, want %q", got, tt.want)
			}
		})
	}
}
