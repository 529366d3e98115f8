package main

import "testing"

func TestDeriveBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		apiURL  string
		want    string
		wantErr bool
	}{
		{"api subdomain stripped", "https://api.moreach.io", "https://moreach.io", false},
		{"port preserved", "http://api.localhost:8000", "http://localhost:8000", false},
		{"no api prefix", "https://moreach.io", "https://moreach.io", false},
		{"malformed", "://not-a-url", "", true},
		{"hostless", "not-a-url", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := deriveBaseURL(tt.apiURL)
			if (err != nil) != tt.wantErr {
				t.Fatalf("deriveBaseURL(%q) error = %v, wantErr %v", tt.apiURL, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("deriveBaseURL(%q) = %q, want %q", tt.apiURL, got, tt.want)
			}
		})
	}
}
