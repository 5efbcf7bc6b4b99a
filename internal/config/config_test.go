package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func baseConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		APIURL:       "",
		Origin:       "",
		HTTPTimeout:  10 * time.Second,
		Port:         "8080",
		SQLiteDBPath: filepath.Join(t.TempDir(), "kakeibo.db"),
		CORSOrigins:  []string{"http://localhost:3000"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid defaults",
			mutate: func(*Config) {},
		},
		{
			name:   "valid with explicit api url",
			mutate: func(c *Config) { c.APIURL = "http://ledger.internal:8080" },
		},
		{
			name:   "valid with origin",
			mutate: func(c *Config) { c.Origin = "http://192.168.1.5:3000" },
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid timeout",
			mutate:      func(c *Config) { c.HTTPTimeout = 0 },
			wantErr:     true,
			errorString: "must be positive",
		},
		{
			name:        "relative api url",
			mutate:      func(c *Config) { c.APIURL = "ledger.internal" },
			wantErr:     true,
			errorString: "must be an absolute URL",
		},
		{
			name:        "empty db path",
			mutate:      func(c *Config) { c.SQLiteDBPath = "" },
			wantErr:     true,
			errorString: "database path cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig(t)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.errorString) {
				t.Fatalf("Validate() = %q, want substring %q", err, tt.errorString)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"KAKEIBO_API_URL", "KAKEIBO_ORIGIN", "KAKEIBO_HTTP_TIMEOUT", "PORT", "SQLITE_DB_PATH", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.APIURL != "" {
		t.Errorf("APIURL default = %q, want empty", cfg.APIURL)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("HTTPTimeout default = %v", cfg.HTTPTimeout)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port default = %q", cfg.Port)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("CORSOrigins default = %v", cfg.CORSOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("KAKEIBO_API_URL", "http://10.0.0.5:8080")
	t.Setenv("KAKEIBO_HTTP_TIMEOUT", "3s")
	t.Setenv("CORS_ORIGINS", "http://192.168.1.100:3000, http://10.0.0.5:3000")

	cfg := Load()

	if cfg.APIURL != "http://10.0.0.5:8080" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://10.0.0.5:3000" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestOriginURL(t *testing.T) {
	cfg := Config{Origin: "http://192.168.1.5:3000"}
	u := cfg.OriginURL()
	if u == nil || u.Hostname() != "192.168.1.5" {
		t.Fatalf("OriginURL() = %v", u)
	}

	cfg.Origin = ""
	if cfg.OriginURL() != nil {
		t.Fatal("empty origin should yield nil")
	}
}
