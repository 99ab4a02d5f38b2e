package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Listen != ":4443" {
		t.Errorf("Listen = %q, want :4443", cfg.Listen)
	}
	if len(cfg.WebSocket.AllowedOrigins) != 0 {
		t.Errorf("expected empty allowed origins by default, got %v", cfg.WebSocket.AllowedOrigins)
	}
	if cfg.WebSocket.MaxMessageSize != 4096 {
		t.Errorf("MaxMessageSize = %d, want 4096", cfg.WebSocket.MaxMessageSize)
	}
	if cfg.Generation.MaxSteps != 200000 {
		t.Errorf("Generation.MaxSteps = %d, want 200000", cfg.Generation.MaxSteps)
	}
	if cfg.Generation.DefaultProfile != "default" {
		t.Errorf("Generation.DefaultProfile = %q, want default", cfg.Generation.DefaultProfile)
	}
	if cfg.Generation.DefaultMap != "small_s" {
		t.Errorf("Generation.DefaultMap = %q, want small_s", cfg.Generation.DefaultMap)
	}
	if cfg.Store.Driver != "" {
		t.Errorf("Store.Driver = %q, want archiving disabled by default", cfg.Store.Driver)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/mapgend.yaml")
	if err != nil {
		t.Errorf("expected no error for missing file, got %v", err)
	}
	if cfg == nil {
		t.Fatal("expected default config for missing file, got nil")
	}
	if cfg.Listen != ":4443" {
		t.Errorf("Listen = %q, want the default", cfg.Listen)
	}
}

func TestLoadConfigValidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "mapgend.yaml")
	content := `listen: ":9000"
websocket:
  allowed_origins:
    - "https://example.com"
    - "http://localhost:3000"
  max_message_size: 8192
generation:
  max_steps: 50000
  default_profile: narrow
store:
  driver: sqlite
  path: /tmp/maps.db
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Listen != ":9000" {
		t.Errorf("Listen = %q, want :9000", cfg.Listen)
	}
	if len(cfg.WebSocket.AllowedOrigins) != 2 {
		t.Errorf("got %d allowed origins, want 2", len(cfg.WebSocket.AllowedOrigins))
	}
	if cfg.WebSocket.AllowedOrigins[0] != "https://example.com" {
		t.Errorf("first origin = %q, want https://example.com", cfg.WebSocket.AllowedOrigins[0])
	}
	if cfg.WebSocket.MaxMessageSize != 8192 {
		t.Errorf("MaxMessageSize = %d, want 8192", cfg.WebSocket.MaxMessageSize)
	}
	if cfg.Generation.MaxSteps != 50000 {
		t.Errorf("MaxSteps = %d, want 50000", cfg.Generation.MaxSteps)
	}
	if cfg.Generation.DefaultProfile != "narrow" {
		t.Errorf("DefaultProfile = %q, want narrow", cfg.Generation.DefaultProfile)
	}
	if cfg.Generation.DefaultMap != "small_s" {
		t.Errorf("DefaultMap = %q, want the default for unset fields", cfg.Generation.DefaultMap)
	}
	if cfg.Store.Driver != "sqlite" || cfg.Store.Path != "/tmp/maps.db" {
		t.Errorf("Store = %+v, want sqlite at /tmp/maps.db", cfg.Store)
	}
}

func TestLoadConfigParseError(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(configPath, []byte("listen: [not a string\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("expected error for unparsable file")
	}
}

func TestIsOriginAllowedSameOrigin(t *testing.T) {
	cfg := WebSocketConfig{AllowedOrigins: []string{}}

	if !cfg.IsOriginAllowed("", "localhost:4443") {
		t.Error("expected empty origin to be allowed (same-origin)")
	}
	if !cfg.IsOriginAllowed("http://localhost:4443", "localhost:4443") {
		t.Error("expected matching origin to be allowed (same-origin)")
	}
	if cfg.IsOriginAllowed("http://evil.com", "localhost:4443") {
		t.Error("expected different origin to be rejected (same-origin policy)")
	}
}

func TestIsOriginAllowedWildcard(t *testing.T) {
	cfg := WebSocketConfig{AllowedOrigins: []string{"*"}}

	if !cfg.IsOriginAllowed("http://anything.com", "localhost:4443") {
		t.Error("expected wildcard to allow any origin")
	}
	if !cfg.IsOriginAllowed("", "localhost:4443") {
		t.Error("expected wildcard to allow empty origin")
	}
}

func TestIsOriginAllowedExactMatch(t *testing.T) {
	cfg := WebSocketConfig{
		AllowedOrigins: []string{
			"https://example.com",
			"http://localhost:3000",
		},
	}

	if !cfg.IsOriginAllowed("https://example.com", "localhost:4443") {
		t.Error("expected exact match to be allowed")
	}
	if !cfg.IsOriginAllowed("http://localhost:3000", "localhost:4443") {
		t.Error("expected exact match to be allowed")
	}
	if cfg.IsOriginAllowed("http://evil.com", "localhost:4443") {
		t.Error("expected non-matching origin to be rejected")
	}
	if cfg.IsOriginAllowed("https://example.com:8080", "localhost:4443") {
		t.Error("expected partial match to be rejected")
	}
}

func TestIsSameOrigin(t *testing.T) {
	tests := []struct {
		origin      string
		requestHost string
		want        bool
	}{
		{"", "localhost:4443", true},
		{"http://localhost:4443", "localhost:4443", true},
		{"https://localhost:4443", "localhost:4443", true},
		{"http://localhost:4443/", "localhost:4443", true},
		{"ws://localhost:4443", "localhost:4443", true},
		{"http://example.com", "localhost:4443", false},
		{"http://localhost:3000", "localhost:4443", false},
	}

	for _, tt := range tests {
		if got := isSameOrigin(tt.origin, tt.requestHost); got != tt.want {
			t.Errorf("isSameOrigin(%q, %q) = %v, want %v",
				tt.origin, tt.requestHost, got, tt.want)
		}
	}
}
