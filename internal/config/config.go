// Package config holds the generation service configuration shared by the
// daemon and its WebSocket server.
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ServiceConfig holds daemon-wide configuration.
type ServiceConfig struct {
	// Listen is the address the WebSocket server binds to.
	Listen string `yaml:"listen"`

	WebSocket  WebSocketConfig  `yaml:"websocket"`
	Generation GenerationConfig `yaml:"generation"`
	Store      StoreConfig      `yaml:"store"`
}

// WebSocketConfig holds WebSocket-specific settings.
type WebSocketConfig struct {
	// AllowedOrigins lists origins allowed to connect. An empty list
	// enforces same-origin; "*" allows all origins.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxMessageSize is the maximum inbound message size in bytes.
	MaxMessageSize int64 `yaml:"max_message_size"`
}

// GenerationConfig holds the service-side generation limits and defaults.
type GenerationConfig struct {
	// MaxSteps caps the step budget of a single request. Requests asking
	// for more are clamped; requests asking for nothing get this value.
	MaxSteps int `yaml:"max_steps"`

	// DefaultProfile and DefaultMap name the presets used when a request
	// leaves them empty.
	DefaultProfile string `yaml:"default_profile"`
	DefaultMap     string `yaml:"default_map"`
}

// StoreConfig selects the map archive backend. An empty driver disables
// archiving.
type StoreConfig struct {
	// Driver is "sqlite", "postgres", or empty.
	Driver string `yaml:"driver"`

	// Path is the database file for the sqlite driver.
	Path string `yaml:"path"`

	// DSN is the connection string for the postgres driver.
	DSN string `yaml:"dsn"`
}

// DefaultConfig returns a ServiceConfig with the stock defaults.
func DefaultConfig() *ServiceConfig {
	return &ServiceConfig{
		Listen: ":4443",
		WebSocket: WebSocketConfig{
			AllowedOrigins: []string{},
			MaxMessageSize: 4096,
		},
		Generation: GenerationConfig{
			MaxSteps:       200000,
			DefaultProfile: "default",
			DefaultMap:     "small_s",
		},
		Store: StoreConfig{
			Driver: "",
			Path:   "data/mapgen.db",
		},
	}
}

// LoadConfig loads the service configuration from a YAML file. A missing
// file yields the defaults so the daemon can start unconfigured; a file
// that exists but fails to parse is an error.
func LoadConfig(path string) (*ServiceConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}

	return config, nil
}

// IsOriginAllowed reports whether a WebSocket origin may connect.
// Allowed when AllowedOrigins contains "*" or the exact origin, or when
// the list is empty and the origin matches the request host.
func (c *WebSocketConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}

	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" {
			return true
		}
		if allowed == origin {
			return true
		}
	}

	return false
}

// isSameOrigin checks the origin host against the request host. An empty
// origin counts as same-origin, the non-browser client case.
func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true
	}

	originHost := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		originHost = origin[idx+3:]
	}
	originHost = strings.TrimSuffix(originHost, "/")

	return originHost == requestHost
}
