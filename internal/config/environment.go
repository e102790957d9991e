package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Environment describes the backend the console is pointed at. It is resolved
// once at startup and passed to whatever needs it.
type Environment struct {
	Name    string
	IsLocal bool
	BaseURL string
}

var localHosts = map[string]bool{
	"localhost": true,
	"127.0.0.1": true,
	"::1":       true,
	"0.0.0.0":   true,
}

func ResolveEnvironment(cfg Config) (Environment, error) {
	raw := strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	u, err := url.Parse(raw)
	if err != nil {
		return Environment{}, fmt.Errorf("parse API_BASE_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Environment{}, fmt.Errorf("API_BASE_URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return Environment{}, fmt.Errorf("API_BASE_URL %q: missing host", raw)
	}

	host := u.Hostname()
	local := localHosts[host]
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		local = true
	}

	name := cfg.APIEnvName
	if name == "" {
		if local {
			name = "Local API"
		} else {
			name = "Deployed API"
		}
	}
	return Environment{Name: name, IsLocal: local, BaseURL: raw}, nil
}
