package config

import "os"

// Placeholder is the default value for unset endpoint/credential variables.
// A service whose endpoint is empty or still the placeholder is disabled.
const Placeholder = "changeme"

type Service struct {
	Name     string
	Endpoint string
	APIKey   string
}

type Config struct {
	Port        string
	ServiceA    Service
	ServiceB    Service
	WhoisEnrich bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load builds the configuration from the process environment. It is called
// once at startup; the resulting value is passed explicitly into the clients
// and server, never looked up again from business logic.
func Load() Config {
	return Config{
		Port: getenv("PORT", "8080"),
		ServiceA: Service{
			Name:     "service A",
			Endpoint: getenv("SERVICE_A_URL", Placeholder),
			APIKey:   getenv("SERVICE_A_KEY", Placeholder),
		},
		ServiceB: Service{
			Name:     "service B",
			Endpoint: getenv("SERVICE_B_URL", Placeholder),
			APIKey:   getenv("SERVICE_B_KEY", Placeholder),
		},
		WhoisEnrich: getenv("WHOIS_ENRICH", "") == "true",
	}
}
